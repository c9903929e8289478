package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"vendorHub/pkg/logger"

	jsonres "vendorHub/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders errors that escape handlers (routing misses, panics turned into errors by
// Recover, echo.HTTPError) in the shared response envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		message = fmt.Sprint(he.Message)
	} else {
		logger.Error("Unhandled error", "path", c.Path(), "error", err)
	}

	errCode := strings.ToUpper(strings.ReplaceAll(http.StatusText(code), " ", "_"))
	if errCode == "" {
		errCode = "ERROR"
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, jsonres.Error(errCode, message, nil))
	}
	if err != nil {
		logger.Error("Failed to write error response", "error", err)
	}
}
