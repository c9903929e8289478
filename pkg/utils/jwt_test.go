//go:build !integration

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	InitJWT("unit-test-secret", time.Hour)

	token, err := GenerateJWT("42", "ADMIN")
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)

	expAt, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.True(t, expAt.After(time.Now()))
}

func TestParseJWT_RejectsForeignSignature(t *testing.T) {
	InitJWT("secret-a", time.Hour)
	token, err := GenerateJWT("1", "VENDOR")
	require.NoError(t, err)

	InitJWT("secret-b", time.Hour)
	_, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)

	assert.True(t, CheckPassword("s3cret!", string(hash)))
	assert.False(t, CheckPassword("other", string(hash)))
}

func TestGenerateJWT_UniqueTokenIDs(t *testing.T) {
	InitJWT("unit-test-secret", time.Hour)

	first, err := GenerateJWT("7", "CUSTOMER")
	require.NoError(t, err)
	second, err := GenerateJWT("7", "CUSTOMER")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
