package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"vendorHub/domain"
	"vendorHub/pkg/logger"
	"vendorHub/pkg/utils"

	"github.com/go-playground/validator/v10"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

// SessionRepository contract interface
type SessionRepository interface {
	StoreSession(ctx context.Context, token string, data domain.Session, ttl time.Duration) error
	ValidateSession(ctx context.Context, token string) (string, error)
	RevokeSession(ctx context.Context, token string) error
}

type userService struct {
	userRepo    UserRepository
	sessionRepo SessionRepository
	validate    *validator.Validate
}

func NewUserService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	validate *validator.Validate,
) *userService {
	return &userService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		validate:    validate,
	}
}

var errInvalidCredentials = fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)

// Register creates a customer account.
func (s *userService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		logger.Error("Invalid email format", "error", err)
		return domain.User{}, fmt.Errorf("%w: invalid email format", domain.ErrInvalidArgument)
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		logger.Error("Invalid user password", "error", err)
		return domain.User{}, fmt.Errorf("%w: password must be at least 6 characters", domain.ErrInvalidArgument)
	}

	// Check if email already exists
	existingUser, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existingUser.ID > 0 {
		logger.Error("Email already exists")
		return domain.User{}, fmt.Errorf("email %w", domain.ErrConflict)
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		logger.Error("Failed to check email", "error", err)
		return domain.User{}, err
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", "error", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		FirstName: strings.TrimSpace(user.FirstName),
		LastName:  strings.TrimSpace(user.LastName),
		Email:     user.Email,
		Mobile:    strings.TrimSpace(user.Mobile),
		Password:  string(passwordHash),
		Role:      domain.RoleCustomer,
		Status:    domain.AccountPending,
		IsActive:  true,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", "error", err)
		return domain.User{}, err
	}

	logger.Info("user registered", "user_id", newUser.ID)

	newUser.Password = ""
	return newUser, nil
}

// Login checks the credentials, issues a JWT and records it in the session store.
func (s *userService) Login(ctx context.Context, email, password, ipAddress, userAgent string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		logger.Error("Invalid user credentials", "error", err)
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.User{}, errInvalidCredentials
		}
		return "", domain.User{}, err
	}

	if !utils.CheckPassword(password, user.Password) {
		logger.Error("User password incorrect", "user_id", user.ID)
		return "", domain.User{}, errInvalidCredentials
	}

	if !user.IsActive {
		logger.Error("Inactive user tried to login", "user_id", user.ID)
		return "", domain.User{}, fmt.Errorf("account is inactive: %w", domain.ErrForbidden)
	}

	userIDStr := strconv.FormatUint(uint64(user.ID), 10)
	token, err := utils.GenerateJWT(userIDStr, string(user.Role))
	if err != nil {
		logger.Error("Failed to generate token", "error", err)
		return "", domain.User{}, errors.New("failed to generate token")
	}

	now := time.Now()
	ttl := utils.TokenTTL()
	session := domain.Session{
		UserID:    userIDStr,
		Role:      string(user.Role),
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
	if err := s.sessionRepo.StoreSession(ctx, token, session, ttl); err != nil {
		logger.Error("Failed to store session", "user_id", user.ID, "error", err)
		return "", domain.User{}, errors.New("failed to store session")
	}

	logger.Info("user logged in", "user_id", user.ID)

	user.Password = ""
	return token, user, nil
}

// Logout revokes the token so it stops working before it expires.
func (s *userService) Logout(ctx context.Context, userID uint, token string) error {
	if err := s.sessionRepo.RevokeSession(ctx, token); err != nil {
		logger.Error("Failed to revoke session", "user_id", userID, "error", err)
		return err
	}

	logger.Info("user logged out", "user_id", userID)

	return nil
}

func (s *userService) ValidateTokenFromRedis(ctx context.Context, token string) (string, error) {
	return s.sessionRepo.ValidateSession(ctx, token)
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get user by ID", "user_id", id, "error", err)
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}
