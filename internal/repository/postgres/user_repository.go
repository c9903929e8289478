package postgres

import (
	"context"
	"errors"
	"fmt"
	"vendorHub/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		DB: db,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := conn(ctx, r.DB).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	var user domain.User

	err := conn(ctx, r.DB).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, fmt.Errorf("user %w", domain.ErrNotFound)
		}
		return domain.User{}, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// FindByIDForUpdate locks the user row until the surrounding transaction ends.
func (r *UserRepository) FindByIDForUpdate(ctx context.Context, id uint) (domain.User, error) {
	var user domain.User

	err := conn(ctx, r.DB).Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, fmt.Errorf("user %w", domain.ErrNotFound)
		}
		return domain.User{}, fmt.Errorf("failed to lock user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	var user domain.User

	err := conn(ctx, r.DB).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, fmt.Errorf("user %w", domain.ErrNotFound)
		}
		return domain.User{}, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) FindByRoles(ctx context.Context, roles []domain.Role) ([]domain.User, error) {
	var users []domain.User

	err := conn(ctx, r.DB).Where("role IN ?", roles).Order("created_at DESC").Order("id DESC").Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find users by role: %w", err)
	}

	return users, nil
}

func (r *UserRepository) UpdateStatus(ctx context.Context, id uint, status domain.AccountStatus) error {
	result := conn(ctx, r.DB).Model(&domain.User{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update user status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("user %w", domain.ErrNotFound)
	}

	return nil
}

func (r *UserRepository) UpdateRoleAndStatus(ctx context.Context, id uint, role domain.Role, status domain.AccountStatus) error {
	result := conn(ctx, r.DB).Model(&domain.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"role":   role,
		"status": status,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update user role: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("user %w", domain.ErrNotFound)
	}

	return nil
}

func (r *UserRepository) UpdateActive(ctx context.Context, id uint, active bool) error {
	result := conn(ctx, r.DB).Model(&domain.User{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return fmt.Errorf("failed to update user active flag: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("user %w", domain.ErrNotFound)
	}

	return nil
}

// UpdateFields writes the given columns; keys are column names.
func (r *UserRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	result := conn(ctx, r.DB).Model(&domain.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("user %w", domain.ErrNotFound)
	}

	return nil
}
