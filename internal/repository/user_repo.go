package repository

import (
	"context"
	"errors"
	"time"

	"roomi/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OwnerProfile struct {
	FullName string
	Age      int
	Gender   string
	Phone    string
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	Update(ctx context.Context, user *entity.User) error
	SetEmail(ctx context.Context, userID uuid.UUID, email string) error
	MarkVerified(ctx context.Context, email string) error
	UpgradeToOwner(ctx context.Context, userID uuid.UUID, profile OwnerProfile) error
	RecordLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
	Deactivate(ctx context.Context, userID uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) SetEmail(ctx context.Context, userID uuid.UUID, email string) error {
	return r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", userID).
		Update("email", email).
		Error
}

func (r *userRepository) MarkVerified(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("email = ?", email).
		Update("is_verified", true).
		Error
}

func (r *userRepository) UpgradeToOwner(ctx context.Context, userID uuid.UUID, profile OwnerProfile) error {
	return r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"user_type": entity.UserTypeHostelOwner,
			"full_name": profile.FullName,
			"age":       profile.Age,
			"gender":    profile.Gender,
			"phone":     profile.Phone,
		}).Error
}

func (r *userRepository) RecordLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"login_count":   gorm.Expr("login_count + 1"),
			"last_login_at": &at,
		}).Error
}

func (r *userRepository) Deactivate(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", userID).
		Update("is_active", false).
		Error
}
