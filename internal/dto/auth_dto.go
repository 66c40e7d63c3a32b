package dto

import (
	"time"

	"roomi/internal/entity"
)

type SendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Code     string `json:"code" validate:"required,len=6,numeric"`
}

type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type VerifyPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expires_in"`
	User      UserResponse `json:"user"`
}

type UserResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	UserType    string     `json:"user_type"`
	IsVerified  bool       `json:"is_verified"`
	FullName    string     `json:"full_name,omitempty"`
	Age         *int       `json:"age,omitempty"`
	Gender      string     `json:"gender,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	MaxHostels  int        `json:"max_hostels"`
	LoginCount  int        `json:"login_count"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func UserResponseFromEntity(user *entity.User) UserResponse {
	return UserResponse{
		ID:          user.ID.String(),
		Username:    user.Username,
		Email:       user.Email,
		UserType:    string(user.UserType),
		IsVerified:  user.IsVerified,
		FullName:    user.FullName,
		Age:         user.Age,
		Gender:      user.Gender,
		Phone:       user.Phone,
		MaxHostels:  user.MaxHostels,
		LoginCount:  user.LoginCount,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
