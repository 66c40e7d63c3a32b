package service

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")

	// Verification code lifecycle. All are recoverable by requesting a
	// fresh code; none corrupts stored state.
	ErrCodeNotFoundOrExpired = errors.New("no verification code found or code expired")
	ErrInvalidCode           = errors.New("invalid verification code")
	ErrTooManyAttempts       = errors.New("too many failed attempts, request a new code")
	ErrNotifierUnavailable   = errors.New("failed to send verification email")

	ErrDuplicateAccount   = errors.New("account already exists with this email or username")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrUserNotFound       = errors.New("user not found")

	ErrNotHostelOwner     = errors.New("user is not a hostel owner")
	ErrHostelLimitReached = errors.New("maximum number of hostels reached")
	ErrHostelNotFound     = errors.New("hostel not found")
)
