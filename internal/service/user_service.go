package service

import (
	"context"
	"encoding/json"

	"roomi/internal/entity"
	"roomi/internal/repository"
	"roomi/internal/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UpdateProfileInput struct {
	Username string
	FullName string
	Age      *int
	Gender   string
	Phone    string
}

type OwnerUpgradeInput struct {
	Code     string
	FullName string
	Age      int
	Gender   string
	Phone    string
}

type UserService struct {
	users        repository.UserRepository
	audits       repository.AuditLogRepository
	verification *VerificationService
	passwordHash PasswordHasher
}

func NewUserService(
	users repository.UserRepository,
	audits repository.AuditLogRepository,
	verification *VerificationService,
	passwordHash PasswordHasher,
) *UserService {
	return &UserService{
		users:        users,
		audits:       audits,
		verification: verification,
		passwordHash: passwordHash,
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile applies the provided fields; empty strings and nil age
// leave the stored value unchanged. Hostel owners must end up with a
// complete profile (name, age, gender, phone).
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.Username != "" {
		username := utils.NormalizeUsername(input.Username)
		if username != user.Username {
			existing, err := s.users.FindByUsername(ctx, username)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, ErrUsernameTaken
			}
			user.Username = username
		}
	}

	if input.FullName != "" {
		if err := validateFullName(input.FullName); err != nil {
			return nil, err
		}
		user.FullName = input.FullName
	}
	if input.Age != nil {
		user.Age = input.Age
	}
	if input.Gender != "" {
		user.Gender = input.Gender
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}

	if user.UserType == entity.UserTypeHostelOwner {
		if user.FullName == "" || user.Age == nil || user.Gender == "" || user.Phone == "" {
			return nil, ErrInvalidInput
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// RequestEmailChange sends a 4-digit code to the new address. The
// caller must re-authenticate with their current password, and the new
// address must not belong to an existing account; both are checked
// here, at request time.
func (s *UserService) RequestEmailChange(ctx context.Context, userID uuid.UUID, newEmail, currentPassword string) error {
	newEmail = utils.NormalizeEmail(newEmail)
	if newEmail == "" || currentPassword == "" {
		return ErrInvalidInput
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if !s.passwordHash.Verify(user.PasswordHash, currentPassword) {
		return ErrInvalidCredentials
	}

	existing, err := s.users.FindByEmail(ctx, newEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateAccount
	}

	return s.verification.RequestCode(ctx, newEmail, entity.PurposeEmailUpdate)
}

// ConfirmEmailChange consumes the code sent to the new address and
// overwrites the account email. Uniqueness is re-checked because
// another account may have claimed the address since the request.
func (s *UserService) ConfirmEmailChange(ctx context.Context, userID uuid.UUID, newEmail, code string, ipAddress *string) (*entity.User, error) {
	newEmail = utils.NormalizeEmail(newEmail)
	if newEmail == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := s.verification.VerifyCode(ctx, newEmail, entity.PurposeEmailUpdate, code); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, newEmail)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateAccount
	}

	oldEmail := user.Email
	if err := s.users.SetEmail(ctx, userID, newEmail); err != nil {
		return nil, err
	}
	user.Email = newEmail

	_ = s.logAudit(ctx, &user.ID, ipAddress, entity.EmailChanged, map[string]any{
		"old_email": oldEmail,
		"new_email": newEmail,
	})
	return user, nil
}

// RequestOwnerUpgrade sends a 6-digit code to the authenticated user's
// own email, reusing the registration code shape.
func (s *UserService) RequestOwnerUpgrade(ctx context.Context, userID uuid.UUID) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.UserType == entity.UserTypeHostelOwner {
		return ErrInvalidInput
	}
	return s.verification.RequestCode(ctx, user.Email, entity.PurposeRegistration)
}

// ConfirmOwnerUpgrade consumes the upgrade code and marks the account
// as a hostel owner with the submitted profile.
func (s *UserService) ConfirmOwnerUpgrade(ctx context.Context, userID uuid.UUID, input OwnerUpgradeInput, ipAddress *string) (*entity.User, error) {
	if err := validateFullName(input.FullName); err != nil {
		return nil, err
	}
	if input.Age < 18 || input.Age > 100 {
		return nil, ErrInvalidInput
	}
	if input.Gender == "" || len(input.Phone) < 10 {
		return nil, ErrInvalidInput
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	// Checked here as well as at request time: a registration code for
	// the user's own address can be obtained without going through
	// RequestOwnerUpgrade.
	if user.UserType == entity.UserTypeHostelOwner {
		return nil, ErrInvalidInput
	}

	if err := s.verification.VerifyCode(ctx, user.Email, entity.PurposeRegistration, input.Code); err != nil {
		return nil, err
	}

	profile := repository.OwnerProfile{
		FullName: input.FullName,
		Age:      input.Age,
		Gender:   input.Gender,
		Phone:    input.Phone,
	}
	if err := s.users.UpgradeToOwner(ctx, userID, profile); err != nil {
		return nil, err
	}

	user.UserType = entity.UserTypeHostelOwner
	user.FullName = input.FullName
	user.Age = &input.Age
	user.Gender = input.Gender
	user.Phone = input.Phone

	_ = s.logAudit(ctx, &user.ID, ipAddress, entity.OwnerUpgraded, nil)
	return user, nil
}

func (s *UserService) Deactivate(ctx context.Context, userID uuid.UUID, ipAddress *string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if err := s.users.Deactivate(ctx, userID); err != nil {
		return err
	}
	_ = s.logAudit(ctx, &userID, ipAddress, entity.AccountDeactivation, nil)
	return nil
}

func (s *UserService) logAudit(
	ctx context.Context,
	userID *uuid.UUID,
	ipAddress *string,
	action entity.AuditAction,
	metadata map[string]any,
) error {
	if s.audits == nil {
		return nil
	}
	var payload datatypes.JSON
	if metadata != nil {
		bytes, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		payload = datatypes.JSON(bytes)
	}
	return s.audits.Log(ctx, &entity.AuditLog{
		UserID:    userID,
		IPAddress: ipAddress,
		Action:    action,
		Metadata:  payload,
	})
}
