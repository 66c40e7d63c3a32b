package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"roomi/internal/entity"
	"roomi/internal/repository"
	"roomi/internal/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

type AccessTokenIssuer interface {
	IssueAccessToken(user entity.User) (string, time.Duration, error)
}

type JWTAccessIssuer struct {
	Manager *utils.JWTManager
}

func (j JWTAccessIssuer) IssueAccessToken(user entity.User) (string, time.Duration, error) {
	if j.Manager == nil {
		return "", 0, utils.ErrInvalidToken
	}
	return j.Manager.IssueAccessToken(user.ID.String(), string(user.UserType))
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Code     string
}

type LoginInput struct {
	Login     string // username or email
	Password  string
	IPAddress *string
}

type AuthResult struct {
	Token     string
	ExpiresIn int64
	User      *entity.User
}

type AuthService struct {
	users        repository.UserRepository
	audits       repository.AuditLogRepository
	verification *VerificationService
	passwordHash PasswordHasher
	accessTokens AccessTokenIssuer
	clock        Clock
}

func NewAuthService(
	users repository.UserRepository,
	audits repository.AuditLogRepository,
	verification *VerificationService,
	passwordHash PasswordHasher,
	accessTokens AccessTokenIssuer,
	clock Clock,
) *AuthService {
	return &AuthService{
		users:        users,
		audits:       audits,
		verification: verification,
		passwordHash: passwordHash,
		accessTokens: accessTokens,
		clock:        clock,
	}
}

// RequestRegistrationCode starts the sign-up flow by sending a 6-digit
// code to the address. Duplicate accounts are not checked here: two
// concurrent sign-ups for the same email may both receive codes, and
// only the later Register call loses.
func (s *AuthService) RequestRegistrationCode(ctx context.Context, email string) error {
	return s.verification.RequestCode(ctx, email, entity.PurposeRegistration)
}

func (s *AuthService) ResendRegistrationCode(ctx context.Context, email string) error {
	return s.verification.ResendCode(ctx, email, entity.PurposeRegistration)
}

// Register consumes the registration code and creates the account. The
// email/username duplicate check happens here, at consumption time.
func (s *AuthService) Register(ctx context.Context, input RegisterInput, ipAddress *string) (*AuthResult, error) {
	username := utils.NormalizeUsername(input.Username)
	email := utils.NormalizeEmail(input.Email)
	if username == "" || email == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrInvalidInput
	}

	if err := s.verification.VerifyCode(ctx, email, entity.PurposeRegistration, input.Code); err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByEmailOrUsername(ctx, email, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateAccount
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		UserType:     entity.UserTypeSimple,
		IsActive:     true,
		MaxHostels:   2,
		Preferences:  defaultPreferences(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.users.MarkVerified(ctx, email); err != nil {
		return nil, err
	}
	user.IsVerified = true

	token, ttl, err := s.accessTokens.IssueAccessToken(*user)
	if err != nil {
		return nil, err
	}

	_ = s.logAudit(ctx, &user.ID, ipAddress, entity.Registration, map[string]any{"username": username})
	return &AuthResult{Token: token, ExpiresIn: int64(ttl.Seconds()), User: user}, nil
}

// Login accepts a username or an email address.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	login := strings.TrimSpace(input.Login)
	if login == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.users.FindByEmail(ctx, utils.NormalizeEmail(login))
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = s.users.FindByUsername(ctx, utils.NormalizeUsername(login))
		if err != nil {
			return nil, err
		}
	}
	if user == nil {
		_ = s.passwordHash.Verify(dummyPasswordHash, input.Password)
		_ = s.logAudit(ctx, nil, input.IPAddress, entity.LoginFailed, map[string]any{"login": login})
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}
	if !s.passwordHash.Verify(user.PasswordHash, input.Password) {
		_ = s.logAudit(ctx, &user.ID, input.IPAddress, entity.LoginFailed, map[string]any{"login": login})
		return nil, ErrInvalidCredentials
	}

	if err := s.users.RecordLogin(ctx, user.ID, s.now()); err != nil {
		return nil, err
	}

	token, ttl, err := s.accessTokens.IssueAccessToken(*user)
	if err != nil {
		return nil, err
	}

	_ = s.logAudit(ctx, &user.ID, input.IPAddress, entity.LoginSuccess, nil)
	return &AuthResult{Token: token, ExpiresIn: int64(ttl.Seconds()), User: user}, nil
}

// VerifyPassword re-authenticates the current user before sensitive
// settings changes.
func (s *AuthService) VerifyPassword(ctx context.Context, userID uuid.UUID, password string) error {
	if password == "" {
		return ErrInvalidInput
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if !s.passwordHash.Verify(user.PasswordHash, password) {
		return ErrInvalidCredentials
	}
	return nil
}

func (s *AuthService) logAudit(
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

func (s *AuthService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}

func defaultPreferences() datatypes.JSON {
	bytes, _ := json.Marshal(map[string]bool{
		"notifications": true,
		"emailUpdates":  true,
	})
	return datatypes.JSON(bytes)
}
