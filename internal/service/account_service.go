package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"crewbase/internal/entity"
	"crewbase/internal/repository"
	"crewbase/internal/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Compared against on unknown-email logins so both failure paths cost one
// bcrypt verification.
const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

const minPasswordLength = 8

type AccountService struct {
	users     repository.UserRepository
	auditLogs repository.AuditLogRepository

	emailSender  EmailSender
	passwordHash PasswordHasher
	accessTokens AccessTokenIssuer
	resetTokens  ResetTokenGenerator
	messages     Catalog
	clock        Clock
	config       AccountConfig
}

func NewAccountService(
	users repository.UserRepository,
	auditLogs repository.AuditLogRepository,
	emailSender EmailSender,
	passwordHash PasswordHasher,
	accessTokens AccessTokenIssuer,
	resetTokens ResetTokenGenerator,
	messages Catalog,
	clock Clock,
	config AccountConfig,
) *AccountService {
	return &AccountService{
		users:        users,
		auditLogs:    auditLogs,
		emailSender:  emailSender,
		passwordHash: passwordHash,
		accessTokens: accessTokens,
		resetTokens:  resetTokens,
		messages:     messages,
		clock:        clock,
		config:       config,
	}
}

// Register creates a new account. The existence check and the insert run in
// one transaction; the unique index on email is the backstop for races that
// slip past the check.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (string, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.LastName) == "" {
		return "", ErrInvalidInput
	}
	email := utils.NormalizeEmail(input.Email)
	if !utils.ValidEmail(email) {
		return "", ErrInvalidInput
	}
	if len(input.Password) < minPasswordLength {
		return "", ErrInvalidInput
	}
	if !utils.ValidBirthdate(input.Birthdate) {
		return "", ErrInvalidInput
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return "", err
	}

	user := &entity.User{
		Name:         strings.TrimSpace(input.Name),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        email,
		PasswordHash: hash,
		Birthdate:    input.Birthdate,
		Active:       true,
		Role:         entity.RoleUser,
	}

	err = s.users.Transaction(ctx, func(tx repository.UserRepository) error {
		existing, err := tx.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return withMessage(ErrEmailTaken, s.translate(MsgDuplicatedEmail))
		}
		return tx.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", withMessage(ErrEmailTaken, s.translate(MsgDuplicatedEmail))
		}
		if errors.Is(err, ErrEmailTaken) {
			return "", err
		}
		return "", withMessage(ErrRegistration, s.translate(MsgRegistrationTrx))
	}

	_ = s.logAudit(ctx, &user.ID, nil, entity.Registered, nil)
	return s.translate(MsgUserCreated), nil
}

// Login verifies credentials and issues a signed access token. Unknown email
// and wrong password are reported identically.
func (s *AccountService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := utils.NormalizeEmail(input.Email)
	if !utils.ValidEmail(email) || len(input.Password) < minPasswordLength {
		return nil, ErrInvalidInput
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = s.passwordHash.Verify(dummyPasswordHash, input.Password)
		_ = s.logAudit(ctx, nil, input.IPAddress, entity.LoginFailed, map[string]any{"email": email})
		return nil, ErrInvalidCredentials
	}

	if !s.passwordHash.Verify(user.PasswordHash, input.Password) {
		_ = s.logAudit(ctx, &user.ID, input.IPAddress, entity.LoginFailed, map[string]any{"email": email})
		return nil, ErrInvalidCredentials
	}

	token, ttl, err := s.accessTokens.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}

	_ = s.logAudit(ctx, &user.ID, input.IPAddress, entity.LoginSuccess, nil)
	return &LoginResult{
		AccessToken: token,
		ExpiresIn:   int64(ttl.Seconds()),
	}, nil
}

// RequestPasswordReset issues a single-use reset token valid for one hour and
// mails it to the account's address. The token is persisted before the mail
// goes out; a delivery failure surfaces as ErrEmailDelivery.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string, ipAddress *string) error {
	email = utils.NormalizeEmail(email)
	if !utils.ValidEmail(email) {
		return ErrInvalidInput
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	token, err := s.resetTokens.Generate()
	if err != nil {
		return err
	}

	expiresAt := s.now().Add(s.resetTokenTTL())
	user.ResetPasswordToken = &token
	user.ResetPasswordExpires = &expiresAt
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}

	if err := s.emailSender.SendPasswordResetEmail(ctx, user, token); err != nil {
		return ErrEmailDelivery
	}

	_ = s.logAudit(ctx, &user.ID, ipAddress, entity.PasswordResetRequested, nil)
	return nil
}

// ConsumePasswordReset redeems a reset token. Consumption always clears the
// token fields; an expired token leaves the password untouched.
func (s *AccountService) ConsumePasswordReset(ctx context.Context, token string, newPassword string) error {
	if strings.TrimSpace(token) == "" || len(newPassword) < minPasswordLength {
		return ErrInvalidInput
	}

	user, err := s.users.FindByResetToken(ctx, token)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if user.ResetPasswordExpires == nil || !s.now().Before(*user.ResetPasswordExpires) {
		return ErrResetTokenExpired
	}

	hash, err := s.passwordHash.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.ResetPasswordToken = nil
	user.ResetPasswordExpires = nil
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}

	_ = s.logAudit(ctx, &user.ID, nil, entity.PasswordReset, nil)
	return nil
}

func (s *AccountService) GetProfile(ctx context.Context, userID uint) (*Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return profileFromEntity(user), nil
}

// UpdateProfile applies the provided fields and keeps the rest. Each provided
// field passes the same validation as at registration.
func (s *AccountService) UpdateProfile(ctx context.Context, userID uint, input ProfileUpdateInput) (*Profile, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, ErrInvalidInput
	}
	if input.LastName != nil && strings.TrimSpace(*input.LastName) == "" {
		return nil, ErrInvalidInput
	}
	if input.Birthdate != nil && !utils.ValidBirthdate(*input.Birthdate) {
		return nil, ErrInvalidInput
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Birthdate != nil {
		user.Birthdate = *input.Birthdate
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return profileFromEntity(user), nil
}

func (s *AccountService) UpdatePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	if len(oldPassword) < minPasswordLength || len(newPassword) < minPasswordLength {
		return ErrInvalidInput
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if !s.passwordHash.Verify(user.PasswordHash, oldPassword) {
		return ErrWrongPassword
	}

	hash, err := s.passwordHash.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}

	_ = s.logAudit(ctx, &user.ID, nil, entity.PasswordChanged, nil)
	return nil
}

// ListWorkers returns admin and worker accounts. Plain users are denied.
func (s *AccountService) ListWorkers(ctx context.Context, requester Claims) ([]Profile, error) {
	if requester.Role != entity.RoleAdmin && requester.Role != entity.RoleWorker {
		return nil, ErrForbidden
	}

	users, err := s.users.FindByRoleIn(ctx, []entity.Role{entity.RoleAdmin, entity.RoleWorker})
	if err != nil {
		return nil, err
	}

	profiles := make([]Profile, 0, len(users))
	for i := range users {
		profiles = append(profiles, *profileFromEntity(&users[i]))
	}
	return profiles, nil
}

// PromoteToAdmin sets the target's role to admin. Admin-only; idempotent.
func (s *AccountService) PromoteToAdmin(ctx context.Context, requester Claims, targetID uint) (*Profile, error) {
	if requester.Role != entity.RoleAdmin {
		return nil, ErrForbidden
	}

	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if user.Role != entity.RoleAdmin {
		user.Role = entity.RoleAdmin
		if err := s.users.Save(ctx, user); err != nil {
			return nil, err
		}
		_ = s.logAudit(ctx, &user.ID, nil, entity.PromotedAdmin, map[string]any{"by": requester.UserID})
	}
	return profileFromEntity(user), nil
}

func (s *AccountService) logAudit(
	ctx context.Context,
	userID *uint,
	ipAddress *string,
	action entity.AuditAction,
	metadata map[string]any,
) error {
	if s.auditLogs == nil {
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

	log := &entity.AuditLog{
		UserID:    userID,
		IPAddress: ipAddress,
		Action:    action,
		Metadata:  payload,
	}
	return s.auditLogs.Log(ctx, log)
}

func (s *AccountService) translate(key string) string {
	if s.messages == nil {
		return key
	}
	return s.messages.Translate(key)
}

func (s *AccountService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}

func (s *AccountService) resetTokenTTL() time.Duration {
	if s.config.ResetTokenTTL > 0 {
		return s.config.ResetTokenTTL
	}
	return time.Hour
}
