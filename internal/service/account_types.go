package service

import (
	"context"
	"time"

	"crewbase/internal/entity"
	"crewbase/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

type AccountConfig struct {
	AccessTokenTTL time.Duration
	ResetTokenTTL  time.Duration
}

type EmailSender interface {
	SendPasswordResetEmail(ctx context.Context, user *entity.User, token string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

type AccessTokenIssuer interface {
	IssueAccessToken(user *entity.User) (string, time.Duration, error)
}

type ResetTokenGenerator interface {
	Generate() (string, error)
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

type BcryptPasswordHasher struct {
	Cost int
}

func (h BcryptPasswordHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (h BcryptPasswordHasher) Verify(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

type HexResetTokenGenerator struct{}

func (HexResetTokenGenerator) Generate() (string, error) {
	return utils.GenerateResetToken()
}
