package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crewbase/internal/entity"

	"github.com/resendlabs/resend-go"
)

// ResendEmailSender delivers password-reset mail through the Resend API. It
// is constructed once at startup and injected; there is no package-level
// transport state.
type ResendEmailSender struct {
	client *resend.Client
	from   string
}

func NewResendEmailSender(apiKey string, from string) *ResendEmailSender {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(from) == "" {
		return &ResendEmailSender{}
	}
	return &ResendEmailSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (s *ResendEmailSender) SendPasswordResetEmail(ctx context.Context, user *entity.User, token string) error {
	if s.client == nil {
		return errors.New("email sender not configured")
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{user.Email},
		Subject: "Password recovery",
		Html: fmt.Sprintf(
			"<h1>Hey %s,</h1><h2>Use the following code to reset your password</h2><p>%s</p><i>If you did not request this code, you can ignore it.</i>",
			user.Email, token,
		),
		Text: fmt.Sprintf("Use the following code to reset your password: %s", token),
	}
	if _, err := s.client.Emails.Send(params); err != nil {
		return err
	}
	return nil
}
