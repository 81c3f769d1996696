package service

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrResetTokenExpired  = errors.New("reset token expired")
	ErrWrongPassword      = errors.New("old password incorrect")
	ErrForbidden          = errors.New("forbidden")
	ErrEmailDelivery      = errors.New("could not deliver email")
	ErrRegistration       = errors.New("registration failed")
)

// messageError keeps errors.Is matching on a sentinel while presenting a
// catalog-supplied message to the caller.
type messageError struct {
	err error
	msg string
}

func (e *messageError) Error() string { return e.msg }

func (e *messageError) Unwrap() error { return e.err }

func withMessage(sentinel error, msg string) error {
	if msg == "" {
		return sentinel
	}
	return &messageError{err: sentinel, msg: msg}
}
