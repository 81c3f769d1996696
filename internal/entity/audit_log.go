package entity

import (
	"time"

	"gorm.io/datatypes"
)

type AuditAction string

const (
	Registered             AuditAction = "registered"
	LoginSuccess           AuditAction = "login_success"
	LoginFailed            AuditAction = "login_failed"
	PasswordResetRequested AuditAction = "password_reset_requested"
	PasswordReset          AuditAction = "password_reset"
	PasswordChanged        AuditAction = "password_changed"
	PromotedAdmin          AuditAction = "promoted_admin"
)

type AuditLog struct {
	ID uint `gorm:"primaryKey"`

	UserID *uint `gorm:"index"`
	User   *User `gorm:"constraint:OnDelete:SET NULL"`

	IPAddress *string     `gorm:"type:varchar(45)"`
	Action    AuditAction `gorm:"type:varchar(40);not null"`

	Metadata datatypes.JSON

	CreatedAt time.Time
}
