package entity

import (
	"time"
)

type Role int

const (
	RoleAdmin  Role = 1
	RoleWorker Role = 2
	RoleUser   Role = 3
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleWorker || r == RoleUser
}

type User struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"type:varchar(100);not null"`
	LastName string `gorm:"type:varchar(100);not null"`
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null"`

	PasswordHash string `gorm:"type:text;not null"`

	// dd/mm/yyyy, validated before it ever reaches the store
	Birthdate string `gorm:"type:varchar(10);not null"`

	Active bool `gorm:"default:true"`
	Role   Role `gorm:"default:3;not null"`

	ResetPasswordToken   *string `gorm:"type:varchar(64);index"`
	ResetPasswordExpires *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
