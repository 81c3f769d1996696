package utils

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"strings"
	"time"
)

// Reset tokens are 20 random bytes rendered as 40 hex characters. No
// uniqueness check is made against the store, so the 160 bits of entropy
// alone carry the collision guarantee.
const resetTokenBytes = 20

func GenerateResetToken() (string, error) {
	buffer := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buffer); err != nil {
		return "", err
	}
	return hex.EncodeToString(buffer), nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

const birthdateLayout = "02/01/2006"

var birthdatePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// ValidBirthdate checks the dd/mm/yyyy shape and that the value is a real
// calendar date.
func ValidBirthdate(birthdate string) bool {
	if !birthdatePattern.MatchString(birthdate) {
		return false
	}
	_, err := time.Parse(birthdateLayout, birthdate)
	return err == nil
}
