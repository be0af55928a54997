package model

import (
	"fmt"
	"time"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

// User is an authenticated account. Its ID doubles as the OwnerID that
// scopes every item and list entry the user creates.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Owner returns the identity that scopes the user's collections.
func (u *User) Owner() OwnerID {
	return OwnerID(u.ID)
}

// ValidatePassword checks password length requirements.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}
