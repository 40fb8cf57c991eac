package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrFirebaseUIDTaken = errors.New("firebase uid already linked to another user")
)

// User is the identity resolved by the authentication collaborator.
// It is read-only from the API's point of view.
type User struct {
	ID          int64     `json:"id" db:"id"`
	Username    string    `json:"username" db:"username"`
	Email       string    `json:"email" db:"email"`
	FirebaseUID *string   `json:"-" db:"firebase_uid"`
	CreatedAt   time.Time `json:"-" db:"created_at"`
}

// String is the user's display name.
func (u User) String() string {
	return u.Username
}
