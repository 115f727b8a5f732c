package auth

import "errors"

// User represents a registered account in the monitoring platform.
//
// Role is free text (e.g. "citizen", "institute-admin"); the platform only
// distinguishes authenticated from anonymous callers, so no enumeration is
// enforced. The password hash is never serialised.
type User struct {
	ID           int64        `json:"userID"`
	FirstName    string       `json:"firstName"`
	FLastName    string       `json:"fLastName"`
	SLastName    string       `json:"sLastName,omitempty"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	Role         string       `json:"role"`
	PasswordHash PasswordHash `json:"-"`
}

// Sentinel errors for auth operations.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTokenExpired        = errors.New("token has expired")
	ErrTokenMalformed      = errors.New("invalid token")
	ErrTokenMissingSubject = errors.New("token has no subject")
)
