// Package user holds account owners and their login credentials.
package user

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

var (
	ErrEmptyName    = errors.New("name cannot be empty")
	ErrInvalidEmail = errors.New("email address is invalid")
	ErrEmptyHash    = errors.New("password hash cannot be empty")
)

// Profile carries the identity document of a user.
type Profile struct {
	IdentityType   string `json:"identity_type"`
	IdentityNumber string `json:"identity_number"`
	Address        string `json:"address"`
}

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Profile      Profile   `json:"profile"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser builds an unsaved user. The email is normalized to lower case.
func NewUser(name, email, passwordHash string, profile Profile) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, ErrEmptyHash
	}

	now := time.Now().UTC()
	return &User{
		Name:         name,
		Email:        normalized,
		PasswordHash: passwordHash,
		Profile:      profile,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// NormalizeEmail validates a bare address and lower-cases it.
func NormalizeEmail(email string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || addr.Name != "" {
		return "", ErrInvalidEmail
	}
	return strings.ToLower(addr.Address), nil
}
