package user

import (
	"context"
	"strconv"
)

// Repository defines user persistence operations
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, limit, offset int) ([]*User, error)
	Count(ctx context.Context) (int64, error)
}

// ErrUserNotFound indicates a missing user
type ErrUserNotFound struct {
	UserID int64
	Email  string
}

func (e ErrUserNotFound) Error() string {
	if e.Email != "" {
		return "user not found: " + e.Email
	}
	return "user not found: " + strconv.FormatInt(e.UserID, 10)
}

// Is matches any ErrUserNotFound.
func (e ErrUserNotFound) Is(target error) bool {
	_, ok := target.(ErrUserNotFound)
	return ok
}

// ErrDuplicateEmail indicates an email uniqueness violation
type ErrDuplicateEmail struct {
	Email string
}

func (e ErrDuplicateEmail) Error() string {
	return "user with email already exists: " + e.Email
}
