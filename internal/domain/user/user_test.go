package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("SuccessfulCreation", func(t *testing.T) {
		profile := Profile{IdentityType: "KTP", IdentityNumber: "3201", Address: "Jl. Merdeka 1"}

		u, err := NewUser("  Ayu  ", "Ayu@Example.COM", "$2a$10$hash", profile)

		require.NoError(t, err)
		assert.Equal(t, "Ayu", u.Name)
		assert.Equal(t, "ayu@example.com", u.Email)
		assert.Equal(t, profile, u.Profile)
		assert.False(t, u.CreatedAt.IsZero())
	})

	t.Run("EmptyName", func(t *testing.T) {
		_, err := NewUser(" ", "a@b.co", "hash", Profile{})
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		for _, email := range []string{"", "not-an-email", "Ayu <ayu@example.com>"} {
			_, err := NewUser("Ayu", email, "hash", Profile{})
			assert.ErrorIs(t, err, ErrInvalidEmail, email)
		}
	})

	t.Run("EmptyHash", func(t *testing.T) {
		_, err := NewUser("Ayu", "ayu@example.com", "", Profile{})
		assert.ErrorIs(t, err, ErrEmptyHash)
	})
}

func TestErrUserNotFound(t *testing.T) {
	assert.Equal(t, "user not found: 3", ErrUserNotFound{UserID: 3}.Error())
	assert.Equal(t, "user not found: a@b.co", ErrUserNotFound{Email: "a@b.co"}.Error())
	assert.ErrorIs(t, ErrUserNotFound{UserID: 3}, ErrUserNotFound{})
}
