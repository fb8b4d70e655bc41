package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	t.Run("creates account with hashed password", func(t *testing.T) {
		account, err := NewAccount("Ravi Kumar", "Ravi@Example.com", "9876543210", "secret123")
		require.NoError(t, err)

		assert.Equal(t, "ravi@example.com", account.Email)
		assert.NotEqual(t, "secret123", account.PasswordHash)
		assert.True(t, account.VerifyPassword("secret123"))
		assert.False(t, account.VerifyPassword("wrong"))
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewAccount("", "a@b.com", "", "secret123")
		assert.Error(t, err)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := NewAccount("Ravi", "not-an-email", "", "secret123")
		assert.Error(t, err)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewAccount("Ravi", "a@b.com", "", "123")
		assert.Error(t, err)
	})
}

func TestAccount_ChangePassword(t *testing.T) {
	account, err := NewAccount("Ravi", "ravi@example.com", "", "secret123")
	require.NoError(t, err)

	t.Run("requires correct current password", func(t *testing.T) {
		err := account.ChangePassword("wrong", "newsecret")
		assert.Error(t, err)
		assert.True(t, account.VerifyPassword("secret123"))
	})

	t.Run("replaces password", func(t *testing.T) {
		err := account.ChangePassword("secret123", "newsecret")
		require.NoError(t, err)
		assert.True(t, account.VerifyPassword("newsecret"))
		assert.False(t, account.VerifyPassword("secret123"))
	})
}

func TestNewAdmin(t *testing.T) {
	t.Run("creates admin with hashed password", func(t *testing.T) {
		admin, err := NewAdmin("Admin User", "admin@ebill.com", "admin123")
		require.NoError(t, err)
		assert.True(t, admin.VerifyPassword("admin123"))
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := NewAdmin("Admin", "admin@", "admin123")
		assert.Error(t, err)
	})
}
