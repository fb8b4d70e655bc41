package identity

import (
	"github.com/ebilling/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Admin represents an administrator of the billing portal.
type Admin struct {
	shared.BaseEntity
	Name         string
	Email        string
	PasswordHash string
}

// NewAdmin creates a new admin with a hashed password
func NewAdmin(name, email, password string) (*Admin, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	return &Admin{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}, nil
}

// VerifyPassword verifies if the provided password matches
func (a *Admin) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}
