package handler

import (
	"time"

	"github.com/ebilling/backend/internal/application/identity"
)

// LoginRequest is the request body for login
type LoginRequest struct {
	Role     string `json:"role" binding:"required,oneof=user admin"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest is the request body for token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest is the request body for logout. The access token to
// revoke is taken from the Authorization header.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// LoginResponse is the response body for a successful login
type LoginResponse struct {
	Token   TokenResponse        `json:"token"`
	Subject identity.SubjectInfo `json:"subject"`
}

// RefreshTokenResponse is the response body for a token refresh
type RefreshTokenResponse struct {
	Token TokenResponse `json:"token"`
}
