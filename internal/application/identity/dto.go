package identity

import (
	"time"

	"github.com/ebilling/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoginInput contains the input for login. Role selects which identity
// table the credentials are checked against.
type LoginInput struct {
	Role     shared.Role
	Email    string
	Password string
}

// SubjectInfo contains basic information about the authenticated subject
type SubjectInfo struct {
	ID    uuid.UUID   `json:"id"`
	Role  shared.Role `json:"role"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string      `json:"access_token"`
	RefreshToken          string      `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time   `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time   `json:"refresh_token_expires_at"`
	TokenType             string      `json:"token_type"`
	Subject               SubjectInfo `json:"subject"`
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// LogoutInput carries the tokens to revoke on logout
type LogoutInput struct {
	AccessToken  string
	RefreshToken string
}

// RegisterAccountInput contains the input for registering a portal user
type RegisterAccountInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// AccountInfo contains account information returned to callers
type AccountInfo struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// OverviewBill is a bill summary nested in the admin account overview
type OverviewBill struct {
	ID      uuid.UUID       `json:"id"`
	Amount  decimal.Decimal `json:"amount"`
	DueDate time.Time       `json:"due_date"`
	Status  string          `json:"status"`
}

// OverviewConnection is a connection with its bills nested in the admin
// account overview
type OverviewConnection struct {
	ID         uuid.UUID       `json:"id"`
	MeterNo    string          `json:"meter_no"`
	TariffType string          `json:"tariff_type"`
	TariffRate decimal.Decimal `json:"tariff_rate"`
	Bills      []OverviewBill  `json:"bills"`
}

// AccountOverview is one row of the admin account listing: the account
// with its connections and their bills
type AccountOverview struct {
	AccountInfo
	Connections []OverviewConnection `json:"connections"`
}
