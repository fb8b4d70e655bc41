package identity

import (
	"context"
	"strings"
	"time"

	"github.com/ebilling/backend/internal/domain/identity"
	"github.com/ebilling/backend/internal/domain/shared"
	"github.com/ebilling/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService handles authentication for both identity spaces. The
// login role decides which table credentials are checked against;
// nothing ever falls through from one table to the other.
type AuthService struct {
	accountRepo identity.AccountRepository
	adminRepo   identity.AdminRepository
	jwtService  *auth.JWTService
	blacklist   auth.TokenBlacklist
	logger      *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	accountRepo identity.AccountRepository,
	adminRepo identity.AdminRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		adminRepo:   adminRepo,
		jwtService:  jwtService,
		blacklist:   blacklist,
		logger:      logger,
	}
}

var errInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")

// Login authenticates a subject against the table its role selects and
// returns a token pair. A wrong role, unknown email and wrong password
// all produce the same error so callers cannot probe which part failed.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if !input.Role.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Role must be user or admin")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	subject, err := s.findSubject(ctx, input.Role, email)
	if err != nil {
		s.logger.Warn("Login failed: subject not found",
			zap.String("role", string(input.Role)), zap.String("email", email))
		return nil, errInvalidCredentials
	}

	if !subject.verify(input.Password) {
		s.logger.Warn("Login failed: wrong password",
			zap.String("role", string(input.Role)), zap.String("email", email))
		return nil, errInvalidCredentials
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		SubjectID: subject.id,
		Role:      input.Role,
		Name:      subject.name,
		Email:     subject.email,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("Login succeeded",
		zap.String("role", string(input.Role)),
		zap.String("subject_id", subject.id.String()))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		Subject: SubjectInfo{
			ID:    subject.id,
			Role:  input.Role,
			Name:  subject.name,
			Email: subject.email,
		},
	}, nil
}

// RefreshToken issues a fresh token pair from a valid, unrevoked
// refresh token, verifying the subject still exists.
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Error("Blacklist lookup failed", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to verify token")
		}
		if revoked {
			return nil, shared.NewDomainError("TOKEN_INVALID", "Refresh token has been revoked")
		}
	}

	principal, err := claims.Principal()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid subject in token")
	}

	// Re-read the subject so a deleted account cannot keep refreshing.
	subject, err := s.findSubjectByID(ctx, principal)
	if err != nil {
		s.logger.Warn("Refresh for missing subject", zap.String("subject_id", principal.ID.String()))
		return nil, shared.ErrUnauthorized
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		SubjectID: subject.id,
		Role:      principal.Role,
		Name:      subject.name,
		Email:     subject.email,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair on refresh", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Logout revokes the presented tokens by blacklisting their JTIs until
// they would have expired. Tokens that no longer validate are ignored;
// they cannot be used anyway.
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if s.blacklist == nil {
		return nil
	}

	if claims, err := s.jwtService.ValidateAccessToken(input.AccessToken); err == nil {
		s.revoke(ctx, claims.ID, claims.ExpiresAt.Time)
	}
	if claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken); err == nil {
		s.revoke(ctx, claims.ID, claims.ExpiresAt.Time)
	}
	return nil
}

func (s *AuthService) revoke(ctx context.Context, jti string, expiresAt time.Time) {
	if err := s.blacklist.AddToBlacklist(ctx, jti, time.Until(expiresAt)); err != nil {
		s.logger.Error("Failed to blacklist token", zap.String("jti", jti), zap.Error(err))
	}
}

// loginSubject is the common shape of the two identity tables.
type loginSubject struct {
	id     uuid.UUID
	name   string
	email  string
	verify func(password string) bool
}

func (s *AuthService) findSubject(ctx context.Context, role shared.Role, email string) (*loginSubject, error) {
	if role == shared.RoleAdmin {
		admin, err := s.adminRepo.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return &loginSubject{
			id:     admin.ID,
			name:   admin.Name,
			email:  admin.Email,
			verify: admin.VerifyPassword,
		}, nil
	}

	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &loginSubject{
		id:     account.ID,
		name:   account.Name,
		email:  account.Email,
		verify: account.VerifyPassword,
	}, nil
}

func (s *AuthService) findSubjectByID(ctx context.Context, principal shared.Principal) (*loginSubject, error) {
	if principal.IsAdmin() {
		admin, err := s.adminRepo.FindByID(ctx, principal.ID)
		if err != nil {
			return nil, err
		}
		return &loginSubject{
			id:     admin.ID,
			name:   admin.Name,
			email:  admin.Email,
			verify: admin.VerifyPassword,
		}, nil
	}

	account, err := s.accountRepo.FindByID(ctx, principal.ID)
	if err != nil {
		return nil, err
	}
	return &loginSubject{
		id:     account.ID,
		name:   account.Name,
		email:  account.Email,
		verify: account.VerifyPassword,
	}, nil
}

func mapTokenError(err error) error {
	switch err {
	case auth.ErrExpiredToken:
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case auth.ErrInvalidToken, auth.ErrInvalidTokenType, auth.ErrInvalidClaims:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	default:
		return shared.NewDomainError("TOKEN_ERROR", "Failed to validate refresh token")
	}
}
