package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vidtube/vidtube_backend/internal/apperrors"
	"github.com/vidtube/vidtube_backend/internal/core/domain"
	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
	"github.com/vidtube/vidtube_backend/internal/platform/config"
)

// tokenService implements TokenSvcFacade over HMAC-signed JWTs.
// Access and refresh tokens use distinct secrets and expiries from config, so
// verification of one kind always rejects a token of the other kind.
type tokenService struct {
	cfg *config.Config
	now func() time.Time
}

// TokenServiceOption configures a tokenService.
type TokenServiceOption func(*tokenService)

// WithClock overrides the time source, used by tests to skip past expiries
// without sleeping.
func WithClock(now func() time.Time) TokenServiceOption {
	return func(s *tokenService) {
		s.now = now
	}
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, opts ...TokenServiceOption) portssvc.TokenSvcFacade {
	s := &tokenService{
		cfg: cfg,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IssueAccessToken creates a short-lived access token carrying the public
// profile claims alongside the user ID.
func (s *tokenService) IssueAccessToken(user *domain.User) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.AccessTokenExpiry)
	claims := portssvc.AccessTokenClaims{
		Email:    user.Email,
		Username: user.Username,
		FullName: user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.cfg.JWTIssuer,
			Subject:   user.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.AccessTokenSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// IssueRefreshToken creates a long-lived refresh token carrying only the
// user ID.
func (s *tokenService) IssueRefreshToken(user *domain.User) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.RefreshTokenExpiry)
	// The jti makes every issued token unique even inside the same second,
	// which rotation depends on: old and new refresh tokens must never be
	// byte-equal.
	claims := portssvc.RefreshTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.cfg.JWTIssuer,
			Subject:   user.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.RefreshTokenSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// VerifyAccessToken validates signature and expiry of an access token.
func (s *tokenService) VerifyAccessToken(tokenString string) (*portssvc.AccessTokenClaims, error) {
	claims := &portssvc.AccessTokenClaims{}
	if err := s.parse(tokenString, claims, s.cfg.AccessTokenSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyRefreshToken validates signature and expiry of a refresh token.
func (s *tokenService) VerifyRefreshToken(tokenString string) (*portssvc.RefreshTokenClaims, error) {
	claims := &portssvc.RefreshTokenClaims{}
	if err := s.parse(tokenString, claims, s.cfg.RefreshTokenSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *tokenService) parse(tokenString string, claims jwt.Claims, secret string) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithTimeFunc(s.now), jwt.WithIssuer(s.cfg.JWTIssuer))

	if err != nil {
		// Expiry is the one failure callers treat differently: it means
		// "re-authenticate", while everything else means "reject".
		if errors.Is(err, jwt.ErrTokenExpired) {
			return apperrors.ErrTokenExpired
		}
		return apperrors.ErrTokenInvalid
	}
	if !token.Valid {
		return apperrors.ErrTokenInvalid
	}
	return nil
}
