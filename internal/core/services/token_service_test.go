package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidtube/vidtube_backend/internal/apperrors"
	"github.com/vidtube/vidtube_backend/internal/core/domain"
	"github.com/vidtube/vidtube_backend/internal/core/services"
	"github.com/vidtube/vidtube_backend/internal/platform/config"
)

func tokenTestConfig() *config.Config {
	return &config.Config{
		JWTIssuer:          "vidtube-test",
		AccessTokenSecret:  "access-secret-for-tests",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenSecret: "refresh-secret-for-tests",
		RefreshTokenExpiry: 240 * time.Hour,
	}
}

func testUser() *domain.User {
	return &domain.User{
		UserID:   "11111111-1111-1111-1111-111111111111",
		Username: "alice",
		Email:    "alice@x.com",
		FullName: "Alice Example",
	}
}

func TestTokenService_AccessTokenRoundTrip(t *testing.T) {
	svc := services.NewTokenService(tokenTestConfig())
	user := testUser()

	token, expiresAt, err := svc.IssueAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, claims.Subject)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Username, claims.Username)
	assert.Equal(t, user.FullName, claims.FullName)
}

func TestTokenService_RefreshTokenRoundTrip(t *testing.T) {
	svc := services.NewTokenService(tokenTestConfig())
	user := testUser()

	token, expiresAt, err := svc.IssueRefreshToken(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(240*time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, claims.Subject)
}

func TestTokenService_KindsAreNotInterchangeable(t *testing.T) {
	svc := services.NewTokenService(tokenTestConfig())
	user := testUser()

	accessToken, _, err := svc.IssueAccessToken(user)
	require.NoError(t, err)
	refreshToken, _, err := svc.IssueRefreshToken(user)
	require.NoError(t, err)

	// A token of one kind never verifies as the other, regardless of expiry.
	_, err = svc.VerifyRefreshToken(accessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	_, err = svc.VerifyAccessToken(refreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestTokenService_ExpiredToken(t *testing.T) {
	cfg := tokenTestConfig()
	issuedAt := time.Now()

	issuer := services.NewTokenService(cfg, services.WithClock(func() time.Time { return issuedAt }))
	token, _, err := issuer.IssueAccessToken(testUser())
	require.NoError(t, err)

	// Clock skip, no sleeping: a verifier whose clock sits past the expiry.
	verifier := services.NewTokenService(cfg, services.WithClock(func() time.Time {
		return issuedAt.Add(cfg.AccessTokenExpiry + time.Minute)
	}))
	_, err = verifier.VerifyAccessToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)

	// Just before expiry it still verifies.
	lateVerifier := services.NewTokenService(cfg, services.WithClock(func() time.Time {
		return issuedAt.Add(cfg.AccessTokenExpiry - time.Minute)
	}))
	_, err = lateVerifier.VerifyAccessToken(token)
	assert.NoError(t, err)
}

func TestTokenService_MalformedToken(t *testing.T) {
	svc := services.NewTokenService(tokenTestConfig())

	for _, garbage := range []string{"", "not-a-jwt", "aaaa.bbbb.cccc"} {
		_, err := svc.VerifyAccessToken(garbage)
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid, "input %q", garbage)
	}
}

func TestTokenService_TamperedToken(t *testing.T) {
	svc := services.NewTokenService(tokenTestConfig())

	token, _, err := svc.IssueAccessToken(testUser())
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = svc.VerifyAccessToken(tampered)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestTokenService_WrongSecretRejected(t *testing.T) {
	svc := services.NewTokenService(tokenTestConfig())

	otherCfg := tokenTestConfig()
	otherCfg.AccessTokenSecret = "some-other-secret"
	other := services.NewTokenService(otherCfg)

	token, _, err := other.IssueAccessToken(testUser())
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}
