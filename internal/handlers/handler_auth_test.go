package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidtube/vidtube_backend/internal/apperrors"
	"github.com/vidtube/vidtube_backend/internal/core/domain"
	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
	"github.com/vidtube/vidtube_backend/internal/core/services"
	"github.com/vidtube/vidtube_backend/internal/dto"
	"github.com/vidtube/vidtube_backend/internal/handlers"
	"github.com/vidtube/vidtube_backend/internal/platform/config"
)

// stubAuthService scripts the session manager's outcomes so handler behavior
// (status codes, cookies, transport fallbacks) can be tested in isolation.
type stubAuthService struct {
	user        *domain.User
	pair        *portssvc.TokenPair
	loginErr    error
	refreshErr  error
	registerErr error
	changeErr   error

	lastRefreshToken string
}

func (s *stubAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return s.user, nil
}

func (s *stubAuthService) Login(ctx context.Context, identifier, password string) (*domain.User, *portssvc.TokenPair, error) {
	if s.loginErr != nil {
		return nil, nil, s.loginErr
	}
	return s.user, s.pair, nil
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (*portssvc.TokenPair, error) {
	s.lastRefreshToken = refreshToken
	if s.refreshErr != nil {
		return nil, s.refreshErr
	}
	return s.pair, nil
}

func (s *stubAuthService) Logout(ctx context.Context, userID string) error {
	return nil
}

func (s *stubAuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	return s.changeErr
}

type stubUserService struct {
	user *domain.User
}

func (s *stubUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if s.user == nil {
		return nil, apperrors.ErrNotFound
	}
	u := *s.user
	return &u, nil
}

func (s *stubUserService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error) {
	u := *s.user
	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	return &u, nil
}

func handlerTestConfig() *config.Config {
	return &config.Config{
		JWTIssuer:              "vidtube-test",
		AccessTokenSecret:      "access-secret-for-tests",
		AccessTokenExpiry:      15 * time.Minute,
		RefreshTokenSecret:     "refresh-secret-for-tests",
		RefreshTokenExpiry:     240 * time.Hour,
		AccessTokenCookieName:  "accessToken",
		RefreshTokenCookieName: "refreshToken",
		CookiePath:             "/",
		CookieSecure:           true,
	}
}

func handlerTestUser() *domain.User {
	return &domain.User{
		UserID:   "11111111-1111-1111-1111-111111111111",
		Username: "alice",
		Email:    "alice@x.com",
		FullName: "Alice Example",
		AuditFields: domain.AuditFields{
			CreatedAt: time.Now(),
		},
	}
}

func newTestRouter(cfg *config.Config, auth portssvc.AuthSvcFacade, user portssvc.UserSvcFacade) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handlers.RegisterCustomValidators()

	r := gin.New()
	r.Use(gin.Recovery())

	container := &portssvc.ServiceContainer{
		Auth:  auth,
		User:  user,
		Token: services.NewTokenService(cfg),
	}
	handlers.RegisterRoutes(r, cfg, container)
	return r
}

func freshPair(t *testing.T, cfg *config.Config, user *domain.User) *portssvc.TokenPair {
	t.Helper()
	tokenSvc := services.NewTokenService(cfg)
	access, accessExp, err := tokenSvc.IssueAccessToken(user)
	require.NoError(t, err)
	refresh, refreshExp, err := tokenSvc.IssueRefreshToken(user)
	require.NoError(t, err)
	return &portssvc.TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}
}

func cookieByName(res *http.Response, name string) *http.Cookie {
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLoginHandler_SetsCookiesAndBody(t *testing.T) {
	cfg := handlerTestConfig()
	user := handlerTestUser()
	pair := freshPair(t, cfg, user)
	r := newTestRouter(cfg, &stubAuthService{user: user, pair: pair}, &stubUserService{user: user})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"username":"alice","password":"secret1secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, pair.AccessToken, body.AccessToken)
	assert.Equal(t, pair.RefreshToken, body.RefreshToken)
	assert.Equal(t, user.Username, body.User.Username)

	res := w.Result()
	accessCookie := cookieByName(res, cfg.AccessTokenCookieName)
	require.NotNil(t, accessCookie)
	assert.Equal(t, pair.AccessToken, accessCookie.Value)
	assert.True(t, accessCookie.HttpOnly)
	assert.True(t, accessCookie.Secure)

	refreshCookie := cookieByName(res, cfg.RefreshTokenCookieName)
	require.NotNil(t, refreshCookie)
	assert.Equal(t, pair.RefreshToken, refreshCookie.Value)
	assert.True(t, refreshCookie.HttpOnly)
	assert.True(t, refreshCookie.Secure)
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	cfg := handlerTestConfig()
	user := handlerTestUser()

	// Unknown identifier and wrong password produce the same response.
	for _, loginErr := range []error{apperrors.ErrNotFound, apperrors.ErrInvalidCredentials} {
		r := newTestRouter(cfg, &stubAuthService{loginErr: loginErr}, &stubUserService{user: user})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
			strings.NewReader(`{"username":"alice","password":"wrongpass"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid username/email or password")
	}
}

func TestLoginHandler_RequiresIdentifier(t *testing.T) {
	cfg := handlerTestConfig()
	user := handlerTestUser()
	r := newTestRouter(cfg, &stubAuthService{user: user}, &stubUserService{user: user})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"password":"secret1secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshHandler_CookieTransport(t *testing.T) {
	cfg := handlerTestConfig()
	user := handlerTestUser()
	pair := freshPair(t, cfg, user)
	stub := &stubAuthService{user: user, pair: pair}
	r := newTestRouter(cfg, stub, &stubUserService{user: user})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: cfg.RefreshTokenCookieName, Value: "cookie-token"})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cookie-token", stub.lastRefreshToken)
}

func TestRefreshHandler_BodyFallback(t *testing.T) {
	cfg := handlerTestConfig()
	user := handlerTestUser()
	pair := freshPair(t, cfg, user)
	stub := &stubAuthService{user: user, pair: pair}
	r := newTestRouter(cfg, stub, &stubUserService{user: user})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh",
		strings.NewReader(`{"refreshToken":"body-token"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "body-token", stub.lastRefreshToken)
}

func TestRefreshHandler_MissingToken(t *testing.T) {
	cfg := handlerTestConfig()
	user := handlerTestUser()
	r := newTestRouter(cfg, &stubAuthService{user: user}, &stubUserService{user: user})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshHandler_StaleToken(t *testing.T) {
	cfg := handlerTestConfig()
	user := handlerTestUser()
	r := newTestRouter(cfg, &stubAuthService{refreshErr: apperrors.ErrRefreshTokenStale}, &stubUserService{user: user})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh",
		strings.NewReader(`{"refreshToken":"superseded"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "no longer valid")
}

func TestLogoutHandler_ClearsCookies(t *testing.T) {
	cfg := handlerTestConfig()
	user := handlerTestUser()
	pair := freshPair(t, cfg, user)
	r := newTestRouter(cfg, &stubAuthService{user: user, pair: pair}, &stubUserService{user: user})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	res := w.Result()
	for _, name := range []string{cfg.AccessTokenCookieName, cfg.RefreshTokenCookieName} {
		cleared := cookieByName(res, name)
		require.NotNil(t, cleared, "cookie %s should be cleared", name)
		assert.Empty(t, cleared.Value)
		assert.Less(t, cleared.MaxAge, 0)
	}
}

func TestLogoutHandler_RequiresAuth(t *testing.T) {
	cfg := handlerTestConfig()
	user := handlerTestUser()
	r := newTestRouter(cfg, &stubAuthService{user: user}, &stubUserService{user: user})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChangePasswordHandler_WrongOldPassword(t *testing.T) {
	cfg := handlerTestConfig()
	user := handlerTestUser()
	pair := freshPair(t, cfg, user)
	r := newTestRouter(cfg, &stubAuthService{user: user, pair: pair, changeErr: apperrors.ErrInvalidCredentials}, &stubUserService{user: user})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/change-password",
		strings.NewReader(`{"oldPassword":"wrongpass","newPassword":"newsecretnewsecret"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Old password is incorrect")
}

func TestRegisterHandler_Duplicate(t *testing.T) {
	cfg := handlerTestConfig()
	user := handlerTestUser()
	r := newTestRouter(cfg, &stubAuthService{registerErr: apperrors.ErrDuplicate}, &stubUserService{user: user})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
		strings.NewReader(`{"username":"alice","email":"alice@x.com","fullname":"Alice","password":"secret1secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterHandler_RejectsBadUsername(t *testing.T) {
	cfg := handlerTestConfig()
	user := handlerTestUser()
	r := newTestRouter(cfg, &stubAuthService{user: user}, &stubUserService{user: user})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
		strings.NewReader(`{"username":"not a name!","email":"alice@x.com","fullname":"Alice","password":"secret1secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCurrentUserHandler(t *testing.T) {
	cfg := handlerTestConfig()
	user := handlerTestUser()
	pair := freshPair(t, cfg, user)
	r := newTestRouter(cfg, &stubAuthService{user: user, pair: pair}, &stubUserService{user: user})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, user.UserID, body.UserID)
	assert.Equal(t, user.Username, body.Username)
}

func TestGetUserHandler_OwnerOnly(t *testing.T) {
	cfg := handlerTestConfig()
	user := handlerTestUser()
	pair := freshPair(t, cfg, user)
	r := newTestRouter(cfg, &stubAuthService{user: user, pair: pair}, &stubUserService{user: user})

	// Own record is readable.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+user.UserID, nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Someone else's record is not.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/users/22222222-2222-2222-2222-222222222222", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
