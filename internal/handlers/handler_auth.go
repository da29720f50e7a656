package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/vidtube/vidtube_backend/internal/apperrors"
	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
	"github.com/vidtube/vidtube_backend/internal/dto"
	"github.com/vidtube/vidtube_backend/internal/middleware"
	"github.com/vidtube/vidtube_backend/internal/platform/config"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// authHandler handles authentication related requests.
type authHandler struct {
	cfg         *config.Config
	authService portssvc.AuthSvcFacade
}

// newAuthHandler creates a new authHandler.
func newAuthHandler(cfg *config.Config, as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{
		cfg:         cfg,
		authService: as,
	}
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(cfg, services.Auth)

	// Credential-bearing endpoints get IP rate limiting: 10 requests per minute.
	rate, _ := limiter.NewRateFromFormatted("10-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limitMiddleware := middleware.RateLimit(ipLimiter)

	authGuard := middleware.AuthMiddleware(cfg, services.Token, services.User)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", limitMiddleware, h.Login)
		auth.POST("/refresh", limitMiddleware, h.Refresh)
		auth.POST("/logout", authGuard, h.Logout)
		auth.POST("/change-password", authGuard, h.ChangePassword)
	}
}

// Register godoc
// @Summary Register new user
// @Description Creates a new user account.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username or email already taken"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) Register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Username or email already taken"})
			return
		}
		logger.Error("Failed to register user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// Login godoc
// @Summary User login
// @Description Authenticates by username or email, sets token cookies and returns the token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	identifier, err := req.Identifier()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Username or email required"})
		return
	}

	user, pair, err := h.authService.Login(c.Request.Context(), identifier, req.Password)
	if err != nil {
		// Unknown identifier and wrong password are indistinguishable to the
		// client, so accounts cannot be enumerated.
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username/email or password"})
			return
		}
		logger.Error("Login failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to log in"})
		return
	}

	h.setAuthCookies(c, pair)
	c.JSON(http.StatusOK, dto.LoginResponse{
		User:         dto.ToUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Refresh godoc
// @Summary Rotate tokens
// @Description Exchanges a valid refresh token (cookie or body) for a new token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshRequest false "Refresh token (fallback when no cookie is present)"
// @Success 200 {object} dto.RefreshResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *authHandler) Refresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	refreshToken, ok := h.extractRefreshToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token required"})
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrTokenExpired):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token has expired, please log in again"})
		case errors.Is(err, apperrors.ErrRefreshTokenStale):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token is no longer valid, please log in again"})
		case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid refresh token"})
		default:
			logger.Error("Token refresh failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to refresh tokens"})
		}
		return
	}

	h.setAuthCookies(c, pair)
	c.JSON(http.StatusOK, dto.RefreshResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Logout godoc
// @Summary User logout
// @Description Clears the stored refresh token and both token cookies.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *authHandler) Logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		logger.Error("Logout failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to log out"})
		return
	}

	h.clearAuthCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// ChangePassword godoc
// @Summary Change password
// @Description Verifies the old password and stores a new hash. Existing sessions stay valid.
// @Tags auth
// @Accept json
// @Produce json
// @Param change body dto.ChangePasswordRequest true "Old and new password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/change-password [post]
func (h *authHandler) ChangePassword(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Old password is incorrect"})
			return
		}
		logger.Error("Password change failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to change password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}

// extractRefreshToken pulls the refresh token from the request: cookie first,
// then the body field as fallback transport.
func (h *authHandler) extractRefreshToken(c *gin.Context) (string, bool) {
	if cookie, err := c.Cookie(h.cfg.RefreshTokenCookieName); err == nil && cookie != "" {
		return cookie, true
	}
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.RefreshToken != "" {
		return req.RefreshToken, true
	}
	return "", false
}

func (h *authHandler) setAuthCookies(c *gin.Context, pair *portssvc.TokenPair) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		h.cfg.AccessTokenCookieName,
		pair.AccessToken,
		int(time.Until(pair.AccessExpiresAt).Seconds()),
		h.cfg.CookiePath,
		h.cfg.CookieDomain,
		h.cfg.CookieSecure,
		true, // httpOnly
	)
	c.SetCookie(
		h.cfg.RefreshTokenCookieName,
		pair.RefreshToken,
		int(time.Until(pair.RefreshExpiresAt).Seconds()),
		h.cfg.CookiePath,
		h.cfg.CookieDomain,
		h.cfg.CookieSecure,
		true, // httpOnly
	)
}

func (h *authHandler) clearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.AccessTokenCookieName, "", -1, h.cfg.CookiePath, h.cfg.CookieDomain, h.cfg.CookieSecure, true)
	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, h.cfg.CookiePath, h.cfg.CookieDomain, h.cfg.CookieSecure, true)
}
