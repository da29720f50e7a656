package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vidtube/vidtube_backend/internal/apperrors"
	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
	"github.com/vidtube/vidtube_backend/internal/platform/config"
)

// AuthMiddleware creates a Gin middleware that authenticates requests with an
// access token, taken from the accessToken cookie or, failing that, from a
// bearer Authorization header. On success the identity is re-loaded from the
// store (claims alone are not trusted for authorization-sensitive reads),
// scrubbed and attached to the request context. Every failure is a 401.
func AuthMiddleware(cfg *config.Config, tokenSvc portssvc.TokenSvcFacade, userSvc portssvc.UserSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		tokenString, ok := extractAccessToken(c, cfg.AccessTokenCookieName)
		if !ok {
			logger.Warn("No access token on request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		claims, err := tokenSvc.VerifyAccessToken(tokenString)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, apperrors.ErrTokenExpired) {
				msg = "Token has expired"
			}
			logger.Warn("Access token verification failed", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		user, err := userSvc.GetUserByID(c.Request.Context(), claims.Subject)
		if err != nil {
			// A vanished identity is a 401 like every other auth failure,
			// never a 5xx.
			if !errors.Is(err, apperrors.ErrNotFound) {
				logger.Error("Failed to load user for valid token", slog.String("error", err.Error()))
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		enrichedLogger := logger.With(slog.String("user_id", user.UserID))
		ctx := context.WithValue(c.Request.Context(), userCtxKey, user.Scrubbed())
		ctx = withLogger(ctx, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// extractAccessToken pulls the access token from the request. The cookie takes
// precedence over the Authorization header when both are present.
func extractAccessToken(c *gin.Context, cookieName string) (string, bool) {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie, true
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
