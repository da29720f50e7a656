package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/vidtube/vidtube_backend/internal/core/domain"
)

// userCtxKey is the key used to store the authenticated (scrubbed) user in
// the request context. Using a custom type prevents collisions.
const userCtxKey = contextKey("authUser")

// GetUserFromContext retrieves the authenticated user resolved by the auth
// middleware. The user is always scrubbed: no password hash, no refresh token.
func GetUserFromContext(c *gin.Context) (domain.User, bool) {
	user, ok := c.Request.Context().Value(userCtxKey).(domain.User)
	return user, ok
}

// GetUserIDFromContext retrieves the authenticated user's ID.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	user, ok := GetUserFromContext(c)
	if !ok {
		return "", false
	}
	return user.UserID, true
}
