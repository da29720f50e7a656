package dto

import (
	"strings"

	"github.com/vidtube/vidtube_backend/internal/apperrors"
)

// RegisterRequest carries the data for creating a new account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30,username"`
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"fullname" binding:"required,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest carries login credentials. Either username or email must be
// present; when both are, username wins.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required"`
}

// Identifier returns the normalized username-or-email to look the user up by.
func (r LoginRequest) Identifier() (string, error) {
	for _, candidate := range []string{r.Username, r.Email} {
		if id := strings.ToLower(strings.TrimSpace(candidate)); id != "" {
			return id, nil
		}
	}
	return "", apperrors.ErrValidation
}

// RefreshRequest is the body fallback transport for the refresh token, used
// when no refreshToken cookie accompanies the request.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ChangePasswordRequest carries an authenticated password change.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8,max=72"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// RefreshResponse is returned on successful token rotation.
type RefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
