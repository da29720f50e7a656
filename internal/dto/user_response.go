package dto

import (
	"time"

	"github.com/vidtube/vidtube_backend/internal/core/domain"
)

// UserResponse is the externally visible shape of a user. Credential fields
// never appear here.
type UserResponse struct {
	UserID        string    `json:"userID"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullname"`
	AvatarURL     string    `json:"avatar,omitempty"`
	CoverImageURL string    `json:"coverImage,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:        user.UserID,
		Username:      user.Username,
		Email:         user.Email,
		FullName:      user.FullName,
		AvatarURL:     user.AvatarURL,
		CoverImageURL: user.CoverImageURL,
		CreatedAt:     user.CreatedAt,
	}
}
