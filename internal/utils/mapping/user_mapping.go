package mapping

import (
	"database/sql"

	"github.com/vidtube/vidtube_backend/internal/core/domain"
	"github.com/vidtube/vidtube_backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:        d.UserID,
		Username:      d.Username,
		Email:         d.Email,
		FullName:      d.FullName,
		AvatarURL:     toNullString(d.AvatarURL),
		CoverImageURL: toNullString(d.CoverImageURL),
		PasswordHash:  d.PasswordHash,
		RefreshToken:  toNullString(d.RefreshToken),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:        m.UserID,
		Username:      m.Username,
		Email:         m.Email,
		FullName:      m.FullName,
		AvatarURL:     m.AvatarURL.String,
		CoverImageURL: m.CoverImageURL.String,
		PasswordHash:  m.PasswordHash,
		RefreshToken:  m.RefreshToken.String,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
