package models

import (
	"database/sql"
	"time"
)

// User represents a row of the users table.
type User struct {
	UserID        string         `db:"user_id"`
	Username      string         `db:"username"`
	Email         string         `db:"email"`
	FullName      string         `db:"full_name"`
	AvatarURL     sql.NullString `db:"avatar_url"`
	CoverImageURL sql.NullString `db:"cover_image_url"`
	PasswordHash  string         `db:"password_hash"`

	// RefreshToken is the single active refresh token, stored verbatim.
	// NULL when the user has no active session.
	RefreshToken sql.NullString `db:"refresh_token"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
