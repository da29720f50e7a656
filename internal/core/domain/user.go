package domain

// User represents a platform identity in the domain.
// Username and email are stored trimmed and lowercased; both are unique across
// each other's column, so an identifier lookup can never be ambiguous.
type User struct {
	UserID        string `json:"userID"` // Primary key (UUID)
	Username      string `json:"username"`
	Email         string `json:"email"`
	FullName      string `json:"fullname"`
	AvatarURL     string `json:"avatar,omitempty"`
	CoverImageURL string `json:"coverImage,omitempty"`

	// PasswordHash holds the bcrypt hash, never the plaintext.
	PasswordHash string `json:"-"`

	// RefreshToken is the single active refresh token for this identity,
	// stored verbatim. Empty means no active session.
	RefreshToken string `json:"-"`

	AuditFields
}

// Scrubbed returns a copy of the user with credential material removed.
// Anything handed to handlers or stored in a request context goes through
// this first.
func (u User) Scrubbed() User {
	u.PasswordHash = ""
	u.RefreshToken = ""
	return u
}
