package dto

// UpdateProfileRequest defines the data allowed for updating a user profile.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateProfileRequest struct {
	FullName      *string `json:"fullname" binding:"omitempty,max=100"`
	AvatarURL     *string `json:"avatar" binding:"omitempty,url"`
	CoverImageURL *string `json:"coverImage" binding:"omitempty,url"`
}
