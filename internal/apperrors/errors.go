package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidCredentials indicates a failed login attempt. Handlers surface the
// same message for an unknown identifier and a wrong password so the API does
// not leak which accounts exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrTokenExpired indicates a structurally valid token whose expiry has passed.
var ErrTokenExpired = errors.New("token expired")

// ErrTokenInvalid indicates a malformed token or a bad signature.
var ErrTokenInvalid = errors.New("token invalid")

// ErrRefreshTokenStale indicates a refresh token with a valid signature that no
// longer matches the stored slot: it was rotated away, cleared by logout, or
// lost a concurrent rotation race.
var ErrRefreshTokenStale = errors.New("refresh token stale")

// ErrUnauthorized indicates a request that reached a protected operation
// without an authenticated identity.
var ErrUnauthorized = errors.New("unauthorized")
