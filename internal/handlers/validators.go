package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// usernamePattern allows letters, digits, dots and underscores. Case is
// accepted here; the registration path lowercases before storing.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._]+$`)

// RegisterCustomValidators installs the custom binding rules used by the DTOs.
// Must be called once before the engine serves requests.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
	}
}
