// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// symbolRegex matches ticker symbols: 1-12 characters, letters first,
// then letters, digits, dots, or dashes (e.g. "ACME", "BRK.B").
var symbolRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9.\-]{0,11}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("symbol", validateSymbol)
	}
}

func validateSymbol(fl validator.FieldLevel) bool {
	return symbolRegex.MatchString(fl.Field().String())
}
