package http

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// subdomainRe solo minúsculas, dígitos y guiones (parte de hostname).
var subdomainRe = regexp.MustCompile(`^[a-z0-9-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Regla custom "subdomain" usada por los tags de los DTOs de sitios.
	_ = v.RegisterValidation("subdomain", func(fl validator.FieldLevel) bool {
		return subdomainRe.MatchString(fl.Field().String())
	})
	return v
}

// validateStruct ejecuta los tags validate del DTO y devuelve un mensaje legible
// del primer campo inválido.
func validateStruct(s any) (string, bool) {
	err := validate.Struct(s)
	if err == nil {
		return "", true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return validationMessage(verrs[0]), false
	}
	return "Invalid request body", false
}

func validationMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return field + " must be at least " + fe.Param() + " characters"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	case "oneof":
		return "Invalid " + field
	case "subdomain":
		return "Invalid subdomain format"
	}
	return "Invalid " + field
}
