package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var templates = map[string]string{
	"required": "{field} is required",
	"notblank": "{field} is required",
	"max":      "{field} must be at most {param} characters",
	"min":      "{field} must be at least {param} characters",
	"oneof":    "{field} must be one of {param}",
	"url":      "{field} must be a valid url",
	"uuid":     "{field} must be a valid id",
	"datetime": "{field} must match the format {param}",
	"email":    "{field} must be a valid email address",
}

// message renders the first validation error with a known template.
func message(err error) string {
	var fieldErrs val.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	for _, fieldErr := range fieldErrs {
		tmpl, ok := templates[fieldErr.Tag()]
		if !ok {
			continue
		}

		msg := strings.NewReplacer("{field}", fieldErr.Field(), "{param}", fieldErr.Param()).Replace(tmpl)

		// Var checks have no field name.
		return strings.TrimSpace(msg)
	}

	return fieldErrs.Error()
}
