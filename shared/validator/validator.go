package validator

import (
	"reflect"
	"strings"

	"curtainraiser/shared/failure"

	val "github.com/go-playground/validator/v10"
)

var validate = newValidate()

func newValidate() *val.Validate {
	validate := val.New(val.WithRequiredStructEnabled())

	// Messages name the form field the admin actually filled in.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}

		return field.Name
	})

	err := validate.RegisterValidation("notblank", func(fl val.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() == reflect.Ptr {
			if field.IsNil() {
				return true
			}

			field = field.Elem()
		}

		return field.Kind() != reflect.String || strings.TrimSpace(field.String()) != ""
	})
	if err != nil {
		panic(err)
	}

	return validate
}

// ValidateStruct runs the struct's validate tags and reports the first failure as a bad request.
func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
