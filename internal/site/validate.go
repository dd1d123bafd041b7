package site

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationErrors maps a form field name to a user-facing message.
// Validation errors block a submission but are never shown as the
// generic submission error.
type ValidationErrors map[string]string

func (e ValidationErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "invalid contact fields: " + strings.Join(fields, ", ")
}

// Has reports whether field failed validation.
func (e ValidationErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

var fieldMessages = map[string]string{
	"name.required":    "El nombre es obligatorio",
	"email.required":   "El email es obligatorio",
	"email.email":      "Introduce un email válido",
	"message.required": "El mensaje es obligatorio",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks the required fields. It returns nil when the fields can
// be submitted.
func Validate(f ContactFields) ValidationErrors {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationErrors{"form": err.Error()}
	}
	out := make(ValidationErrors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		msg, ok := fieldMessages[field+"."+fe.Tag()]
		if !ok {
			msg = "Campo no válido"
		}
		out[field] = msg
	}
	return out
}
