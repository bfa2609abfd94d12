package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Register installs the project's rules on a validator instance:
// field names are reported by their JSON name and "notblank"
// rejects whitespace-only strings.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)

	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return err
	}
	return nil
}

// jsonFieldName returns the JSON name of a struct field
func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	}
	return name
}
