package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/idelchi/gogen/pkg/validator"
)

// registerExclusive adds a custom validator ensuring two fields are mutually exclusive.
// It registers both the validation logic and a human-readable error message,
// and reports fields by their label instead of the Go field name.
func registerExclusive(validator *validator.Validator) error {
	if err := validator.RegisterValidationAndTranslation(
		"exclusive",
		validateExclusive,
		"{0} and {1} are mutually exclusive",
	); err != nil {
		return fmt.Errorf("registering exclusive validation: %w", err)
	}

	validator.Validator().RegisterTagNameFunc(label)

	return nil
}

// validateExclusive checks that the field and its sibling, named by label in the tag parameter,
// are not both set.
func validateExclusive(fl validator.FieldLevel) bool {
	field := fl.Field()

	otherField, ok := fieldByLabel(fl.Parent(), fl.Param())
	if !ok || !field.IsValid() || !otherField.IsValid() {
		return true
	}

	if field.Kind() == reflect.String && otherField.Kind() == reflect.String {
		return field.String() == "" || otherField.String() == ""
	}

	return true
}

func label(fld reflect.StructField) string {
	const splitSize = 2

	name := strings.SplitN(fld.Tag.Get("label"), ",", splitSize)[0]
	if name == "" || name == "-" {
		return fld.Name
	}

	return name
}

func fieldByLabel(parent reflect.Value, name string) (reflect.Value, bool) {
	if parent.Kind() == reflect.Pointer {
		parent = parent.Elem()
	}

	if parent.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}

	typ := parent.Type()

	for i := range typ.NumField() {
		if label(typ.Field(i)) == name {
			return parent.Field(i), true
		}
	}

	return reflect.Value{}, false
}
