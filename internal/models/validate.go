package models

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("elementtype", func(fl validator.FieldLevel) bool {
		return slices.Contains(elementTypes, ElementType(fl.Field().String()))
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks v against its validate tags. Failures wrap ErrValidation.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var missing []string
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			missing = append(missing, fieldPath(fe))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}
	return fmt.Errorf("%w: %s", ErrValidation, describe(fieldErrs[0]))
}

// fieldPath drops the root struct name, e.g. "PokemonPatch.base.hp" -> "base.hp".
func fieldPath(fe validator.FieldError) string {
	_, path, _ := strings.Cut(fe.Namespace(), ".")
	return path
}

func describe(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "notblank":
		return field + " must not be empty"
	case "min":
		if fe.Kind() == reflect.Slice {
			return field + " must contain at least one value"
		}
		return field + " must not be negative"
	case "gt":
		return field + " must be a positive integer"
	case "unique":
		return field + " must not contain duplicates"
	case "elementtype":
		return fmt.Sprintf("unknown type %q", fe.Value())
	}
	return field + " is invalid"
}
