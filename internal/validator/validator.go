package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// Get devuelve la instancia única del validador, que reporta los campos por su nombre json.
func Get() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
			}
			return name
		})
	})
	return validate
}

// Validate valida un struct según sus tags `validate` y devuelve un error legible.
func Validate(s interface{}) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, fmt.Sprintf("'%s' %s", e.Field(), getErrorMessage(e)))
	}
	return fmt.Errorf("validación fallida: %s", strings.Join(messages, "; "))
}

// ValidateVar valida una variable suelta.
func ValidateVar(field interface{}, tag string) error {
	return Get().Var(field, tag)
}

func getErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "es obligatorio"
	case "email":
		return "debe ser un email válido"
	case "min":
		return fmt.Sprintf("debe tener al menos %s", e.Param())
	case "max":
		return fmt.Sprintf("no debe superar %s", e.Param())
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual a %s", e.Param())
	case "lte":
		return fmt.Sprintf("debe ser menor o igual a %s", e.Param())
	case "oneof":
		return fmt.Sprintf("debe ser uno de: %s", e.Param())
	default:
		return fmt.Sprintf("no cumple la regla '%s'", e.Tag())
	}
}
