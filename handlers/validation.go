package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var layoutsFechaHora = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// parseFechaHora acepta RFC 3339 o una fecha local sin zona, que se interpreta en loc
func parseFechaHora(valor string, loc *time.Location) (time.Time, error) {
	valor = strings.TrimSpace(valor)
	if t, err := time.Parse(time.RFC3339, valor); err == nil {
		return t, nil
	}
	for _, layout := range layoutsFechaHora {
		if t, err := time.ParseInLocation(layout, valor, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha_hora inválida: %q", valor)
}

func validationMessages(err error) []string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, getValidationErrorMessage(fe))
	}
	return msgs
}

func getValidationErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " es obligatorio"
	case "email":
		return "Formato de email inválido"
	case "max":
		return err.Field() + " debe tener como máximo " + err.Param() + " caracteres"
	case "oneof":
		return err.Field() + " debe ser uno de: " + err.Param()
	default:
		return err.Field() + " es inválido"
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	// Reportar los campos con su nombre JSON
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
