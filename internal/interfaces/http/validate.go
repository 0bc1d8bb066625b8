package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic("registrar validación notblank: " + err.Error())
	}
	return v
}

// validationMessage traduce los errores del validador a un mensaje legible.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required", "notblank":
			msgs = append(msgs, field+" no puede estar vacío")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s admite como máximo %s caracteres", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s no cumple %s", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
