package validate

import (
	"github.com/go-playground/validator/v10"
	"github.com/nexhire/nexhire/pkg/errx"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct valida un DTO según sus tags `validate` y devuelve un errx de
// validación con el detalle por campo.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errx.Wrap(err, "validation failed", errx.TypeValidation)
	}

	e := errx.New("Request validation failed", errx.TypeValidation)
	for _, fe := range verrs {
		e.WithDetail(fe.Field(), fe.Tag())
	}
	return e
}
