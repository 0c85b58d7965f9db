package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/contacts-api/internal/domain"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// decimal.Decimal como numérico para que min/gte funcionen sobre credit_limit.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	// Los errores citan el nombre JSON (o query) del campo.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// bindJSON parsea el cuerpo y ejecuta las reglas validate de la estructura.
func bindJSON(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return domain.Validation(domain.CodeInvalidFormat, "", "cuerpo inválido: "+err.Error())
	}
	return validateStruct(req)
}

// bindQuery parsea el query string y valida.
func bindQuery(c *fiber.Ctx, req interface{}) error {
	if err := c.QueryParser(req); err != nil {
		return domain.Validation(domain.CodeInvalidFormat, "", "parámetros inválidos: "+err.Error())
	}
	return validateStruct(req)
}

// validateStruct devuelve el primer error de validación como *domain.Error.
func validateStruct(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.Validation(domain.CodeInvalidFormat, "", err.Error())
	}
	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return domain.Validation(domain.CodeMissingField, field, field+" es requerido")
	case "oneof":
		return domain.Validation(domain.CodeInvalidEnumValue, field, field+" debe ser uno de: "+fe.Param())
	case "max":
		return domain.Validation(domain.CodeInvalidFormat, field, field+" excede el máximo ("+fe.Param()+")")
	case "min", "gte":
		return domain.Validation(domain.CodeInvalidFormat, field, field+" es menor al mínimo ("+fe.Param()+")")
	}
	return domain.Validation(domain.CodeInvalidFormat, field, field+" tiene formato inválido ("+fe.Tag()+")")
}
