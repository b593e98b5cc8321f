package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los errores se reportan con el nombre JSON del campo, que es el que ve el formulario.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(f reflect.Value) interface{} {
		d, ok := f.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}
		fl, _ := d.Float64()
		return fl
	}, decimal.Decimal{})
	_ = v.RegisterValidation("movement_kind", func(fl validator.FieldLevel) bool {
		_, ok := entity.ParseMovementKind(fl.Field().String())
		return ok
	})
	// El ajuste de inventario solo suma o resta stock.
	_ = v.RegisterValidation("stock_direction", func(fl validator.FieldLevel) bool {
		k, ok := entity.ParseMovementKind(fl.Field().String())
		return ok && (k == entity.MovementEntrada || k == entity.MovementSalida)
	})
	return v
}

// Validate aplica las reglas `validate:"..."` del DTO. Devuelve *domain.ValidationError
// con un mensaje por campo, o nil.
func Validate(in interface{}) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	out := &domain.ValidationError{}
	for _, fe := range fieldErrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "max":
		return fmt.Sprintf("no puede exceder %s caracteres", fe.Param())
	case "gt":
		return fmt.Sprintf("debe ser mayor a %s", fe.Param())
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "movement_kind":
		return "tipo de movimiento inválido. Debe ser: entrada, salida o ajuste"
	case "stock_direction":
		return "tipo de ajuste inválido. Debe ser: entrada o salida"
	case "oneof":
		return "debe ser uno de: " + strings.Join(strings.Fields(fe.Param()), ", ")
	}
	return "valor inválido"
}
