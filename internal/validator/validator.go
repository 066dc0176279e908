// internal/validator/validator.go
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"finance-tracker/internal/currency"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var Validate *validator.Validate

var nonSpace = regexp.MustCompile(`\S`)

func init() {
	Validate = validator.New()

	// decimal.Decimal is validated through its string form
	Validate.RegisterCustomTypeFunc(func(v reflect.Value) any {
		if d, ok := v.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	_ = Validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return nonSpace.MatchString(fl.Field().String())
	})

	_ = Validate.RegisterValidation("txtype", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "income" || s == "expense"
	})

	_ = Validate.RegisterValidation("timeframe", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "month" || s == "year"
	})

	_ = Validate.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		return currency.Validate(fl.Field().String()) == nil
	})

	// strictly positive decimal
	_ = Validate.RegisterValidation("dgt0", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		return d.IsPositive()
	})

	// decimal no greater than the param, "dlte=9999999999.99"
	_ = Validate.RegisterValidation("dlte", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		limit, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return d.LessThanOrEqual(limit)
	})
}

// Struct validates v and flattens the field errors into one readable message.
func Struct(v any) error {
	err := Validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fieldErrorToString(e))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func fieldErrorToString(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", e.Field())
	case "txtype":
		return fmt.Sprintf("%s must be income or expense", e.Field())
	case "timeframe":
		return fmt.Sprintf("%s must be month or year", e.Field())
	case "currency":
		return fmt.Sprintf("%s is not a supported currency", e.Field())
	case "dgt0":
		return fmt.Sprintf("%s must be greater than 0", e.Field())
	case "dlte":
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param())
	case "gte", "lte":
		return fmt.Sprintf("%s is out of range", e.Field())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}
