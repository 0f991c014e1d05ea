package handlers

import (
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding rules on gin's validator:
// decimal.Decimal fields compare as numbers in gt/gte tags, and the
// account_number tag checks the chart key format.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		_ = v.RegisterValidation("account_number", func(fl validator.FieldLevel) bool {
			return domain.ValidAccountNumber(fl.Field().String())
		})
	})
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}
