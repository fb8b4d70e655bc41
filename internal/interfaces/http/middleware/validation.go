package middleware

import (
	"reflect"
	"strings"

	"github.com/ebilling/backend/internal/domain/billing"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator configures the gin binding validator: error messages
// use JSON field names and the tariff_type tag checks against the
// tariff enum.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	v.RegisterValidation("tariff_type", func(fl validator.FieldLevel) bool {
		return billing.TariffType(fl.Field().String()).IsValid()
	})
}
