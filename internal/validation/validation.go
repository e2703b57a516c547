package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// MaxTrendLength bounds trend names accepted from clients.
const MaxTrendLength = 200

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator instance. Field names in errors
// follow the json tag.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		validate.RegisterValidation("trend", func(fl validator.FieldLevel) bool {
			return ValidateTrend(fl.Field().String())
		})
	})
	return validate
}

// ValidateStruct checks s against its validate tags. The message describes
// the first failing field.
func ValidateStruct(s any) (bool, string) {
	err := Validator().Struct(s)
	if err == nil {
		return true, ""
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return false, "Invalid request"
	}
	return false, describe(verrs[0])
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "trend":
		return fmt.Sprintf("%s contains invalid characters", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// NormalizeTrend trims surrounding whitespace from a trend name.
func NormalizeTrend(trend string) string {
	return strings.TrimSpace(trend)
}

// ValidateTrend checks that a trend is non-empty, bounded and free of
// control characters. Unknown trends are allowed; the model ignores them.
func ValidateTrend(trend string) bool {
	if trend == "" || len(trend) > MaxTrendLength {
		return false
	}
	for _, r := range trend {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}
