package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers the cpf validator and the registration password alias.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("cpf", validCPF)
		// Registration passwords: at least 8 chars with one uppercase, one
		// lowercase and one digit.
		v.RegisterAlias("strongpwd", "min=8,containsany=ABCDEFGHIJKLMNOPQRSTUVWXYZ,containsany=abcdefghijklmnopqrstuvwxyz,containsany=0123456789")
	}
}

// validCPF accepts formatted input ("123.456.789-00") as long as exactly 11
// digits remain once separators are stripped.
func validCPF(fl validator.FieldLevel) bool {
	count := 0
	for _, r := range fl.Field().String() {
		if r >= '0' && r <= '9' {
			count++
		}
	}
	return count == 11
}

// FieldError is a single field-level validation failure as reported in the
// error envelope's details array.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ToDetails converts binding/validation errors into the details array for
// the VALIDATION_ERROR envelope.
func ToDetails(err error) []FieldError {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return []FieldError{{Field: "payload", Message: "invalid json"}}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, FieldError{Field: fe.Field(), Message: formatFieldError(fe)})
		}
		return out
	}

	return []FieldError{{Field: "payload", Message: "invalid payload"}}
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param() + " characters long"
	case "max":
		return "must be at most " + fe.Param() + " characters long"
	case "cpf":
		return "must contain exactly 11 digits"
	case "strongpwd", "containsany":
		return "must be at least 8 characters with uppercase, lowercase and a number"
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("validation failed for '%s'", fe.Tag())
	}
}
