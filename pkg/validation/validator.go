package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldError represents a structured validation error for one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	once     sync.Once
	validate *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		configure(validate)
	})
	return validate
}

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers the custom tags used by request structs.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		configure(v)
	}
}

func configure(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// nonblank rejects strings that are empty after trimming whitespace
	_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		if f.Kind() != reflect.String {
			return !f.IsZero()
		}
		return strings.TrimSpace(f.String()) != ""
	})
	// pwdbytes caps passwords at bcrypt's 72-byte input limit
	_ = v.RegisterValidation("pwdbytes", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	})
	v.RegisterAlias("pwd", "min=6,pwdbytes")
}

// MaxPasswordBytes is the longest password bcrypt will hash.
const MaxPasswordBytes = 72

// Struct validates s and returns every failing field, or nil.
// A `msg` struct tag overrides the generated message for that field; a
// `msg_<tag>` tag overrides it for one failing rule only.
func Struct(s any) []FieldError {
	err := engine().Struct(s)
	if err == nil {
		return nil
	}
	return toFieldErrors(err, reflect.TypeOf(s))
}

// ToDetails converts binding/validation errors into field errors suitable for API error details.
func ToDetails(err error) []FieldError {
	if err == nil {
		return nil
	}
	return toFieldErrors(err, nil)
}

func toFieldErrors(err error, typ reflect.Type) []FieldError {
	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return []FieldError{{Field: "payload", Message: "invalid json"}}
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "payload", Message: "invalid payload"}}
	}

	for typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg := ""
		if typ != nil && typ.Kind() == reflect.Struct {
			if sf, ok := typ.FieldByName(fe.StructField()); ok {
				if msg = sf.Tag.Get("msg_" + fe.ActualTag()); msg == "" {
					msg = sf.Tag.Get("msg")
				}
			}
		}
		if msg == "" {
			msg = formatFieldError(fe)
		}
		out = append(out, FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required", "nonblank":
		return "is required"
	case "email":
		return "must be a valid email"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "eqfield":
		return "must be equal to " + param + " field"
	case "pwd":
		if fe.ActualTag() == "pwdbytes" {
			return fmt.Sprintf("must be at most %d bytes long", MaxPasswordBytes)
		}
		return "must be at least 6 characters long"
	case "min":
		if isNumberKind(fe.Kind()) {
			return "must be at least " + param
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(fe.Kind()) {
			return "must be at most " + param
		}
		return "must be at most " + param + " characters long"
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", param)
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("validation failed for '%s'", tag)
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
