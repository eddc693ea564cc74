package helper

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by their json (or query) name instead of the Go name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return v
}

// ValidationResult is the explicit outcome of checking a request DTO.
type ValidationResult struct {
	OK     bool
	Errors map[string]string
}

func (r ValidationResult) Err() error {
	if r.OK {
		return nil
	}
	return ValidationFailed(r.Errors)
}

func Validate(v any) ValidationResult {
	err := validate.Struct(v)
	if err == nil {
		return ValidationResult{OK: true}
	}

	fields := map[string]string{}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fieldPath(fe)] = describe(fe)
		}
	} else {
		fields["_"] = err.Error()
	}
	return ValidationResult{OK: false, Errors: fields}
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	// embedded PageQuery shows up with its type name
	ns = strings.TrimPrefix(ns, "PageQuery.")
	if ns == "" {
		return fe.Field()
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}

// InvalidField builds a single-field validation error for checks done by hand.
func InvalidField(field, msg string) error {
	return ValidationFailed(map[string]string{field: msg})
}
