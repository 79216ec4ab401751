package lib

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the format of every date accepted in query strings.
const DateLayout = "2006-01-02"

type CustomValidator struct {
	Validator *validator.Validate
}

// NewValidator reports fields under their json or query name so error messages
// match what the client sent.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "query", "param"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return field.Name
	})
	return v
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.Validator.Struct(i)
}

// InvalidFields lists the offending field names of a validation error, nil for other errors.
func InvalidFields(err error) []string {
	var fields []string
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range errs {
			fields = append(fields, fe.Field())
		}
	}
	return fields
}
