package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v *validator.Validate

func init() {
	v = validator.New()

	// Use the JSON tag as the field name in error output
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
}

// Validate runs struct validation and returns map[field][]messages,
// or nil when the input is valid.
func Validate(s any) (map[string][]string, error) {
	err := v.Struct(s)
	if err == nil {
		return nil, nil
	}

	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, err
	}

	out := make(map[string][]string)
	for _, e := range ve {
		field := e.Field()

		switch e.Tag() {
		case "required":
			out[field] = append(out[field], "This field is required")
		case "email":
			out[field] = append(out[field], "Invalid email format")
		case "min":
			if e.Kind() == reflect.String {
				out[field] = append(out[field], fmt.Sprintf("Must be at least %s characters", e.Param()))
			} else {
				out[field] = append(out[field], fmt.Sprintf("Must be at least %s", e.Param()))
			}
		case "max":
			if e.Kind() == reflect.String {
				out[field] = append(out[field], fmt.Sprintf("Must be at most %s characters", e.Param()))
			} else {
				out[field] = append(out[field], fmt.Sprintf("Must be at most %s", e.Param()))
			}
		case "oneof":
			out[field] = append(out[field], "Value is not allowed")
		case "uuid", "uuid4":
			out[field] = append(out[field], "Invalid UUID format")
		case "gte":
			out[field] = append(out[field], fmt.Sprintf("Must be greater than or equal to %s", e.Param()))
		case "lte":
			out[field] = append(out[field], fmt.Sprintf("Must be less than or equal to %s", e.Param()))
		default:
			out[field] = append(out[field], e.Error())
		}
	}
	return out, nil
}
