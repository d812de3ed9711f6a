package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors maps a JSON field name to the ordered messages of every rule the
// field violated. A nil map means the value is valid.
type Errors map[string][]string

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields under their JSON names so error maps line up with the
	// request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct checks v against its validate tags. Rules are evaluated per field
// with no short-circuit across fields, so every violation is reported.
func Struct(v any) Errors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errors{"": {err.Error()}}
	}
	out := make(Errors)
	for _, e := range verrs {
		out[e.Field()] = append(out[e.Field()], message(e))
	}
	return out
}

func message(e validator.FieldError) string {
	switch e.Field() {
	case "price":
		if e.Tag() == "gte" || e.Tag() == "lte" {
			return "The price must be between 1 and 9999"
		}
	case "typeToy":
		if e.Tag() == "oneof" {
			return "The type must have values from TypeToy (Ex:1,2,3,4)"
		}
	}
	return fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
}
