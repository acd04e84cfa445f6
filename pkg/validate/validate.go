// Package validate builds the go-playground validator shared by request decoding
// and the custody service. Field errors are reported under their json names.
package validate

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// New returns a validator that names fields by their json tag.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(JSONTagName)
	return v
}

// JSONTagName maps a struct field to its json name, falling back to the Go name.
func JSONTagName(f reflect.StructField) string {
	tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if tag == "" || tag == "-" {
		return f.Name
	}
	return tag
}

// MustRegister adds a custom rule and panics if the tag is rejected.
func MustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}
