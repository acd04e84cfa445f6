package custody

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/angelmondragon/partcustody/pkg/enums"
	pkgerrors "github.com/angelmondragon/partcustody/pkg/errors"
	pkgvalidate "github.com/angelmondragon/partcustody/pkg/validate"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := pkgvalidate.New()
	pkgvalidate.MustRegister(v, "custody_action", func(fl validator.FieldLevel) bool {
		return enums.CustodyAction(fl.Field().String()).IsValid()
	})
	pkgvalidate.MustRegister(v, "issue_type", func(fl validator.FieldLevel) bool {
		return enums.IssueType(fl.Field().String()).IsValid()
	})
	pkgvalidate.MustRegister(v, "issue_scope", func(fl validator.FieldLevel) bool {
		return enums.IssueScope(fl.Field().String()).IsValid()
	})
	return v
}

func validateStruct(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldPath(fieldErr)] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

// fieldPath drops the root struct name from the namespace: "capture.photoUri".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "custody_action":
		return "must be PICKED_UP or RETURNED"
	case "issue_type":
		return "is not a known issue type"
	case "issue_scope":
		return "must be ALL_PARTS or SOME_PARTS"
	}
	return "is invalid"
}

func fieldError(field, message string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(map[string]string{field: message})
}
