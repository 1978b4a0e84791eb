package types

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// yearMonthRe matches the empty string or a YYYY-MM date. Start dates are
// allowed to be empty when the source gave no reliable value; anything else
// must already be in the mapper's truncated form.
var yearMonthRe = regexp.MustCompile(`^(\d{4}-\d{2})?$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Tag registration cannot fail for a well-formed tag name; panic keeps
	// the package-level validator usable as a plain value.
	if err := v.RegisterValidation("year_month", func(fl validator.FieldLevel) bool {
		return yearMonthRe.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("types: registering year_month validation: %v", err))
	}
	return v
}

// RecordValidationError reports why a mapped record failed schema
// validation. A record that fails validation terminates the run.
type RecordValidationError struct {
	Fields []string
	Cause  error
}

func (e *RecordValidationError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("record validation failed: %s", strings.Join(e.Fields, ", "))
	}
	return fmt.Sprintf("record validation failed: %v", e.Cause)
}

func (e *RecordValidationError) Unwrap() error {
	return e.Cause
}

// ValidateResume checks the mapped internal record's shape. Empty strings
// are acceptable everywhere; the only hard constraint is that start dates
// arrive empty or already truncated to YYYY-MM.
func ValidateResume(r *Resume) error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var fields []string
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, ve := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", ve.Namespace(), ve.Tag()))
		}
	}
	return &RecordValidationError{Fields: fields, Cause: err}
}
