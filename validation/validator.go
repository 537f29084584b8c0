package validation

import (
	"fmt"
	"strings"

	"github.com/kbukum/coursequery/errors"
)

// FieldError is one failed check. Field is a dotted path such as
// "tracing.sample_rate" or "tags[1].name".
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator accumulates field errors from chained checks. Validators made
// with In share the parent's error list and prefix every field they report.
type Validator struct {
	scope string
	errs  *[]FieldError
}

// New creates an empty Validator.
func New() *Validator {
	return &Validator{errs: new([]FieldError)}
}

// In returns a validator reporting into v with fields under scope.
func (v *Validator) In(scope string) *Validator {
	return &Validator{scope: v.path(scope), errs: v.errs}
}

func (v *Validator) path(field string) string {
	switch {
	case v.scope == "":
		return field
	case field == "":
		return v.scope
	default:
		return v.scope + "." + field
	}
}

// AddError records a failure for field.
func (v *Validator) AddError(field, message string) {
	*v.errs = append(*v.errs, FieldError{Field: v.path(field), Message: message})
}

// HasErrors reports whether any check failed.
func (v *Validator) HasErrors() bool {
	return len(*v.errs) > 0
}

// Errors returns a copy of the recorded failures in check order.
func (v *Validator) Errors() []FieldError {
	return append([]FieldError(nil), *v.errs...)
}

// Check records message for field unless ok holds.
func (v *Validator) Check(ok bool, field, message string) *Validator {
	if !ok {
		v.AddError(field, message)
	}
	return v
}

// Required fails on an empty or all-blank string.
func (v *Validator) Required(field, value string) *Validator {
	return v.Check(strings.TrimSpace(value) != "", field, "is required")
}

// MaxLength fails when value is longer than maxLen bytes.
func (v *Validator) MaxLength(field, value string, maxLen int) *Validator {
	return v.Check(len(value) <= maxLen, field, fmt.Sprintf("must be %d characters or less", maxLen))
}

// Min fails when value is below minVal.
func (v *Validator) Min(field string, value, minVal int) *Validator {
	return v.Check(value >= minVal, field, fmt.Sprintf("must be at least %d", minVal))
}

// Range fails when value is outside [minVal, maxVal].
func (v *Validator) Range(field string, value, minVal, maxVal int) *Validator {
	return v.Check(value >= minVal && value <= maxVal, field, fmt.Sprintf("must be between %d and %d", minVal, maxVal))
}

// NonNegative fails on a negative value.
func (v *Validator) NonNegative(field string, value float64) *Validator {
	return v.Check(value >= 0, field, "must not be negative")
}

// Fraction fails when value is outside [0, 1].
func (v *Validator) Fraction(field string, value float64) *Validator {
	return v.Check(value >= 0 && value <= 1, field, "must be between 0 and 1")
}

// OneOf fails when a non-empty value is not in allowed. Empty values pass;
// pair with Required when the field is mandatory.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.AddError(field, "must be one of: "+strings.Join(allowed, ", "))
	return v
}

// Merge records the failures carried by err, which is typically the result
// of a nested Validate. Field errors keep their paths under v's scope; any
// other error is recorded against the scope itself.
func (v *Validator) Merge(err error) *Validator {
	if err == nil {
		return v
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		v.AddError("", err.Error())
		return v
	}
	if fields, ok := appErr.Details["fields"].([]FieldError); ok {
		for _, fe := range fields {
			v.AddError(fe.Field, fe.Message)
		}
		return v
	}
	if field, ok := appErr.Details["field"].(string); ok {
		v.AddError(field, appErr.Message)
		return v
	}
	v.AddError("", appErr.Message)
	return v
}

// Validate returns an INVALID_INPUT AppError listing every failure, or nil.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}
	return newValidationError(v.Errors())
}

// Err is Validate as a plain error, nil when every check passed.
func (v *Validator) Err() error {
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// Required validates a single required field.
func Required(field, value string) error {
	return New().Required(field, value).Err()
}

func newValidationError(fields []FieldError) *errors.AppError {
	messages := make([]string, len(fields))
	for i, fe := range fields {
		messages[i] = fe.Field + ": " + fe.Message
	}
	return errors.Validation(strings.Join(messages, "; ")).
		WithDetail("fields", fields)
}
