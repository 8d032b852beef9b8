// Package forms is the shared validation layer for console form models.
package forms

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/glowdesk/partner-console/internal/timeutil"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return timeutil.ValidClock(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("forms: register hhmm validation: %v", err))
	}
	return v
}

// FieldError is a single field-scoped validation failure, suitable for
// inline display next to the offending input.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// FieldErrors aggregates every failed field of one submission.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate runs struct-tag validation and maps failures to FieldErrors.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("forms: validate: %w", err)
	}

	out := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: messageFor(fe),
		})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "hhmm":
		return "must be a HH:MM time"
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return "is invalid"
	}
}
