package domain

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Messages shown next to invalid inputs.
var fieldMessages = map[Field]string{
	FieldUsername:        "Please enter your username",
	FieldPassword:        "Password is required",
	FieldConfirmPassword: "Confirm Password is required",
	FieldAcceptedTerms:   "You must accept the terms and policy",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationState is derived from a Draft and never stored on its own.
type ValidationState struct {
	// FieldErrors maps each failing field to its user-facing message.
	FieldErrors    map[Field]string
	PasswordsMatch bool
}

// Validate computes the ValidationState for d. It is pure.
func Validate(d Draft) ValidationState {
	st := ValidationState{
		FieldErrors:    map[Field]string{},
		PasswordsMatch: d.PasswordsMatch(),
	}

	err := validate.Struct(d)
	if err == nil {
		return st
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only reachable on a programming error (non-struct input).
		for _, f := range Fields {
			st.FieldErrors[f] = fieldMessages[f]
		}
		return st
	}

	for _, fe := range verrs {
		f := Field(fe.Field())
		if msg, ok := fieldMessages[f]; ok {
			st.FieldErrors[f] = msg
		}
	}
	return st
}

// FieldsValid reports whether every required field passed.
func (v ValidationState) FieldsValid() bool {
	return len(v.FieldErrors) == 0
}

// Blocking reports whether the draft may not be submitted.
func (v ValidationState) Blocking() bool {
	return !v.FieldsValid() || !v.PasswordsMatch
}

// Error returns the message for field, or "".
func (v ValidationState) Error(field Field) string {
	return v.FieldErrors[field]
}
