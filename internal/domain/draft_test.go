package domain

import (
	"errors"
	"testing"
)

func TestDraftSet(t *testing.T) {
	d := Draft{}

	d, err := d.Set(FieldUsername, "mod1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, _ = d.Set(FieldPassword, "s3cret")
	d, _ = d.Set(FieldConfirmPassword, "s3cret")
	d, _ = d.Set(FieldAcceptedTerms, true)

	want := Draft{Username: "mod1", Password: "s3cret", ConfirmPassword: "s3cret", AcceptedTerms: true}
	if d != want {
		t.Fatalf("got %+v, want %+v", d, want)
	}
}

func TestDraftSet_RejectsMismatchedType(t *testing.T) {
	d := Draft{Username: "keep"}

	cases := []struct {
		field Field
		value any
	}{
		{FieldUsername, 42},
		{FieldPassword, true},
		{FieldConfirmPassword, nil},
		{FieldAcceptedTerms, "yes"},
	}
	for _, c := range cases {
		got, err := d.Set(c.field, c.value)
		if !errors.Is(err, ErrFieldType) {
			t.Errorf("Set(%s, %v): expected ErrFieldType, got %v", c.field, c.value, err)
		}
		if !IsKind(err, KindInvalidInput) {
			t.Errorf("Set(%s, %v): expected invalid_input kind", c.field, c.value)
		}
		if got != d {
			t.Errorf("Set(%s, %v): draft changed on error", c.field, c.value)
		}
	}
}

func TestDraftSet_UnknownField(t *testing.T) {
	_, err := Draft{}.Set(Field("email"), "x@example.com")
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestDraftIsZero(t *testing.T) {
	if !(Draft{}).IsZero() {
		t.Fatalf("expected zero draft")
	}
	if (Draft{AcceptedTerms: true}).IsZero() {
		t.Fatalf("expected non-zero draft")
	}
}
