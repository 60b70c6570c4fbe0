package domain

// Field names a RegistrationDraft input.
type Field string

const (
	FieldUsername        Field = "username"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"
	FieldAcceptedTerms   Field = "acceptedTerms"
)

// Fields lists the draft inputs in form order.
var Fields = []Field{FieldUsername, FieldPassword, FieldConfirmPassword, FieldAcceptedTerms}

// Draft is the transient registration form state. It is never persisted.
type Draft struct {
	Username        string `json:"username" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	AcceptedTerms   bool   `json:"acceptedTerms" validate:"required"`
}

// Set returns a copy of d with field set to value.
// Text fields take a string, acceptedTerms takes a bool.
func (d Draft) Set(field Field, value any) (Draft, error) {
	switch field {
	case FieldUsername, FieldPassword, FieldConfirmPassword:
		s, ok := value.(string)
		if !ok {
			return d, fieldError(field, ErrFieldType)
		}
		switch field {
		case FieldUsername:
			d.Username = s
		case FieldPassword:
			d.Password = s
		default:
			d.ConfirmPassword = s
		}
		return d, nil

	case FieldAcceptedTerms:
		b, ok := value.(bool)
		if !ok {
			return d, fieldError(field, ErrFieldType)
		}
		d.AcceptedTerms = b
		return d, nil

	default:
		return d, fieldError(field, ErrUnknownField)
	}
}

// PasswordsMatch reports whether password and confirmPassword are identical.
func (d Draft) PasswordsMatch() bool {
	return d.Password == d.ConfirmPassword
}

// IsZero reports whether every field holds its empty value.
func (d Draft) IsZero() bool {
	return d == Draft{}
}

func fieldError(field Field, err error) error {
	return &OpError{
		Op:   "draft.set",
		Kind: KindInvalidInput,
		Path: string(field),
		Err:  err,
	}
}

// Visibility holds the display mode of the two password inputs.
type Visibility struct {
	Password        bool
	ConfirmPassword bool
}
