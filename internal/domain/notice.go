package domain

import "time"

// NoticeKind is the state of the notification slot.
type NoticeKind string

const (
	NoticeLoading NoticeKind = "loading"
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// NoticeID addresses a shown notice so later calls update it instead of stacking.
type NoticeID string

// Notice is a transient user-facing status message.
type Notice struct {
	ID      NoticeID
	Kind    NoticeKind
	Message string
}

// Lifetime is how long a notice of this kind stays visible. Zero means until replaced.
func (k NoticeKind) Lifetime() time.Duration {
	switch k {
	case NoticeSuccess:
		return 2 * time.Second
	case NoticeError:
		return 4 * time.Second
	default:
		return 0
	}
}

// User-facing messages emitted by the registration flow.
const (
	MsgRegistering        = "Registering moderator..."
	MsgRegistered         = "Moderator registered successfully!"
	MsgRegistrationFailed = "Registration failed. Try again."
	MsgSomethingWentWrong = "Something went wrong"
	MsgInviteMissing      = "Invite token is missing"
	MsgPasswordsMismatch  = "Passwords do not match"
)
