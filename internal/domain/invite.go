package domain

import (
	"net/url"
	"strings"
)

// InviteTokenParam is the query parameter carrying the invite token.
const InviteTokenParam = "token"

// InviteToken is the opaque one-time token from the invite link.
// The zero value is an absent token, which is distinct from an empty one.
type InviteToken struct {
	value   string
	present bool
}

// NewInviteToken returns a present token holding v.
func NewInviteToken(v string) InviteToken {
	return InviteToken{value: v, present: true}
}

// Present reports whether the location carried the token parameter at all.
func (t InviteToken) Present() bool { return t.present }

// Value returns the raw token and whether it was present.
func (t InviteToken) Value() (string, bool) { return t.value, t.present }

// Usable reports whether the token can be sent: present and non-empty.
func (t InviteToken) Usable() bool { return t.present && t.value != "" }

// String never reveals the token.
func (t InviteToken) String() string {
	switch {
	case !t.present:
		return "<absent>"
	case t.value == "":
		return "<empty>"
	default:
		return "<redacted>"
	}
}

// InviteTokenFromLocation extracts the token from an incoming location: a full
// URL, a path with a query, or a bare "?query". An unparsable location yields
// an absent token and ok=false.
func InviteTokenFromLocation(location string) (tok InviteToken, ok bool) {
	loc := strings.TrimSpace(location)
	if loc == "" {
		return InviteToken{}, true
	}

	u, err := url.Parse(loc)
	if err != nil {
		return InviteToken{}, false
	}

	q, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return InviteToken{}, false
	}

	vals, found := q[InviteTokenParam]
	if !found || len(vals) == 0 {
		return InviteToken{}, true
	}
	return NewInviteToken(vals[0]), true
}
