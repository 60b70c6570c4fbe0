package tui

import (
	"errors"
	"strconv"

	"github.com/aalvaropc/modreg/internal/domain"
)

// userMessage is the detail line shown under the form after a failed submit.
// The notice carries the headline; this adds what the user can act on.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if !errors.As(err, &oe) {
		return "Unexpected error (see logs)"
	}

	switch oe.Kind {
	case domain.KindTransport:
		switch domain.ClassifyTransportError(err) {
		case domain.TransportTimeout:
			return "The auth service did not answer in time"
		case domain.TransportDNS:
			return "Could not resolve the auth service host"
		case domain.TransportConn:
			return "Could not connect to the auth service"
		case domain.TransportAborted:
			return "Request cancelled"
		default:
			return "Network error (see logs)"
		}

	case domain.KindServer:
		var se *domain.ServiceError
		if errors.As(err, &se) {
			return "Auth service answered " + strconv.Itoa(se.Status)
		}
		return "Auth service error"

	case domain.KindUnexpectedStatus:
		return "Auth service gave an unexpected answer"

	case domain.KindMissingToken:
		return "Open the invite link you received to register"

	default:
		return "Unexpected error (see logs)"
	}
}
