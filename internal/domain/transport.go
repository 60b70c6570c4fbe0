package domain

import (
	"context"
	"errors"
	"net"
	"syscall"
)

// TransportErrorKind is a high-level classification of network failures.
type TransportErrorKind string

const (
	TransportUnknown TransportErrorKind = "unknown"
	TransportTimeout TransportErrorKind = "timeout"
	TransportDNS     TransportErrorKind = "dns"
	TransportConn    TransportErrorKind = "connection"
	TransportAborted TransportErrorKind = "aborted"
)

// ClassifyTransportError maps a client error to a TransportErrorKind.
// It sees through *url.Error and *net.OpError wrapping.
func ClassifyTransportError(err error) TransportErrorKind {
	if err == nil {
		return TransportUnknown
	}
	if errors.Is(err, context.Canceled) {
		return TransportAborted
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return TransportTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return TransportDNS
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EPIPE) {
		return TransportConn
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return TransportTimeout
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return TransportConn
	}
	return TransportUnknown
}
