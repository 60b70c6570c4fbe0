package ports

import (
	"context"

	"github.com/aalvaropc/modreg/internal/domain"
)

// AuthService registers a moderator with the remote authentication service.
//
// A 2xx status returns a response and a nil error. Any other status returns an
// error wrapping *domain.ServiceError; network failures return a KindTransport error.
type AuthService interface {
	Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
}
