package ports

import "github.com/aalvaropc/modreg/internal/domain"

// ConfigLoader produces the effective configuration. An empty path means defaults plus environment.
type ConfigLoader interface {
	Load(path string) (domain.Config, error)
}
