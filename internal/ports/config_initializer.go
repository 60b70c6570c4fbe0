package ports

import "github.com/aalvaropc/modreg/internal/domain"

// ConfigInitializer writes starter config files. Existing files are kept
// unless force is set. It returns the paths it wrote.
type ConfigInitializer interface {
	Init(spec domain.ScaffoldSpec, force bool) ([]string, error)
}
