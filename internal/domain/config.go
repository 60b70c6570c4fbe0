package domain

import "time"

// DefaultRegisterURL is the production moderator registration endpoint.
const DefaultRegisterURL = "https://herald-hub-backend.onrender.com/auth/register/moderator"

// Config represents the modreg configuration after all layers are applied.
type Config struct {
	Auth    AuthConfig
	Login   LoginConfig
	HTTP    HTTPConfig
	Logging LoggingConfig
}

type AuthConfig struct {
	RegisterURL string
}

type LoginConfig struct {
	// Destination is where the user is sent after a successful registration.
	Destination string
}

type HTTPConfig struct {
	// Timeout bounds a whole request. Zero leaves only transport defaults.
	Timeout time.Duration
}

type LoggingConfig struct {
	Dir   string
	Debug bool
}

// DefaultConfig provides sane defaults if modreg.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Auth:    AuthConfig{RegisterURL: DefaultRegisterURL},
		Login:   LoginConfig{Destination: "/login"},
		HTTP:    HTTPConfig{Timeout: 0},
		Logging: LoggingConfig{Dir: ".modreg/logs"},
	}
}

// ScaffoldSpec describes the config files `modreg init` writes.
type ScaffoldSpec struct {
	Root             string
	RegisterURL      string
	LoginDestination string
}
