package config

import "time"

type yamlConfig struct {
	Modreg struct {
		Auth struct {
			RegisterURL string `yaml:"register_url"`
		} `yaml:"auth"`

		Login struct {
			Destination string `yaml:"destination"`
		} `yaml:"login"`

		HTTP struct {
			Timeout string `yaml:"timeout"`
		} `yaml:"http"`

		Logging struct {
			Dir   string `yaml:"dir"`
			Debug *bool  `yaml:"debug"`
		} `yaml:"logging"`
	} `yaml:"modreg"`
}

// envOverlay holds values read from the process environment and .env.
type envOverlay struct {
	RegisterURL string         `env:"MODREG_REGISTER_URL"`
	LoginURL    string         `env:"MODREG_LOGIN_URL"`
	HTTPTimeout *time.Duration `env:"MODREG_HTTP_TIMEOUT"`
	LogDir      string         `env:"MODREG_LOG_DIR"`
	Debug       *bool          `env:"MODREG_DEBUG"`
}
