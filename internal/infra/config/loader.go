package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/modreg/internal/domain"
	"github.com/aalvaropc/modreg/internal/ports"
)

// Loader builds the effective configuration: defaults, then modreg.yaml, then
// .env, then the process environment.
type Loader struct {
	envFile string
	environ map[string]string
}

type Option func(*Loader)

// WithEnvFile sets the dotenv file to read. Empty disables it.
func WithEnvFile(path string) Option {
	return func(l *Loader) { l.envFile = path }
}

// WithEnvironment replaces the process environment, mainly for tests.
func WithEnvironment(m map[string]string) Option {
	return func(l *Loader) { l.environ = m }
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{envFile: ".env"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.ConfigLoader = (*Loader)(nil)

func (l *Loader) Load(path string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return cfg, err
		}
	}

	environ, err := l.environment()
	if err != nil {
		return cfg, err
	}
	if err := applyEnv(&cfg, environ); err != nil {
		return cfg, err
	}

	if err := check(cfg, path); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// environment merges the dotenv file under the process environment; real
// environment variables win, as with godotenv.Load.
func (l *Loader) environment() (map[string]string, error) {
	base := l.environ
	if base == nil {
		base = env.ToMap(os.Environ())
	}

	out := make(map[string]string, len(base))
	if l.envFile != "" {
		dot, err := godotenv.Read(l.envFile)
		switch {
		case err == nil:
			for k, v := range dot {
				out[k] = v
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, &domain.OpError{
				Op:   "config.load_dotenv",
				Kind: domain.KindInvalidConfig,
				Path: l.envFile,
				Err:  err,
			}
		}
	}
	for k, v := range base {
		out[k] = v
	}
	return out, nil
}

func applyFile(cfg *domain.Config, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	m := y.Modreg
	if m.Auth.RegisterURL != "" {
		cfg.Auth.RegisterURL = m.Auth.RegisterURL
	}
	if m.Login.Destination != "" {
		cfg.Login.Destination = m.Login.Destination
	}
	if m.HTTP.Timeout != "" {
		d, err := time.ParseDuration(m.HTTP.Timeout)
		if err != nil {
			return &domain.OpError{
				Op:   "config.load",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  fmt.Errorf("http.timeout: %w", err),
			}
		}
		cfg.HTTP.Timeout = d
	}
	if m.Logging.Dir != "" {
		cfg.Logging.Dir = m.Logging.Dir
	}
	if m.Logging.Debug != nil {
		cfg.Logging.Debug = *m.Logging.Debug
	}
	return nil
}

func applyEnv(cfg *domain.Config, environ map[string]string) error {
	var e envOverlay
	if err := env.ParseWithOptions(&e, env.Options{Environment: environ}); err != nil {
		return &domain.OpError{
			Op:   "config.load_env",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}

	if e.RegisterURL != "" {
		cfg.Auth.RegisterURL = e.RegisterURL
	}
	if e.LoginURL != "" {
		cfg.Login.Destination = e.LoginURL
	}
	if e.HTTPTimeout != nil {
		cfg.HTTP.Timeout = *e.HTTPTimeout
	}
	if e.LogDir != "" {
		cfg.Logging.Dir = e.LogDir
	}
	if e.Debug != nil {
		cfg.Logging.Debug = *e.Debug
	}
	return nil
}

func check(cfg domain.Config, path string) error {
	invalid := func(err error) error {
		return &domain.OpError{Op: "config.check", Kind: domain.KindInvalidConfig, Path: path, Err: err}
	}

	u, err := url.Parse(strings.TrimSpace(cfg.Auth.RegisterURL))
	if err != nil {
		return invalid(fmt.Errorf("auth.register_url: %w", err))
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalid(fmt.Errorf("auth.register_url must be an absolute http(s) URL, got %q", cfg.Auth.RegisterURL))
	}
	if strings.TrimSpace(cfg.Login.Destination) == "" {
		return invalid(errors.New("login.destination is empty"))
	}
	if cfg.HTTP.Timeout < 0 {
		return invalid(errors.New("http.timeout must not be negative"))
	}
	return nil
}
