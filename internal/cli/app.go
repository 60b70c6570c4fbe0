package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/modreg/internal/domain"
	"github.com/aalvaropc/modreg/internal/infra/authclient"
	"github.com/aalvaropc/modreg/internal/infra/config"
	"github.com/aalvaropc/modreg/internal/infra/configfinder"
	"github.com/aalvaropc/modreg/internal/infra/httpclient"
	"github.com/aalvaropc/modreg/internal/infra/logger"
	"github.com/aalvaropc/modreg/internal/ports"
)

type appCtx struct {
	cfg     domain.Config
	auth    ports.AuthService
	cleanup func() error
}

// loadApp resolves configuration, starts the file logger and builds the
// auth client every command shares.
func loadApp(flags *rootFlags) (*appCtx, error) {
	path, err := resolveConfigPath(flags.config, configfinder.NewFinder())
	if err != nil {
		return nil, err
	}

	cfg, err := config.NewLoader().Load(path)
	if err != nil {
		return nil, err
	}
	if flags.debug {
		cfg.Logging.Debug = true
	}

	cleanup, _ := logger.Setup(logger.Config{
		Dir:   cfg.Logging.Dir,
		Debug: cfg.Logging.Debug,
	})

	logger.L().Info("config.loaded",
		"path", path,
		"register_url", cfg.Auth.RegisterURL,
		"login", cfg.Login.Destination,
		"timeout", cfg.HTTP.Timeout.String(),
	)

	exec := httpclient.NewExecutor(httpclient.WithTimeout(cfg.HTTP.Timeout))
	auth := authclient.New(cfg.Auth.RegisterURL, authclient.WithExecutor(exec))

	return &appCtx{
		cfg:     cfg,
		auth:    auth,
		cleanup: cleanup,
	}, nil
}

func (a *appCtx) close() {
	if a.cleanup != nil {
		_ = a.cleanup()
	}
}

// resolveConfigPath returns "" when no config file exists; defaults and the
// environment still apply.
func resolveConfigPath(configFlag string, locator ports.ConfigLocator) (string, error) {
	p := strings.TrimSpace(configFlag)
	if p != "" {
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", fmt.Errorf("invalid config path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	found, err := locator.FindConfig(wd)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return "", nil
		}
		return "", err
	}
	return found, nil
}
