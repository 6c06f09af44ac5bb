// Package app wires the console's components together: logger, configuration
// file, session store, transport client, and the REPL itself.
package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/vk/agentconsole/internal/config"
	"github.com/vk/agentconsole/internal/ctxlog"
	"github.com/vk/agentconsole/internal/history"
	"github.com/vk/agentconsole/internal/transport"
)

// Defaults applied when neither flag nor config file sets a value.
const (
	defaultEndpoint       = "http://localhost:8765"
	defaultConnectTimeout = 10 * time.Second
	configFileName        = "config.hcl"
	sessionsDirName       = "sessions"
	appDirName            = ".agentconsole"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	inR  io.Reader
	outW io.Writer

	logger *slog.Logger
	cfg    *Config
	file   *config.File
	store  *history.Store
	client *transport.Client
}

// NewApp builds a fully wired App. Logs go to errW so the conversation on
// outW stays clean. Configuration file problems are fatal here; a client that
// silently ignores its config is worse than one that refuses to start.
func NewApp(inR io.Reader, outW, errW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	file, err := config.Load(ctx, resolvePath(cfg.ConfigPath, configFileName))
	if err != nil {
		return nil, err
	}

	merged := mergeConfig(cfg, file)
	logger.Debug("Configuration assembled.",
		"endpoint", merged.Endpoint, "session_dir", merged.SessionDir, "servers", len(file.Servers))

	return &App{
		inR:    inR,
		outW:   outW,
		logger: logger,
		cfg:    merged,
		file:   file,
		store:  history.NewStore(merged.SessionDir),
		client: transport.NewClient(),
	}, nil
}

// mergeConfig overlays file-supplied defaults under flag-supplied values.
func mergeConfig(cfg *Config, file *config.File) *Config {
	merged := *cfg
	if merged.Endpoint == "" {
		merged.Endpoint = file.Endpoint
	}
	if merged.Endpoint == "" {
		merged.Endpoint = defaultEndpoint
	}
	if merged.ConnectTimeout == 0 {
		merged.ConnectTimeout = file.ConnectTimeout
	}
	if merged.ConnectTimeout == 0 {
		merged.ConnectTimeout = defaultConnectTimeout
	}
	if merged.SessionDir == "" {
		merged.SessionDir = file.SessionDir
	}
	if merged.SessionDir == "" {
		merged.SessionDir = resolvePath("", sessionsDirName)
	}
	return &merged
}

// resolvePath returns an explicit path unchanged, otherwise the default
// location under the user's app directory. With no resolvable home directory
// it falls back to the working directory.
func resolvePath(explicit, name string) string {
	if explicit != "" {
		return explicit
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(appDirName, name)
	}
	return filepath.Join(home, appDirName, name)
}

// Store returns the app's session store. This is primarily for testing.
func (a *App) Store() *history.Store {
	return a.store
}
