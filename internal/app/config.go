package app

import (
	"errors"
	"time"
)

// Config holds everything an App needs to run, merged from flags and the
// optional configuration file (flags win).
type Config struct {
	// Endpoint is the socket.io URL of the remote agent runtime.
	Endpoint string
	// ConnectTimeout bounds the connection handshake.
	ConnectTimeout time.Duration

	// SessionID resumes a specific session; empty means none requested.
	SessionID string
	// ContinueLast resumes the most recently touched session.
	ContinueLast bool

	// OneShot sends CommandText, prints the response, and exits.
	OneShot bool
	// CommandText is the freeform command for the one-shot path.
	CommandText string

	ConfigPath string
	SessionDir string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config assembled by the CLI layer.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.OneShot && cfg.CommandText == "" {
		return nil, errors.New("one-shot mode requires a command to send")
	}
	if cfg.ConnectTimeout < 0 {
		return nil, errors.New("connect timeout must not be negative")
	}
	return &cfg, nil
}
