// Package cli parses command-line arguments into an app.Config. It owns no
// decisions of consequence: every value it produces is either a flag, a
// positional argument, or a validation error.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/agentconsole/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating the program should exit cleanly (help requested), or
// an ExitError for invalid usage.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("agentconsole", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
agentconsole - a console for driving a remote multi-agent runtime.

Usage:
  agentconsole [options] [COMMAND TEXT]

With no COMMAND TEXT an interactive session starts. With -oneshot the text is
sent as a single query and the process exits after the response.

Options:
`)
		flagSet.PrintDefaults()
	}

	endpointFlag := flagSet.String("endpoint", "", "Socket URL of the remote runtime (default from config file).")
	timeoutFlag := flagSet.Duration("timeout", 0, "Connection handshake timeout (default 10s).")
	sessionFlag := flagSet.String("session", "", "Resume the session with this id.")
	continueFlag := flagSet.Bool("continue", false, "Resume the most recent session.")
	oneshotFlag := flagSet.Bool("oneshot", false, "Send COMMAND TEXT, print the response, and exit.")
	configFlag := flagSet.String("config", "", "Path to the HCL config file (default ~/.agentconsole/config.hcl).")
	sessionDirFlag := flagSet.String("session-dir", "", "Directory for session transcripts (default ~/.agentconsole/sessions).")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *sessionFlag != "" && *continueFlag {
		return nil, false, &ExitError{Code: 2, Message: "-session and -continue are mutually exclusive"}
	}

	commandText := strings.TrimSpace(strings.Join(flagSet.Args(), " "))

	config, err := app.NewConfig(app.Config{
		Endpoint:       *endpointFlag,
		ConnectTimeout: *timeoutFlag,
		SessionID:      *sessionFlag,
		ContinueLast:   *continueFlag,
		OneShot:        *oneshotFlag,
		CommandText:    commandText,
		ConfigPath:     *configFlag,
		SessionDir:     *sessionDirFlag,
		LogFormat:      logFormat,
		LogLevel:       logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
