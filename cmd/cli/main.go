package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/vk/agentconsole/internal/app"
	"github.com/vk/agentconsole/internal/cli"
)

// main is the entrypoint for the agentconsole application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdin, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. An unanticipated panic surfaces as a non-zero exit after the
// deferred transport disconnect inside App.Run has had its chance.
func run(inR io.Reader, outW, errW io.Writer, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fatal internal fault: %v", r)
		}
	}()

	appConfig, shouldExit, parseErr := cli.Parse(args, outW)
	if parseErr != nil {
		return parseErr
	}
	if shouldExit {
		return nil
	}

	// SIGINT during the prompt follows the same graceful exit path as the
	// exit builtin: the context cancels, the REPL disconnects and summarizes.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	console, err := app.NewApp(inR, outW, errW, appConfig)
	if err != nil {
		return err
	}

	return console.Run(ctx)
}
