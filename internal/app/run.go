package app

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/agentconsole/internal/ctxlog"
	"github.com/vk/agentconsole/internal/repl"
)

// oneShotTimeout bounds the wait for a response on the non-interactive path.
// It is, together with the connect handshake, one of only two timeouts in the
// program: ordinary interactive queries may wait forever.
const oneShotTimeout = 60 * time.Second

// Run executes the console. It resolves the active session, connects the
// transport, and hands control to the REPL (interactive) or the one-shot
// path. The transport is always disconnected before Run returns, whatever
// the exit reason.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	defer a.client.Disconnect()

	sessionID, err := a.resolveSession(ctx)
	if err != nil {
		return err
	}

	if err := a.client.Connect(ctx, a.cfg.Endpoint, a.cfg.ConnectTimeout); err != nil {
		if a.cfg.OneShot {
			return err
		}
		// Interactive runs keep going; sends will report ErrNotConnected and
		// the user can still browse local history.
		a.logger.Warn("Connection failed; continuing offline.", "error", err)
		fmt.Fprintf(a.outW, "Warning: %v\n", err)
	}

	r := repl.New(a.inR, a.outW, a.client, a.store, sessionID, a.file.Servers)
	if a.cfg.OneShot {
		return r.RunOnce(ctx, a.cfg.CommandText, oneShotTimeout)
	}
	return r.Run(ctx)
}

// resolveSession picks the active session id: an explicit id must exist, the
// continue flag resumes the most recent session, and everything else starts
// fresh.
func (a *App) resolveSession(ctx context.Context) (string, error) {
	logger := ctxlog.FromContext(ctx)

	if a.cfg.SessionID != "" {
		if _, ok := a.store.Get(ctx, a.cfg.SessionID); !ok {
			return "", fmt.Errorf("session %q not found under %s", a.cfg.SessionID, a.cfg.SessionDir)
		}
		logger.Debug("Resuming explicit session.", "session_id", a.cfg.SessionID)
		return a.cfg.SessionID, nil
	}

	if a.cfg.ContinueLast {
		if id, ok := a.store.MostRecent(ctx); ok {
			logger.Debug("Continuing most recent session.", "session_id", id)
			return id, nil
		}
		logger.Debug("No session to continue; starting a new one.")
	}

	return a.store.Create(ctx)
}
