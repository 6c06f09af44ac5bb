// Package repl runs the interactive console loop. The REPL owns exactly one
// active session: it short-circuits built-in commands, classifies everything
// else, and routes the result to the transport client or the session store.
// Inbound frames render as they arrive, interleaved with whatever the user
// has since typed; history order is arrival order, not issuance order.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/vk/agentconsole/internal/ctxlog"
	"github.com/vk/agentconsole/internal/history"
	"github.com/vk/agentconsole/internal/intent"
	"github.com/vk/agentconsole/internal/transport"
)

const prompt = "> "

// serverRecord is the local display cache of one remote tool server. It
// mirrors inbound events for the `status` builtin and is never written back
// to the remote side.
type serverRecord struct {
	ID        string
	Status    string
	ToolCount int
}

// REPL drives one interactive console run against one session.
type REPL struct {
	in  io.Reader
	out io.Writer

	client *transport.Client
	store  *history.Store

	sessionID     string
	serverConfigs map[string]map[string]any

	mu      sync.Mutex
	servers map[string]serverRecord

	// appendCtx carries the logger for history writes triggered by inbound
	// frames, which arrive outside any caller context.
	appendCtx context.Context
}

// New constructs a REPL bound to an existing session id. serverConfigs holds
// the configured server_config payload per server id for connect_server.
func New(in io.Reader, out io.Writer, client *transport.Client, store *history.Store, sessionID string, serverConfigs map[string]map[string]any) *REPL {
	return &REPL{
		in:            in,
		out:           out,
		client:        client,
		store:         store,
		sessionID:     sessionID,
		serverConfigs: serverConfigs,
		servers:       make(map[string]serverRecord),
		appendCtx:     context.Background(),
	}
}

// Run executes the input loop until exit, EOF, or context cancellation. An
// interrupt follows the same graceful path as the exit builtin: disconnect,
// best-effort session summary, return. Run always leaves the transport
// closed.
func (r *REPL) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	r.appendCtx = ctxlog.WithLogger(context.Background(), logger)
	r.client.Subscribe(r)

	fmt.Fprintf(r.out, "Session %s — type 'help' for commands.\n", r.sessionID)

	// The reader selects on ctx so it never stays parked on a send after Run
	// returns through cancellation with a line still pending.
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	defer r.shutdown(ctx)

	for {
		fmt.Fprint(r.out, prompt)
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out)
			logger.Debug("Interrupt received; leaving input loop.")
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(r.out)
				return nil
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			if !r.handleLine(ctx, line) {
				return nil
			}
		}
	}
}

// handleLine processes one non-blank input line. It returns false when the
// loop should stop. Recoverable errors are printed and logged; the user
// always gets another prompt.
func (r *REPL) handleLine(ctx context.Context, line string) bool {
	trimmed := strings.TrimSpace(line)

	r.store.Append(ctx, r.sessionID, history.Entry{Type: history.EntryUser, Content: trimmed})

	if done, handled := r.builtin(ctx, trimmed); handled {
		return !done
	}

	r.dispatch(ctx, intent.Parse(trimmed))
	return true
}

// shutdown is the single exit path shared by the exit builtin, EOF, and
// interrupts. Printing the summary is best-effort and must not fail when the
// session is unavailable.
func (r *REPL) shutdown(ctx context.Context) {
	r.client.Disconnect()
	if sess, ok := r.store.Get(ctx, r.sessionID); ok {
		fmt.Fprintf(r.out, "Session %s saved (%d entries).\n", sess.ID, len(sess.History))
	}
	fmt.Fprintln(r.out, "Goodbye.")
}
