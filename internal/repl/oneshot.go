package repl

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/agentconsole/internal/ctxlog"
	"github.com/vk/agentconsole/internal/history"
	"github.com/vk/agentconsole/internal/intent"
	"github.com/vk/agentconsole/internal/protocol"
)

// RunOnce sends one query and prints the first query_response that arrives,
// bounded by timeout. Unlike the interactive loop, any failure here is
// returned to the caller so the process can exit non-zero.
//
// Completion is decided by observing *any* query_response frame: the protocol
// has no correlation ids, and this is correct only while exactly one query is
// ever in flight on this path.
func (r *REPL) RunOnce(ctx context.Context, text string, timeout time.Duration) error {
	logger := ctxlog.FromContext(ctx)

	cmd := intent.Parse(text)
	query := queryText(cmd)

	r.store.Append(ctx, r.sessionID, history.Entry{Type: history.EntryUser, Content: text})
	r.store.Append(ctx, r.sessionID, history.Entry{Type: history.EntryQuery, Content: query})

	if err := r.client.SendCommand(ctx, protocol.CmdQuery, map[string]any{"query": query}); err != nil {
		return fmt.Errorf("failed to send query: %w", err)
	}
	logger.Debug("One-shot query sent; awaiting response.", "timeout", timeout)

	deadline := time.After(timeout)
	for {
		select {
		case frame := <-r.client.Raw():
			switch frame.Type() {
			case protocol.EventQueryResponse:
				response := frame.String("response")
				r.store.Append(ctx, r.sessionID, history.Entry{Type: history.EntryResponse, Content: response})
				fmt.Fprintln(r.out, response)
				return nil
			case protocol.EventError:
				return fmt.Errorf("remote error: %s", frame.String("error"))
			default:
				// Unsolicited event; keep waiting for the response.
			}
		case <-deadline:
			return fmt.Errorf("timed out after %v waiting for a response", timeout)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// queryText picks the natural-language form of a one-shot command. The
// one-shot path always speaks the query command, even for input the
// interactive loop would send as a structured server operation, because a
// query_response frame is the only completion signal it has.
func queryText(cmd intent.Command) string {
	switch {
	case cmd.Kind.IsFileOp() || cmd.Kind.IsVCSOp() || cmd.Kind.IsAnalysisOp():
		return InstructionFor(cmd)
	case cmd.Kind == intent.KindQuery:
		return cmd.Query
	case cmd.Kind == intent.KindUnknown:
		if intent.IsDevelopmentCommand(cmd.Text) {
			return fmt.Sprintf(developmentFraming, cmd.Text)
		}
		return cmd.Text
	default:
		// Server-management kinds: describe the request in words and let the
		// runtime answer it as a query, since only a query carries the
		// query_response completion signal this path relies on.
		switch cmd.Kind {
		case intent.KindConnectServer:
			return fmt.Sprintf("Connect the tool server %q.", cmd.ServerID)
		case intent.KindDisconnectServer:
			return fmt.Sprintf("Disconnect the tool server %q.", cmd.ServerID)
		case intent.KindListServers:
			return "List the currently known tool servers."
		case intent.KindListTools:
			if cmd.ServerID != "" {
				return fmt.Sprintf("List the tools available on server %q.", cmd.ServerID)
			}
			return "List the available tools."
		}
		return cmd.Text
	}
}
