package repl

import (
	"context"
	"fmt"

	"github.com/vk/agentconsole/internal/ctxlog"
	"github.com/vk/agentconsole/internal/history"
	"github.com/vk/agentconsole/internal/intent"
	"github.com/vk/agentconsole/internal/protocol"
)

// developmentFraming wraps unclassified input that still smells like a
// development request, so the remote runtime treats it as one.
const developmentFraming = "You are a development assistant. Help with the following request: %s"

// dispatch routes one classified command. File, version-control, and
// analysis kinds are rewritten into a natural-language instruction and sent
// as a generic query; interpretation is delegated entirely to the remote
// runtime. Server-management kinds call the transport with structured
// parameters. Unknown text goes out as a plain query, framed as a
// development request when the vocabulary says so.
func (r *REPL) dispatch(ctx context.Context, cmd intent.Command) {
	switch {
	case cmd.Kind.IsFileOp() || cmd.Kind.IsVCSOp() || cmd.Kind.IsAnalysisOp():
		r.sendQuery(ctx, InstructionFor(cmd))
	case cmd.Kind.IsServerOp():
		r.sendServerCommand(ctx, cmd)
	case cmd.Kind == intent.KindQuery:
		r.sendQuery(ctx, cmd.Query)
	default:
		text := cmd.Text
		if intent.IsDevelopmentCommand(text) {
			text = fmt.Sprintf(developmentFraming, text)
		}
		r.sendQuery(ctx, text)
	}
}

// sendQuery forwards one natural-language instruction as a query command.
// The send is fire-and-forget; the loop re-prompts immediately and the reply,
// if any, renders on arrival.
func (r *REPL) sendQuery(ctx context.Context, query string) {
	r.store.Append(ctx, r.sessionID, history.Entry{Type: history.EntryQuery, Content: query})

	err := r.client.SendCommand(ctx, protocol.CmdQuery, map[string]any{"query": query})
	if err != nil {
		r.reportSendError(ctx, err)
	}
}

// sendServerCommand issues a structured server-management command. No string
// rewriting happens here.
func (r *REPL) sendServerCommand(ctx context.Context, cmd intent.Command) {
	var (
		name   string
		params map[string]any
	)
	switch cmd.Kind {
	case intent.KindConnectServer:
		cfg := r.serverConfigs[cmd.ServerID]
		if cfg == nil {
			cfg = map[string]any{}
		}
		name = protocol.CmdConnectServer
		params = map[string]any{"server_id": cmd.ServerID, "server_config": cfg}
	case intent.KindDisconnectServer:
		name = protocol.CmdDisconnectServer
		params = map[string]any{"server_id": cmd.ServerID}
	case intent.KindListServers:
		name = protocol.CmdGetServers
		params = map[string]any{}
	case intent.KindListTools:
		name = protocol.CmdListTools
		params = map[string]any{"server_id": cmd.ServerID}
	}

	if err := r.client.SendCommand(ctx, name, params); err != nil {
		r.reportSendError(ctx, err)
	}
}

func (r *REPL) reportSendError(ctx context.Context, err error) {
	ctxlog.FromContext(ctx).Warn("Send failed.", "error", err)
	fmt.Fprintf(r.out, "Could not send: %v\n", err)
}

// InstructionFor rewrites a file, version-control, or analysis command into
// the single natural-language instruction forwarded to the remote runtime.
// The instruction names the operation and serializes its parameters; the
// remote side decides what the operation actually means.
func InstructionFor(cmd intent.Command) string {
	switch cmd.Kind {
	case intent.KindReadFile:
		return fmt.Sprintf("Read the file %q and show its contents.", cmd.FilePath)
	case intent.KindWriteFile:
		if cmd.Content != "" {
			return fmt.Sprintf("Create or overwrite the file %q with the following content: %s", cmd.FilePath, cmd.Content)
		}
		return fmt.Sprintf("Create the file %q.", cmd.FilePath)
	case intent.KindListFiles:
		return fmt.Sprintf("List the files in the directory %q.", cmd.Directory)
	case intent.KindSearchFiles:
		if cmd.Directory != "" {
			return fmt.Sprintf("Search for the pattern %q in %q and report the matches.", cmd.Pattern, cmd.Directory)
		}
		return fmt.Sprintf("Search the project for the pattern %q and report the matches.", cmd.Pattern)
	case intent.KindGitStatus:
		return "Run git status and summarize the working tree state."
	case intent.KindGitCommit:
		return fmt.Sprintf("Commit the staged changes with the message %q.", cmd.Message)
	case intent.KindGitDiff:
		return "Show the current git diff."
	case intent.KindGitLog:
		if cmd.Limit > 0 {
			return fmt.Sprintf("Show the last %d git commits.", cmd.Limit)
		}
		return "Show the recent git commit log."
	case intent.KindGitPush:
		return "Push the current branch to its remote."
	case intent.KindGitPull:
		return "Pull the latest changes for the current branch."
	case intent.KindAnalyzeCode:
		return fmt.Sprintf("Analyze the codebase under %q and report its structure and notable issues.", cmd.Directory)
	case intent.KindFindSymbol:
		return fmt.Sprintf("Find the definition of the symbol %q and explain where it is used.", cmd.Symbol)
	default:
		return cmd.Text
	}
}
