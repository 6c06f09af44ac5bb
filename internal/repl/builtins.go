package repl

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

const helpText = `Built-in commands:
  help               show this help
  status             connection state and known servers
  clear              clear the screen
  history            show the current session transcript
  sessions           list recent sessions
  exit, quit         disconnect and leave

Anything else is classified and forwarded to the remote runtime, e.g.:
  read package.json
  git commit "fix bug"
  analyze the codebase
  connect server github
  list tools for github
  how does the scheduler work?
`

const sessionListLimit = 10

// builtin recognizes the REPL's own commands before any classification. It
// returns handled=false when the line is not a builtin, and done=true when
// the loop should stop.
func (r *REPL) builtin(ctx context.Context, line string) (done, handled bool) {
	switch strings.ToLower(strings.Fields(line)[0]) {
	case "help":
		fmt.Fprint(r.out, helpText)
		return false, true
	case "status":
		r.printStatus()
		return false, true
	case "clear":
		fmt.Fprint(r.out, "\033[2J\033[H")
		return false, true
	case "history":
		r.printHistory(ctx)
		return false, true
	case "sessions":
		r.printSessions(ctx)
		return false, true
	case "exit", "quit":
		return true, true
	}
	return false, false
}

func (r *REPL) printStatus() {
	fmt.Fprintf(r.out, "Connection: %s\n", r.client.State())
	fmt.Fprintf(r.out, "Session: %s\n", r.sessionID)

	r.mu.Lock()
	records := make([]serverRecord, 0, len(r.servers))
	for _, rec := range r.servers {
		records = append(records, rec)
	}
	r.mu.Unlock()

	if len(records) == 0 {
		fmt.Fprintln(r.out, "No servers reported yet.")
		return
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	for _, rec := range records {
		fmt.Fprintf(r.out, "  %-20s %-12s %d tools\n", rec.ID, rec.Status, rec.ToolCount)
	}
}

func (r *REPL) printHistory(ctx context.Context) {
	sess, ok := r.store.Get(ctx, r.sessionID)
	if !ok || len(sess.History) == 0 {
		fmt.Fprintln(r.out, "No history yet.")
		return
	}
	for _, e := range sess.History {
		fmt.Fprintf(r.out, "  [%s] %-8s %s\n", e.Timestamp.Format("15:04:05"), e.Type, e.Content)
	}
}

func (r *REPL) printSessions(ctx context.Context) {
	summaries := r.store.List(ctx, sessionListLimit)
	if len(summaries) == 0 {
		fmt.Fprintln(r.out, "No stored sessions.")
		return
	}
	for _, s := range summaries {
		marker := " "
		if s.ID == r.sessionID {
			marker = "*"
		}
		fmt.Fprintf(r.out, "%s %s  created %s  %d entries\n",
			marker, s.ID, s.Created.Format("2006-01-02 15:04"), s.EntryCount)
	}
}
