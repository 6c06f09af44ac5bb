package repl

import (
	"fmt"

	"github.com/vk/agentconsole/internal/history"
	"github.com/vk/agentconsole/internal/protocol"
)

// The REPL subscribes itself to the transport client. Handlers run on the
// socket's receive goroutine, so everything they touch is either locked
// (server cache) or already safe (the store, the output writer via fmt).

// OnServerConnected records and announces a tool server coming up.
func (r *REPL) OnServerConnected(server protocol.ServerInfo) {
	r.mu.Lock()
	r.servers[server.ID] = serverRecord{ID: server.ID, Status: server.Status, ToolCount: server.ToolsCount}
	r.mu.Unlock()
	fmt.Fprintf(r.out, "\n[server %s connected]\n%s", server.ID, prompt)
}

// OnServerDisconnected drops a server from the display cache.
func (r *REPL) OnServerDisconnected(serverID string) {
	r.mu.Lock()
	delete(r.servers, serverID)
	r.mu.Unlock()
	fmt.Fprintf(r.out, "\n[server %s disconnected]\n%s", serverID, prompt)
}

// OnToolsList renders a server's tool inventory.
func (r *REPL) OnToolsList(serverID string, tools []protocol.ToolInfo) {
	fmt.Fprintf(r.out, "\nTools on %s:\n", serverID)
	if len(tools) == 0 {
		fmt.Fprintln(r.out, "  (none)")
	}
	for _, t := range tools {
		fmt.Fprintf(r.out, "  %-24s %s\n", t.Name, t.Description)
	}
	fmt.Fprint(r.out, prompt)
}

// OnServersList replaces the display cache with the runtime's snapshot.
func (r *REPL) OnServersList(servers map[string]protocol.ServerInfo) {
	r.replaceServers(servers)
	fmt.Fprintf(r.out, "\nServers: %d known\n", len(servers))
	for id, s := range servers {
		fmt.Fprintf(r.out, "  %-20s %-12s %d tools\n", id, s.Status, s.ToolsCount)
	}
	fmt.Fprint(r.out, prompt)
}

// OnQueryResponse renders a reply and appends it to the transcript. Which
// outbound query it answers is unknowable; entries land in arrival order.
func (r *REPL) OnQueryResponse(query, response string) {
	r.store.Append(r.appendCtx, r.sessionID, history.Entry{Type: history.EntryResponse, Content: response})
	fmt.Fprintf(r.out, "\n%s\n%s", response, prompt)
}

// OnThinking renders a progress notice.
func (r *REPL) OnThinking(message string) {
	fmt.Fprintf(r.out, "\n[thinking] %s\n%s", message, prompt)
}

// OnStatus refreshes the display cache when the status frame carries servers.
func (r *REPL) OnStatus(servers map[string]protocol.ServerInfo) {
	if servers != nil {
		r.replaceServers(servers)
	}
}

// OnRemoteError renders an explicit error frame. Remote errors are never
// fatal; the loop keeps prompting.
func (r *REPL) OnRemoteError(message string) {
	fmt.Fprintf(r.out, "\n[remote error] %s\n%s", message, prompt)
}

func (r *REPL) replaceServers(servers map[string]protocol.ServerInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.servers = make(map[string]serverRecord, len(servers))
	for id, s := range servers {
		r.servers[id] = serverRecord{ID: id, Status: s.Status, ToolCount: s.ToolsCount}
	}
}
