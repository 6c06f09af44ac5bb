// Package protocol defines the wire vocabulary spoken over the persistent
// socket to the remote agent runtime. Outbound frames are flat objects with a
// "command" discriminant; inbound frames carry a "type" discriminant. There is
// no request/response correlation identifier anywhere in the protocol: replies
// are matched to requests only by arrival order, and the runtime may interleave
// unsolicited events between them.
package protocol

// Outbound command names.
const (
	CmdQuery            = "query"
	CmdGetServers       = "get_servers"
	CmdListTools        = "list_tools"
	CmdConnectServer    = "connect_server"
	CmdDisconnectServer = "disconnect_server"
)

// Inbound event types.
const (
	EventServerConnected    = "server_connected"
	EventServerDisconnected = "server_disconnected"
	EventToolsList          = "tools_list"
	EventServersList        = "servers_list"
	EventQueryResponse      = "query_response"
	EventThinking           = "thinking"
	EventStatus             = "status"
	EventError              = "error"
)

// Socket.io event names the frames travel on. A single duplex event pair keeps
// the discriminant inside the payload, matching the runtime's framing.
const (
	SocketOutboundEvent = "command"
	SocketInboundEvent  = "message"
)

// Frame is one decoded inbound message. Fields beyond the discriminant stay
// in raw form; typed accessors below pull out what each handler needs.
type Frame map[string]any

// Type returns the frame's discriminant, or "" when absent.
func (f Frame) Type() string {
	return f.String("type")
}

// String returns the named field as a string, or "" when absent or not a string.
func (f Frame) String(key string) string {
	s, _ := f[key].(string)
	return s
}

// Object returns the named field as a nested object, or nil.
func (f Frame) Object(key string) map[string]any {
	m, _ := f[key].(map[string]any)
	return m
}

// ServerInfo describes one remote tool server as reported by the runtime.
type ServerInfo struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	ToolsCount int    `json:"tools_count"`
}

// ToolInfo describes one tool exposed by a connected server.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ServerInfoFrom reads a ServerInfo out of a raw frame object. Absent or
// mistyped fields decode to zero values; the runtime is trusted only as far
// as the fields it actually sent.
func ServerInfoFrom(obj map[string]any) ServerInfo {
	info := ServerInfo{}
	if obj == nil {
		return info
	}
	info.ID, _ = obj["id"].(string)
	info.Status, _ = obj["status"].(string)
	switch n := obj["tools_count"].(type) {
	case float64:
		info.ToolsCount = int(n)
	case int:
		info.ToolsCount = n
	}
	return info
}

// ToolInfosFrom reads a tools array out of a raw frame value.
func ToolInfosFrom(v any) []ToolInfo {
	raw, _ := v.([]any)
	tools := make([]ToolInfo, 0, len(raw))
	for _, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		var t ToolInfo
		t.Name, _ = obj["name"].(string)
		t.Description, _ = obj["description"].(string)
		tools = append(tools, t)
	}
	return tools
}
