package transport

import (
	"fmt"

	"github.com/vk/agentconsole/internal/protocol"
)

// onInbound decodes one inbound frame and routes it. Malformed frames (no
// object payload, or no "type" discriminant) are logged and dropped; they are
// never fatal and never reach a handler. Every frame that does carry a
// discriminant is re-emitted verbatim on the raw channel before typed
// dispatch, whether or not the discriminant is recognized.
func (c *Client) onInbound(data ...any) {
	if len(data) == 0 {
		c.logger.Warn("Dropping empty inbound frame.")
		return
	}
	obj, ok := data[0].(map[string]any)
	if !ok {
		c.logger.Warn("Dropping malformed inbound frame.", "payload_type", fmt.Sprintf("%T", data[0]))
		return
	}

	frame := protocol.Frame(obj)
	frameType := frame.Type()
	if frameType == "" {
		c.logger.Debug("Dropping inbound frame without type discriminant.")
		return
	}

	select {
	case c.raw <- frame:
	default:
		c.logger.Warn("Raw frame channel full; dropping frame for raw consumers.", "type", frameType)
	}

	if !recognized(frameType) {
		c.logger.Debug("Ignoring unrecognized inbound frame type.", "type", frameType)
		return
	}

	c.mu.Lock()
	subscribers := make([]EventHandler, len(c.subscribers))
	copy(subscribers, c.subscribers)
	c.mu.Unlock()

	for _, h := range subscribers {
		dispatch(h, frame, frameType)
	}
}

func recognized(frameType string) bool {
	switch frameType {
	case protocol.EventServerConnected, protocol.EventServerDisconnected,
		protocol.EventToolsList, protocol.EventServersList,
		protocol.EventQueryResponse, protocol.EventThinking,
		protocol.EventStatus, protocol.EventError:
		return true
	}
	return false
}

// dispatch translates one frame into the matching typed handler call.
func dispatch(h EventHandler, frame protocol.Frame, frameType string) {
	switch frameType {
	case protocol.EventServerConnected:
		h.OnServerConnected(protocol.ServerInfoFrom(frame.Object("server")))
	case protocol.EventServerDisconnected:
		h.OnServerDisconnected(frame.String("server_id"))
	case protocol.EventToolsList:
		h.OnToolsList(frame.String("server_id"), protocol.ToolInfosFrom(frame["tools"]))
	case protocol.EventServersList:
		h.OnServersList(serverMapFrom(frame.Object("servers")))
	case protocol.EventQueryResponse:
		h.OnQueryResponse(frame.String("query"), frame.String("response"))
	case protocol.EventThinking:
		h.OnThinking(frame.String("message"))
	case protocol.EventStatus:
		h.OnStatus(serverMapFrom(frame.Object("servers")))
	case protocol.EventError:
		h.OnRemoteError(frame.String("error"))
	}
}

func serverMapFrom(obj map[string]any) map[string]protocol.ServerInfo {
	if obj == nil {
		return nil
	}
	servers := make(map[string]protocol.ServerInfo, len(obj))
	for id, v := range obj {
		entry, ok := v.(map[string]any)
		if !ok {
			continue
		}
		info := protocol.ServerInfoFrom(entry)
		if info.ID == "" {
			info.ID = id
		}
		servers[id] = info
	}
	return servers
}
