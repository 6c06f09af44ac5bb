package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrame_Accessors(t *testing.T) {
	t.Parallel()

	frame := Frame{
		"type":     "query_response",
		"response": "hello",
		"server":   map[string]any{"id": "fs"},
		"count":    float64(2),
	}

	assert.Equal(t, "query_response", frame.Type())
	assert.Equal(t, "hello", frame.String("response"))
	assert.Equal(t, "", frame.String("missing"))
	assert.Equal(t, "", frame.String("count"), "non-string fields read as empty")
	assert.Equal(t, map[string]any{"id": "fs"}, frame.Object("server"))
	assert.Nil(t, frame.Object("response"))
}

func TestServerInfoFrom(t *testing.T) {
	t.Parallel()

	info := ServerInfoFrom(map[string]any{"id": "github", "status": "connected", "tools_count": float64(7)})
	assert.Equal(t, ServerInfo{ID: "github", Status: "connected", ToolsCount: 7}, info)

	assert.Zero(t, ServerInfoFrom(nil))
	assert.Zero(t, ServerInfoFrom(map[string]any{"id": 42, "tools_count": "many"}))
}

func TestToolInfosFrom(t *testing.T) {
	t.Parallel()

	tools := ToolInfosFrom([]any{
		map[string]any{"name": "search", "description": "code search"},
		"not an object",
		map[string]any{"name": "fetch"},
	})

	assert.Equal(t, []ToolInfo{
		{Name: "search", Description: "code search"},
		{Name: "fetch"},
	}, tools)

	assert.Empty(t, ToolInfosFrom(nil))
	assert.Empty(t, ToolInfosFrom("garbage"))
}
