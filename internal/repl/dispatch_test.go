package repl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vk/agentconsole/internal/intent"
)

func TestInstructionFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cmd  intent.Command
		want string
	}{
		{
			name: "read file",
			cmd:  intent.Command{Kind: intent.KindReadFile, FilePath: "main.go"},
			want: `Read the file "main.go" and show its contents.`,
		},
		{
			name: "write file with content",
			cmd:  intent.Command{Kind: intent.KindWriteFile, FilePath: "a.txt", Content: "hi"},
			want: `Create or overwrite the file "a.txt" with the following content: hi`,
		},
		{
			name: "list files",
			cmd:  intent.Command{Kind: intent.KindListFiles, Directory: "internal"},
			want: `List the files in the directory "internal".`,
		},
		{
			name: "search scoped",
			cmd:  intent.Command{Kind: intent.KindSearchFiles, Pattern: "TODO", Directory: "pkg"},
			want: `Search for the pattern "TODO" in "pkg" and report the matches.`,
		},
		{
			name: "git commit",
			cmd:  intent.Command{Kind: intent.KindGitCommit, Message: "fix bug"},
			want: `Commit the staged changes with the message "fix bug".`,
		},
		{
			name: "git log limited",
			cmd:  intent.Command{Kind: intent.KindGitLog, Limit: 3},
			want: "Show the last 3 git commits.",
		},
		{
			name: "analyze",
			cmd:  intent.Command{Kind: intent.KindAnalyzeCode, Directory: "."},
			want: `Analyze the codebase under "." and report its structure and notable issues.`,
		},
		{
			name: "find symbol",
			cmd:  intent.Command{Kind: intent.KindFindSymbol, Symbol: "Run"},
			want: `Find the definition of the symbol "Run" and explain where it is used.`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, InstructionFor(tc.cmd))
		})
	}
}

func TestQueryText(t *testing.T) {
	t.Parallel()

	// Operations keep their rewritten instruction form.
	assert.Equal(t,
		`Read the file "go.mod" and show its contents.`,
		queryText(intent.Command{Kind: intent.KindReadFile, FilePath: "go.mod"}))

	// Explicit queries pass through.
	assert.Equal(t, "what is this", queryText(intent.Command{Kind: intent.KindQuery, Query: "what is this"}))

	// Development-flavored unknowns get the assistant framing.
	framed := queryText(intent.Command{Kind: intent.KindUnknown, Text: "make the build green"})
	assert.Contains(t, framed, "development assistant")
	assert.Contains(t, framed, "make the build green")

	// Plain unknowns go verbatim.
	assert.Equal(t, "a poem please", queryText(intent.Command{Kind: intent.KindUnknown, Text: "a poem please"}))

	// Server kinds become worded requests, since only query_response can
	// complete the one-shot wait.
	assert.Equal(t, `Connect the tool server "github".`,
		queryText(intent.Command{Kind: intent.KindConnectServer, ServerID: "github"}))
	assert.Equal(t, "List the currently known tool servers.",
		queryText(intent.Command{Kind: intent.KindListServers}))
}
