// Package intent classifies raw console input into structured commands. The
// classifier is a pure function over an explicitly ordered rule table; it
// never fails, never consults state, and leaves interpretation of the
// resulting command entirely to the caller.
package intent

// Kind discriminates the command variants a line of input can classify into.
type Kind string

const (
	KindReadFile    Kind = "read_file"
	KindWriteFile   Kind = "write_file"
	KindListFiles   Kind = "list_files"
	KindSearchFiles Kind = "search_files"

	KindGitStatus Kind = "git_status"
	KindGitCommit Kind = "git_commit"
	KindGitDiff   Kind = "git_diff"
	KindGitLog    Kind = "git_log"
	KindGitPush   Kind = "git_push"
	KindGitPull   Kind = "git_pull"

	KindAnalyzeCode Kind = "analyze_codebase"
	KindFindSymbol  Kind = "find_symbol"

	KindConnectServer    Kind = "connect_server"
	KindDisconnectServer Kind = "disconnect_server"
	KindListServers      Kind = "list_servers"
	KindListTools        Kind = "list_tools"

	KindQuery   Kind = "query"
	KindUnknown Kind = "unknown"
)

// Command is the typed result of classifying one line of input. Only the
// fields relevant to the Kind are populated; the zero value of every other
// field is meaningless and must be ignored. Commands are produced exclusively
// by Parse and never mutated afterwards.
type Command struct {
	Kind Kind

	FilePath  string
	Content   string
	Pattern   string
	Directory string
	ServerID  string
	Config    map[string]any
	Symbol    string
	Message   string
	Limit     int
	Query     string

	// Text preserves the original input for KindUnknown.
	Text string
}

// IsFileOp reports whether the kind is a local-file operation.
func (k Kind) IsFileOp() bool {
	switch k {
	case KindReadFile, KindWriteFile, KindListFiles, KindSearchFiles:
		return true
	}
	return false
}

// IsVCSOp reports whether the kind is a version-control operation.
func (k Kind) IsVCSOp() bool {
	switch k {
	case KindGitStatus, KindGitCommit, KindGitDiff, KindGitLog, KindGitPush, KindGitPull:
		return true
	}
	return false
}

// IsAnalysisOp reports whether the kind is a codebase-analysis operation.
func (k Kind) IsAnalysisOp() bool {
	switch k {
	case KindAnalyzeCode, KindFindSymbol:
		return true
	}
	return false
}

// IsServerOp reports whether the kind manages remote tool servers. Server
// operations go to the transport as structured commands, never as rewritten
// natural-language instructions.
func (k Kind) IsServerOp() bool {
	switch k {
	case KindConnectServer, KindDisconnectServer, KindListServers, KindListTools:
		return true
	}
	return false
}
