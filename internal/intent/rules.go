package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// rule is one entry in the classification cascade. Rules are evaluated in
// slice order and the first match wins; Priority makes the intended ordering
// explicit so a reordered table fails its test instead of silently changing
// which overlapping rule captures an input.
type rule struct {
	Priority int
	Name     string
	Pattern  *regexp.Regexp
	Build    func(groups []string) Command
}

// rules is the full cascade, declared family by family: file operations,
// version-control operations, codebase-analysis operations, server-management
// operations, explicit query prefixes. Implicit question detection and the
// unknown fallback live in Parse itself, after the table.
//
// Categories overlap. A bare "status" is taken by the git-status
// rule; "show changes" is taken by git-diff even though "show" also opens
// files. Declaration order is the only tie-break.
var rules = []rule{
	// --- file operations ---
	{
		Priority: 10, Name: "read_file",
		Pattern: regexp.MustCompile(`(?i)^(?:read|cat|open)\s+(?:the\s+)?(?:file\s+)?(\S+)$`),
		Build:   func(g []string) Command { return Command{Kind: KindReadFile, FilePath: g[1]} },
	},
	{
		Priority: 20, Name: "write_file",
		Pattern: regexp.MustCompile(`(?i)^(?:write|create)\s+(?:a\s+)?(?:new\s+)?file\s+(\S+)(?:\s+with\s+(.+))?$`),
		Build: func(g []string) Command {
			return Command{Kind: KindWriteFile, FilePath: g[1], Content: g[2]}
		},
	},
	{
		Priority: 30, Name: "list_files",
		Pattern: regexp.MustCompile(`(?i)^(?:(?:list|show)\s+(?:the\s+)?files?(?:\s+(?:in|of|under)\s+(\S+))?|ls(?:\s+(\S+))?)$`),
		Build: func(g []string) Command {
			dir := g[1]
			if dir == "" {
				dir = g[2]
			}
			if dir == "" {
				dir = "."
			}
			return Command{Kind: KindListFiles, Directory: dir}
		},
	},
	{
		Priority: 40, Name: "search_files",
		Pattern: regexp.MustCompile(`(?i)^(?:search|grep)\s+(?:for\s+)?"?([^"]+?)"?(?:\s+in\s+(\S+))?$`),
		Build: func(g []string) Command {
			return Command{Kind: KindSearchFiles, Pattern: g[1], Directory: g[2]}
		},
	},

	// --- version-control operations ---
	{
		Priority: 110, Name: "git_status",
		Pattern: regexp.MustCompile(`(?i)^(?:git\s+)?status$`),
		Build:   func(g []string) Command { return Command{Kind: KindGitStatus} },
	},
	{
		Priority: 120, Name: "git_commit",
		Pattern: regexp.MustCompile(`(?i)^(?:git\s+)?commit\s+(?:-m\s+)?"?([^"]+)"?$`),
		Build:   func(g []string) Command { return Command{Kind: KindGitCommit, Message: g[1]} },
	},
	{
		Priority: 130, Name: "git_diff",
		Pattern: regexp.MustCompile(`(?i)^(?:(?:git\s+)?diff|show\s+(?:me\s+)?(?:the\s+)?changes)$`),
		Build:   func(g []string) Command { return Command{Kind: KindGitDiff} },
	},
	{
		Priority: 140, Name: "git_log",
		Pattern: regexp.MustCompile(`(?i)^(?:git\s+)?log(?:\s+(\d+))?$`),
		Build: func(g []string) Command {
			limit := 0
			if g[1] != "" {
				limit, _ = strconv.Atoi(g[1])
			}
			return Command{Kind: KindGitLog, Limit: limit}
		},
	},
	{
		Priority: 150, Name: "git_push",
		Pattern: regexp.MustCompile(`(?i)^git\s+push$`),
		Build:   func(g []string) Command { return Command{Kind: KindGitPush} },
	},
	{
		Priority: 160, Name: "git_pull",
		Pattern: regexp.MustCompile(`(?i)^git\s+pull$`),
		Build:   func(g []string) Command { return Command{Kind: KindGitPull} },
	},

	// --- codebase-analysis operations ---
	{
		Priority: 210, Name: "analyze_codebase",
		Pattern: regexp.MustCompile(`(?i)^analy[sz]e\s+(?:the\s+)?(?:code(?:base)?|project|repo(?:sitory)?)(?:\s+(?:in|at)\s+(\S+))?$`),
		Build: func(g []string) Command {
			dir := g[1]
			if dir == "" {
				dir = "."
			}
			return Command{Kind: KindAnalyzeCode, Directory: dir}
		},
	},
	{
		Priority: 220, Name: "find_symbol",
		Pattern: regexp.MustCompile(`(?i)^(?:find|locate)\s+(?:the\s+)?(?:function|method|class|type|symbol)\s+(\S+)$`),
		Build:   func(g []string) Command { return Command{Kind: KindFindSymbol, Symbol: g[1]} },
	},
	{
		Priority: 230, Name: "find_symbol_where",
		Pattern: regexp.MustCompile(`(?i)^where\s+is\s+(\S+)\s+defined\??$`),
		Build:   func(g []string) Command { return Command{Kind: KindFindSymbol, Symbol: g[1]} },
	},

	// --- server-management operations ---
	{
		Priority: 310, Name: "list_servers",
		Pattern: regexp.MustCompile(`(?i)^(?:(?:list|show)\s+servers|servers)$`),
		Build:   func(g []string) Command { return Command{Kind: KindListServers} },
	},
	{
		Priority: 320, Name: "list_tools",
		Pattern: regexp.MustCompile(`(?i)^(?:(?:list|show)\s+tools(?:\s+(?:for|on)\s+(\S+))?|tools)$`),
		Build:   func(g []string) Command { return Command{Kind: KindListTools, ServerID: g[1]} },
	},
	{
		Priority: 330, Name: "connect_server",
		Pattern: regexp.MustCompile(`(?i)^connect\s+(?:to\s+)?(?:server\s+)?(\S+)$`),
		Build:   func(g []string) Command { return Command{Kind: KindConnectServer, ServerID: g[1]} },
	},
	{
		Priority: 340, Name: "disconnect_server",
		Pattern: regexp.MustCompile(`(?i)^disconnect\s+(?:from\s+)?(?:server\s+)?(\S+)$`),
		Build:   func(g []string) Command { return Command{Kind: KindDisconnectServer, ServerID: g[1]} },
	},

	// --- explicit query prefixes ---
	{
		Priority: 410, Name: "explicit_query",
		Pattern: regexp.MustCompile(`(?i)^(?:ask|query|q:)\s*(.+)$`),
		Build:   func(g []string) Command { return Command{Kind: KindQuery, Query: strings.TrimSpace(g[1])} },
	},
}

// interrogatives are the sentence openers that mark a line as an implicit
// question when no earlier rule claimed it.
var interrogatives = map[string]bool{
	"what": true, "how": true, "why": true, "when": true, "where": true,
	"who": true, "which": true, "can": true, "could": true, "should": true,
	"would": true, "is": true, "are": true, "do": true, "does": true,
	"did": true, "will": true,
}

// developmentVocabulary is the fixed keyword set behind IsDevelopmentCommand:
// read/write verbs, git verbs, and analysis verbs. Membership of any word is
// enough; the predicate informs framing only, never classification.
var developmentVocabulary = map[string]bool{
	"read": true, "write": true, "open": true, "edit": true, "create": true,
	"delete": true, "rename": true, "file": true, "files": true, "directory": true,
	"git": true, "commit": true, "push": true, "pull": true, "merge": true,
	"branch": true, "diff": true, "log": true, "status": true, "checkout": true,
	"analyze": true, "refactor": true, "debug": true, "fix": true, "test": true,
	"build": true, "compile": true, "run": true, "implement": true, "function": true,
	"class": true, "bug": true, "code": true, "search": true, "grep": true,
}
