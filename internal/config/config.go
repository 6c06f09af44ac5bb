// Package config loads the optional HCL configuration file. The file sets
// defaults the command line can override, and declares the tool servers the
// user may ask the remote runtime to connect: each `server` block body is
// free-form and travels verbatim as the server_config of a connect_server
// command.
package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/agentconsole/internal/ctxlog"
)

// File is the decoded configuration file. All fields are optional in the
// file; zero values mean "not set" and defer to flag defaults.
type File struct {
	Endpoint       string
	ConnectTimeout time.Duration
	SessionDir     string
	LogLevel       string
	LogFormat      string

	// Servers maps a server id to its free-form configuration attributes.
	Servers map[string]map[string]any
}

// fileRoot mirrors the HCL file layout for gohcl decoding.
type fileRoot struct {
	Endpoint       string         `hcl:"endpoint,optional"`
	ConnectTimeout string         `hcl:"connect_timeout,optional"`
	SessionDir     string         `hcl:"session_dir,optional"`
	LogLevel       string         `hcl:"log_level,optional"`
	LogFormat      string         `hcl:"log_format,optional"`
	Servers        []*serverBlock `hcl:"server,block"`
}

type serverBlock struct {
	ID   string   `hcl:"id,label"`
	Body hcl.Body `hcl:",remain"`
}

// Load reads and decodes the configuration file at path. A missing file is
// not an error: the zero-value File is returned so the caller falls through
// to its flag defaults. A present but invalid file is an error; silently
// ignoring a typo-ridden config helps nobody.
func Load(ctx context.Context, path string) (*File, error) {
	logger := ctxlog.FromContext(ctx)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Debug("No configuration file found.", "path", path)
		return &File{Servers: map[string]map[string]any{}}, nil
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}

	out := &File{
		Endpoint:   root.Endpoint,
		SessionDir: root.SessionDir,
		LogLevel:   root.LogLevel,
		LogFormat:  root.LogFormat,
		Servers:    make(map[string]map[string]any, len(root.Servers)),
	}

	if root.ConnectTimeout != "" {
		d, err := time.ParseDuration(root.ConnectTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid connect_timeout in %s: %w", path, err)
		}
		out.ConnectTimeout = d
	}

	for _, blk := range root.Servers {
		attrs, err := decodeServerBody(blk.Body)
		if err != nil {
			return nil, fmt.Errorf("invalid server %q in %s: %w", blk.ID, path, err)
		}
		out.Servers[blk.ID] = attrs
	}

	logger.Debug("Configuration file loaded.", "path", path, "server_count", len(out.Servers))
	return out, nil
}

// decodeServerBody evaluates every attribute of a server block into plain Go
// values. Expressions must be constant; there is no eval context to resolve
// variables against.
func decodeServerBody(body hcl.Body) (map[string]any, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("server blocks may only contain attributes: %w", diags)
	}

	out := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("attribute %q: %w", name, diags)
		}
		goVal, err := ctyValueToInterface(val)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		out[name] = goVal
	}
	return out, nil
}
