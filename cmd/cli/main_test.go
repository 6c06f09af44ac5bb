package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/agentconsole/internal/cli"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}

	// The "-h" flag should cause cli.Parse to request a clean exit.
	err := run(strings.NewReader(""), out, &bytes.Buffer{}, []string{"-h"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Usage:", "expected help text on the output writer")
}

func TestRun_InvalidFlags(t *testing.T) {
	t.Parallel()

	err := run(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}, []string{"-log-format", "xml"})

	require.Error(t, err)
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestRun_BadConfigFileSurfacesError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := dir + "/config.hcl"
	require.NoError(t, writeFile(configPath, "endpoint = {"))

	err := run(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{},
		[]string{"-config", configPath, "-session-dir", dir})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config")
}
