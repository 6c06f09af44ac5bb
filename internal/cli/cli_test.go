package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse(nil, out)

	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Empty(t, cfg.Endpoint, "endpoint defaulting happens in the app layer")
	assert.Zero(t, cfg.ConnectTimeout)
	assert.False(t, cfg.OneShot)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParse_Help(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{"-h"}, out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_FullInvocation(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{
		"-endpoint", "http://host:9000",
		"-timeout", "5s",
		"-session", "abc",
		"-oneshot",
		"list", "the", "servers",
	}, out)

	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Equal(t, "http://host:9000", cfg.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, "abc", cfg.SessionID)
	assert.True(t, cfg.OneShot)
	assert.Equal(t, "list the servers", cfg.CommandText)
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args []string
	}{
		{name: "bad flag", args: []string{"-definitely-not-a-flag"}},
		{name: "bad log format", args: []string{"-log-format", "xml"}},
		{name: "bad log level", args: []string{"-log-level", "loud"}},
		{name: "session and continue together", args: []string{"-session", "abc", "-continue"}},
		{name: "oneshot without text", args: []string{"-oneshot"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			require.Error(t, err)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}
