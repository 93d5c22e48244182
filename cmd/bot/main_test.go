package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()

	f := cmd.Flags().Lookup("env-file")
	require.NotNil(t, f)
	assert.Equal(t, ".env", f.DefValue)
	assert.NotNil(t, cmd.Flags().Lookup("log-level"))
}

func TestRootCmd_MissingToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "none.env")})
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(context.Background())
	assert.ErrorContains(t, err, "TELEGRAM_BOT_TOKEN")
}
