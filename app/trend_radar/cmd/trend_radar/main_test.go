package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/config"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"report", "poll", "set-webhook"}, names)

	report, _, err := root.Find([]string{"report"})
	require.NoError(t, err)
	assert.NotNil(t, report.Flags().Lookup("dry-run"))
}

func TestReport_MissingCredentials(t *testing.T) {
	dir := t.TempDir()
	for _, k := range []string{"OPENROUTER_API_KEY", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "LLM_PROVIDER"} {
		t.Setenv(k, "")
	}

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"report", "--config", filepath.Join(dir, "none.yaml"), "--env-file", filepath.Join(dir, ".env")})

	err := root.Execute()
	var ce *config.ConfigError
	require.True(t, errors.As(err, &ce), "got %v", err)
	assert.Contains(t, ce.Missing, "TELEGRAM_BOT_TOKEN")
	assert.Contains(t, ce.Missing, "TELEGRAM_CHAT_ID")
}
