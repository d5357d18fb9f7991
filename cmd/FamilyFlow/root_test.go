package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommands(t *testing.T) {
	root := newRoot()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"bot", "migrate", "export"})

	flag := root.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "familyflow.yaml", flag.DefValue)
}

func TestExportNeedsChat(t *testing.T) {
	root := newRoot()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "none.yaml"), "export"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"chat"`)
}

func TestBotNeedsToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	root := newRoot()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "none.yaml"), "bot"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram token")
}
