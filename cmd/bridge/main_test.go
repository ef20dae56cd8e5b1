package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"whatsapp-media-bridge/internal/apperr"
	"whatsapp-media-bridge/internal/config"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	assert.ElementsMatch(t, []string{"monitor", "mirror", "sheets-sync", "drive-ls", "groups"}, names)
	assert.NotNil(t, root.PersistentFlags().Lookup("log"))

	monitor, _, err := root.Find([]string{"monitor"})
	require.NoError(t, err)
	flag := monitor.Flags().Lookup("target")
	require.NotNil(t, flag)
	assert.Equal(t, targetTrello, flag.DefValue)

	driveLs, _, err := root.Find([]string{"drive-ls"})
	require.NoError(t, err)
	assert.Equal(t, "10", driveLs.Flags().Lookup("limit").DefValue)
}

func TestRootCommandHelp(t *testing.T) {
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "sheets-sync")
}

func TestRunMonitorValidation(t *testing.T) {
	logger := zaptest.NewLogger(t)
	cfg := &config.Config{
		TargetGroupID: "120363421997659113@g.us",
		OperatorJID:   "5519992897178@c.us",
	}

	err := runMonitor(t.Context(), newCommandContext(nil), cfg, logger, "notion", &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	err = runMonitor(t.Context(), newCommandContext(nil), cfg, logger, targetTrello, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, apperr.IsAuth(err))

	cfg.OperatorJID = ""
	err = runMonitor(t.Context(), newCommandContext(nil), cfg, logger, targetTrello, &bytes.Buffer{})
	assert.True(t, apperr.IsValidation(err))
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger(false)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
