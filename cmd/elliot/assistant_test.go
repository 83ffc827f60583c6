package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elliot-ia/elliot/internal/testutil"
)

func TestNewAskCommand(t *testing.T) {
	cfgPath := testutil.SetupTestConfig(t, t.TempDir())
	setConfigFile(t, cfgPath)

	tests := []struct {
		name         string
		args         []string
		wantContains []string
	}{
		{
			name:         "dictionary word",
			args:         []string{"luz"},
			wantContains: []string{"**LUZ**", "Or, a primeira criação"},
		},
		{
			name:         "json output",
			args:         []string{"--output", "json", "luz"},
			wantContains: []string{`"rule": "dictionary"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, newAskCommand(), tt.args...)
			require.NoError(t, err)
			for _, want := range tt.wantContains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestNewGematriaCommand(t *testing.T) {
	cfgPath := testutil.SetupTestConfig(t, t.TempDir())
	setConfigFile(t, cfgPath)

	out, err := execute(t, newGematriaCommand(), "--reduce", "luz")
	require.NoError(t, err)
	assert.Contains(t, out, "\"luz\" = 1130 (Gematria Simples)\n")
	assert.Contains(t, out, "Gematria exata: 207\n")
	assert.Contains(t, out, "Redução: 5\nO número 1130 (reduzido a 5) representa mudança, liberdade, aventura.\n")
}

func TestAssistantCommands_InvalidConfig(t *testing.T) {
	setConfigFile(t, setupBrokenConfigFile(t))

	_, err := execute(t, newAskCommand(), "luz")
	assert.Error(t, err)
	_, err = execute(t, newGematriaCommand(), "luz")
	assert.Error(t, err)
	_, err = execute(t, newChatCommand())
	assert.Error(t, err)
}
