package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elliot-ia/elliot/internal/testutil"
)

func TestNewNetworkCommand(t *testing.T) {
	setConfigFile(t, testutil.SetupTestConfig(t, t.TempDir()))

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr string
	}{
		{
			name: "list",
			want: "Elliot IA  https://elliot-ia.github.io/  Assistente de gematria e simbolismo\n",
		},
		{
			name: "find by name",
			args: []string{"elliot ia"},
			want: "Elliot IA\nhttps://elliot-ia.github.io/\nAssistente de gematria e simbolismo\n",
		},
		{
			name: "yaml",
			args: []string{"--output", "yaml", "Elliot IA"},
			want: "name: Elliot IA\nurl: https://elliot-ia.github.io/\ndescription: Assistente de gematria e simbolismo\n",
		},
		{
			name:    "unknown project",
			args:    []string{"nexus"},
			wantErr: `project "nexus" is not in the network`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, newNetworkCommand(), tt.args...)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}
