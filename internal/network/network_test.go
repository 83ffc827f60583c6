package network

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elliot-ia/elliot/internal/config"
)

func TestProjects_Find(t *testing.T) {
	projects := FromConfig(config.NetworkConfig{
		Projects: []config.ProjectConfig{
			{Name: "Elliot IA", URL: "https://elliot-ia.github.io/", Description: "Assistente"},
			{Name: "Dev Lab", URL: "https://elliot-ia.github.io/devlab/"},
		},
	})

	tests := []struct {
		name   string
		query  string
		want   Project
		wantOK bool
	}{
		{
			name:   "exact name",
			query:  "Dev Lab",
			want:   Project{Name: "Dev Lab", URL: "https://elliot-ia.github.io/devlab/"},
			wantOK: true,
		},
		{
			name:   "case and spaces are ignored",
			query:  " elliot ia ",
			want:   Project{Name: "Elliot IA", URL: "https://elliot-ia.github.io/", Description: "Assistente"},
			wantOK: true,
		},
		{
			name:  "unknown project",
			query: "Dicionário",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := projects.Find(tt.query)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromConfig_Empty(t *testing.T) {
	assert.Empty(t, FromConfig(config.NetworkConfig{}))
}
