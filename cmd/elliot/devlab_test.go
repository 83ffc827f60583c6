package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elliot-ia/elliot/internal/devlab"
	"github.com/elliot-ia/elliot/internal/testutil"
)

func TestNewCommentsCommand(t *testing.T) {
	tmpDir := t.TempDir()
	setConfigFile(t, testutil.SetupTestConfig(t, tmpDir))

	out, err := execute(t, newCommentsCommand(), "list")
	require.NoError(t, err)
	assert.Equal(t, "Nenhum comentário ainda\n", out)

	out, err = execute(t, newCommentsCommand(), "add", "Ótimo", "projeto!")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Comentário publicado: "))

	_, err = execute(t, newCommentsCommand(), "add", "--author", "Ana", "Adorei a calculadora")
	require.NoError(t, err)

	out, err = execute(t, newCommentsCommand(), "list", "--output", "json")
	require.NoError(t, err)
	var comments []devlab.Comment
	require.NoError(t, json.Unmarshal([]byte(out), &comments))
	require.Len(t, comments, 2)
	assert.Equal(t, "Ana", comments[0].Author)
	assert.Equal(t, devlab.AnonymousAuthor, comments[1].Author)
	assert.Equal(t, "Ótimo projeto!", comments[1].Message)

	out, err = execute(t, newCommentsCommand(), "delete", comments[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Comentário removido\n", out)

	_, err = execute(t, newCommentsCommand(), "delete", comments[1].ID)
	assert.ErrorIs(t, err, devlab.ErrNotFound)

	out, err = execute(t, newCommentsCommand(), "export")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "Dados exportados: "))
	path := strings.TrimSpace(strings.TrimPrefix(out, "Dados exportados: "))
	assert.Equal(t, filepath.Join(tmpDir, "outputs"), filepath.Dir(path))
	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "Adorei a calculadora")

	out, err = execute(t, newCommentsCommand(), "clear")
	require.NoError(t, err)
	assert.Equal(t, "1 comentários removidos\n", out)
}

func TestNewCommentsCommand_Errors(t *testing.T) {
	setConfigFile(t, testutil.SetupTestConfig(t, t.TempDir(), testutil.WithFileStorage()))

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "blank message",
			args:    []string{"add", "   "},
			wantErr: "invalid comment",
		},
		{
			name:    "unsupported export format",
			args:    []string{"export", "--format", "pdf"},
			wantErr: "format pdf is not supported for the dev lab board",
		},
		{
			name:    "invalid export format",
			args:    []string{"export", "--format", "csv"},
			wantErr: `invalid format "csv"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, newCommentsCommand(), tt.args...)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestNewIdeasCommand(t *testing.T) {
	setConfigFile(t, testutil.SetupTestConfig(t, t.TempDir(), testutil.WithFileStorage()))

	_, err := execute(t, newIdeasCommand(), "add", "Modo", "hebraico", "--description", "Gematria com letras hebraicas")
	require.NoError(t, err)
	_, err = execute(t, newIdeasCommand(), "add", "Tema claro")
	require.NoError(t, err)

	out, err := execute(t, newIdeasCommand(), "list", "--output", "json")
	require.NoError(t, err)
	var ideas []devlab.Idea
	require.NoError(t, json.Unmarshal([]byte(out), &ideas))
	require.Len(t, ideas, 2)

	var hebrew devlab.Idea
	for _, idea := range ideas {
		if idea.Title == "Modo hebraico" {
			hebrew = idea
		}
	}
	require.NotEmpty(t, hebrew.ID)
	assert.Equal(t, "Gematria com letras hebraicas", hebrew.Description)

	out, err = execute(t, newIdeasCommand(), "vote", hebrew.ID)
	require.NoError(t, err)
	assert.Equal(t, "Modo hebraico: 1 votos\n", out)

	out, err = execute(t, newIdeasCommand(), "list")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, hebrew.ID))

	_, err = execute(t, newIdeasCommand(), "vote", "missing")
	assert.ErrorIs(t, err, devlab.ErrNotFound)
}

func TestNewSettingsCommand(t *testing.T) {
	setConfigFile(t, testutil.SetupTestConfig(t, t.TempDir()))

	out, err := execute(t, newSettingsCommand(), "show")
	require.NoError(t, err)
	assert.Equal(t, "theme: dark\nnotifications: true\nauto_save: true\n", out)

	out, err = execute(t, newSettingsCommand(), "set", "--notifications=false", "--display-name", "Ana")
	require.NoError(t, err)
	assert.Equal(t, "Configurações salvas\n", out)

	out, err = execute(t, newSettingsCommand(), "toggle-theme")
	require.NoError(t, err)
	assert.Equal(t, "Tema: light\n", out)

	out, err = execute(t, newSettingsCommand(), "show", "--output", "text")
	require.NoError(t, err)
	assert.Equal(t, "theme: light\nnotifications: false\nauto_save: true\ndisplay_name: Ana\n", out)

	_, err = execute(t, newSettingsCommand(), "set", "--theme", "blue")
	assert.ErrorContains(t, err, "theme must be one of [dark light]")
}

func TestDevLabCommands_InvalidConfig(t *testing.T) {
	setConfigFile(t, setupBrokenConfigFile(t))

	_, err := execute(t, newCommentsCommand(), "list")
	assert.Error(t, err)
	_, err = execute(t, newIdeasCommand(), "list")
	assert.Error(t, err)
	_, err = execute(t, newSettingsCommand(), "show")
	assert.Error(t, err)
}

func TestNewCommentsCommand_DisplayName(t *testing.T) {
	setConfigFile(t, testutil.SetupTestConfig(t, t.TempDir()))

	_, err := execute(t, newSettingsCommand(), "set", "--display-name", "Ana")
	require.NoError(t, err)
	_, err = execute(t, newCommentsCommand(), "add", "Shalom!")
	require.NoError(t, err)

	out, err := execute(t, newCommentsCommand(), "list", "--output", "json")
	require.NoError(t, err)
	var comments []devlab.Comment
	require.NoError(t, json.Unmarshal([]byte(out), &comments))
	require.Len(t, comments, 1)
	assert.Equal(t, "Ana", comments[0].Author)
}
