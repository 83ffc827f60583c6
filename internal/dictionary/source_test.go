package dictionary_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/elliot-ia/elliot/internal/config"
	"github.com/elliot-ia/elliot/internal/dictionary"
	mock_dictionary "github.com/elliot-ia/elliot/internal/mocks/dictionary"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(repo *mock_dictionary.MockRepository)
		wantWords []string
		wantErr   string
	}{
		{
			name: "builds dictionary from rows",
			setup: func(repo *mock_dictionary.MockRepository) {
				repo.EXPECT().FindAll(gomock.Any()).Return([]dictionary.Record{
					{Word: "luz", Meaning: "Or", Gematria: sql.NullInt64{Int64: 207, Valid: true}},
					{Word: "amor", Meaning: "Ahavah"},
				}, nil)
			},
			wantWords: []string{"amor", "luz"},
		},
		{
			name: "rows differing only in case",
			setup: func(repo *mock_dictionary.MockRepository) {
				repo.EXPECT().FindAll(gomock.Any()).Return([]dictionary.Record{
					{Word: "luz", Meaning: "Or", Gematria: sql.NullInt64{Int64: 207, Valid: true}},
					{Word: "Luz", Meaning: "Luz divina"},
				}, nil)
			},
			wantErr: `entry "luz" duplicates "Luz"`,
		},
		{
			name: "repository error",
			setup: func(repo *mock_dictionary.MockRepository) {
				repo.EXPECT().FindAll(gomock.Any()).Return(nil, errors.New("connection refused"))
			},
			wantErr: "repo.FindAll()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_dictionary.NewMockRepository(ctrl)
			tt.setup(repo)

			got, err := dictionary.Load(context.Background(), repo)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantWords, got.Words())

			luz, ok := got.Lookup("LUZ")
			require.True(t, ok)
			assert.Equal(t, 207, *luz.Gematria)
		})
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.yml")
	require.NoError(t, os.WriteFile(path, []byte("sombra:\n  meaning: Tzel\n"), 0644))

	tests := []struct {
		name      string
		cfg       config.DictionaryConfig
		wantWords int
		wantErr   string
	}{
		{name: "embedded", cfg: config.DictionaryConfig{Source: dictionary.SourceEmbedded}, wantWords: 14},
		{name: "empty source falls back to embedded", cfg: config.DictionaryConfig{}, wantWords: 14},
		{name: "yaml file", cfg: config.DictionaryConfig{Source: dictionary.SourceYAML, Path: path}, wantWords: 1},
		{name: "yaml file missing", cfg: config.DictionaryConfig{Source: dictionary.SourceYAML, Path: filepath.Join(dir, "nope.yml")}, wantErr: "os.ReadFile"},
		{name: "unknown source", cfg: config.DictionaryConfig{Source: "localstorage"}, wantErr: "unknown dictionary source"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dictionary.Open(context.Background(), tt.cfg, config.DatabaseConfig{})
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantWords, got.Len())
		})
	}
}
