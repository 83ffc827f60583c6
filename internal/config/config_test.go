package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		env               map[string]string
		wantErr           bool
		wantErrorContains []string
		validate          func(t *testing.T, cfg *Config)
	}{
		{
			name: "no config file uses defaults",
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORS.AllowedOrigins)
				assert.Equal(t, DictionaryConfig{Source: "embedded"}, cfg.Dictionary)
				assert.Equal(t, StorageConfig{Driver: "sqlite", Path: filepath.Join("data", "elliot.db")}, cfg.Storage)
				assert.Equal(t, "outputs", cfg.Outputs.Directory)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, 3306, cfg.Database.Port)
				assert.Equal(t, uint(5), cfg.Database.ConnectAttempts)
				require.Len(t, cfg.Network.Projects, 3)
				assert.Equal(t, "Elliot IA", cfg.Network.Projects[0].Name)
			},
		},
		{
			name: "valid config file with custom values",
			configContent: `server:
  port: 9090
storage:
  driver: file
  path: custom/store
outputs:
  directory: custom/outputs
network:
  projects:
    - name: Blog
      url: https://blog.example.com
      description: Notes
`,
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, StorageConfig{Driver: "file", Path: "custom/store"}, cfg.Storage)
				assert.Equal(t, "custom/outputs", cfg.Outputs.Directory)
				assert.Equal(t, []ProjectConfig{
					{Name: "Blog", URL: "https://blog.example.com", Description: "Notes"},
				}, cfg.Network.Projects)
			},
		},
		{
			name: "explicit config file path",
			configContent: `dictionary:
  source: mysql
database:
  host: db.example.com
  database: elliot_prod
`,
			useExplicitPath: true,
			env:             map[string]string{"DB_PASSWORD": "secret"},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "mysql", cfg.Dictionary.Source)
				assert.Equal(t, "db.example.com", cfg.Database.Host)
				assert.Equal(t, "elliot_prod", cfg.Database.Database)
				assert.Equal(t, "secret", cfg.Database.Password)
			},
		},
		{
			name:            "server port from environment",
			configContent:   "outputs:\n  directory: out\n",
			useExplicitPath: true,
			env:             map[string]string{"ELLIOT_SERVER_PORT": "7000"},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 7000, cfg.Server.Port)
			},
		},
		{
			name: "invalid YAML format",
			configContent: `server:
  port: 1
  invalid yaml format here [[[
`,
			wantErr: true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "unknown storage driver",
			configContent: `storage:
  driver: localstorage
`,
			wantErr:           true,
			wantErrorContains: []string{"invalid configuration", "driver must be one of [sqlite file]"},
		},
		{
			name: "yaml dictionary without path",
			configContent: `dictionary:
  source: yaml
`,
			wantErr:           true,
			wantErrorContains: []string{"dictionary.path is required"},
		},
		{
			name: "yaml dictionary path does not exist",
			configContent: `dictionary:
  source: yaml
  path: /nonexistent/dictionary.yml
`,
			wantErr:           true,
			wantErrorContains: []string{"path must be an existing and readable file"},
		},
		{
			name: "project with invalid url",
			configContent: `network:
  projects:
    - name: Broken
      url: not a url
`,
			wantErr:           true,
			wantErrorContains: []string{"url must be a valid URL"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "elliot.yml")
				require.NoError(t, os.WriteFile(configPath, []byte(tt.configContent), 0644))
			} else {
				if tt.configContent != "" {
					require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(tt.configContent), 0644))
				}
				t.Chdir(tempDir)
			}

			loader, err := NewConfigLoader(configPath)
			require.NoError(t, err)
			got, err := loader.Load()

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			tt.validate(t, got)
		})
	}
}

func TestValidator_Struct(t *testing.T) {
	type comment struct {
		Author  string `json:"author" validate:"max=5"`
		Message string `json:"message" validate:"required"`
	}

	v, err := NewValidator()
	require.NoError(t, err)

	assert.NoError(t, v.Struct(comment{Author: "ana", Message: "oi"}))

	err = v.Struct(comment{Author: "too long", Message: ""})
	require.Error(t, err)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Violations, 2)
	assert.Equal(t, "author", validationErr.Violations[0].Field)
	assert.Equal(t, "author must be a maximum of 5 characters in length", validationErr.Violations[0].Description)
	assert.Equal(t, "message", validationErr.Violations[1].Field)
	assert.Equal(t, "message is a required field", validationErr.Violations[1].Description)
}
