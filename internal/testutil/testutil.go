// Package testutil provides shared test helpers for creating config files and dictionary fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// ConfigOption configures optional sections of the generated config file.
type ConfigOption func(*testConfig)

type testConfig struct {
	storageDriver  string
	dictionaryPath string
}

// WithFileStorage uses the file storage driver instead of sqlite.
func WithFileStorage() ConfigOption {
	return func(cfg *testConfig) {
		cfg.storageDriver = "file"
	}
}

// WithDictionaryFile loads the dictionary from a YAML file instead of the embedded one.
func WithDictionaryFile(path string) ConfigOption {
	return func(cfg *testConfig) {
		cfg.dictionaryPath = path
	}
}

// SetupTestConfig creates a minimal config file and all required directories for testing.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, opts ...ConfigOption) string {
	t.Helper()

	cfg := testConfig{storageDriver: "sqlite"}
	for _, opt := range opts {
		opt(&cfg)
	}

	for _, d := range []string{"data", "outputs"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	storagePath := filepath.Join(tmpDir, "data", "elliot.db")
	if cfg.storageDriver == "file" {
		storagePath = filepath.Join(tmpDir, "data", "store")
	}
	dictionarySection := "dictionary:\n  source: embedded\n"
	if cfg.dictionaryPath != "" {
		dictionarySection = fmt.Sprintf("dictionary:\n  source: yaml\n  path: %s\n", cfg.dictionaryPath)
	}

	configContent := dictionarySection + fmt.Sprintf(`storage:
  driver: %s
  path: %s
outputs:
  directory: %s
network:
  projects:
    - name: Elliot IA
      url: https://elliot-ia.github.io/
      description: Assistente de gematria e simbolismo
`,
		cfg.storageDriver,
		storagePath,
		filepath.Join(tmpDir, "outputs"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// CreateDictionaryFile writes a small dictionary YAML file and returns its path.
func CreateDictionaryFile(t *testing.T, dir string) string {
	t.Helper()

	content := `luz:
  meaning: Or, a primeira criação
  gematria: 207
amor:
  meaning: Ahavah, o amor que se doa
`
	path := filepath.Join(dir, "dictionary.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
