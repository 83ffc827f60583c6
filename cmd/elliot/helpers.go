package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/elliot-ia/elliot/internal/config"
	"github.com/elliot-ia/elliot/internal/devlab"
	"github.com/elliot-ia/elliot/internal/dictionary"
	"github.com/elliot-ia/elliot/internal/storage"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

func loadDictionary(ctx context.Context, cfg *config.Config) (dictionary.Dictionary, error) {
	dict, err := dictionary.Open(ctx, cfg.Dictionary, cfg.Database)
	if err != nil {
		return dictionary.Dictionary{}, fmt.Errorf("dictionary.Open() > %w", err)
	}
	return dict, nil
}

// openBoard opens the configured store. The caller must close the returned store.
func openBoard(ctx context.Context, cfg *config.Config) (*devlab.Board, storage.Store, error) {
	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("storage.Open() > %w", err)
	}
	board, err := devlab.NewBoard(store)
	if err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("devlab.NewBoard() > %w", err)
	}
	return board, store, nil
}

// OutputFormat selects how records are printed.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// Set implements pflag.Value.
func (o *OutputFormat) Set(v string) error {
	switch OutputFormat(v) {
	case OutputText, OutputJSON, OutputYAML:
		*o = OutputFormat(v)
	default:
		return fmt.Errorf("invalid value %q, valid values are %q, %q or %q", v, OutputText, OutputJSON, OutputYAML)
	}
	return nil
}

// String implements pflag.Value.
func (o *OutputFormat) String() string {
	if o == nil {
		return ""
	}
	return string(*o)
}

// Type implements pflag.Value.
func (o *OutputFormat) Type() string {
	return "OutputFormat"
}

var (
	_ pflag.Value = (*OutputFormat)(nil)
)

// printRecord writes v as JSON or YAML, or calls text for the text format.
func printRecord(w io.Writer, format OutputFormat, v any, text func() error) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("json.Encode > %w", err)
		}
		return nil
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("yaml.Encode > %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("yaml.Close > %w", err)
		}
		return nil
	default:
		return text()
	}
}
