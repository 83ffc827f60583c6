package dictionary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/elliot-ia/elliot/internal/config"
	"github.com/elliot-ia/elliot/internal/database"
)

const (
	SourceEmbedded = "embedded"
	SourceYAML     = "yaml"
	SourceMySQL    = "mysql"
)

// Open loads the dictionary once from the configured source.
func Open(ctx context.Context, cfg config.DictionaryConfig, dbCfg config.DatabaseConfig) (Dictionary, error) {
	var (
		dict Dictionary
		err  error
	)
	switch cfg.Source {
	case SourceYAML:
		dict, err = ReadYAMLFile(cfg.Path)
	case SourceMySQL:
		dict, err = loadFromDatabase(ctx, dbCfg)
	case SourceEmbedded, "":
		dict, err = Default()
	default:
		return Dictionary{}, fmt.Errorf("unknown dictionary source: %s", cfg.Source)
	}
	if err != nil {
		return Dictionary{}, err
	}

	slog.Default().Debug("dictionary loaded",
		slog.String("source", cfg.Source),
		slog.Int("words", dict.Len()),
	)
	return dict, nil
}

func loadFromDatabase(ctx context.Context, dbCfg config.DatabaseConfig) (Dictionary, error) {
	db, err := database.Open(dbCfg)
	if err != nil {
		return Dictionary{}, fmt.Errorf("database.Open() > %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := database.Ping(ctx, db, dbCfg.ConnectAttempts, database.DefaultPingDelay); err != nil {
		return Dictionary{}, fmt.Errorf("database.Ping() > %w", err)
	}
	dict, err := Load(ctx, NewDBRepository(db))
	if err != nil {
		return Dictionary{}, fmt.Errorf("Load() > %w", err)
	}
	return dict, nil
}
