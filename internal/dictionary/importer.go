package dictionary

import (
	"context"
	"fmt"
	"io"

	"github.com/jmoiron/sqlx"

	"github.com/elliot-ia/elliot/internal/database"
)

// ImportResult tracks counts for each import operation.
type ImportResult struct {
	New     int
	Updated int
	Skipped int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun         bool
	UpdateExisting bool
}

// Importer copies a dictionary into the dictionary_entries table.
type Importer struct {
	db     *sqlx.DB
	writer io.Writer
}

// NewImporter creates a new Importer.
func NewImporter(db *sqlx.DB, writer io.Writer) *Importer {
	return &Importer{
		db:     db,
		writer: writer,
	}
}

// Import writes every word of dict that is missing from the table, and the
// changed ones when opts.UpdateExisting is set, in one transaction.
func (imp *Importer) Import(ctx context.Context, dict Dictionary, opts ImportOptions) (*ImportResult, error) {
	existing, err := NewDBRepository(imp.db).FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load existing entries: %w", err)
	}
	byWord := make(map[string]Record, len(existing))
	for _, record := range existing {
		byWord[record.Word] = record
	}

	result := &ImportResult{}
	var changes []*Record
	for _, word := range dict.Words() {
		entry, _ := dict.Lookup(word)
		record := NewRecord(word, entry)

		current, found := byWord[record.Word]
		switch {
		case !found:
			result.New++
			changes = append(changes, record)
			imp.printf("new: %s\n", record.Word)
		case opts.UpdateExisting && !sameContent(current, *record):
			result.Updated++
			changes = append(changes, record)
			imp.printf("update: %s\n", record.Word)
		default:
			result.Skipped++
		}
	}

	if opts.DryRun || len(changes) == 0 {
		return result, nil
	}

	if err := database.RunInTx(ctx, imp.db, func(ctx context.Context, tx *sqlx.Tx) error {
		return NewDBRepository(tx).BatchUpsert(ctx, changes)
	}); err != nil {
		return nil, fmt.Errorf("batch upsert entries: %w", err)
	}
	return result, nil
}

func (imp *Importer) printf(format string, args ...any) {
	if imp.writer == nil {
		return
	}
	_, _ = fmt.Fprintf(imp.writer, format, args...)
}

func sameContent(a, b Record) bool {
	return a.Meaning == b.Meaning && a.Gematria == b.Gematria
}
