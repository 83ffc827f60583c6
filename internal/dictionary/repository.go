package dictionary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// Record is a row of the dictionary_entries table.
type Record struct {
	Word      string        `db:"word" yaml:"word"`
	Meaning   string        `db:"meaning" yaml:"meaning"`
	Gematria  sql.NullInt64 `db:"gematria" yaml:"-"`
	CreatedAt time.Time     `db:"created_at" yaml:"created_at"`
	UpdatedAt time.Time     `db:"updated_at" yaml:"updated_at"`
}

// NewRecord converts a dictionary entry to a table row.
func NewRecord(word string, entry Entry) *Record {
	record := &Record{
		Word:    Key(word),
		Meaning: entry.Meaning,
	}
	if entry.Gematria != nil {
		record.Gematria = sql.NullInt64{Int64: int64(*entry.Gematria), Valid: true}
	}
	return record
}

// Entry converts the row back to a dictionary entry.
func (r Record) Entry() Entry {
	entry := Entry{Meaning: r.Meaning}
	if r.Gematria.Valid {
		v := int(r.Gematria.Int64)
		entry.Gematria = &v
	}
	return entry
}

//go:generate mockgen -source=repository.go -destination=../mocks/dictionary/mock_repository.go -package=mock_dictionary

// Repository defines operations for managing dictionary entries.
type Repository interface {
	FindAll(ctx context.Context) ([]Record, error)
	FindByWord(ctx context.Context, word string) (*Record, error)
	BatchUpsert(ctx context.Context, records []*Record) error
}

// DBRepository implements Repository on MySQL. It works on both *sqlx.DB
// and *sqlx.Tx.
type DBRepository struct {
	db sqlx.ExtContext
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db sqlx.ExtContext) *DBRepository {
	return &DBRepository{db: db}
}

// FindAll returns all dictionary entries.
func (r *DBRepository) FindAll(ctx context.Context) ([]Record, error) {
	var records []Record
	if err := sqlx.SelectContext(ctx, r.db, &records,
		"SELECT word, meaning, gematria, created_at, updated_at FROM dictionary_entries ORDER BY word"); err != nil {
		return nil, fmt.Errorf("load all dictionary entries: %w", err)
	}
	return records, nil
}

// FindByWord returns a dictionary entry by word, or nil if not found.
func (r *DBRepository) FindByWord(ctx context.Context, word string) (*Record, error) {
	var record Record
	err := sqlx.GetContext(ctx, r.db, &record,
		"SELECT word, meaning, gematria, created_at, updated_at FROM dictionary_entries WHERE word = ?", Key(word))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlx.GetContext(dictionary_entry) > %w", err)
	}
	return &record, nil
}

// BatchUpsert inserts or updates multiple dictionary entries.
func (r *DBRepository) BatchUpsert(ctx context.Context, records []*Record) error {
	for _, record := range records {
		_, err := sqlx.NamedExecContext(ctx, r.db,
			"INSERT INTO dictionary_entries (word, meaning, gematria) VALUES (:word, :meaning, :gematria) ON DUPLICATE KEY UPDATE meaning = VALUES(meaning), gematria = VALUES(gematria)",
			record)
		if err != nil {
			return fmt.Errorf("upsert dictionary entry %q: %w", record.Word, err)
		}
	}
	return nil
}

// Load reads every row of repo into an immutable Dictionary.
func Load(ctx context.Context, repo Repository) (Dictionary, error) {
	records, err := repo.FindAll(ctx)
	if err != nil {
		return Dictionary{}, fmt.Errorf("repo.FindAll() > %w", err)
	}
	entries := make(map[string]Entry, len(records))
	for _, record := range records {
		entries[record.Word] = record.Entry()
	}
	if problems := Duplicates(entries); len(problems) > 0 {
		return Dictionary{}, fmt.Errorf("invalid dictionary entries: %s", strings.Join(problems, "; "))
	}
	return New(entries), nil
}
