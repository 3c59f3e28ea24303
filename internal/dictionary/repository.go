package dictionary

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/jmoiron/sqlx"
)

// WordRecord is a row of the dictionary table as stored.
type WordRecord struct {
	Word         string         `db:"word"`
	Definition   string         `db:"definition"`
	RelatedWords sql.NullString `db:"related_words"`
	Sentence     sql.NullString `db:"sentence"`
}

// WordRepository reads all dictionary rows.
type WordRepository interface {
	FindAll(ctx context.Context) ([]WordRecord, error)
}

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// DBWordRepository implements WordRepository using sqlx.
type DBWordRepository struct {
	db    *sqlx.DB
	query string
}

// NewDBWordRepository creates a new DBWordRepository reading from table.
func NewDBWordRepository(db *sqlx.DB, table string) (*DBWordRepository, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name: %q", table)
	}
	return &DBWordRepository{
		db:    db,
		query: fmt.Sprintf("SELECT word, definition, related_words, sentence FROM %s", table),
	}, nil
}

// FindAll returns every row of the dictionary table.
func (r *DBWordRepository) FindAll(ctx context.Context) ([]WordRecord, error) {
	var records []WordRecord
	if err := r.db.SelectContext(ctx, &records, r.query); err != nil {
		return nil, fmt.Errorf("db.SelectContext(words) > %w", err)
	}
	return records, nil
}

// ToEntry converts a stored row into an Entry.
// A malformed related_words value is logged and treated as empty.
func (record WordRecord) ToEntry() Entry {
	entry := Entry{
		Word:       record.Word,
		Definition: record.Definition,
	}
	if record.Sentence.Valid {
		entry.ExampleSentences = record.Sentence.String
	}
	if record.RelatedWords.Valid && record.RelatedWords.String != "" {
		var related []string
		if err := json.Unmarshal([]byte(record.RelatedWords.String), &related); err != nil {
			slog.Default().Warn("failed to parse related words",
				slog.String("word", record.Word),
				slog.Any("error", err),
			)
		} else {
			entry.RelatedWords = related
		}
	}
	return entry
}
