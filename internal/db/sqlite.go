package db

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	_ "github.com/mattn/go-sqlite3"
)

type Database struct {
	db *sql.DB
}

func NewSQLite(path string) (*Database, error) {
	sqlDB, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	d := &Database{db: sqlDB}
	if err := d.migrate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Database) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS translations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		original_text TEXT NOT NULL,
		translated_text TEXT NOT NULL,
		language TEXT NOT NULL,
		model TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := d.db.Exec(schema)
	return err
}

// Translation is one stored row. Rows are immutable once written; there is no
// update or delete path.
type Translation struct {
	ID             int64  `json:"id"`
	OriginalText   string `json:"original_text"`
	TranslatedText string `json:"translated_text"`
	Language       string `json:"language"`
	Model          string `json:"model"`
}

// InsertTranslation stores a single model's translation as one row.
func (d *Database) InsertTranslation(ctx context.Context, originalText, translatedText, language, model string) error {
	_, err := d.db.ExecContext(ctx,
		"INSERT INTO translations (original_text, translated_text, language, model) VALUES (?, ?, ?, ?)",
		originalText, translatedText, language, model,
	)
	return err
}

// SaveTranslations inserts one row per model, in sorted model order. The
// inserts are not transactional: a failure partway leaves the earlier rows
// committed and fails the whole call.
func (d *Database) SaveTranslations(ctx context.Context, originalText string, byModel map[string]string, language string) error {
	models := make([]string, 0, len(byModel))
	for model := range byModel {
		models = append(models, model)
	}
	sort.Strings(models)

	for _, model := range models {
		if err := d.InsertTranslation(ctx, originalText, byModel[model], language, model); err != nil {
			return fmt.Errorf("insert translation for %s: %w", model, err)
		}
	}
	return nil
}

// ListTranslations returns all rows, unfiltered and unpaginated, in
// storage-defined order.
func (d *Database) ListTranslations(ctx context.Context) ([]Translation, error) {
	rows, err := d.db.QueryContext(ctx,
		"SELECT id, original_text, translated_text, language, model FROM translations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var translations []Translation
	for rows.Next() {
		var t Translation
		if err := rows.Scan(&t.ID, &t.OriginalText, &t.TranslatedText, &t.Language, &t.Model); err != nil {
			return nil, err
		}
		translations = append(translations, t)
	}
	if translations == nil {
		translations = []Translation{}
	}
	return translations, rows.Err()
}

func (d *Database) Close() error {
	return d.db.Close()
}

// DB returns the underlying sql.DB for use by other packages.
func (d *Database) DB() *sql.DB {
	return d.db
}
