package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tartampluch/assistant-bot/internal/addressbook"
	"github.com/tartampluch/assistant-bot/internal/config"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS contacts (
	position INTEGER PRIMARY KEY,
	name     TEXT NOT NULL UNIQUE,
	birthday TEXT
);

CREATE TABLE IF NOT EXISTS phones (
	contact  INTEGER NOT NULL REFERENCES contacts(position) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	number   TEXT NOT NULL,
	PRIMARY KEY (contact, position)
);
`

// SQLiteStore keeps the book in a SQLite database file.
// Contact and phone positions preserve insertion order.
type SQLiteStore struct {
	Path string
}

// Load reads every contact. A missing database file yields an empty book
// and is not created.
func (s *SQLiteStore) Load(ctx context.Context) (*addressbook.AddressBook, error) {
	if _, err := os.Stat(s.Path); errors.Is(err, fs.ErrNotExist) {
		slog.Info(config.MsgBookMissing,
			config.LogKeyComponent, config.CompStorage,
			config.LogKeyFile, s.Path,
		)
		return addressbook.New(), nil
	}

	db, err := s.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrBookLoad, err)
	}
	defer func() { _ = db.Close() }()

	book, err := loadBook(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrBookLoad, err)
	}

	slog.Info(config.MsgBookLoaded,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyBackend, "sqlite",
		config.LogKeyFile, s.Path,
		config.LogKeyCount, book.Len(),
	)
	return book, nil
}

// Save replaces all rows in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, book *addressbook.AddressBook) error {
	db, err := s.open(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrBookSave, err)
	}
	defer func() { _ = db.Close() }()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrBookSave, err)
	}
	// Rollback after Commit is a no-op.
	defer func() { _ = tx.Rollback() }()

	if err := saveBook(ctx, tx, book); err != nil {
		return fmt.Errorf("%s: %w", config.ErrBookSave, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrBookSave, err)
	}

	slog.Info(config.MsgBookSaved,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyBackend, "sqlite",
		config.LogKeyFile, s.Path,
		config.LogKeyCount, book.Len(),
	)
	return nil
}

func (s *SQLiteStore) open(ctx context.Context) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(s.Path), config.DirPermUserRWX); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	db, err := sql.Open(config.SQLiteDriver, s.Path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrDBOpen, err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", config.ErrDBSchema, err)
	}
	return db, nil
}

func loadBook(ctx context.Context, db *sql.DB) (*addressbook.AddressBook, error) {
	book := addressbook.New()
	byPosition := make(map[int64]*addressbook.Record)

	rows, err := db.QueryContext(ctx, `SELECT position, name, birthday FROM contacts ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrDBQuery, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			pos      int64
			name     string
			birthday sql.NullString
		)
		if err := rows.Scan(&pos, &name, &birthday); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrDBQuery, err)
		}

		rec := addressbook.NewRecord(name)
		if birthday.Valid && birthday.String != "" {
			t, err := parseDate(birthday.String)
			if err != nil {
				return nil, fmt.Errorf("%s: %q: %w", name, birthday.String, err)
			}
			rec.SetBirthdayDate(addressbook.BirthdayFromDate(t))
		}
		byPosition[pos] = book.Add(rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrDBQuery, err)
	}

	phoneRows, err := db.QueryContext(ctx, `SELECT contact, number FROM phones ORDER BY contact, position`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrDBQuery, err)
	}
	defer func() { _ = phoneRows.Close() }()

	for phoneRows.Next() {
		var (
			contact int64
			number  string
		)
		if err := phoneRows.Scan(&contact, &number); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrDBQuery, err)
		}
		rec, ok := byPosition[contact]
		if !ok {
			continue
		}
		if err := rec.AddPhone(number); err != nil {
			return nil, fmt.Errorf("%s: %q: %w", rec.Name(), number, err)
		}
	}
	if err := phoneRows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrDBQuery, err)
	}

	return book, nil
}

func saveBook(ctx context.Context, tx *sql.Tx, book *addressbook.AddressBook) error {
	// Phones first: foreign keys are off by default in SQLite, no cascade to rely on.
	for _, stmt := range []string{`DELETE FROM phones`, `DELETE FROM contacts`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", config.ErrDBQuery, err)
		}
	}

	for i, rec := range book.All() {
		var birthday sql.NullString
		if b, ok := rec.Birthday(); ok {
			birthday = sql.NullString{String: b.Date().Format(config.DateFormatFullDash), Valid: true}
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO contacts (position, name, birthday) VALUES (?, ?, ?)`,
			i, rec.Name(), birthday,
		); err != nil {
			return fmt.Errorf("%s: %w", config.ErrDBQuery, err)
		}

		for j, p := range rec.Phones() {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO phones (contact, position, number) VALUES (?, ?, ?)`,
				i, j, p.String(),
			); err != nil {
				return fmt.Errorf("%s: %w", config.ErrDBQuery, err)
			}
		}
	}
	return nil
}
