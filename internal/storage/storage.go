// Package storage persists the address book between runs.
//
// Two backends share the Store contract: a vCard 4.0 file (the default) and a
// SQLite database, chosen by the file extension of the configured path.
package storage

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/tartampluch/assistant-bot/internal/addressbook"
	"github.com/tartampluch/assistant-bot/internal/config"
)

// Store loads and saves a whole address book snapshot.
type Store interface {
	// Load returns the persisted book, or an empty one if nothing was saved yet.
	Load(ctx context.Context) (*addressbook.AddressBook, error)
	// Save replaces the persisted snapshot with book.
	Save(ctx context.Context, book *addressbook.AddressBook) error
}

// Open returns the backend matching the extension of path.
func Open(path string) Store {
	switch strings.ToLower(filepath.Ext(path)) {
	case config.ExtDB, config.ExtSQLite, config.ExtSQLite3:
		return &SQLiteStore{Path: path}
	default:
		return &VCardStore{Path: path}
	}
}
