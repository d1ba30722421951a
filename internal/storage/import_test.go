package storage_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/assistant-bot/internal/addressbook"
	"github.com/tartampluch/assistant-bot/internal/storage"
)

const externalVCards = `BEGIN:VCARD
VERSION:3.0
FN:John Doe
TEL;TYPE=CELL:(123) 456-7890
TEL;TYPE=HOME:+44 20 7946 0958
BDAY:1990-12-24
END:VCARD
BEGIN:VCARD
VERSION:4.0
N:Smith;Jane;;;
TEL;VALUE=uri:tel:555-555-5555
BDAY:--06-05
END:VCARD
BEGIN:VCARD
VERSION:3.0
TEL:1111111111
END:VCARD
BEGIN:VCARD
VERSION:3.0
FN:Basic
BDAY:19851103
END:VCARD`

func TestImport_Lenient(t *testing.T) {
	book := addressbook.New()

	stats, err := storage.Import(context.Background(), strings.NewReader(externalVCards), book)
	require.NoError(t, err)

	assert.Equal(t, storage.ImportStats{Cards: 4, Added: 3, Updated: 0, Skipped: 1}, stats)
	assert.Equal(t, []string{
		"Contact name: John_Doe, phones: 1234567890 | 24.12.1990",
		"Contact name: Jane_Smith, phones: 5555555555",
		"Contact name: Basic, phones:  | 03.11.1985",
	}, snapshot(book))
}

func TestImport_MergesIntoExisting(t *testing.T) {
	book := addressbook.New()
	john := addressbook.NewRecord("John_Doe")
	require.NoError(t, john.AddPhone("1234567890"))
	require.NoError(t, john.SetBirthday("01-01-1980"))
	book.Add(john)

	content := `BEGIN:VCARD
VERSION:3.0
FN:John Doe
TEL:123-456-7890
TEL:098-765-4321
BDAY:1990-12-24
END:VCARD`

	stats, err := storage.Import(context.Background(), strings.NewReader(content), book)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, 0, stats.Added)

	assert.Equal(t, []string{
		"Contact name: John_Doe, phones: 1234567890; 0987654321 | 01.01.1980",
	}, snapshot(book), "known phones are not duplicated and the existing birthday wins")

	// Importing the same data again changes nothing.
	stats, err = storage.Import(context.Background(), strings.NewReader(content), book)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Updated)
}

func TestImport_Empty(t *testing.T) {
	book := addressbook.New()
	stats, err := storage.Import(context.Background(), strings.NewReader(""), book)
	require.NoError(t, err)
	assert.Equal(t, storage.ImportStats{}, stats)
	assert.Equal(t, 0, book.Len())
}
