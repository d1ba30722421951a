package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/assistant-bot/internal/addressbook"
	"github.com/tartampluch/assistant-bot/internal/config"
)

// VCardStore keeps the book in a single vCard file, one card per record:
// FN holds the name, one TEL per phone in order, BDAY as YYYY-MM-DD.
type VCardStore struct {
	Path string
}

// Load reads the snapshot. A missing file yields an empty book.
func (s *VCardStore) Load(ctx context.Context) (*addressbook.AddressBook, error) {
	f, err := os.Open(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Info(config.MsgBookMissing,
			config.LogKeyComponent, config.CompStorage,
			config.LogKeyFile, s.Path,
		)
		return addressbook.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrBookLoad, err)
	}
	// Read-only file, a Close error is not actionable.
	defer func() { _ = f.Close() }()

	book, err := Decode(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrBookLoad, err)
	}

	slog.Info(config.MsgBookLoaded,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyBackend, "vcard",
		config.LogKeyFile, s.Path,
		config.LogKeyCount, book.Len(),
	)
	return book, nil
}

// Save writes the snapshot atomically: a temp file in the same directory is
// renamed over the previous snapshot once fully written.
func (s *VCardStore) Save(ctx context.Context, book *addressbook.AddressBook) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		return fmt.Errorf("%s: %s: %w", config.ErrBookSave, config.ErrCreateDir, err)
	}

	tmp, err := os.CreateTemp(dir, config.TempFilePattern)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrBookSave, err)
	}
	// No-op once the rename succeeded.
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := Encode(tmp, book); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", config.ErrBookSave, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrBookSave, err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("%s: %w", config.ErrBookSave, err)
	}

	slog.Info(config.MsgBookSaved,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyBackend, "vcard",
		config.LogKeyFile, s.Path,
		config.LogKeyCount, book.Len(),
	)
	return nil
}

// Encode writes every record of book as a vCard, in insertion order.
func Encode(w io.Writer, book *addressbook.AddressBook) error {
	enc := vcard.NewEncoder(w)
	for _, r := range book.All() {
		if err := enc.Encode(recordToCard(r)); err != nil {
			return fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
	}
	return nil
}

// Decode reads a snapshot written by Encode. Unlike Import it is strict:
// any malformed card, line, phone or date is an error. Blank input is an
// empty book.
func Decode(ctx context.Context, r io.Reader) (*addressbook.AddressBook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	if err := checkLines(data); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}

	book := addressbook.New()
	dec := vcard.NewDecoder(bytes.NewReader(data))

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
		}

		rec, err := cardToRecord(card)
		if err != nil {
			return nil, err
		}
		book.Add(rec)
	}
	return book, nil
}

// checkLines rejects what the vCard decoder would skip silently: text before
// the first BEGIN:VCARD and lines that are not "NAME:value" properties.
func checkLines(data []byte) error {
	first := true
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		// Folded continuation of the previous line.
		if !first && (line[0] == ' ' || line[0] == '\t') {
			continue
		}
		if first {
			if !strings.EqualFold(strings.TrimSpace(line), config.VCardBegin) {
				return errors.New(config.ErrVCardHeader)
			}
			first = false
			continue
		}
		if !strings.ContainsRune(line, ':') {
			return fmt.Errorf("%s %d: %q", config.ErrVCardLine, i+1, line)
		}
	}
	return nil
}

func recordToCard(r *addressbook.Record) vcard.Card {
	card := make(vcard.Card)
	card.SetValue(vcard.FieldVersion, config.VCardVersion)
	card.SetValue(vcard.FieldFormattedName, r.Name())

	for _, p := range r.Phones() {
		card.Add(vcard.FieldTelephone, &vcard.Field{
			Value:  p.String(),
			Params: vcard.Params{vcard.ParamType: {config.VCardTypeCell}},
		})
	}

	if b, ok := r.Birthday(); ok {
		card.SetValue(vcard.FieldBirthday, b.Date().Format(config.DateFormatFullDash))
	}
	return card
}

func cardToRecord(card vcard.Card) (*addressbook.Record, error) {
	fn := card.Get(vcard.FieldFormattedName)
	if fn == nil || fn.Value == "" {
		return nil, errors.New(config.ErrVCardNoName)
	}
	rec := addressbook.NewRecord(fn.Value)

	for _, tel := range card.Values(vcard.FieldTelephone) {
		if err := rec.AddPhone(tel); err != nil {
			return nil, fmt.Errorf("%s: %q: %w", fn.Value, tel, err)
		}
	}

	if bday := card.Get(vcard.FieldBirthday); bday != nil && bday.Value != "" {
		t, err := parseDate(bday.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %q: %w", fn.Value, bday.Value, err)
		}
		rec.SetBirthdayDate(addressbook.BirthdayFromDate(t))
	}
	return rec, nil
}
