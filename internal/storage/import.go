package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/assistant-bot/internal/addressbook"
	"github.com/tartampluch/assistant-bot/internal/config"
)

// ImportStats summarizes an Import run.
type ImportStats struct {
	Cards   int // cards decoded
	Added   int // new records
	Updated int // existing records that received data
	Skipped int // cards without a usable name or that failed to decode
}

// Import merges an external vCard stream (phone export, CardDAV dump...) into book.
//
// It is lenient. Malformed cards are skipped, phones lose their separators
// and are dropped unless 10 digits remain, and dates without a year are ignored.
// Existing records get the phones they do not have yet, and a birthday only
// if they have none.
func Import(ctx context.Context, r io.Reader, book *addressbook.AddressBook) (ImportStats, error) {
	var stats ImportStats
	dec := vcard.NewDecoder(r)

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Keep going to recover as many cards as possible.
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompStorage,
				config.LogKeyError, err)
			stats.Skipped++
			continue
		}
		stats.Cards++

		name := cardName(card)
		if name == "" {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompStorage,
				config.LogKeyError, config.ErrVCardNoName)
			stats.Skipped++
			continue
		}

		if rec, ok := book.Find(name); ok {
			if mergeCard(rec, card) {
				stats.Updated++
			}
			continue
		}

		rec := addressbook.NewRecord(name)
		mergeCard(rec, card)
		book.Add(rec)
		stats.Added++
	}

	slog.Info(config.MsgImportDone,
		config.LogKeyComponent, config.CompStorage,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.Cards),
			slog.Int(config.LogKeyAdded, stats.Added),
			slog.Int(config.LogKeyUpdated, stats.Updated),
			slog.Int(config.LogKeySkipped, stats.Skipped),
		),
	)
	return stats, nil
}

// cardName picks FN, then the structured N, and joins words with "_" so the
// contact stays addressable from the whitespace-split command line.
func cardName(card vcard.Card) string {
	name := ""
	if fn := card.Get(vcard.FieldFormattedName); fn != nil {
		name = fn.Value
	}
	if strings.TrimSpace(name) == "" {
		if n := card.Name(); n != nil {
			name = n.GivenName + " " + n.FamilyName
		}
	}
	return strings.Join(strings.Fields(name), "_")
}

// mergeCard copies phones and birthday from card into rec and reports whether rec changed.
func mergeCard(rec *addressbook.Record, card vcard.Card) bool {
	changed := false

	for _, tel := range card.Values(vcard.FieldTelephone) {
		digits := normalizePhone(tel)
		if _, exists := rec.FindPhone(digits); exists {
			continue
		}
		if err := rec.AddPhone(digits); err != nil {
			slog.Debug(config.MsgSkippedPhone,
				config.LogKeyComponent, config.CompStorage,
				config.LogKeyName, rec.Name(),
				config.LogKeyValue, tel)
			continue
		}
		changed = true
	}

	if _, has := rec.Birthday(); !has {
		if bday := card.Get(vcard.FieldBirthday); bday != nil && bday.Value != "" {
			t, err := parseDate(bday.Value)
			if err != nil {
				slog.Debug(config.MsgSkippedDate,
					config.LogKeyComponent, config.CompStorage,
					config.LogKeyName, rec.Name(),
					config.LogKeyValue, bday.Value)
			} else {
				rec.SetBirthdayDate(addressbook.BirthdayFromDate(t))
				changed = true
			}
		}
	}
	return changed
}

// normalizePhone strips a tel: URI prefix and common separators.
// The result still goes through phone validation.
func normalizePhone(tel string) string {
	tel = strings.TrimPrefix(strings.TrimSpace(tel), "tel:")
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(" +-().", r) {
			return -1
		}
		return r
	}, tel)
}
