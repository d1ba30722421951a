package assistant

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tartampluch/assistant-bot/internal/addressbook"
	"github.com/tartampluch/assistant-bot/internal/calendar"
	"github.com/tartampluch/assistant-bot/internal/config"
	"github.com/tartampluch/assistant-bot/internal/storage"
)

func handleHello(_ context.Context, a *Assistant, args []string) (string, error) {
	return a.msg(config.TKeyHello, nil), nil
}

func handleHelp(_ context.Context, a *Assistant, args []string) (string, error) {
	return a.msg(config.TKeyHelp, nil), nil
}

// handleAdd creates the contact if needed and appends a phone.
// The phone is validated before a new contact is stored.
func handleAdd(_ context.Context, a *Assistant, args []string) (string, error) {
	if err := expectArgs(config.CmdAdd, args, 2); err != nil {
		return "", err
	}
	name, phone := args[0], args[1]

	if rec, ok := a.Book.Find(name); ok {
		if err := rec.AddPhone(phone); err != nil {
			return "", err
		}
		return a.msg(config.TKeyContactUpdated, nil), nil
	}

	rec := addressbook.NewRecord(name)
	if err := rec.AddPhone(phone); err != nil {
		return "", err
	}
	a.Book.Add(rec)
	return a.msg(config.TKeyContactAdded, nil), nil
}

func handleChange(_ context.Context, a *Assistant, args []string) (string, error) {
	if err := expectArgs(config.CmdChange, args, 3); err != nil {
		return "", err
	}
	name, oldPhone, newPhone := args[0], args[1], args[2]

	rec, ok := a.Book.Find(name)
	if !ok {
		return a.msg(config.TKeyContactNotFound, nil), nil
	}
	if err := rec.ChangePhone(oldPhone, newPhone); err != nil {
		return "", err
	}
	return a.msg(config.TKeyPhoneChanged, map[string]any{
		"Name": name,
		"Old":  oldPhone,
		"New":  newPhone,
	}), nil
}

func handlePhone(_ context.Context, a *Assistant, args []string) (string, error) {
	if err := expectArgs(config.CmdPhone, args, 1); err != nil {
		return "", err
	}

	rec, ok := a.Book.Find(args[0])
	if !ok {
		return a.msg(config.TKeyNotFound, nil), nil
	}

	phones := rec.Phones()
	parts := make([]string, len(phones))
	for i, p := range phones {
		parts[i] = p.String()
	}
	return a.msg(config.TKeyPhones, map[string]any{
		"Name":   rec.Name(),
		"Phones": strings.Join(parts, config.PhoneSeparator),
	}), nil
}

func handleAll(_ context.Context, a *Assistant, args []string) (string, error) {
	if err := expectArgs(config.CmdAll, args, 0); err != nil {
		return "", err
	}

	records := a.Book.All()
	if len(records) == 0 {
		return a.msg(config.TKeyNoContacts, nil), nil
	}

	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n"), nil
}

func handleAddBirthday(_ context.Context, a *Assistant, args []string) (string, error) {
	if err := expectArgs(config.CmdAddBirthday, args, 2); err != nil {
		return "", err
	}
	name := args[0]

	rec, ok := a.Book.Find(name)
	if !ok {
		return a.msg(config.TKeyContactNotFound, nil), nil
	}
	if err := rec.SetBirthday(args[1]); err != nil {
		return "", err
	}
	return a.msg(config.TKeyBirthdayAdded, map[string]any{"Name": name}), nil
}

func handleShowBirthday(_ context.Context, a *Assistant, args []string) (string, error) {
	if err := expectArgs(config.CmdShowBirthday, args, 1); err != nil {
		return "", err
	}
	name := args[0]

	rec, ok := a.Book.Find(name)
	if !ok {
		return a.msg(config.TKeyContactNotFound, nil), nil
	}
	b, ok := rec.Birthday()
	if !ok {
		return a.msg(config.TKeyBirthdayUnset, map[string]any{"Name": name}), nil
	}
	return a.msg(config.TKeyBirthdayShow, map[string]any{"Name": name, "Date": b.Format()}), nil
}

// handleBirthdays lists contacts whose birthday falls within the next week,
// showing the date they celebrate on.
func handleBirthdays(_ context.Context, a *Assistant, args []string) (string, error) {
	if err := expectArgs(config.CmdBirthdays, args, 0); err != nil {
		return "", err
	}

	upcoming := a.Book.UpcomingBirthdays(a.Clock.Now(), config.UpcomingHorizonDays)
	if len(upcoming) == 0 {
		return a.msg(config.TKeyNoBirthdays, nil), nil
	}

	lines := make([]string, len(upcoming))
	for i, u := range upcoming {
		lines[i] = a.msg(config.TKeyBirthdayUpcoming, map[string]any{
			"Name": u.Name,
			"Date": u.NextOccurrence.Format(config.DateFormatDisplay),
		})
	}
	return strings.Join(lines, "\n"), nil
}

func handleDelete(_ context.Context, a *Assistant, args []string) (string, error) {
	if err := expectArgs(config.CmdDelete, args, 1); err != nil {
		return "", err
	}
	if !a.Book.Delete(args[0]) {
		return a.msg(config.TKeyContactNotFound, nil), nil
	}
	return a.msg(config.TKeyContactDeleted, nil), nil
}

func handleRemovePhone(_ context.Context, a *Assistant, args []string) (string, error) {
	if err := expectArgs(config.CmdRemovePhone, args, 2); err != nil {
		return "", err
	}

	rec, ok := a.Book.Find(args[0])
	if !ok {
		return a.msg(config.TKeyContactNotFound, nil), nil
	}
	if !rec.RemovePhone(args[1]) {
		return "", &addressbook.NotFoundError{Reason: config.ErrPhoneNotFound, Key: args[1]}
	}
	return a.msg(config.TKeyPhoneRemoved, nil), nil
}

func handleImport(ctx context.Context, a *Assistant, args []string) (string, error) {
	if err := expectArgs(config.CmdImport, args, 1); err != nil {
		return "", err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrFileOpen, err)
	}
	defer func() { _ = f.Close() }()

	stats, err := storage.Import(ctx, f, a.Book)
	if err != nil {
		return "", err
	}
	return a.msg(config.TKeyImported, map[string]any{
		"Total":   stats.Cards,
		"Added":   stats.Added,
		"Updated": stats.Updated,
		"Skipped": stats.Skipped,
	}), nil
}

func handleExportCalendar(ctx context.Context, a *Assistant, args []string) (string, error) {
	if err := expectArgs(config.CmdExportCalendar, args, 1); err != nil {
		return "", err
	}
	path := args[0]

	x := &calendar.Exporter{
		Clock:           a.Clock,
		FormatSummary:   a.Messages.EventSummary,
		ReminderTrigger: a.Reminder,
	}
	ics, count, err := x.Export(ctx, a.Book)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, ics, config.FilePermUserRW); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrFileWrite, err)
	}
	return a.msg(config.TKeyCalendarWritten, map[string]any{"Count": count, "Path": path}), nil
}
