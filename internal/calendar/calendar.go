// Package calendar renders the birthdays of an address book as an iCalendar feed.
package calendar

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/assistant-bot/internal/addressbook"
	"github.com/tartampluch/assistant-bot/internal/config"
)

// Exporter converts the birthdays of a book into iCalendar events.
type Exporter struct {
	Clock addressbook.Clock // Interface for time mocking.

	// FormatSummary allows the caller to inject localized strings.
	// age is 0 for the year of birth.
	FormatSummary func(name string, age int) string

	// ReminderTrigger is an ISO8601 duration string (e.g., "-P1D"). Empty disables alarms.
	ReminderTrigger string
}

// Export returns the ICS data and the number of contacts with a birthday.
func (x *Exporter) Export(ctx context.Context, book *addressbook.AddressBook) ([]byte, int, error) {
	start := time.Now()

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	setRaw(cal.Props, config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// Local time decides which day is "today"; UTC is only for the stamp.
	now := x.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	found := 0
	for _, rec := range book.All() {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		bday, ok := rec.Birthday()
		if !ok {
			continue
		}
		found++

		birthDate := bday.Date()
		input := fmt.Sprintf(config.FormatHashInput, rec.Name(), birthDate.Format(time.RFC3339), config.UIDSalt)
		hash := sha256.Sum256([]byte(input))
		uidBase := fmt.Sprintf("%x", hash[:config.UIDHashLength])

		for _, e := range x.createEvents(rec.Name(), birthDate, now, uidBase) {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	if len(cal.Children) == 0 {
		x.logSuccess(found, start)
		return []byte(config.StubVCalendar), found, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	x.logSuccess(found, start)
	return buf.Bytes(), found, nil
}

func (x *Exporter) logSuccess(found int, start time.Time) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompCalendar,
		config.LogKeyFound, found,
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
}

// createEvents generates events for the previous, current and next year,
// skipping years before the person was born.
func (x *Exporter) createEvents(name string, birthDate time.Time, now time.Time, uidBase string) []*ical.Event {
	currentYear := now.Year()
	targetYears := []int{currentYear - 1, currentYear, currentYear + 1}
	loc := now.Location()

	var events []*ical.Event
	for _, y := range targetYears {
		if y < birthDate.Year() {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))

		age := y - birthDate.Year()
		summary := fallbackSummary(name, age)
		if x.FormatSummary != nil {
			summary = x.FormatSummary(name, age)
		}
		event.Props.SetText(config.PropSummary, summary)

		// time.Date rolls Feb 29 over to Mar 1 in common years.
		eventDate := time.Date(y, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(eventDate)
		event.Props.Set(dtStartProp)

		if x.ReminderTrigger != "" {
			addAlarm(event, x.ReminderTrigger, summary)
		}

		events = append(events, event)
	}
	return events
}

func fallbackSummary(name string, age int) string {
	if age == 0 {
		return fmt.Sprintf(config.FallbackSummaryBirth, name)
	}
	return fmt.Sprintf(config.FallbackSummaryAge, name, age)
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	setRaw(alarm.Props, config.PropTrigger, trigger)

	event.Children = append(event.Children, alarm)
}

// setRaw stores value as is. Props.SetText would add a VALUE=TEXT parameter
// to properties go-ical has no default type for (X-WR-CALNAME, TRIGGER).
func setRaw(props ical.Props, name, value string) {
	prop := ical.NewProp(name)
	prop.Value = value
	props.Set(prop)
}
