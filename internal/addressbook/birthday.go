package addressbook

import (
	"time"

	"github.com/tartampluch/assistant-bot/internal/config"
)

// Birthday is a calendar date parsed from DD-MM-YYYY text.
// It is always kept as a parsed date (midnight UTC), never as raw text.
type Birthday struct {
	date time.Time
}

// NewBirthday parses raw as day-month-year.
func NewBirthday(raw string) (Birthday, error) {
	t, err := time.Parse(config.DateFormatInput, raw)
	if err != nil {
		return Birthday{}, &ValidationError{
			Field:  "birthday",
			Value:  raw,
			Reason: config.ErrBirthdayFormat,
		}
	}
	return Birthday{date: t}, nil
}

// BirthdayFromDate builds a Birthday from an already parsed date, dropping the clock part.
// Used by the storage backends.
func BirthdayFromDate(t time.Time) Birthday {
	y, m, d := t.Date()
	return Birthday{date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Date returns the birth date at midnight UTC.
func (b Birthday) Date() time.Time {
	return b.date
}

// Format renders the date as DD.MM.YYYY.
func (b Birthday) Format() string {
	return b.date.Format(config.DateFormatDisplay)
}

func (b Birthday) String() string {
	return b.Format()
}
