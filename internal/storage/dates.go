package storage

import (
	"errors"
	"time"

	"github.com/tartampluch/assistant-bot/internal/config"
)

// errNoYear marks vCard dates like --12-24 that cannot become a Birthday.
var errNoYear = errors.New("birthday has no year")

// parseDate handles the vCard BDAY formats that carry a year.
func parseDate(value string) (time.Time, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, nil
		}
	}

	for _, f := range []string{config.DateFormatNoYearD, config.DateFormatNoYearB} {
		if _, err := time.Parse(f, value); err == nil {
			return time.Time{}, errNoYear
		}
	}

	return time.Time{}, errors.New(config.ErrDateParse)
}
