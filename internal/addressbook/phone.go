package addressbook

import (
	"fmt"
	"regexp"

	"github.com/tartampluch/assistant-bot/internal/config"
)

// phoneRX matches exactly config.PhoneDigits ASCII digits.
var phoneRX = regexp.MustCompile(fmt.Sprintf(`^[0-9]{%d}$`, config.PhoneDigits))

// Phone is a validated phone number. The zero value is not a valid Phone.
// Two Phones are equal (==) iff their digits are equal.
type Phone struct {
	value string
}

// NewPhone validates raw and wraps it.
func NewPhone(raw string) (Phone, error) {
	if !phoneRX.MatchString(raw) {
		return Phone{}, &ValidationError{
			Field:  "phone",
			Value:  raw,
			Reason: config.ErrPhoneFormat,
		}
	}
	return Phone{value: raw}, nil
}

func (p Phone) String() string {
	return p.value
}
