package addressbook

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tartampluch/assistant-bot/internal/config"
)

// Record is one contact: a name fixed at creation, an ordered list of phones
// (duplicates allowed) and an optional birthday.
type Record struct {
	name     string
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates an empty contact. The name is stored verbatim.
func NewRecord(name string) *Record {
	return &Record{name: name}
}

// Name returns the contact name.
func (r *Record) Name() string {
	return r.name
}

// Phones returns a copy of the phones in insertion order.
func (r *Record) Phones() []Phone {
	return slices.Clone(r.phones)
}

// Birthday returns the birthday, if one is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// AddPhone validates raw and appends it.
func (r *Record) AddPhone(raw string) error {
	p, err := NewPhone(raw)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone removes the first phone equal to raw. Absent phones are ignored.
// It reports whether a phone was removed.
func (r *Record) RemovePhone(raw string) bool {
	i := r.indexOf(raw)
	if i < 0 {
		return false
	}
	r.phones = slices.Delete(r.phones, i, i+1)
	return true
}

// ChangePhone replaces oldRaw with newRaw in place.
// Phones are left untouched on any error.
func (r *Record) ChangePhone(oldRaw, newRaw string) error {
	i := r.indexOf(oldRaw)
	if i < 0 {
		return &NotFoundError{Reason: config.ErrPhoneNotFound, Key: oldRaw}
	}
	p, err := NewPhone(newRaw)
	if err != nil {
		return err
	}
	r.phones[i] = p
	return nil
}

// FindPhone returns the first phone equal to raw.
func (r *Record) FindPhone(raw string) (Phone, bool) {
	i := r.indexOf(raw)
	if i < 0 {
		return Phone{}, false
	}
	return r.phones[i], true
}

// SetBirthday parses raw and replaces any existing birthday.
func (r *Record) SetBirthday(raw string) error {
	b, err := NewBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// SetBirthdayDate replaces the birthday with an already validated value.
func (r *Record) SetBirthdayDate(b Birthday) {
	r.birthday = &b
}

// String renders "Contact name: {name}, phones: {p1; p2}".
func (r *Record) String() string {
	parts := make([]string, len(r.phones))
	for i, p := range r.phones {
		parts[i] = p.String()
	}
	return fmt.Sprintf(config.FormatRecordDisplay, r.name, strings.Join(parts, config.PhoneSeparator))
}

func (r *Record) indexOf(raw string) int {
	return slices.IndexFunc(r.phones, func(p Phone) bool { return p.value == raw })
}

// merge folds other into r: phones are appended, a birthday on other wins.
func (r *Record) merge(other *Record) {
	r.phones = append(r.phones, other.phones...)
	if other.birthday != nil {
		b := *other.birthday
		r.birthday = &b
	}
}
