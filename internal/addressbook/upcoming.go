package addressbook

import "time"

// Upcoming is one match of the upcoming birthdays query.
type Upcoming struct {
	// Name of the contact.
	Name string

	// DateOfBirth is the stored birth date.
	DateOfBirth time.Time

	// NextOccurrence is the birthday projected onto the current or next year,
	// in the location of the reference time.
	NextOccurrence time.Time

	// AgeNext is the age the person turns at NextOccurrence.
	AgeNext int
}

// UpcomingBirthdays returns the records whose next birthday falls strictly
// after today and strictly before today+days. Only month and day of the birth
// date matter. Results follow the insertion order of the book.
func (b *AddressBook) UpcomingBirthdays(now time.Time, days int) []Upcoming {
	loc := now.Location()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	horizon := todayStart.AddDate(0, 0, days)

	var out []Upcoming
	for _, r := range b.All() {
		bday, ok := r.Birthday()
		if !ok {
			continue
		}
		next, age := nextOccurrence(now, bday.Date())
		if !next.After(todayStart) || !next.Before(horizon) {
			continue
		}
		out = append(out, Upcoming{
			Name:           r.Name(),
			DateOfBirth:    bday.Date(),
			NextOccurrence: next,
			AgeNext:        age,
		})
	}
	return out
}

// nextOccurrence determines the next birthday date relative to now (today included).
func nextOccurrence(now time.Time, birthDate time.Time) (time.Time, int) {
	currentYear := now.Year()
	loc := now.Location()

	// time.Date normalizes Feb 29 to March 1st if currentYear is not a leap year.
	candidate := time.Date(currentYear, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	if candidate.Before(todayStart) {
		candidate = time.Date(currentYear+1, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	}

	return candidate, candidate.Year() - birthDate.Year()
}
