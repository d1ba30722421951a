package addressbook

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestNextOccurrence verifies the projection of a birth date onto the current or next year.
// It covers standard dates, the end of year boundary and leap year complexities.
func TestNextOccurrence(t *testing.T) {
	// Reference "Now": June 15th, 2025 (Non-Leap Year)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		birthDate    time.Time
		expectedDate time.Time
		expectedAge  int
		desc         string
	}{
		{
			name:         "Birthday in the past (this year)",
			birthDate:    time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
			expectedDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			expectedAge:  36,
			desc:         "Jan 1 is before June 15, so next occurrence is 2026",
		},
		{
			name:         "Birthday in the future (this year)",
			birthDate:    time.Date(1990, 12, 31, 0, 0, 0, 0, time.UTC),
			expectedDate: time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			expectedAge:  35,
			desc:         "Dec 31 is after June 15, so next occurrence is 2025",
		},
		{
			name:         "Birthday is Today",
			birthDate:    time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
			expectedDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			expectedAge:  35,
			desc:         "A birthday today is its own next occurrence",
		},
		{
			name:         "Leapling - Non-Leap Year (Feb 29 -> Mar 1)",
			birthDate:    time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC),
			expectedDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			expectedAge:  26,
			desc:         "Go normalizes a non-leap Feb 29 to Mar 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, age := nextOccurrence(now, tt.birthDate)
			assert.Equal(t, tt.expectedDate, next, tt.desc)
			assert.Equal(t, tt.expectedAge, age, "Age calculation mismatch")
		})
	}
}

// TestNextOccurrence_LeapYearContext verifies behavior when the current year is a leap year.
func TestNextOccurrence_LeapYearContext(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	birthDate := time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC)

	next, _ := nextOccurrence(now, birthDate)

	expected := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, expected, next, "In a leap year, the birthday should be Feb 29, not Mar 1")
}

// TestNextOccurrence_KeepsLocation makes sure the projection happens in the caller's zone.
func TestNextOccurrence_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	now := time.Date(2025, 6, 15, 1, 0, 0, 0, loc)

	next, _ := nextOccurrence(now, time.Date(1990, 6, 20, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 6, 20, 0, 0, 0, 0, loc), next)
}
