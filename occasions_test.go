package emailkit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/storybud/emailkit/pkg/emailctx"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestCheckOccasions_Birthday(t *testing.T) {
	t.Parallel()

	child := emailctx.ChildProfile{BirthDate: date(2018, time.June, 15)}

	occ := checkOccasions(child, date(2026, time.June, 15))
	assert.True(t, occ.IsBirthday)
	assert.False(t, occ.UpcomingBirthday)
	assert.Equal(t, 0, occ.DaysUntilBirthday)

	occ = checkOccasions(child, date(2026, time.June, 10))
	assert.False(t, occ.IsBirthday)
	assert.True(t, occ.UpcomingBirthday)
	assert.Equal(t, 5, occ.DaysUntilBirthday)

	// More than a week out is not "upcoming".
	occ = checkOccasions(child, date(2026, time.June, 1))
	assert.False(t, occ.UpcomingBirthday)
	assert.Equal(t, 14, occ.DaysUntilBirthday)

	// A birthday earlier in the year rolls over to next year.
	occ = checkOccasions(child, date(2026, time.December, 1))
	assert.Equal(t, 196, occ.DaysUntilBirthday)
}

func TestCheckOccasions_NoBirthDate(t *testing.T) {
	t.Parallel()

	occ := checkOccasions(emailctx.ChildProfile{}, date(2026, time.October, 31))
	assert.False(t, occ.IsBirthday)
	assert.True(t, occ.BirthdayDate.IsZero())
	assert.Equal(t, "Halloween", occ.HolidayName)
	assert.Equal(t, "Fall", occ.SeasonalTheme)
}

func TestCurrentHoliday(t *testing.T) {
	t.Parallel()

	tests := []struct {
		day  time.Time
		want string
	}{
		{date(2026, time.January, 1), "New Year's Day"},
		{date(2026, time.February, 14), "Valentine's Day"},
		{date(2026, time.March, 17), "St. Patrick's Day"},
		{date(2026, time.July, 4), "Independence Day"},
		{date(2026, time.October, 31), "Halloween"},
		{date(2026, time.December, 25), "Christmas"},
		{date(2026, time.August, 28), ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, currentHoliday(tt.day), "%s", tt.day)
	}
}

func TestCurrentSeason(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Spring", currentSeason(date(2026, time.April, 1)))
	assert.Equal(t, "Summer", currentSeason(date(2026, time.July, 1)))
	assert.Equal(t, "Fall", currentSeason(date(2026, time.September, 1)))
	assert.Equal(t, "Winter", currentSeason(date(2026, time.January, 1)))
}
