package emailkit

import (
	"fmt"
	"time"

	"github.com/storybud/emailkit/pkg/emailctx"
)

var holidays = map[string]string{
	"1-1":   "New Year's Day",
	"2-14":  "Valentine's Day",
	"3-17":  "St. Patrick's Day",
	"7-4":   "Independence Day",
	"10-31": "Halloween",
	"12-25": "Christmas",
}

// checkOccasions derives special-occasion flags for the send date from the
// child's birth date. A missing birth date still yields holiday and season.
func checkOccasions(child emailctx.ChildProfile, now time.Time) emailctx.Occasions {
	occ := emailctx.Occasions{
		HolidayName:   currentHoliday(now),
		SeasonalTheme: currentSeason(now),
	}

	if child.BirthDate.IsZero() {
		return occ
	}

	occ.BirthdayDate = child.BirthDate
	occ.IsBirthday = now.Day() == child.BirthDate.Day() && now.Month() == child.BirthDate.Month()
	occ.DaysUntilBirthday = daysUntilBirthday(child.BirthDate, now)
	occ.UpcomingBirthday = occ.DaysUntilBirthday > 0 && occ.DaysUntilBirthday <= 7

	return occ
}

func daysUntilBirthday(birthDate, now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	next := time.Date(now.Year(), birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, now.Location())
	if next.Before(today) {
		next = next.AddDate(1, 0, 0)
	}
	return int(next.Sub(today).Hours() / 24)
}

func currentHoliday(now time.Time) string {
	return holidays[fmt.Sprintf("%d-%d", int(now.Month()), now.Day())]
}

func currentSeason(now time.Time) string {
	switch m := now.Month(); {
	case m >= time.March && m <= time.May:
		return "Spring"
	case m >= time.June && m <= time.August:
		return "Summer"
	case m >= time.September && m <= time.November:
		return "Fall"
	default:
		return "Winter"
	}
}
