// Package models defines data structures and domain types.
package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// City identifies one of the supported bikeshare systems.
type City string

const (
	// Chicago is the Divvy system.
	Chicago City = "chicago"
	// NewYorkCity is the Citi Bike system.
	NewYorkCity City = "new york city"
	// Washington is the Capital Bikeshare system.
	Washington City = "washington"
)

// SupportedCities lists the cities in prompt order.
var SupportedCities = []City{Chicago, NewYorkCity, Washington}

// ParseCity matches s case-insensitively against the supported cities.
func ParseCity(s string) (City, bool) {
	norm := City(strings.ToLower(strings.TrimSpace(s)))
	for _, c := range SupportedCities {
		if c == norm {
			return c, true
		}
	}
	return "", false
}

// Title returns the display name of the city.
func (c City) Title() string {
	switch c {
	case Chicago:
		return "Chicago"
	case NewYorkCity:
		return "New York City"
	case Washington:
		return "Washington"
	default:
		return string(c)
	}
}

// Month is a calendar month filter. AllMonths disables the filter.
type Month int

// AllMonths selects every month.
const AllMonths Month = 0

// String returns the month's display name, or "all" for AllMonths.
func (m Month) String() string {
	if m == AllMonths {
		return "all"
	}
	if m < 1 || m > 12 {
		return "Unknown"
	}
	return time.Month(m).String()
}

// ParseMonth canonicalizes "all", a full month name, a three letter
// abbreviation or a month number. Only months 1..maxMonth are accepted.
func ParseMonth(s string, maxMonth int) (Month, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	if norm == "all" {
		return AllMonths, true
	}
	for m := 1; m <= maxMonth && m <= 12; m++ {
		name := strings.ToLower(time.Month(m).String())
		if norm == name || norm == name[:3] || norm == strconv.Itoa(m) {
			return Month(m), true
		}
	}
	return AllMonths, false
}

// Weekday is a day-of-week filter with Monday = 0. AllDays disables the filter.
type Weekday int

// Day-of-week values, Monday first.
const (
	AllDays Weekday = iota - 1
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// String returns the day's display name, or "all" for AllDays.
func (d Weekday) String() string {
	if d == AllDays {
		return "all"
	}
	if d < Monday || d > Sunday {
		return "Unknown"
	}
	return weekdayNames[d]
}

// WeekdayOf converts a timestamp's weekday to the Monday = 0 convention.
func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

// ParseWeekday canonicalizes "all", a full day name, a three letter
// abbreviation or a day number 0..6 where 0 is Monday.
func ParseWeekday(s string) (Weekday, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	if norm == "all" {
		return AllDays, true
	}
	for i, name := range weekdayNames {
		lower := strings.ToLower(name)
		if norm == lower || norm == lower[:3] || norm == strconv.Itoa(i) {
			return Weekday(i), true
		}
	}
	return AllDays, false
}

// Filter is the city/month/day selection for one session iteration.
type Filter struct {
	City  City
	Month Month
	Day   Weekday
}

// Matches reports whether a trip passes the month and day predicates.
func (f Filter) Matches(t *Trip) bool {
	if f.Month != AllMonths && t.Month != int(f.Month) {
		return false
	}
	if f.Day != AllDays && t.Day != f.Day {
		return false
	}
	return true
}

// String returns a short human description of the filter.
func (f Filter) String() string {
	return fmt.Sprintf("%s (month: %s, day: %s)", f.City.Title(), f.Month, f.Day)
}
