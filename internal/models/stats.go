// Package models defines data structures and domain types.
package models

import "time"

// Count is one value of a grouped column and how often it occurs.
type Count struct {
	Value string
	Count int
}

// RouteCount is a start/end station pair and its trip count.
type RouteCount struct {
	Start string
	End   string
	Count int
}

// TimeStats holds the most frequent times of travel.
type TimeStats struct {
	Month      Month
	MonthCount int
	Day        Weekday
	DayCount   int
	Hour       int
	HourCount  int
	Hourly     []int // 24 buckets of trips per start hour
	Trips      int
	Elapsed    time.Duration
}

// HasData reports whether any trip contributed to the stats.
func (s *TimeStats) HasData() bool {
	return s.Trips > 0
}

// StationStats holds the most popular stations and route.
type StationStats struct {
	Start   Count
	End     Count
	Route   RouteCount
	Trips   int
	Elapsed time.Duration
}

// HasData reports whether any trip contributed to the stats.
func (s *StationStats) HasData() bool {
	return s.Trips > 0
}

// DurationStats holds total and mean trip duration.
type DurationStats struct {
	TotalDays   float64 // rounded to 2 decimals
	MeanMinutes float64 // rounded to 2 decimals
	Samples     int     // trips with a usable duration
	Elapsed     time.Duration
}

// HasData reports whether any duration was aggregated.
func (s *DurationStats) HasData() bool {
	return s.Samples > 0
}

// BirthYearStats summarizes rider birth years.
type BirthYearStats struct {
	Earliest   int
	MostRecent int
	MostCommon int
}

// UserStats holds user demographics. Genders and BirthYears are nil when
// the source has no such column.
type UserStats struct {
	UserTypes    []Count
	Genders      []Count
	BirthYears   *BirthYearStats
	HasGender    bool
	HasBirthYear bool
	Trips        int
	Elapsed      time.Duration
}

// HasData reports whether any trip contributed to the stats.
func (s *UserStats) HasData() bool {
	return s.Trips > 0
}
