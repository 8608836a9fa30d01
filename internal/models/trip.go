// Package models defines data structures and domain types.
package models

import "time"

// Source column names expected in the city CSV files.
const (
	ColumnStartTime    = "Start Time"
	ColumnTripDuration = "Trip Duration"
	ColumnStartStation = "Start Station"
	ColumnEndStation   = "End Station"
	ColumnUserType     = "User Type"
	ColumnGender       = "Gender"
	ColumnBirthYear    = "Birth Year"
)

// Derived column names appended at load time.
const (
	ColumnMonth = "month"
	ColumnDay   = "day"
	ColumnHour  = "hour"
)

// RequiredColumns must be present in every source file.
var RequiredColumns = []string{
	ColumnStartTime,
	ColumnTripDuration,
	ColumnStartStation,
	ColumnEndStation,
	ColumnUserType,
}

// Trip represents one bicycle trip record.
type Trip struct {
	StartTime    time.Time
	StartStation string
	EndStation   string
	UserType     string
	Gender       string // empty when missing
	Duration     float64
	BirthYear    int
	Month        int // 1-12
	Hour         int // 0-23
	Day          Weekday
	HasDuration  bool
	HasBirthYear bool
}

// Derive fills the month, day and hour fields from StartTime.
func (t *Trip) Derive() {
	t.Month = int(t.StartTime.Month())
	t.Day = WeekdayOf(t.StartTime)
	t.Hour = t.StartTime.Hour()
}
