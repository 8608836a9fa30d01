// Package report prints the statistics sections of a session.
package report

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/j-veylop/bikeshare-explorer/internal/models"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/components"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/console"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/styles"
)

// Messages shared by several sections.
const (
	NoTripsMessage           = "No trips match the selected filters."
	NoGenderMessage          = "Unfortunately, this dataset does not have information about gender."
	NoBirthYearMessage       = "Unfortunately, this dataset does not have information about birth year."
	NoBirthYearValuesMessage = "No birth year values in the selected trips."
	NoGenderValuesMessage    = "No gender values in the selected trips."
)

const (
	defaultWidth = 60
	chartHeight  = 8
	shareWidth   = 20
)

// Reporter renders stats to a console.
type Reporter struct {
	out    *console.Console
	charts bool
	width  int
}

// New creates a reporter. Charts are drawn below the summaries when charts
// is true.
func New(out *console.Console, charts bool) *Reporter {
	return &Reporter{out: out, charts: charts, width: defaultWidth}
}

// Time prints the most frequent times of travel.
func (r *Reporter) Time(s *models.TimeStats) {
	r.heading("Calculating The Most Frequent Times of Travel...")

	if !s.HasData() {
		r.out.Println(NoTripsMessage)
	} else {
		r.out.Printf("The most common month is %s with %s records\n", value(s.Month.String()), comma(s.MonthCount))
		r.out.Printf("The most common day is %s with %s records\n", value(s.Day.String()), comma(s.DayCount))
		r.out.Printf("The most common starting hour is %s with %s records\n", value(fmt.Sprintf("%d:00", s.Hour)), comma(s.HourCount))

		if r.charts {
			r.out.Blank()
			r.out.Println(components.RenderHourlyHeatmap(s.Hourly))
			r.out.Blank()
			r.out.Println(components.RenderHourlyChart(s.Hourly, r.width, chartHeight))
		}
	}

	r.footer(s.Elapsed)
}

// Stations prints the most popular stations and route.
func (r *Reporter) Stations(s *models.StationStats) {
	r.heading("Calculating The Most Popular Stations and Trip...")

	if !s.HasData() {
		r.out.Println(NoTripsMessage)
	} else {
		r.out.Printf("The most common start station is: %s with %s records\n", value(s.Start.Value), comma(s.Start.Count))
		r.out.Printf("The most common end station is: %s with %s records\n", value(s.End.Value), comma(s.End.Count))
		r.out.Printf("The most common combination of stations are start: %s and end: %s with %s records\n",
			value(s.Route.Start), value(s.Route.End), comma(s.Route.Count))
	}

	r.footer(s.Elapsed)
}

// Durations prints total and mean travel time.
func (r *Reporter) Durations(s *models.DurationStats) {
	r.heading("Calculating Trip Duration...")

	if !s.HasData() {
		r.out.Println(NoTripsMessage)
	} else {
		r.out.Printf("The total travel time was %s days\n", value(decimal(s.TotalDays)))
		r.out.Printf("The mean travel time was %s minutes\n", value(decimal(s.MeanMinutes)))
	}

	r.footer(s.Elapsed)
}

// Users prints user type, gender and birth year statistics.
func (r *Reporter) Users(s *models.UserStats) {
	r.heading("Calculating User Stats...")

	if !s.HasData() {
		r.out.Println(NoTripsMessage)
		r.footer(s.Elapsed)
		return
	}

	r.out.Println("The following users were found:")
	r.counts(s.UserTypes, s.Trips)
	if r.charts && len(s.UserTypes) > 0 {
		r.out.Blank()
		r.out.Println(components.RenderBarChart(s.UserTypes, r.width))
	}

	r.out.Blank()
	switch {
	case !s.HasGender:
		r.out.Warn(NoGenderMessage)
	case len(s.Genders) == 0:
		r.out.Warn(NoGenderValuesMessage)
	default:
		r.out.Println("The following genders were found:")
		r.counts(s.Genders, s.Trips)
	}

	r.out.Blank()
	switch {
	case !s.HasBirthYear:
		r.out.Warn(NoBirthYearMessage)
	case s.BirthYears == nil:
		r.out.Warn(NoBirthYearValuesMessage)
	default:
		r.out.Printf("The earliest year of birth is %s\n", value(strconv.Itoa(s.BirthYears.Earliest)))
		r.out.Printf("The most recent year of birth is %s\n", value(strconv.Itoa(s.BirthYears.MostRecent)))
		r.out.Printf("The most common year of birth is %s\n", value(strconv.Itoa(s.BirthYears.MostCommon)))
	}

	r.footer(s.Elapsed)
}

// counts prints one aligned line per value. With charts enabled each line
// carries the value's share of all trips.
func (r *Reporter) counts(counts []models.Count, total int) {
	labelWidth := 0
	for _, c := range counts {
		labelWidth = max(labelWidth, len(c.Value))
	}

	for _, c := range counts {
		label := fmt.Sprintf("%-*s", labelWidth, c.Value)
		line := fmt.Sprintf("  %s  %s", label, comma(c.Count))
		if r.charts {
			line = fmt.Sprintf("  %s  %10s", components.NewShareBar(label, c.Count, total, shareWidth).View(), comma(c.Count))
		}
		r.out.Println(line)
	}
}

func (r *Reporter) heading(title string) {
	r.out.Blank()
	r.out.Println(styles.SubTitleStyle.Render(title))
	r.out.Blank()
}

func (r *Reporter) footer(elapsed time.Duration) {
	r.out.Blank()
	r.out.Println(styles.HelpStyle.Render(fmt.Sprintf("This took %s milliseconds.", Milliseconds(elapsed))))
	r.out.Rule()
}

// Milliseconds formats d in milliseconds with at most two decimals.
func Milliseconds(d time.Duration) string {
	ms := float64(d) / float64(time.Millisecond)
	return decimal(math.Round(ms*100) / 100)
}

func decimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func comma(n int) string {
	return humanize.Comma(int64(n))
}

func value(s string) string {
	return styles.ValueStyle.Render(s)
}
