// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/j-veylop/bikeshare-explorer/internal/models"
)

// CSVHeader is the column layout of the Chicago and New York files. The
// first, unnamed column is the row index.
const CSVHeader = ",Start Time,End Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year"

type sampleRow struct {
	start    string
	duration string
	from     string
	to       string
	user     string
	gender   string
	birth    string
}

// The ten sample trips. Expected aggregates:
//
//	month: January x4      day: Monday x6       hour: 8 x5
//	start: A x5            end: B x5            route: A -> B x4
//	total: 8820s (0.10 days)                    mean: 882s (14.7 minutes)
//	users: Subscriber 6, Customer 3, Dependent 1
//	gender: Male 5, Female 3 (two blank)
//	birth year: 1980..2000, 1980 and 1990 tie at 3, so 1980
var sampleRows = []sampleRow{
	{"2017-01-02 08:15:00", "600", "A", "B", "Subscriber", "Male", "1980.0"},
	{"2017-01-03 08:30:00", "300", "A", "B", "Subscriber", "Female", "1990.0"},
	{"2017-01-09 17:00:00", "1200", "B", "A", "Customer", "", ""},
	{"2017-02-06 08:05:00", "900", "A", "C", "Subscriber", "Male", "1990.0"},
	{"2017-02-07 12:00:00", "60", "C", "A", "Customer", "Male", "1985.0"},
	{"2017-03-06 08:45:00", "1800", "B", "A", "Subscriber", "Female", "1980.0"},
	{"2017-01-16 17:30:00", "120", "C", "B", "Subscriber", "Male", "2000.0"},
	{"2017-03-07 17:10:00", "240", "A", "B", "Dependent", "Female", "1990.0"},
	{"2017-06-04 09:00:00", "3600", "B", "C", "Customer", "", ""},
	{"2017-06-05 08:00:00", "0", "A", "B", "Subscriber", "Male", "1980.0"},
}

// SampleTrips returns the ten sample trips with derived fields set.
func SampleTrips() []models.Trip {
	trips := make([]models.Trip, len(sampleRows))
	for i, r := range sampleRows {
		start, err := time.Parse("2006-01-02 15:04:05", r.start)
		if err != nil {
			panic(err)
		}
		t := models.Trip{
			StartTime:    start,
			StartStation: r.from,
			EndStation:   r.to,
			UserType:     r.user,
			Gender:       r.gender,
			HasDuration:  true,
		}
		fmt.Sscanf(r.duration, "%g", &t.Duration)
		if r.birth != "" {
			var year float64
			fmt.Sscanf(r.birth, "%g", &year)
			t.BirthYear = int(year)
			t.HasBirthYear = true
		}
		t.Derive()
		trips[i] = t
	}
	return trips
}

// SampleCSV renders the sample trips in the Chicago file layout.
func SampleCSV() string {
	var b strings.Builder
	b.WriteString(CSVHeader + "\n")
	for i, r := range sampleRows {
		fmt.Fprintf(&b, "%d,%s,%s,%s,%s,%s,%s,%s,%s\n",
			i, r.start, r.start, r.duration, r.from, r.to, r.user, r.gender, r.birth)
	}
	return b.String()
}

// NumberedCSV renders n trips in the Washington layout (no gender or birth
// year). Row i starts at 2017-01-01 plus i hours and departs from "Station i".
func NumberedCSV(n int) string {
	var b strings.Builder
	b.WriteString(",Start Time,End Time,Trip Duration,Start Station,End Station,User Type\n")
	base := time.Date(2017, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := range n {
		start := base.Add(time.Duration(i) * time.Hour).Format("2006-01-02 15:04:05")
		fmt.Fprintf(&b, "%d,%s,%s,%d,Station %d,Station %d,Registered\n", i, start, start, 60*(i+1), i, i+1)
	}
	return b.String()
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile(%s) failed: %v", name, err)
	}
	return path
}
