package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/j-veylop/bikeshare-explorer/internal/models"
)

// Errors returned while reading a city source.
var (
	ErrSourceUnavailable = errors.New("data source unavailable")
	ErrMalformedSource   = errors.New("malformed data source")
	ErrMissingColumn     = errors.New("missing required column")
	ErrBadTimestamp      = errors.New("unparseable start time")
	ErrUnknownCity       = errors.New("unknown city")
)

// startTimeLayouts are tried in order for every Start Time cell.
var startTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05.999999999",
	"01/02/2006 15:04:05",
	"1/2/2006 15:04",
	"2006-01-02",
}

// source is a fully parsed city file, shared read-only between loads.
type source struct {
	modTime      time.Time
	path         string
	frame        dataframe.DataFrame
	columns      []string
	trips        []models.Trip
	size         int64
	hasGender    bool
	hasBirthYear bool
}

// stale reports whether the file changed since it was parsed.
func (s *source) stale() bool {
	info, err := os.Stat(s.path)
	if err != nil {
		return true
	}
	return !info.ModTime().Equal(s.modTime) || info.Size() != s.size
}

// readSource parses a city CSV and derives month, day and hour columns.
// Every column is kept as text so raw rows print exactly as stored.
func readSource(path string) (*source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedSource, path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s: no header row", ErrMalformedSource, path)
	}

	header := records[0]
	for _, col := range models.RequiredColumns {
		if !slices.Contains(header, col) {
			return nil, fmt.Errorf("%w: %q in %s", ErrMissingColumn, col, path)
		}
	}

	src := &source{
		path:         path,
		modTime:      info.ModTime(),
		size:         info.Size(),
		columns:      append(slices.Clone(header), models.ColumnMonth, models.ColumnDay, models.ColumnHour),
		hasGender:    slices.Contains(header, models.ColumnGender),
		hasBirthYear: slices.Contains(header, models.ColumnBirthYear),
	}

	// A header without rows is an empty city, not a broken file.
	if len(records) == 1 {
		return src, nil
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedSource, path, df.Err)
	}

	trips, err := parseTrips(df, src.hasGender, src.hasBirthYear)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	src.trips = trips

	months := make([]int, len(trips))
	days := make([]int, len(trips))
	hours := make([]int, len(trips))
	for i := range trips {
		months[i] = trips[i].Month
		days[i] = int(trips[i].Day)
		hours[i] = trips[i].Hour
	}

	df = df.Mutate(series.New(months, series.Int, models.ColumnMonth)).
		Mutate(series.New(days, series.Int, models.ColumnDay)).
		Mutate(series.New(hours, series.Int, models.ColumnHour))
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedSource, path, df.Err)
	}
	src.frame = df

	return src, nil
}

func parseTrips(df dataframe.DataFrame, hasGender, hasBirthYear bool) ([]models.Trip, error) {
	starts := df.Col(models.ColumnStartTime).Records()
	durations := df.Col(models.ColumnTripDuration).Records()
	startStations := df.Col(models.ColumnStartStation).Records()
	endStations := df.Col(models.ColumnEndStation).Records()
	userTypes := df.Col(models.ColumnUserType).Records()

	var genders, birthYears []string
	if hasGender {
		genders = df.Col(models.ColumnGender).Records()
	}
	if hasBirthYear {
		birthYears = df.Col(models.ColumnBirthYear).Records()
	}

	trips := make([]models.Trip, len(starts))
	for i := range starts {
		start, err := parseStartTime(starts[i])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %q", ErrBadTimestamp, i+1, starts[i])
		}

		t := &trips[i]
		t.StartTime = start
		t.StartStation = cell(startStations[i])
		t.EndStation = cell(endStations[i])
		t.UserType = cell(userTypes[i])
		t.Duration, t.HasDuration = parseNumber(durations[i])
		if hasGender {
			t.Gender = cell(genders[i])
		}
		if hasBirthYear {
			var year float64
			year, t.HasBirthYear = parseNumber(birthYears[i])
			t.BirthYear = int(year)
		}
		t.Derive()
	}

	return trips, nil
}

func parseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range startTimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// cell normalizes a text cell; gota marks missing values as "NaN".
func cell(s string) string {
	s = strings.TrimSpace(s)
	if s == "NaN" {
		return ""
	}
	return s
}

func parseNumber(s string) (float64, bool) {
	s = cell(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
