package dataset

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/j-veylop/bikeshare-explorer/internal/config"
	"github.com/j-veylop/bikeshare-explorer/internal/models"
	"github.com/j-veylop/bikeshare-explorer/internal/testutil"
)

const chicagoCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year
1,2017-03-06 08:00:00,2017-03-06 08:20:00,1200,Canal St & Adams St,Clinton St & Madison St,Subscriber,Male,1985.0
2,2017-03-06 17:10:00,2017-03-06 17:30:00,1200,Canal St & Adams St,Clinton St & Madison St,Subscriber,Female,1990.0
3,2017-03-07 09:00:00,2017-03-07 09:10:00,600,Clinton St & Madison St,Canal St & Adams St,Customer,,
4,2017-03-13 12:00:00,2017-03-13 12:05:00,300,Streeter Dr & Grand Ave,Lake Shore Dr & Monroe St,Customer,,
5,2017-01-02 07:00:00,2017-01-02 07:30:00,1800,Canal St & Adams St,Streeter Dr & Grand Ave,Subscriber,Male,1985.0
6,2017-01-03 08:00:00,2017-01-03 08:15:00,900,Clinton St & Madison St,Canal St & Adams St,Subscriber,Male,1970.0
7,2017-06-30 23:59:59,2017-07-01 00:10:00,660,Streeter Dr & Grand Ave,Streeter Dr & Grand Ave,Customer,Female,2001.0
`

const washingtonCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type
1,2017-04-03 10:00:00,2017-04-03 10:30:00,1782.36,Lincoln Memorial,Jefferson Memorial,Registered
2,2017-04-04 11:00:00,2017-04-04 11:05:00,300.5,Jefferson Memorial,Lincoln Memorial,Casual
`

func newTestLoader(t *testing.T) (*Loader, *Cache, string) {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "chicago.csv", chicagoCSV)
	testutil.WriteFile(t, dir, "washington.csv", washingtonCSV)

	cache := NewCache(3)
	t.Cleanup(func() {
		if err := cache.Close(); err != nil {
			t.Logf("Close() failed: %v", err)
		}
	})

	return NewLoader(config.DefaultCatalog(dir), cache), cache, dir
}

func TestLoad_NoFilter(t *testing.T) {
	loader, _, _ := newTestLoader(t)

	ds, err := loader.Load(models.Filter{City: models.Chicago, Month: models.AllMonths, Day: models.AllDays})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if ds.Len() != 7 || ds.SourceRows != 7 {
		t.Errorf("Len()/SourceRows = %d/%d, want 7/7", ds.Len(), ds.SourceRows)
	}
	if !ds.HasGender || !ds.HasBirthYear {
		t.Error("chicago data should have gender and birth year")
	}
}

func TestLoad_Filters(t *testing.T) {
	loader, _, _ := newTestLoader(t)

	tests := []struct {
		name     string
		month    models.Month
		day      models.Weekday
		wantRows int
	}{
		{"March", 3, models.AllDays, 4},
		{"MarchMonday", 3, models.Monday, 3},
		{"Tuesday", models.AllMonths, models.Tuesday, 2},
		{"JanuaryMonday", 1, models.Monday, 1},
		{"June", 6, models.AllDays, 1},
		{"FebruaryEmpty", 2, models.AllDays, 0},
		{"SundayEmpty", models.AllMonths, models.Sunday, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := loader.Load(models.Filter{City: models.Chicago, Month: tt.month, Day: tt.day})
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			if ds.Len() != tt.wantRows {
				t.Fatalf("Len() = %d, want %d", ds.Len(), tt.wantRows)
			}
			for _, trip := range ds.Trips {
				if tt.month != models.AllMonths && trip.Month != int(tt.month) {
					t.Errorf("trip %v has month %d", trip.StartTime, trip.Month)
				}
				if tt.day != models.AllDays && trip.Day != tt.day {
					t.Errorf("trip %v has day %v", trip.StartTime, trip.Day)
				}
			}
			if ds.SourceRows != 7 {
				t.Errorf("SourceRows = %d, want 7", ds.SourceRows)
			}
		})
	}
}

func TestLoad_ParsedFields(t *testing.T) {
	loader, _, _ := newTestLoader(t)

	ds, err := loader.Load(models.Filter{City: models.Chicago, Month: 3, Day: models.Tuesday})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if ds.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", ds.Len())
	}

	got := ds.Trips[0]
	if got.StartStation != "Clinton St & Madison St" || got.UserType != "Customer" {
		t.Errorf("unexpected trip %+v", got)
	}
	if !got.HasDuration || got.Duration != 600 {
		t.Errorf("Duration = (%v, %v), want (600, true)", got.Duration, got.HasDuration)
	}
	if got.Gender != "" || got.HasBirthYear {
		t.Errorf("blank gender/birth year should be missing, got %q/%v", got.Gender, got.HasBirthYear)
	}
	if got.Hour != 9 || got.Month != 3 || got.Day != models.Tuesday {
		t.Errorf("derived fields = %d/%v/%d", got.Month, got.Day, got.Hour)
	}
}

func TestLoad_MissingOptionalColumns(t *testing.T) {
	loader, _, _ := newTestLoader(t)

	ds, err := loader.Load(models.Filter{City: models.Washington, Month: models.AllMonths, Day: models.AllDays})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if ds.HasGender || ds.HasBirthYear {
		t.Error("washington data should not have gender or birth year")
	}
	if ds.Trips[0].Duration != 1782.36 {
		t.Errorf("Duration = %v, want 1782.36", ds.Trips[0].Duration)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "BadTimestamp",
			content: "Start Time,Trip Duration,Start Station,End Station,User Type\n2017-01-01 00:00:00,10,A,B,Subscriber\nyesterday,10,A,B,Subscriber\n",
			wantErr: ErrBadTimestamp,
		},
		{
			name:    "MissingColumn",
			content: "Start Time,Trip Duration,Start Station,User Type\n2017-01-01 00:00:00,10,A,Subscriber\n",
			wantErr: ErrMissingColumn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			testutil.WriteFile(t, dir, "new_york_city.csv", tt.content)
			cache := NewCache(1)
			defer cache.Close()

			_, err := NewLoader(config.DefaultCatalog(dir), cache).
				Load(models.Filter{City: models.NewYorkCity, Month: models.AllMonths, Day: models.AllDays})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
			if cache.Len() != 0 {
				t.Error("failed loads must not be cached")
			}
		})
	}
}

func TestLoad_BadTimestampReportsRow(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "chicago.csv",
		"Start Time,Trip Duration,Start Station,End Station,User Type\n2017-01-01 00:00:00,10,A,B,Subscriber\nnot-a-date,10,A,B,Subscriber\n")
	cache := NewCache(1)
	defer cache.Close()

	_, err := NewLoader(config.DefaultCatalog(dir), cache).
		Load(models.Filter{City: models.Chicago, Month: models.AllMonths, Day: models.AllDays})
	if err == nil || !strings.Contains(err.Error(), "row 2") || !strings.Contains(err.Error(), "not-a-date") {
		t.Errorf("error should name the row and value, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	loader, _, _ := newTestLoader(t)

	_, err := loader.Load(models.Filter{City: models.NewYorkCity, Month: models.AllMonths, Day: models.AllDays})
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("Load() error = %v, want ErrSourceUnavailable", err)
	}
}

func TestLoad_UnknownCity(t *testing.T) {
	loader, _, _ := newTestLoader(t)

	_, err := loader.Load(models.Filter{City: "boston", Month: models.AllMonths, Day: models.AllDays})
	if !errors.Is(err, ErrUnknownCity) {
		t.Errorf("Load() error = %v, want ErrUnknownCity", err)
	}
}

func TestLoad_Idempotent(t *testing.T) {
	loader, _, _ := newTestLoader(t)
	filter := models.Filter{City: models.Chicago, Month: 3, Day: models.AllDays}

	first, err := loader.Load(filter)
	if err != nil {
		t.Fatalf("first Load() failed: %v", err)
	}
	second, err := loader.Load(filter)
	if err != nil {
		t.Fatalf("second Load() failed: %v", err)
	}

	if diff := cmp.Diff(first.Trips, second.Trips); diff != "" {
		t.Errorf("datasets differ (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first.Rows(0, first.Len()), second.Rows(0, second.Len())); diff != "" {
		t.Errorf("raw rows differ (-first +second):\n%s", diff)
	}
}

func TestDataset_ColumnsAndRows(t *testing.T) {
	loader, _, _ := newTestLoader(t)

	ds, err := loader.Load(models.Filter{City: models.Chicago, Month: 3, Day: models.AllDays})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	cols := ds.Columns()
	if n := len(cols); n < 3 || !slices.Equal(cols[n-3:], []string{"month", "day", "hour"}) {
		t.Fatalf("Columns() = %v, want derived columns last", cols)
	}
	startIdx := slices.Index(cols, models.ColumnStartTime)
	if startIdx < 0 {
		t.Fatalf("Columns() missing %q: %v", models.ColumnStartTime, cols)
	}

	rows := ds.Rows(0, 2)
	if len(rows) != 2 {
		t.Fatalf("Rows(0, 2) returned %d rows", len(rows))
	}
	if len(rows[0]) != len(cols) {
		t.Errorf("row has %d cells, want %d", len(rows[0]), len(cols))
	}
	if rows[0][startIdx] != "2017-03-06 08:00:00" {
		t.Errorf("Start Time cell = %q, want raw text", rows[0][startIdx])
	}
	if rows[0][len(cols)-3] != "3" || rows[0][len(cols)-2] != "0" || rows[0][len(cols)-1] != "8" {
		t.Errorf("derived cells = %v", rows[0][len(cols)-3:])
	}

	if got := ds.Rows(3, 10); len(got) != 1 {
		t.Errorf("Rows(3, 10) returned %d rows, want 1", len(got))
	}
	if got := ds.Rows(4, 10); got != nil {
		t.Errorf("Rows past the end = %v, want nil", got)
	}
}

func TestDataset_EmptyRows(t *testing.T) {
	loader, _, _ := newTestLoader(t)

	ds, err := loader.Load(models.Filter{City: models.Chicago, Month: 2, Day: models.AllDays})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if ds.Rows(0, 5) != nil {
		t.Error("empty dataset should have no rows")
	}
	if !slices.Contains(ds.Columns(), models.ColumnUserType) {
		t.Error("empty dataset should still report columns")
	}
}

func TestCache_ReusesAndReloads(t *testing.T) {
	loader, cache, dir := newTestLoader(t)
	all := models.Filter{City: models.Chicago, Month: models.AllMonths, Day: models.AllDays}

	first, err := loader.Load(all)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	second, err := loader.Load(all)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if &first.Trips[0] != &second.Trips[0] {
		t.Error("unchanged source should be served from the cache")
	}
	if cache.Len() != 1 {
		t.Errorf("cache.Len() = %d, want 1", cache.Len())
	}

	extra := "8,2017-05-01 10:00:00,2017-05-01 10:10:00,600,A,B,Subscriber,Male,1980.0\n"
	testutil.WriteFile(t, dir, "chicago.csv", chicagoCSV+extra)

	third, err := loader.Load(all)
	if err != nil {
		t.Fatalf("Load() after rewrite failed: %v", err)
	}
	if third.Len() != 8 {
		t.Errorf("Len() after rewrite = %d, want 8", third.Len())
	}
}

func TestLoad_HeaderOnly(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "chicago.csv", testutil.CSVHeader+"\n")
	cache := NewCache(1)
	defer cache.Close()

	ds, err := NewLoader(config.DefaultCatalog(dir), cache).
		Load(models.Filter{City: models.Chicago, Month: models.AllMonths, Day: models.AllDays})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if ds.Len() != 0 || ds.SourceRows != 0 {
		t.Errorf("Len() = %d, SourceRows = %d, want 0", ds.Len(), ds.SourceRows)
	}
	if !ds.HasGender || !ds.HasBirthYear {
		t.Error("optional columns in the header should still be detected")
	}
	if ds.Rows(0, 5) != nil {
		t.Error("header-only file should have no rows")
	}
	if !slices.Contains(ds.Columns(), models.ColumnUserType) {
		t.Errorf("Columns() = %v, want the header names", ds.Columns())
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "chicago.csv", "")
	cache := NewCache(1)
	defer cache.Close()

	_, err := NewLoader(config.DefaultCatalog(dir), cache).
		Load(models.Filter{City: models.Chicago, Month: models.AllMonths, Day: models.AllDays})
	if !errors.Is(err, ErrMalformedSource) {
		t.Errorf("Load() error = %v, want ErrMalformedSource", err)
	}
}

func TestDataset_UnnamedIndexColumn(t *testing.T) {
	loader, _, _ := newTestLoader(t)

	ds, err := loader.Load(models.Filter{City: models.Chicago, Month: models.AllMonths, Day: models.AllDays})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	want := []string{
		"", "Start Time", "End Time", "Trip Duration", "Start Station", "End Station",
		"User Type", "Gender", "Birth Year", "month", "day", "hour",
	}
	if diff := cmp.Diff(want, ds.Columns()); diff != "" {
		t.Errorf("Columns() mismatch (-want +got):\n%s", diff)
	}
	if rows := ds.Rows(0, 1); rows[0][0] != "1" {
		t.Errorf("index cell = %q, want %q", rows[0][0], "1")
	}
}

func TestParseStartTime(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"2017-01-01 00:07:57", false},
		{"2017-01-01T00:07:57", false},
		{"2017-01-01 00:07", false},
		{"01/31/2017 13:05:00", false},
		{" 2017-06-30 23:59:59 ", false},
		{"", true},
		{"31/01/2017", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := parseStartTime(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseStartTime(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
