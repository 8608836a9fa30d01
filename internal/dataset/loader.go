// Package dataset loads city trip files and applies month/day filters.
package dataset

import (
	"fmt"
	"time"

	"github.com/go-gota/gota/dataframe"

	"github.com/j-veylop/bikeshare-explorer/internal/config"
	"github.com/j-veylop/bikeshare-explorer/internal/logger"
	"github.com/j-veylop/bikeshare-explorer/internal/models"
)

// Dataset is the filtered, read-only view of one city's trips.
type Dataset struct {
	Filter       models.Filter
	Path         string
	frame        dataframe.DataFrame
	columns      []string
	Trips        []models.Trip
	SourceRows   int
	LoadTime     time.Duration
	HasGender    bool
	HasBirthYear bool
}

// Len returns the number of rows that passed the filter.
func (d *Dataset) Len() int {
	return len(d.Trips)
}

// Columns returns every column name as written in the file header, then the
// derived month, day and hour columns. An unnamed index column stays blank.
func (d *Dataset) Columns() []string {
	return d.columns
}

// Rows returns the raw text of rows [from, to), clamped to the dataset.
func (d *Dataset) Rows(from, to int) [][]string {
	if from < 0 {
		from = 0
	}
	if to > d.Len() {
		to = d.Len()
	}
	if from >= to {
		return nil
	}

	idx := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		idx = append(idx, i)
	}

	records := d.frame.Subset(idx).Records()
	if len(records) < 2 {
		return nil
	}
	return records[1:]
}

// Loader resolves cities to files and builds filtered datasets.
type Loader struct {
	catalog *config.Catalog
	cache   *Cache
}

// NewLoader creates a loader. cache may be shared across loaders.
func NewLoader(catalog *config.Catalog, cache *Cache) *Loader {
	return &Loader{catalog: catalog, cache: cache}
}

// Load reads the city's file (or reuses a cached parse) and keeps the rows
// whose derived month and day match the filter. Month 0 and day -1 disable
// the respective predicate.
func (l *Loader) Load(filter models.Filter) (*Dataset, error) {
	start := time.Now()

	path, ok := l.catalog.Source(filter.City)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCity, filter.City)
	}

	src, err := l.cache.Get(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s data: %w", filter.City.Title(), err)
	}

	ds := &Dataset{
		Filter:       filter,
		Path:         path,
		columns:      src.columns,
		SourceRows:   len(src.trips),
		HasGender:    src.hasGender,
		HasBirthYear: src.hasBirthYear,
	}

	if filter.Month == models.AllMonths && filter.Day == models.AllDays {
		ds.Trips = src.trips
		ds.frame = src.frame
	} else {
		idx := make([]int, 0, len(src.trips))
		for i := range src.trips {
			if filter.Matches(&src.trips[i]) {
				idx = append(idx, i)
			}
		}

		ds.Trips = make([]models.Trip, len(idx))
		for n, i := range idx {
			ds.Trips[n] = src.trips[i]
		}
		// An empty selection keeps the source frame for its column names;
		// Rows never reads past Len.
		ds.frame = src.frame
		if len(idx) > 0 {
			ds.frame = src.frame.Subset(idx)
		}
		if ds.frame.Err != nil {
			return nil, fmt.Errorf("failed to filter %s data: %w", filter.City.Title(), ds.frame.Err)
		}
	}

	ds.LoadTime = time.Since(start)
	logger.Info("dataset loaded",
		"city", filter.City,
		"month", filter.Month.String(),
		"day", filter.Day.String(),
		"rows", ds.Len(),
		"source_rows", ds.SourceRows,
		"elapsed", ds.LoadTime,
	)

	return ds, nil
}
