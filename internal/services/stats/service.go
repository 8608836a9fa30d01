// Package stats computes the descriptive statistics shown for a dataset.
package stats

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/j-veylop/bikeshare-explorer/internal/dataset"
	"github.com/j-veylop/bikeshare-explorer/internal/db"
	"github.com/j-veylop/bikeshare-explorer/internal/logger"
	"github.com/j-veylop/bikeshare-explorer/internal/models"
)

const (
	secondsPerDay    = 86400
	secondsPerMinute = 60
)

// Service aggregates the trips of the prepared dataset.
type Service struct {
	db  *db.DB
	now func() time.Time
}

// New creates a stats service backed by database.
func New(database *db.DB) *Service {
	return &Service{
		db:  database,
		now: time.Now,
	}
}

// Prepare loads the dataset's trips into the store, replacing any previous
// dataset.
func (s *Service) Prepare(ctx context.Context, ds *dataset.Dataset) error {
	start := s.now()
	if err := s.db.ReplaceTrips(ctx, ds.Trips); err != nil {
		return fmt.Errorf("failed to prepare %s: %w", ds.Filter, err)
	}
	logger.Debug("prepared trips for stats", "filter", ds.Filter.String(), "trips", ds.Len(), "elapsed", s.now().Sub(start))
	return nil
}

// TimeStats computes the most frequent month, day of week and start hour.
func (s *Service) TimeStats(ctx context.Context) (*models.TimeStats, error) {
	start := s.now()
	stats := &models.TimeStats{}

	var err error
	if stats.Trips, err = s.db.CountTrips(ctx); err != nil {
		return nil, err
	}

	if top, ok, err := s.db.TopValue(ctx, db.ColMonth); err != nil {
		return nil, err
	} else if ok {
		month, err := atoi(top.Value)
		if err != nil {
			return nil, err
		}
		stats.Month, stats.MonthCount = models.Month(month), top.Count
	}

	if top, ok, err := s.db.TopValue(ctx, db.ColDayOfWeek); err != nil {
		return nil, err
	} else if ok {
		day, err := atoi(top.Value)
		if err != nil {
			return nil, err
		}
		stats.Day, stats.DayCount = models.Weekday(day), top.Count
	}

	if top, ok, err := s.db.TopValue(ctx, db.ColHour); err != nil {
		return nil, err
	} else if ok {
		if stats.Hour, err = atoi(top.Value); err != nil {
			return nil, err
		}
		stats.HourCount = top.Count
	}

	if stats.Hourly, err = s.db.HourlyCounts(ctx); err != nil {
		return nil, err
	}

	stats.Elapsed = s.now().Sub(start)
	return stats, nil
}

// StationStats computes the most popular start station, end station and
// route.
func (s *Service) StationStats(ctx context.Context) (*models.StationStats, error) {
	start := s.now()
	stats := &models.StationStats{}

	var err error
	if stats.Trips, err = s.db.CountTrips(ctx); err != nil {
		return nil, err
	}
	if stats.Start, _, err = s.db.TopValue(ctx, db.ColStartStation); err != nil {
		return nil, err
	}
	if stats.End, _, err = s.db.TopValue(ctx, db.ColEndStation); err != nil {
		return nil, err
	}
	if stats.Route, _, err = s.db.TopRoute(ctx); err != nil {
		return nil, err
	}

	stats.Elapsed = s.now().Sub(start)
	return stats, nil
}

// DurationStats computes total travel time in days and mean travel time in
// minutes, both rounded to two decimals.
func (s *Service) DurationStats(ctx context.Context) (*models.DurationStats, error) {
	start := s.now()

	total, mean, samples, err := s.db.DurationSummary(ctx)
	if err != nil {
		return nil, err
	}

	return &models.DurationStats{
		TotalDays:   round2(total / secondsPerDay),
		MeanMinutes: round2(mean / secondsPerMinute),
		Samples:     samples,
		Elapsed:     s.now().Sub(start),
	}, nil
}

// UserStats computes user type counts and, when the source carries them,
// gender counts and birth year summaries.
func (s *Service) UserStats(ctx context.Context, hasGender, hasBirthYear bool) (*models.UserStats, error) {
	start := s.now()
	stats := &models.UserStats{
		HasGender:    hasGender,
		HasBirthYear: hasBirthYear,
	}

	var err error
	if stats.Trips, err = s.db.CountTrips(ctx); err != nil {
		return nil, err
	}
	if stats.UserTypes, err = s.db.ValueCounts(ctx, db.ColUserType); err != nil {
		return nil, err
	}

	if hasGender {
		if stats.Genders, err = s.db.ValueCounts(ctx, db.ColGender); err != nil {
			return nil, err
		}
	}

	if hasBirthYear {
		if stats.BirthYears, err = s.birthYears(ctx); err != nil {
			return nil, err
		}
	}

	stats.Elapsed = s.now().Sub(start)
	return stats, nil
}

// birthYears returns nil when no trip has a birth year.
func (s *Service) birthYears(ctx context.Context) (*models.BirthYearStats, error) {
	earliest, latest, ok, err := s.db.BirthYearRange(ctx)
	if err != nil || !ok {
		return nil, err
	}

	top, ok, err := s.db.TopValue(ctx, db.ColBirthYear)
	if err != nil || !ok {
		return nil, err
	}
	common, err := atoi(top.Value)
	if err != nil {
		return nil, err
	}

	return &models.BirthYearStats{
		Earliest:   earliest,
		MostRecent: latest,
		MostCommon: common,
	}, nil
}

func atoi(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unexpected aggregate value %q: %w", s, err)
	}
	return n, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
