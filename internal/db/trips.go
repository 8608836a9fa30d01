package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/j-veylop/bikeshare-explorer/internal/models"
)

// Column is a groupable trips column.
type Column string

// Groupable columns.
const (
	ColMonth        Column = "month"
	ColDayOfWeek    Column = "day_of_week"
	ColHour         Column = "hour"
	ColStartStation Column = "start_station"
	ColEndStation   Column = "end_station"
	ColUserType     Column = "user_type"
	ColGender       Column = "gender"
	ColBirthYear    Column = "birth_year"
)

func (c Column) valid() bool {
	switch c {
	case ColMonth, ColDayOfWeek, ColHour, ColStartStation, ColEndStation,
		ColUserType, ColGender, ColBirthYear:
		return true
	}
	return false
}

// ReplaceTrips swaps the stored trips for the given slice.
func (db *DB) ReplaceTrips(ctx context.Context, trips []models.Trip) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM trips"); err != nil {
		return fmt.Errorf("failed to clear trips: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trips (
			start_time, duration, start_station, end_station, user_type,
			gender, birth_year, month, day_of_week, hour
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare trip insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range trips {
		t := &trips[i]
		_, err := stmt.ExecContext(ctx,
			t.StartTime.Format("2006-01-02 15:04:05"),
			sql.NullFloat64{Float64: t.Duration, Valid: t.HasDuration},
			nullString(t.StartStation),
			nullString(t.EndStation),
			nullString(t.UserType),
			nullString(t.Gender),
			sql.NullInt64{Int64: int64(t.BirthYear), Valid: t.HasBirthYear},
			t.Month,
			int(t.Day),
			t.Hour,
		)
		if err != nil {
			return fmt.Errorf("failed to insert trip %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit trips: %w", err)
	}
	return nil
}

// CountTrips returns the number of stored trips.
func (db *DB) CountTrips(ctx context.Context) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM trips").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count trips: %w", err)
	}
	return n, nil
}

// ValueCounts groups non-null values of col, most frequent first. Ties are
// ordered by value ascending.
func (db *DB) ValueCounts(ctx context.Context, col Column) ([]models.Count, error) {
	return db.valueCounts(ctx, col, -1)
}

// TopValue returns the most frequent value of col. ok is false when the
// column has no values.
func (db *DB) TopValue(ctx context.Context, col Column) (top models.Count, ok bool, err error) {
	counts, err := db.valueCounts(ctx, col, 1)
	if err != nil || len(counts) == 0 {
		return models.Count{}, false, err
	}
	return counts[0], true, nil
}

func (db *DB) valueCounts(ctx context.Context, col Column, limit int) ([]models.Count, error) {
	if !col.valid() {
		return nil, fmt.Errorf("unknown column %q", col)
	}

	query := fmt.Sprintf(`
		SELECT CAST(%[1]s AS TEXT) AS value, COUNT(*) AS n
		FROM trips
		WHERE %[1]s IS NOT NULL
		GROUP BY %[1]s
		ORDER BY n DESC, %[1]s ASC
		LIMIT ?
	`, col)

	rows, err := db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", col, err)
	}
	defer func() { _ = rows.Close() }()

	var counts []models.Count
	for rows.Next() {
		var c models.Count
		if err := rows.Scan(&c.Value, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan %s count: %w", col, err)
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// HourlyCounts returns trips per start hour, always 24 buckets.
func (db *DB) HourlyCounts(ctx context.Context) ([]int, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT hour, COUNT(*) FROM trips GROUP BY hour ORDER BY hour ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query hourly counts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make([]int, 24)
	for rows.Next() {
		var hour, n int
		if err := rows.Scan(&hour, &n); err != nil {
			return nil, fmt.Errorf("failed to scan hourly count: %w", err)
		}
		if hour >= 0 && hour < 24 {
			counts[hour] = n
		}
	}

	return counts, rows.Err()
}

// TopRoute returns the most frequent start/end station pair. Ties are broken
// by start then end station name.
func (db *DB) TopRoute(ctx context.Context) (route models.RouteCount, ok bool, err error) {
	err = db.QueryRowContext(ctx, `
		SELECT start_station, end_station, COUNT(*) AS n
		FROM trips
		WHERE start_station IS NOT NULL AND end_station IS NOT NULL
		GROUP BY start_station, end_station
		ORDER BY n DESC, start_station ASC, end_station ASC
		LIMIT 1
	`).Scan(&route.Start, &route.End, &route.Count)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RouteCount{}, false, nil
	}
	if err != nil {
		return models.RouteCount{}, false, fmt.Errorf("failed to query top route: %w", err)
	}
	return route, true, nil
}

// DurationSummary returns the sum and mean of known durations in seconds
// and how many trips had one.
func (db *DB) DurationSummary(ctx context.Context) (total, mean float64, samples int, err error) {
	var avg sql.NullFloat64
	err = db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(duration), 0), AVG(duration), COUNT(duration) FROM trips
	`).Scan(&total, &avg, &samples)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to summarize durations: %w", err)
	}
	return total, avg.Float64, samples, nil
}

// BirthYearRange returns the earliest and most recent known birth year.
func (db *DB) BirthYearRange(ctx context.Context) (earliest, latest int, ok bool, err error) {
	var lo, hi sql.NullInt64
	err = db.QueryRowContext(ctx, `
		SELECT MIN(birth_year), MAX(birth_year) FROM trips
	`).Scan(&lo, &hi)
	if err != nil {
		return 0, 0, false, fmt.Errorf("failed to query birth years: %w", err)
	}
	if !lo.Valid || !hi.Valid {
		return 0, 0, false, nil
	}
	return int(lo.Int64), int(hi.Int64), true, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
