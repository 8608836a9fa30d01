// Package app runs the interactive explore-report-browse session.
package app

import "github.com/j-veylop/bikeshare-explorer/internal/models"

// Stage is the step of the session loop currently running.
type Stage int

const (
	// StageFilters is asking for city, month and day.
	StageFilters Stage = iota
	// StageLoading is reading and filtering the city data.
	StageLoading
	// StageReporting is printing the four statistics sections.
	StageReporting
	// StageBrowsing is paging through raw rows.
	StageBrowsing
	// StageRestart is asking whether to run again.
	StageRestart
	// StageFinished means the session ended.
	StageFinished
)

// String returns the string representation of a Stage.
func (s Stage) String() string {
	switch s {
	case StageFilters:
		return "filters"
	case StageLoading:
		return "loading"
	case StageReporting:
		return "reporting"
	case StageBrowsing:
		return "browsing"
	case StageRestart:
		return "restart"
	case StageFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// State records the progress of a session.
type State struct {
	Stage      Stage
	Iterations int // completed explore-report-browse rounds
	LoadErrors int
	LastFilter models.Filter
	LastRows   int
}

func (s *State) enter(stage Stage) {
	s.Stage = stage
}

func (s *State) loaded(f models.Filter, rows int) {
	s.LastFilter = f
	s.LastRows = rows
}
