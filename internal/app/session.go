package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/j-veylop/bikeshare-explorer/internal/browser"
	"github.com/j-veylop/bikeshare-explorer/internal/config"
	"github.com/j-veylop/bikeshare-explorer/internal/dataset"
	"github.com/j-veylop/bikeshare-explorer/internal/db"
	"github.com/j-veylop/bikeshare-explorer/internal/logger"
	"github.com/j-veylop/bikeshare-explorer/internal/prompt"
	"github.com/j-veylop/bikeshare-explorer/internal/services/notify"
	"github.com/j-veylop/bikeshare-explorer/internal/services/stats"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/console"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/report"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/styles"
)

// WelcomeMessage opens every round of the session.
const WelcomeMessage = "Welcome! Let's explore some US bikeshare data!"

// RestartQuestion ends every round of the session.
const RestartQuestion = "Would you like to restart? Enter yes or no."

// Session wires the prompt, loader, stats and browser for one user.
type Session struct {
	cfg      *config.Config
	out      *console.Console
	prompt   *prompt.Prompter
	cache    *dataset.Cache
	loader   *dataset.Loader
	store    *db.DB
	stats    *stats.Service
	reporter *report.Reporter
	browser  *browser.Browser
	notifier notify.Notifier
	state    State
}

// Option customizes a Session.
type Option func(*Session)

// WithNotifier overrides the slow-load notifier.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Session) { s.notifier = n }
}

// New creates a session reading answers from in and writing reports to out.
// The caller must Close the session.
func New(cfg *config.Config, in io.Reader, out io.Writer, opts ...Option) (*Session, error) {
	if cfg.Catalog == nil {
		cfg.Catalog = config.DefaultCatalog(cfg.DataDir)
	}

	store, err := db.New(db.MemoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize trip store: %w", err)
	}

	c := console.New(out, cfg.Plain)
	p := prompt.New(in, c)
	cache := dataset.NewCache(cfg.CacheSize)

	s := &Session{
		cfg:      cfg,
		out:      c,
		prompt:   p,
		cache:    cache,
		loader:   dataset.NewLoader(cfg.Catalog, cache),
		store:    store,
		stats:    stats.New(store),
		reporter: report.New(c, cfg.Charts),
		browser:  browser.New(p, c, cfg.PageSize),
		notifier: notify.Noop{},
	}
	if cfg.Notify {
		s.notifier = notify.Desktop{}
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// State returns a snapshot of the session progress.
func (s *Session) State() State {
	return s.state
}

// Run loops filters, load, reports, raw rows and the restart question until
// the user declines to restart or the input ends.
func (s *Session) Run(ctx context.Context) error {
	defer s.state.enter(StageFinished)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		again, err := s.round(ctx)
		if errors.Is(err, prompt.ErrInputClosed) {
			logger.Info("input closed, ending session", "iterations", s.state.Iterations)
			return nil
		}
		if err != nil {
			return err
		}
		if !again {
			logger.Info("session finished", "iterations", s.state.Iterations)
			return nil
		}
	}
}

// round runs one pass of the loop and reports whether to go again. A load
// failure is shown to the user and starts a new round.
func (s *Session) round(ctx context.Context) (bool, error) {
	s.state.enter(StageFilters)
	s.out.Println(styles.TitleStyle.Render(WelcomeMessage))

	filter, err := s.prompt.GetFilters(s.cfg.Catalog.Cities(), s.cfg.MaxMonth)
	if err != nil {
		return false, err
	}

	s.state.enter(StageLoading)
	ds, err := s.loader.Load(filter)
	if err != nil {
		s.state.LoadErrors++
		logger.Error("failed to load dataset", "filter", filter.String(), "error", err)
		s.out.Blank()
		s.out.Error(fmt.Sprintf("Sorry, the data could not be loaded: %v", err))
		s.out.Println("Please choose again.")
		s.out.Rule()
		return true, nil
	}
	s.state.loaded(filter, ds.Len())
	notify.SlowLoad(s.notifier, s.cfg.NotifyAfter, ds.LoadTime, filter.String(), ds.Len())

	s.state.enter(StageReporting)
	if err := s.report(ctx, ds); err != nil {
		return false, err
	}

	s.state.enter(StageBrowsing)
	if err := s.browser.Run(ds); err != nil {
		return false, err
	}
	s.state.Iterations++

	s.state.enter(StageRestart)
	s.out.Blank()
	answer, err := s.prompt.Ask(RestartQuestion)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "yes"), nil
}

func (s *Session) report(ctx context.Context, ds *dataset.Dataset) error {
	if err := s.stats.Prepare(ctx, ds); err != nil {
		return err
	}

	ts, err := s.stats.TimeStats(ctx)
	if err != nil {
		return err
	}
	s.reporter.Time(ts)

	ss, err := s.stats.StationStats(ctx)
	if err != nil {
		return err
	}
	s.reporter.Stations(ss)

	dur, err := s.stats.DurationStats(ctx)
	if err != nil {
		return err
	}
	s.reporter.Durations(dur)

	us, err := s.stats.UserStats(ctx, ds.HasGender, ds.HasBirthYear)
	if err != nil {
		return err
	}
	s.reporter.Users(us)

	return s.out.Err()
}

// Close releases the trip store and the source cache.
func (s *Session) Close() error {
	return errors.Join(s.store.Close(), s.cache.Close())
}
