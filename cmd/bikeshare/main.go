// Package main is the entry point for the bikeshare explorer. It loads
// configuration and runs the interactive statistics session.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/j-veylop/bikeshare-explorer/internal/app"
	"github.com/j-veylop/bikeshare-explorer/internal/config"
	"github.com/j-veylop/bikeshare-explorer/internal/logger"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/components"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/console"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/styles"
	"github.com/j-veylop/bikeshare-explorer/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options are the command-line overrides applied on top of the environment.
type options struct {
	dataDir  string
	plain    bool
	noCharts bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "bikeshare",
		Short:         "Explore US bikeshare trip data interactively",
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			return run(cmd.InOrStdin(), cmd.OutOrStdout(), cfg)
		},
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "directory holding the city CSV files (overrides BIKESHARE_DATA_DIR)")
	root.PersistentFlags().BoolVar(&opts.plain, "plain", false, "print without colors or styling")
	root.Flags().BoolVar(&opts.noCharts, "no-charts", false, "skip the hourly and user type charts")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newCitiesCmd(opts))
	return root
}

func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if opts.plain {
		cfg.Plain = true
	}
	if opts.noCharts {
		cfg.Charts = false
	}
	if opts.dataDir != "" && opts.dataDir != cfg.DataDir {
		cfg.DataDir = opts.dataDir
		if err := cfg.Finalize(); err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
	}

	return cfg, nil
}

// run starts logging and the interactive session.
func run(in io.Reader, out io.Writer, cfg *config.Config) error {
	cleanup, err := logger.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer cleanup()

	session, err := app.New(cfg, in, out)
	if err != nil {
		return fmt.Errorf("failed to initialize session: %w", err)
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			logger.Warn("error closing session", "error", closeErr)
		}
	}()

	// The prompt blocks on stdin, so a signal ends the process directly.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		signal.Stop(sigChan)
		close(sigChan)
	}()
	go func() {
		sig, ok := <-sigChan
		if !ok {
			return
		}
		logger.Info("interrupted", "signal", sig.String())
		_, _ = fmt.Fprintln(out)
		_ = session.Close()
		cleanup()
		os.Exit(130)
	}()

	logger.Info("session started", "data_dir", cfg.DataDir, "version", version.GetVersion())
	return session.Run(context.Background())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.Info())
		},
	}
}

func newCitiesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "cities",
		Short: "List the city data files and whether they exist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			out := console.New(cmd.OutOrStdout(), cfg.Plain)
			out.Println(citiesTable(cfg.Catalog))
			return out.Err()
		},
	}
}

func citiesTable(catalog *config.Catalog) string {
	var rows [][]string
	for _, city := range catalog.Cities() {
		path, _ := catalog.Source(city)
		status := styles.SuccessTextStyle.Render("ok")
		if _, err := os.Stat(path); err != nil {
			status = styles.ErrorTextStyle.Render("missing")
		}
		rows = append(rows, []string{city.Title(), path, status})
	}
	return components.RenderTable([]string{"City", "File", "Status"}, rows, components.MaxCellWidth)
}
