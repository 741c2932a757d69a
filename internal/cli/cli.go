package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/clawdiard/ps-nycculturemap/internal/aggregate"
	"github.com/clawdiard/ps-nycculturemap/internal/calendar"
	"github.com/clawdiard/ps-nycculturemap/internal/config"
	"github.com/clawdiard/ps-nycculturemap/internal/fetch"
	"github.com/clawdiard/ps-nycculturemap/internal/logger"
)

// icsCalendarName labels the exported calendar in subscriber apps.
const icsCalendarName = "NYC Culture Map"

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagOutput  string
	flagSources string
	flagICS     string
	flagTimeout time.Duration
	flagDryRun  bool
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nycculturemap",
		Short: "Collect event listings from NYC cultural institutions",
		Long: `Fetches the public event calendar pages of New York City cultural
institutions, extracts structured event data, and writes the aggregated
result to a single JSON file for the culture map site.`,
		RunE: runCollect,
	}

	// Define flags
	cmd.Flags().StringVarP(&flagOutput, "output", "o", config.DefaultOutput, "Path of the aggregated JSON artifact")
	cmd.Flags().StringVar(&flagSources, "sources", "", "YAML file with a custom source registry (default: built-in NYC registry)")
	cmd.Flags().StringVar(&flagICS, "ics", "", "Also write an iCalendar rendition of the collected events to this path")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", fetch.DefaultTimeout, "Per-request fetch timeout")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the report JSON to stdout instead of writing the artifact")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable structured diagnostics on stderr")

	return cmd
}

// runCollect is the main command logic
func runCollect(cmd *cobra.Command, args []string) error {
	if flagTimeout <= 0 {
		return fmt.Errorf("invalid timeout: %v (must be positive)", flagTimeout)
	}

	// Apply verbosity before anything logs.
	level := logger.LevelError
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, os.Stderr))

	cfg := config.Config{
		Output:      flagOutput,
		SourcesFile: flagSources,
		Timeout:     flagTimeout,
		DryRun:      flagDryRun,
		Verbose:     flagVerbose,
	}

	sources, err := cfg.Sources()
	if err != nil {
		return fmt.Errorf("loading sources: %w", err)
	}

	// An interrupt aborts the run with no partial write.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// In dry-run mode stdout carries only the report JSON, so progress
	// lines move to stderr.
	console := io.Writer(os.Stdout)
	if flagDryRun {
		console = os.Stderr
	}

	agg := aggregate.New(aggregate.Options{
		Sources: sources,
		Output:  cfg.Output,
		DryRun:  cfg.DryRun,
		Fetcher: fetch.New(fetch.Options{Timeout: cfg.Timeout}),
		Console: console,
	})

	report, err := agg.Run(ctx)
	if err != nil {
		return fmt.Errorf("collecting events: %w", err)
	}

	if flagDryRun {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	}

	if flagICS != "" && !flagDryRun {
		if ics := calendar.GenerateReportICS(report, icsCalendarName); ics != "" {
			if err := os.WriteFile(flagICS, []byte(ics), 0644); err != nil {
				return fmt.Errorf("writing calendar: %w", err)
			}
		} else {
			logger.Info("no exportable events, calendar not written", logger.Fields{"path": flagICS})
		}
	}

	if flagVerbose {
		logger.Debug("run metrics", logger.Fields{"metrics": logger.GetMetricsSnapshot()})
	}

	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
