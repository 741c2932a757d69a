package aggregate

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/clawdiard/ps-nycculturemap/internal/config"
	"github.com/clawdiard/ps-nycculturemap/internal/event"
	"github.com/clawdiard/ps-nycculturemap/internal/extract"
	"github.com/clawdiard/ps-nycculturemap/internal/fetch"
	"github.com/clawdiard/ps-nycculturemap/internal/logger"
	"github.com/clawdiard/ps-nycculturemap/internal/storage"
)

// Options configure a single aggregation run.
type Options struct {
	Sources []config.Source
	Output  string // artifact path, defaults to config.DefaultOutput
	DryRun  bool   // skip the artifact write
	Fetcher *fetch.Fetcher
	Console io.Writer // per-source progress lines, defaults to os.Stdout
}

// Aggregator drives one collection run.
type Aggregator struct {
	sources []config.Source
	output  string
	dryRun  bool
	fetcher *fetch.Fetcher
	console io.Writer
	runID   string
}

// New creates an Aggregator. Zero-value options fall back to the default
// fetcher, stdout progress lines, and the default artifact path.
func New(opts Options) *Aggregator {
	if opts.Fetcher == nil {
		opts.Fetcher = fetch.New(fetch.Options{})
	}
	if opts.Console == nil {
		opts.Console = os.Stdout
	}
	if opts.Output == "" {
		opts.Output = config.DefaultOutput
	}

	return &Aggregator{
		sources: opts.Sources,
		output:  opts.Output,
		dryRun:  opts.DryRun,
		fetcher: opts.Fetcher,
		console: opts.Console,
		runID:   uuid.NewString(),
	}
}

// Run processes every source strictly in registry order, writes the artifact
// and prints the summary line. The returned report is complete even when
// individual sources failed; Run returns an error only when the run aborts
// (context cancellation) or the final write fails.
func (a *Aggregator) Run(ctx context.Context) (*event.Report, error) {
	logger.Info("run started", logger.Fields{
		"run":     a.runID,
		"sources": len(a.sources),
		"output":  a.output,
		"dry_run": a.dryRun,
	})

	report := event.NewReport()

	for _, src := range a.sources {
		start := time.Now()
		html, err := a.fetcher.Fetch(ctx, src.URL)
		logger.RecordTiming("source.fetch", time.Since(start))

		if err != nil {
			// An interrupt aborts the whole run with nothing written.
			if ctx.Err() != nil {
				logger.Info("run aborted", logger.Fields{"run": a.runID})
				return nil, ctx.Err()
			}

			logger.IncrCounter("fetch.failed")
			logger.Warn("fetch failed", logger.Fields{
				"run":         a.runID,
				"institution": src.Name,
				"url":         src.URL,
			}, err)
			fmt.Fprintf(a.console, "%s: fetch failed: %v\n", src.Name, err)
			continue
		}

		logger.IncrCounter("fetch.ok")
		logger.Debug("page fetched", logger.Fields{
			"run":         a.runID,
			"institution": src.Name,
			"bytes":       len(html),
		})

		events := extract.Events(html)
		event.Stamp(events, src.Name, src.URL, time.Now())

		if len(events) == 0 {
			fmt.Fprintf(a.console, "%s: no events found\n", src.Name)
			continue
		}

		report.Add(src.Name, events)
		logger.Info("source processed", logger.Fields{
			"run":         a.runID,
			"institution": src.Name,
			"events":      len(events),
		})
		fmt.Fprintf(a.console, "%s: %d events\n", src.Name, len(events))
	}

	report.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	report.Sources = len(a.sources)
	report.TotalEvents = report.CountEvents()

	logger.SetGauge("run.events", float64(report.TotalEvents))
	logger.SetGauge("run.institutions", float64(len(report.Events)))

	if !a.dryRun {
		if err := storage.WriteReport(a.output, report); err != nil {
			logger.Error("artifact write failed", logger.Fields{
				"run":  a.runID,
				"path": a.output,
			}, err)
			return nil, err
		}
	}

	fmt.Fprintf(a.console, "Collected %d events from %d institutions\n",
		report.TotalEvents, len(report.Events))
	logger.Info("run finished", logger.Fields{
		"run":          a.runID,
		"events":       report.TotalEvents,
		"institutions": len(report.Events),
	})

	return report, nil
}
