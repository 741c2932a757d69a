package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/clawdiard/ps-nycculturemap/internal/event"
)

// WriteReport serializes the report as indented JSON and overwrites the
// artifact at path unconditionally. This is the run's only write; a failure
// here is fatal to the run.
func WriteReport(path string, report *event.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	return nil
}

// ReadReport loads a previously written artifact.
func ReadReport(path string) (*event.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}

	var report event.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}

	// Ensure the events map is usable even for artifacts written with no
	// events at all.
	if report.Events == nil {
		report.Events = make(map[string][]*event.Event)
	}

	return &report, nil
}
