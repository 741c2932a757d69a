package event

import "time"

// Event represents a single event listing from an institution's calendar page.
//
// Title, Date, Location and URL are filled by the extractor and may be empty
// when the page doesn't expose them. Institution, SourceURL and FetchedAt are
// stamped by the aggregator before the event is stored; all events from the
// same fetch share one FetchedAt value.
type Event struct {
	Title       string `json:"title"`
	Date        string `json:"date"` // as published by the source, unvalidated
	Location    string `json:"location"`
	URL         string `json:"url"`
	Institution string `json:"institution"`
	SourceURL   string `json:"source"`
	FetchedAt   string `json:"fetchedAt"` // RFC3339
}

// Report is the aggregate produced once per run and written to events.json.
type Report struct {
	LastUpdated string              `json:"lastUpdated"` // RFC3339
	Sources     int                 `json:"sources"`     // total registry size, including empty/failed sources
	TotalEvents int                 `json:"totalEvents"`
	Events      map[string][]*Event `json:"events"` // institution name → events, empty institutions omitted
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{
		Events: make(map[string][]*Event),
	}
}

// Add stores an institution's events in the report. Empty lists are ignored
// so that institutions without events never appear as keys in the artifact.
func (r *Report) Add(institution string, events []*Event) {
	if len(events) == 0 {
		return
	}
	r.Events[institution] = events
}

// CountEvents returns the sum of all stored list lengths. TotalEvents must
// always equal this value when the report is serialized.
func (r *Report) CountEvents() int {
	total := 0
	for _, events := range r.Events {
		total += len(events)
	}
	return total
}

// Stamp applies the per-fetch fields to every record extracted from one
// source. The timestamp is captured once per fetch, not once per record,
// so every event from the same page carries the identical FetchedAt.
func Stamp(events []*Event, institution, sourceURL string, fetchedAt time.Time) {
	ts := fetchedAt.UTC().Format(time.RFC3339)
	for _, evt := range events {
		evt.Institution = institution
		evt.SourceURL = sourceURL
		evt.FetchedAt = ts
	}
}
