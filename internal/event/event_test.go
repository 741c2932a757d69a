package event

import (
	"testing"
	"time"
)

func TestReportAdd(t *testing.T) {
	tests := []struct {
		name        string
		institution string
		events      []*Event
		wantStored  bool
	}{
		{
			name:        "non-empty list is stored",
			institution: "Brooklyn Museum",
			events:      []*Event{{Title: "First Saturday"}},
			wantStored:  true,
		},
		{
			name:        "empty list is not stored",
			institution: "Carnegie Hall",
			events:      []*Event{},
			wantStored:  false,
		},
		{
			name:        "nil list is not stored",
			institution: "Carnegie Hall",
			events:      nil,
			wantStored:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReport()
			r.Add(tt.institution, tt.events)

			_, stored := r.Events[tt.institution]
			if stored != tt.wantStored {
				t.Errorf("institution stored = %v, want %v", stored, tt.wantStored)
			}
		})
	}
}

func TestReportCountEvents(t *testing.T) {
	r := NewReport()

	if r.CountEvents() != 0 {
		t.Errorf("empty report CountEvents() = %d, want 0", r.CountEvents())
	}

	r.Add("The Metropolitan Museum of Art", []*Event{{Title: "Gallery Tour"}, {Title: "Lecture"}})
	r.Add("Brooklyn Museum", []*Event{{Title: "First Saturday"}})

	if got := r.CountEvents(); got != 3 {
		t.Errorf("CountEvents() = %d, want 3", got)
	}

	// The invariant the artifact relies on: TotalEvents equals the sum
	// of all stored list lengths.
	r.TotalEvents = r.CountEvents()
	sum := 0
	for _, events := range r.Events {
		sum += len(events)
	}
	if r.TotalEvents != sum {
		t.Errorf("TotalEvents = %d, sum of lists = %d", r.TotalEvents, sum)
	}
}

func TestStamp(t *testing.T) {
	events := []*Event{
		{Title: "Opening Night", Date: "2026-03-01"},
		{Title: "Members Preview"},
		{Title: "Family Day", Location: "Education Wing"},
	}

	fetchedAt := time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)
	Stamp(events, "Whitney Museum of American Art", "https://whitney.org/events", fetchedAt)

	for i, evt := range events {
		if evt.Institution != "Whitney Museum of American Art" {
			t.Errorf("event %d institution = %q", i, evt.Institution)
		}
		if evt.SourceURL != "https://whitney.org/events" {
			t.Errorf("event %d source = %q", i, evt.SourceURL)
		}
		if evt.FetchedAt != "2026-02-14T09:30:00Z" {
			t.Errorf("event %d fetchedAt = %q, want 2026-02-14T09:30:00Z", i, evt.FetchedAt)
		}
	}

	// All records from one fetch must share the identical timestamp.
	for i := 1; i < len(events); i++ {
		if events[i].FetchedAt != events[0].FetchedAt {
			t.Errorf("event %d fetchedAt differs from event 0: %q vs %q", i, events[i].FetchedAt, events[0].FetchedAt)
		}
	}

	// Extractor-filled fields are untouched by stamping.
	if events[0].Title != "Opening Night" || events[0].Date != "2026-03-01" {
		t.Errorf("Stamp modified extractor fields: %+v", events[0])
	}
}

func TestStampNonUTC(t *testing.T) {
	loc := time.FixedZone("EST", -5*60*60)
	events := []*Event{{Title: "Concert"}}

	Stamp(events, "Carnegie Hall", "https://www.carnegiehall.org/Calendar", time.Date(2026, 1, 2, 19, 0, 0, 0, loc))

	if events[0].FetchedAt != "2026-01-03T00:00:00Z" {
		t.Errorf("FetchedAt = %q, want UTC-normalized 2026-01-03T00:00:00Z", events[0].FetchedAt)
	}
}
