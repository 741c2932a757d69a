package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/clawdiard/ps-nycculturemap/internal/event"
)

func sampleReport() *event.Report {
	report := event.NewReport()
	report.LastUpdated = "2026-02-14T09:30:00Z"
	report.Add("Brooklyn Museum", []*event.Event{
		{
			Title:       "First Saturdays: Night at the Museum",
			Date:        "2026-03-07T17:00:00-05:00",
			Location:    "Beaux-Arts Court",
			URL:         "https://www.brooklynmuseum.org/visit/first-saturdays",
			Institution: "Brooklyn Museum",
			SourceURL:   "https://www.brooklynmuseum.org/visit/calendar",
			FetchedAt:   "2026-02-14T09:30:00Z",
		},
	})
	report.Sources = 1
	report.TotalEvents = report.CountEvents()
	return report
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")

	want := sampleReport()
	if err := WriteReport(path, want); err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}

	got, err := ReadReport(path)
	if err != nil {
		t.Fatalf("ReadReport() error = %v", err)
	}

	if got.LastUpdated != want.LastUpdated {
		t.Errorf("LastUpdated = %q, want %q", got.LastUpdated, want.LastUpdated)
	}
	if got.Sources != want.Sources {
		t.Errorf("Sources = %d, want %d", got.Sources, want.Sources)
	}
	if got.TotalEvents != want.TotalEvents {
		t.Errorf("TotalEvents = %d, want %d", got.TotalEvents, want.TotalEvents)
	}

	events, ok := got.Events["Brooklyn Museum"]
	if !ok {
		t.Fatal("expected events for Brooklyn Museum")
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Title != "First Saturdays: Night at the Museum" {
		t.Errorf("Title = %q", events[0].Title)
	}
	if events[0].FetchedAt != "2026-02-14T09:30:00Z" {
		t.Errorf("FetchedAt = %q", events[0].FetchedAt)
	}
}

func TestWriteReportIndented(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")

	if err := WriteReport(path, sampleReport()); err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}

	text := string(data)
	if !strings.Contains(text, "\n  \"lastUpdated\"") {
		t.Error("artifact is not indented with two spaces")
	}
	for _, key := range []string{"lastUpdated", "sources", "totalEvents", "events"} {
		if !strings.Contains(text, "\""+key+"\"") {
			t.Errorf("artifact missing top-level key %q", key)
		}
	}
}

func TestWriteReportOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")

	if err := os.WriteFile(path, []byte("stale artifact"), 0644); err != nil {
		t.Fatalf("seeding stale file: %v", err)
	}

	if err := WriteReport(path, sampleReport()); err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}

	got, err := ReadReport(path)
	if err != nil {
		t.Fatalf("ReadReport() after overwrite error = %v", err)
	}
	if got.TotalEvents != 1 {
		t.Errorf("TotalEvents = %d, want 1", got.TotalEvents)
	}
}

func TestWriteReportBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "events.json")

	err := WriteReport(path, sampleReport())
	if err == nil {
		t.Fatal("expected error writing into a missing directory")
	}
	if !strings.Contains(err.Error(), "writing report") {
		t.Errorf("error = %v, want writing report wrap", err)
	}
}

func TestReadReportMissing(t *testing.T) {
	_, err := ReadReport(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected error for missing artifact")
	}
	if !strings.Contains(err.Error(), "reading report") {
		t.Errorf("error = %v, want reading report wrap", err)
	}
}

func TestReadReportMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("seeding malformed file: %v", err)
	}

	_, err := ReadReport(path)
	if err == nil {
		t.Fatal("expected error for malformed artifact")
	}
	if !strings.Contains(err.Error(), "parsing report") {
		t.Errorf("error = %v, want parsing report wrap", err)
	}
}

func TestReadReportNilEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	artifact := `{"lastUpdated":"2026-02-14T09:30:00Z","sources":0,"totalEvents":0}`
	if err := os.WriteFile(path, []byte(artifact), 0644); err != nil {
		t.Fatalf("seeding artifact: %v", err)
	}

	got, err := ReadReport(path)
	if err != nil {
		t.Fatalf("ReadReport() error = %v", err)
	}
	if got.Events == nil {
		t.Fatal("Events map not initialized")
	}
}
