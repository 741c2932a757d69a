package main

import (
	"fmt"
	"os"

	"github.com/clawdiard/ps-nycculturemap/internal/calendar"
	"github.com/clawdiard/ps-nycculturemap/internal/event"
)

func main() {
	// Create a sample event
	evt := &event.Event{
		Title:       "First Saturdays: Night at the Museum",
		Date:        "2026-03-07T17:00:00-05:00",
		Location:    "Beaux-Arts Court",
		URL:         "https://www.brooklynmuseum.org/visit/first-saturdays",
		Institution: "Brooklyn Museum",
		SourceURL:   "https://www.brooklynmuseum.org/visit/calendar",
		FetchedAt:   "2026-02-14T09:30:00Z",
	}

	// Generate .ics file
	icsContent := calendar.GenerateICS(evt)
	if icsContent == "" {
		fmt.Fprintln(os.Stderr, "Sample event has no parseable date")
		os.Exit(1)
	}

	filename := "preview-event.ics"
	if err := os.WriteFile(filename, []byte(icsContent), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated calendar file: %s\n\n", filename)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(icsContent)
}
