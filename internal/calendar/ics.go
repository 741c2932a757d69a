package calendar

import (
	"crypto/sha1"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/clawdiard/ps-nycculturemap/internal/event"
)

// Layouts accepted for event dates, tried in order. Sources publish
// full RFC 3339 timestamps, zone-less timestamps, and bare dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

const dateOnlyLayout = "2006-01-02"

// defaultDuration is assumed for timed events; sources rarely publish an end.
const defaultDuration = 2 * time.Hour

// GenerateICS generates an iCalendar (.ics) document for a single event.
// Events whose date cannot be parsed are not exportable and yield "".
func GenerateICS(evt *event.Event) string {
	body := vevent(evt, time.Now().UTC())
	if body == "" {
		return ""
	}

	var ics strings.Builder
	writeCalendarHeader(&ics, "")
	ics.WriteString(body)
	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

// GenerateBulkICS generates one iCalendar document containing every event
// with a parseable date. An optional calendar name is emitted as
// X-WR-CALNAME. Returns "" when no event is exportable.
func GenerateBulkICS(events []*event.Event, name string) string {
	now := time.Now().UTC()

	var bodies []string
	for _, evt := range events {
		if body := vevent(evt, now); body != "" {
			bodies = append(bodies, body)
		}
	}
	if len(bodies) == 0 {
		return ""
	}

	var ics strings.Builder
	writeCalendarHeader(&ics, name)
	for _, body := range bodies {
		ics.WriteString(body)
	}
	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

// GenerateReportICS renders a whole report as one calendar. Institutions are
// emitted in sorted name order to match the artifact's key order; events keep
// their extraction order within each institution.
func GenerateReportICS(report *event.Report, name string) string {
	institutions := make([]string, 0, len(report.Events))
	for institution := range report.Events {
		institutions = append(institutions, institution)
	}
	sort.Strings(institutions)

	var events []*event.Event
	for _, institution := range institutions {
		events = append(events, report.Events[institution]...)
	}

	return GenerateBulkICS(events, name)
}

func writeCalendarHeader(ics *strings.Builder, name string) {
	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//NYC Culture Map//nycculturemap//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	if name != "" {
		ics.WriteString(fmt.Sprintf("X-WR-CALNAME:%s\r\n", escapeICS(name)))
	}
}

// vevent renders one VEVENT block, or "" when the event's date is not
// machine readable.
func vevent(evt *event.Event, stamp time.Time) string {
	start, dateOnly, ok := parseDate(evt.Date)
	if !ok {
		return ""
	}

	var ics strings.Builder
	ics.WriteString("BEGIN:VEVENT\r\n")

	// Deterministic identity from the fields that define the listing.
	uid := sha1.Sum([]byte(evt.Institution + "|" + evt.Title + "|" + evt.Date))
	ics.WriteString(fmt.Sprintf("UID:%x@nycculturemap\r\n", uid))

	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(stamp)))

	if dateOnly {
		ics.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", start.Format("20060102")))
		ics.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", start.AddDate(0, 0, 1).Format("20060102")))
	} else {
		ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(start)))
		ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(start.Add(defaultDuration))))
	}

	summary := evt.Title
	if evt.Institution != "" {
		summary = fmt.Sprintf("%s - %s", evt.Institution, evt.Title)
	}
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))

	description := evt.Institution
	if url := linkFor(evt); url != "" {
		if description != "" {
			description += "\n"
		}
		description += "More info: " + url
	}
	if description != "" {
		ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))
	}

	location := evt.Location
	if location == "" {
		location = evt.Institution
	}
	if location != "" {
		ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(location)))
	}

	if url := linkFor(evt); url != "" {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", url))
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")
	ics.WriteString("END:VEVENT\r\n")

	return ics.String()
}

// linkFor prefers the event's own page over the calendar page it came from.
func linkFor(evt *event.Event) string {
	if evt.URL != "" {
		return evt.URL
	}
	return evt.SourceURL
}

// parseDate parses a source-published date string. dateOnly reports whether
// the value carried no time of day.
func parseDate(s string) (t time.Time, dateOnly bool, ok bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, false, true
		}
	}
	if t, err := time.Parse(dateOnlyLayout, s); err == nil {
		return t, true, true
	}
	return time.Time{}, false, false
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
