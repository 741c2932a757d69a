package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/clawdiard/ps-nycculturemap/internal/event"
)

// MaxEvents caps how many records one source contributes per run.
const MaxEvents = 8

// microdataScanLimit bounds the fallback scan; pages past the first ten
// markers are never inspected.
const microdataScanLimit = 10

var (
	// Title text is whatever immediately follows the name marker's closing
	// bracket, up to the next tag.
	microdataName = regexp.MustCompile(`itemprop="name"[^>]*>([^<]*)`)

	// Dates come from the content attribute of a startDate marker.
	microdataDate = regexp.MustCompile(`itemprop="startDate"[^>]*content="([^"]*)"`)
)

// Events extracts event records from calendar page HTML. Structured-data
// blocks are preferred; the microdata scan is a fallback used only when
// no structured data yields events. The result is capped at MaxEvents.
func Events(html string) []*event.Event {
	events := eventsFromJSONLD(html)
	if len(events) == 0 {
		events = eventsFromMicrodata(html)
	}
	if len(events) > MaxEvents {
		events = events[:MaxEvents]
	}
	return events
}

// eventsFromJSONLD collects every Event-typed object declared in the
// page's application/ld+json blocks, in document order.
func eventsFromJSONLD(html string) []*event.Event {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var events []*event.Event
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		var payload any
		if err := json.Unmarshal([]byte(sel.Text()), &payload); err != nil {
			// Best-effort parse: a malformed block contributes nothing,
			// the remaining blocks are still scanned.
			return
		}
		for _, node := range candidateNodes(payload) {
			if isEvent(node) {
				events = append(events, eventFromNode(node))
			}
		}
	})
	return events
}

// candidateNodes flattens a parsed block into the objects worth inspecting:
// the top-level object or the elements of a top-level array, plus the
// entries of each object's @graph collection.
func candidateNodes(payload any) []map[string]any {
	var nodes []map[string]any

	add := func(v any) {
		node, ok := v.(map[string]any)
		if !ok {
			return
		}
		nodes = append(nodes, node)
		if graph, ok := node["@graph"].([]any); ok {
			for _, entry := range graph {
				if sub, ok := entry.(map[string]any); ok {
					nodes = append(nodes, sub)
				}
			}
		}
	}

	if list, ok := payload.([]any); ok {
		for _, v := range list {
			add(v)
		}
		return nodes
	}
	add(payload)
	return nodes
}

// isEvent reports whether the node declares type "Event", either directly
// or as one entry of a type list.
func isEvent(node map[string]any) bool {
	switch t := node["@type"].(type) {
	case string:
		return t == "Event"
	case []any:
		for _, v := range t {
			if s, ok := v.(string); ok && s == "Event" {
				return true
			}
		}
	}
	return false
}

// eventFromNode maps a structured-data object onto a record. Every field
// falls back to the empty string rather than failing.
func eventFromNode(node map[string]any) *event.Event {
	evt := &event.Event{
		Title: firstString(node, "name", "headline"),
		Date:  firstString(node, "startDate", "datePublished"),
		URL:   stringValue(node["url"]),
	}
	if loc, ok := node["location"].(map[string]any); ok {
		evt.Location = stringValue(loc["name"])
	}
	return evt
}

// firstString returns the first non-empty string among the named keys.
func firstString(node map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := stringValue(node[key]); s != "" {
			return s
		}
	}
	return ""
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

// eventsFromMicrodata is the fallback: two independent scans over the raw
// HTML, one for name markers and one for startDate markers, paired by
// index. The i-th date is attached to the i-th name whether or not they
// came from the same element.
func eventsFromMicrodata(html string) []*event.Event {
	names := microdataName.FindAllStringSubmatch(html, microdataScanLimit)
	dates := microdataDate.FindAllStringSubmatch(html, microdataScanLimit)

	var events []*event.Event
	for i, match := range names {
		evt := &event.Event{
			Title: strings.TrimSpace(match[1]),
		}
		if i < len(dates) {
			evt.Date = dates[i][1]
		}
		events = append(events, evt)
	}
	return events
}
