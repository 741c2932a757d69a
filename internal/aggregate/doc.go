// Package aggregate drives a full collection run across the source registry.
//
// The aggregator fetches each institution's calendar page one at a time, in
// registry order, extracts event records from the returned HTML, enriches
// them with institution metadata and a per-source fetch timestamp, and builds
// the aggregated report. Per-source failures are reported and skipped; only
// the final artifact write can fail the run.
package aggregate
