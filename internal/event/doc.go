// Package event provides the record types produced by one aggregation run.
//
// An Event is a single listing extracted from an institution's public
// calendar page. A Report is the run's aggregate artifact: every institution
// that yielded at least one event, keyed by name, plus the summary counts the
// downstream site reads. Events carry no identity and are never de-duplicated;
// the same listing may appear again on the next run.
package event
