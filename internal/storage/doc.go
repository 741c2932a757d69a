// Package storage writes and reads the aggregated events artifact.
//
// The artifact is a single JSON document, written once per run with
// two-space indentation and overwritten unconditionally. Reading exists for
// tests and downstream tooling; the pipeline itself never consults a prior
// run's output.
package storage
