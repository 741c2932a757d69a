// Package cli implements the command-line interface for nycculturemap.
//
// The cli package provides the Cobra-based CLI that assembles a run from
// flags: output path, optional sources file, timeout, dry-run, and verbose
// diagnostics. It coordinates the config, fetch, aggregate, and storage
// packages to collect event listings and write the aggregated artifact.
package cli
