// Package fetch retrieves calendar pages over HTTP and HTTPS.
//
// The fetcher issues a single GET with a fixed identifying User-Agent and a
// bounded timeout, following redirect chains up to a fixed hop count. Fetch
// failures are classified as timeout, redirect-limit or network errors so the
// aggregator can report them and move on. HTTP error statuses are not fetch
// failures: whatever body the server returns is handed to the extractor,
// which simply finds no events in an error page. Nothing is ever retried.
package fetch
