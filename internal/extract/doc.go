// Package extract pulls event records out of raw calendar HTML.
//
// Extraction is best-effort and runs in two stages. The first reads
// schema.org structured data: every <script type="application/ld+json">
// block is parsed, and any object whose @type is "Event" becomes a record,
// whether it sits at the top level, inside an array, or inside an object's
// @graph collection. Blocks that fail to parse are skipped without
// affecting the rest. The second stage runs only when the first finds
// nothing: it scans for itemprop microdata markers and pairs the i-th
// "name" with the i-th "startDate" by position alone, without verifying
// that the two markers belong to the same event node (a known limitation
// of the heuristic). Both stages emit records in document order, capped
// at MaxEvents per page.
package extract
