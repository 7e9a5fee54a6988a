// Package logslice extracts every log line belonging to a single calendar
// date from a large, chronologically ordered, line-delimited log file
// without scanning the whole file.
//
// # How It Works
//
// The file is memory-mapped and a binary search over byte offsets locates
// the first line whose 10-byte date prefix (YYYY-MM-DD) equals the target
// date. Each probe offset is snapped to its enclosing line before the
// date keys are compared. From the first match, extraction streams forward
// line by line until the prefix changes. Lookup is O(log N) probes,
// extraction is linear in the size of the match.
//
// # Precondition
//
// Lines in the source file must be sorted non-decreasingly by their date
// prefix. The search depends entirely on this ordering and does not verify
// it; verifying would require the full linear scan the design exists to
// avoid. Results on unsorted input are undefined.
//
// # Quick Start
//
//	ex := logslice.New()
//	stats, err := ex.ExtractFile(ctx, "app.log", "2024-01-02", out)
//	if errors.Is(err, logslice.ErrNotFound) {
//	    // date absent from the file: an outcome, not a failure
//	}
//
// Remote archives are handled by the fetch and archive packages:
//
//	ex := logslice.New(logslice.WithLogger(logger))
//	stats, err := ex.Extract(ctx, &fetch.HTTP{URL: url}, "2024-01-02", out)
//
// # Error Model
//
// A missing date reports [ErrNotFound]. An undecodable line inside the
// matched range surfaces a [*DecodeError] after the preceding valid lines
// were already written; partial output is left intact. Failures to open or
// map the file abort the run. During the search phase an undecodable probe
// line is never an error: the search treats it as greater than the target
// and narrows left, away from the corruption.
package logslice
