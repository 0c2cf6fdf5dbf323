// # csvcursor: A Streaming Field-at-a-Time CSV Reader for Go
//
// csvcursor parses RFC-4180-style CSV incrementally from a line-oriented text source, without materializing the whole document and with minimal allocation. Instead of returning whole records, the Reader is a cursor: advance to the next field, advance to the next line, and read the current field either raw (still quoted) or logically unescaped, as a view rather than a copy whenever possible.
//
// # Features
//
// - Field-at-a-time cursor with line/field index tracking and a skip-N fast path for jumping to a known column.
// - Quoted fields with embedded commas and doubled-quote escapes; the unescape pass reuses one growable buffer.
// - Raw and logical field accessors returning zero-copy views, valid until the next advance.
// - Pluggable LineSource abstraction (bufio-backed ScanSource included) so the input can be a file, an HTTP body, or test fixtures.
// - Structured error reporting via `ParseError`, `ErrBareQuote`, `ErrUnterminatedQuote`, `ErrTrailingQuote`, and `ErrInvalidSkip`.
// - A quoting-aware Writer for emitting the same dialect.
//
// The cmd/covidtally command is a worked example: it streams two remote CSV
// time series through the cursor and prints per-date totals for a location.
package csvcursor
