// Package domain models railway trackside temperature readings and the pure
// transformations the dashboard is built on: normalization, severity
// classification, geographic bounds, filtering, and sorting.
//
// # Data Source
//
// Readings come from a static CSV exported by the recording equipment. The
// header row defines six columns:
//
//	UNIX_TIME       seconds since epoch (integer)
//	LATITUDE        WGS-84 latitude (float)
//	LONGITUDE       WGS-84 longitude (float)
//	POSITION_YARDS  distance along the track in yards
//	SCORE           measured temperature in degrees Celsius
//	RECORDING_ID    identifier of the recording run
//
// Cells may be empty or malformed; normalization is lenient and never drops
// a row. A field that fails to parse keeps its zero value with the matching
// validity flag cleared, so downstream predicates can treat it as
// non-matching without ever failing.
//
// # Severity classification
//
// Severity is a pure function of SCORE, computed once at normalization time
// and stored on the Reading — filtering and sorting reuse the stored value:
//
//	SCORE >= 70          HIGH
//	55 <= SCORE < 70     MEDIUM
//	SCORE < 55           LOW
//	unparseable SCORE    LOW
//
// # Display timestamps
//
// UNIX_TIME renders as "1/2/2006, 3:04:05 PM" in UTC. Rows whose UNIX_TIME
// does not parse render as "Invalid Date". The chronological sort key
// compares the underlying instant, never the display string, so 9 AM sorts
// before 10 AM on the same day.
//
// # Geographic bounds
//
// GeoBounds covers the full dataset and is computed once per load. It is not
// recomputed when filters change; the map framing stays stable while markers
// are filtered in place. An empty dataset yields no bounds at all rather
// than a rectangle centered at (0,0).
package domain
