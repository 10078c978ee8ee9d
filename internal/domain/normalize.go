package domain

import (
	"strconv"
	"strings"
	"time"
)

// Severity thresholds in degrees Celsius.
const (
	severityHighMin   = 70.0
	severityMediumMin = 55.0
)

// displayTimeLayout renders timestamps the way the dashboard table shows
// them, e.g. "4/26/2024, 3:10:05 PM". Times are rendered in UTC.
const displayTimeLayout = "1/2/2006, 3:04:05 PM"

// invalidDisplayTime is the display value for rows whose UNIX_TIME did not
// parse as an integer.
const invalidDisplayTime = "Invalid Date"

// ClassifySeverity maps a temperature score to its severity band:
// SCORE >= 70 HIGH, 55 <= SCORE < 70 MEDIUM, SCORE < 55 LOW.
func ClassifySeverity(score float64) Severity {
	switch {
	case score >= severityHighMin:
		return SeverityHigh
	case score >= severityMediumMin:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Normalize converts one raw CSV row into a typed Reading. Conversion never
// fails: a malformed field keeps its zero value with the matching validity
// flag cleared, an unparseable SCORE classifies as LOW, and an unparseable
// UNIX_TIME renders as "Invalid Date". No row is ever dropped here so the
// output stays 1:1 with the input for bounds and filtering.
func Normalize(raw RawReading) Reading {
	r := Reading{
		RecordingID:  strings.TrimSpace(raw.RecordingID),
		NormalizedAt: clock.Now(),
	}

	r.UnixTime, r.TimeValid = parseInt(raw.UnixTime)
	if r.TimeValid {
		r.Timestamp = time.Unix(r.UnixTime, 0).UTC()
		r.DisplayTimestamp = r.Timestamp.Format(displayTimeLayout)
	} else {
		r.DisplayTimestamp = invalidDisplayTime
	}

	lat, latOK := parseFloat(raw.Latitude)
	lon, lonOK := parseFloat(raw.Longitude)
	if latOK && lonOK {
		r.Latitude = lat
		r.Longitude = lon
		r.CoordsValid = true
	}

	r.PositionYards, r.PositionValid = parseFloat(raw.PositionYards)

	r.Score, r.ScoreValid = parseFloat(raw.Score)
	if r.ScoreValid {
		r.Severity = ClassifySeverity(r.Score)
	} else {
		r.Severity = SeverityLow
	}

	return r
}

// NormalizeAll converts every raw row independently, preserving length and
// order.
func NormalizeAll(raws []RawReading) []Reading {
	readings := make([]Reading, len(raws))
	for i, raw := range raws {
		readings[i] = Normalize(raw)
	}
	return readings
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
