package domain

import (
	"strconv"
	"strings"
	"time"
)

// SeverityFilter selects which severity band to show. SeverityAll (or the
// empty string) bypasses the predicate.
type SeverityFilter string

// SeverityAll disables severity filtering.
const SeverityAll SeverityFilter = "ALL"

// Default score range restored by the reset operation.
const (
	DefaultScoreMin = 40.0
	DefaultScoreMax = 80.0
)

// FilterState holds every active filter. A nil pointer or empty field means
// that predicate is open and always passes.
type FilterState struct {
	ScoreMin *float64       `json:"score_min"`
	ScoreMax *float64       `json:"score_max"`
	Severity SeverityFilter `json:"severity"`
	Search   string         `json:"search"`
	DateFrom *time.Time     `json:"date_from"`
	DateTo   *time.Time     `json:"date_to"`
}

// DefaultFilterState returns the documented reset defaults: score range
// [40, 80], all severities, empty search, open date bounds.
func DefaultFilterState() FilterState {
	scoreMin := DefaultScoreMin
	scoreMax := DefaultScoreMax
	return FilterState{
		ScoreMin: &scoreMin,
		ScoreMax: &scoreMax,
		Severity: SeverityAll,
	}
}

// Filter applies the five predicates as an AND-conjunction, preserving input
// order. A reading survives only if it passes every active predicate. Fields
// that failed to parse are non-matching for their own predicate and are
// simply absent from the search haystack; nothing here can panic on
// malformed data.
func Filter(readings []Reading, f FilterState) []Reading {
	term := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]Reading, 0, len(readings))
	for i := range readings {
		r := &readings[i]
		if !matchesDate(r, f.DateFrom, f.DateTo) {
			continue
		}
		if !matchesSeverity(r, f.Severity) {
			continue
		}
		if !matchesScore(r, f.ScoreMin, f.ScoreMax) {
			continue
		}
		if !matchesSearch(r, term) {
			continue
		}
		out = append(out, *r)
	}
	return out
}

// matchesDate checks the reading's timestamp against the inclusive from/to
// bounds. A reading without a parseable timestamp fails any active bound.
func matchesDate(r *Reading, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	if !r.TimeValid {
		return false
	}
	if from != nil && r.Timestamp.Before(*from) {
		return false
	}
	if to != nil && r.Timestamp.After(*to) {
		return false
	}
	return true
}

func matchesSeverity(r *Reading, f SeverityFilter) bool {
	if f == "" || f == SeverityAll {
		return true
	}
	return r.Severity == Severity(f)
}

// matchesScore checks SCORE within [min, max] inclusive; either bound may be
// open.
func matchesScore(r *Reading, minScore, maxScore *float64) bool {
	if minScore == nil && maxScore == nil {
		return true
	}
	if !r.ScoreValid {
		return false
	}
	if minScore != nil && r.Score < *minScore {
		return false
	}
	if maxScore != nil && r.Score > *maxScore {
		return false
	}
	return true
}

// matchesSearch does a case-insensitive substring match across the display
// timestamp, the numeric fields, and the recording id. Numbers are matched
// at full precision (the default float-to-string conversion), not against a
// rounded display form. A reading matches if any field contains the term.
func matchesSearch(r *Reading, term string) bool {
	if term == "" {
		return true
	}
	for _, field := range searchFields(r) {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func searchFields(r *Reading) []string {
	fields := make([]string, 0, 6)
	fields = append(fields, r.DisplayTimestamp, r.RecordingID)
	if r.ScoreValid {
		fields = append(fields, formatNumber(r.Score))
	}
	if r.PositionValid {
		fields = append(fields, formatNumber(r.PositionYards))
	}
	if r.CoordsValid {
		fields = append(fields, formatNumber(r.Latitude), formatNumber(r.Longitude))
	}
	return fields
}

// formatNumber renders a float at full precision without an exponent,
// matching how the source values read in the CSV.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
