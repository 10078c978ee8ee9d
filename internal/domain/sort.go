package domain

import (
	"cmp"
	"slices"
	"sort"
	"strings"
)

// SortKey selects the column to order by. The zero value means "no sort":
// the input order is kept as-is, there is no implicit default ordering.
type SortKey string

const (
	SortKeyNone        SortKey = ""
	SortKeyTimestamp   SortKey = "timestamp"
	SortKeyRecordingID SortKey = "recording_id"
	SortKeyPosition    SortKey = "position"
	SortKeyLatitude    SortKey = "latitude"
	SortKeyLongitude   SortKey = "longitude"
	SortKeyScore       SortKey = "score"
	SortKeySeverity    SortKey = "severity"
)

// Valid reports whether k is a known sort key (including none).
func (k SortKey) Valid() bool {
	switch k {
	case SortKeyNone, SortKeyTimestamp, SortKeyRecordingID, SortKeyPosition,
		SortKeyLatitude, SortKeyLongitude, SortKeyScore, SortKeySeverity:
		return true
	}
	return false
}

// SortState is the active sort key plus direction.
type SortState struct {
	Key        SortKey `json:"key"`
	Descending bool    `json:"descending"`
}

// Sort returns a new slice ordered by the state's key. The timestamp key
// compares the underlying instant rather than the display string, and
// severity compares by rank (HIGH > MEDIUM > LOW), not alphabetically.
// The sort is stable in both directions: equal elements keep their relative
// input order. The input slice is never mutated.
func Sort(readings []Reading, s SortState) []Reading {
	out := slices.Clone(readings)
	if s.Key == SortKeyNone || !s.Key.Valid() {
		return out
	}

	compare := comparator(s.Key)
	sort.SliceStable(out, func(i, j int) bool {
		c := compare(&out[i], &out[j])
		if s.Descending {
			return c > 0
		}
		return c < 0
	})
	return out
}

func comparator(key SortKey) func(a, b *Reading) int {
	switch key {
	case SortKeyTimestamp:
		return func(a, b *Reading) int { return a.Timestamp.Compare(b.Timestamp) }
	case SortKeyRecordingID:
		return func(a, b *Reading) int { return strings.Compare(a.RecordingID, b.RecordingID) }
	case SortKeyPosition:
		return func(a, b *Reading) int { return cmp.Compare(a.PositionYards, b.PositionYards) }
	case SortKeyLatitude:
		return func(a, b *Reading) int { return cmp.Compare(a.Latitude, b.Latitude) }
	case SortKeyLongitude:
		return func(a, b *Reading) int { return cmp.Compare(a.Longitude, b.Longitude) }
	case SortKeyScore:
		return func(a, b *Reading) int { return cmp.Compare(a.Score, b.Score) }
	case SortKeySeverity:
		return func(a, b *Reading) int { return cmp.Compare(a.Severity.Rank(), b.Severity.Rank()) }
	default:
		return func(a, b *Reading) int { return 0 }
	}
}
