package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSort_NoKeyKeepsInputOrder(t *testing.T) {
	readings := []Reading{scored("c", 80), scored("a", 50), scored("b", 60)}

	out := Sort(readings, SortState{})

	assert.Equal(t, readings, out)
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	readings := []Reading{scored("c", 80), scored("a", 50), scored("b", 60)}
	original := []Reading{scored("c", 80), scored("a", 50), scored("b", 60)}

	Sort(readings, SortState{Key: SortKeyScore})

	assert.Equal(t, original, readings)
}

func TestSort_Score(t *testing.T) {
	readings := []Reading{scored("c", 80), scored("a", 50), scored("b", 60)}

	t.Run("ascending", func(t *testing.T) {
		out := Sort(readings, SortState{Key: SortKeyScore})

		assert.Equal(t, "a", out[0].RecordingID)
		assert.Equal(t, "b", out[1].RecordingID)
		assert.Equal(t, "c", out[2].RecordingID)
	})

	t.Run("descending", func(t *testing.T) {
		out := Sort(readings, SortState{Key: SortKeyScore, Descending: true})

		assert.Equal(t, "c", out[0].RecordingID)
		assert.Equal(t, "a", out[2].RecordingID)
	})
}

// Chronological sorting compares instants, not display strings: on the same
// day "9:00:00 AM" must sort before "10:00:00 AM" even though it is larger
// lexically.
func TestSort_TimestampIsChronologicalNotLexical(t *testing.T) {
	day := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)
	nine := timed("nine", day.Add(9*time.Hour))
	ten := timed("ten", day.Add(10*time.Hour))
	require.Greater(t, nine.DisplayTimestamp, ten.DisplayTimestamp) // lexical trap

	out := Sort([]Reading{ten, nine}, SortState{Key: SortKeyTimestamp})

	assert.Equal(t, "nine", out[0].RecordingID)
	assert.Equal(t, "ten", out[1].RecordingID)
}

// Severity sorts by rank, not alphabetically: HIGH > MEDIUM > LOW even
// though "HIGH" < "LOW" as strings.
func TestSort_SeverityByRank(t *testing.T) {
	readings := []Reading{
		{RecordingID: "m", Severity: SeverityMedium},
		{RecordingID: "h", Severity: SeverityHigh},
		{RecordingID: "l", Severity: SeverityLow},
	}

	out := Sort(readings, SortState{Key: SortKeySeverity, Descending: true})

	assert.Equal(t, "h", out[0].RecordingID)
	assert.Equal(t, "m", out[1].RecordingID)
	assert.Equal(t, "l", out[2].RecordingID)
}

func TestSort_StableOnEqualKeys(t *testing.T) {
	readings := []Reading{
		scored("first", 60),
		scored("second", 60),
		scored("third", 60),
	}

	t.Run("ascending", func(t *testing.T) {
		out := Sort(readings, SortState{Key: SortKeyScore})

		assert.Equal(t, "first", out[0].RecordingID)
		assert.Equal(t, "second", out[1].RecordingID)
		assert.Equal(t, "third", out[2].RecordingID)
	})

	t.Run("descending", func(t *testing.T) {
		out := Sort(readings, SortState{Key: SortKeyScore, Descending: true})

		assert.Equal(t, "first", out[0].RecordingID)
		assert.Equal(t, "second", out[1].RecordingID)
		assert.Equal(t, "third", out[2].RecordingID)
	})
}

func TestSort_Idempotent(t *testing.T) {
	readings := []Reading{scored("c", 80), scored("a", 50), scored("b", 80)}
	s := SortState{Key: SortKeyScore, Descending: true}

	once := Sort(readings, s)
	twice := Sort(once, s)

	assert.Equal(t, once, twice)
}

func TestSort_RecordingID(t *testing.T) {
	readings := []Reading{
		{RecordingID: "REC-0003"},
		{RecordingID: "REC-0001"},
		{RecordingID: "REC-0002"},
	}

	out := Sort(readings, SortState{Key: SortKeyRecordingID})

	assert.Equal(t, "REC-0001", out[0].RecordingID)
	assert.Equal(t, "REC-0003", out[2].RecordingID)
}

func TestSort_NumericKeys(t *testing.T) {
	readings := []Reading{
		{RecordingID: "a", PositionYards: 300, Latitude: 10, Longitude: -3},
		{RecordingID: "b", PositionYards: 100, Latitude: 30, Longitude: -1},
		{RecordingID: "c", PositionYards: 200, Latitude: 20, Longitude: -2},
	}

	tests := []struct {
		key   SortKey
		first string
	}{
		{SortKeyPosition, "b"},
		{SortKeyLatitude, "a"},
		{SortKeyLongitude, "a"},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			out := Sort(readings, SortState{Key: tt.key})
			assert.Equal(t, tt.first, out[0].RecordingID)
		})
	}
}

func TestSortKeyValid(t *testing.T) {
	assert.True(t, SortKeyNone.Valid())
	assert.True(t, SortKeyTimestamp.Valid())
	assert.True(t, SortKeySeverity.Valid())
	assert.False(t, SortKey("magnitude").Valid())
}
