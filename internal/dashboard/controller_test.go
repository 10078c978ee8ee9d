package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikasimoncelli/Railway-Temperature-Dashboard/internal/domain"
	"github.com/mikasimoncelli/Railway-Temperature-Dashboard/internal/observability"
)

type stubSource struct {
	rows []domain.RawReading
	err  error
}

func (s *stubSource) Load(_ context.Context) ([]domain.RawReading, error) {
	return s.rows, s.err
}

func testRows() []domain.RawReading {
	return []domain.RawReading{
		{UnixTime: "1718344800", Latitude: "46.49", Longitude: "11.35", PositionYards: "0", Score: "50", RecordingID: "REC-0001"},
		{UnixTime: "1718344830", Latitude: "46.50", Longitude: "11.36", PositionYards: "50", Score: "60", RecordingID: "REC-0002"},
		{UnixTime: "1718344860", Latitude: "46.51", Longitude: "11.37", PositionYards: "100", Score: "75", RecordingID: "REC-0003"},
		{UnixTime: "1718344890", Latitude: "46.52", Longitude: "11.38", PositionYards: "150", Score: "90", RecordingID: "REC-0004"},
	}
}

func newTestController(t *testing.T, src Source) *Controller {
	t.Helper()
	return New(src, slog.Default(), observability.NewMetricsForTesting())
}

func loadedController(t *testing.T) *Controller {
	t.Helper()
	c := newTestController(t, &stubSource{rows: testRows()})
	require.NoError(t, c.Load(context.Background()))
	return c
}

func TestControllerLoad(t *testing.T) {
	t.Run("populates base, bounds, and the first view", func(t *testing.T) {
		c := loadedController(t)

		snap := c.Snapshot()
		assert.Equal(t, 4, snap.TotalReadings)
		// Default score range [40, 80] hides the 90-degree reading.
		assert.Equal(t, 3, snap.VisibleReadings)

		bounds, ok := c.Bounds()
		require.True(t, ok)
		assert.Equal(t, 46.49, bounds.MinLat)
		assert.Equal(t, 46.52, bounds.MaxLat)
	})

	t.Run("is ready only after load", func(t *testing.T) {
		c := newTestController(t, &stubSource{rows: testRows()})

		require.Error(t, c.CheckReadiness(context.Background()))
		require.NoError(t, c.Load(context.Background()))
		assert.NoError(t, c.CheckReadiness(context.Background()))
	})

	t.Run("source failure degrades to an empty dataset", func(t *testing.T) {
		c := newTestController(t, &stubSource{err: errors.New("csv gone")})

		require.NoError(t, c.Load(context.Background()))

		assert.NoError(t, c.CheckReadiness(context.Background()))
		assert.Empty(t, c.Rows())
		_, ok := c.Bounds()
		assert.False(t, ok)
	})

	t.Run("loads at most once", func(t *testing.T) {
		c := loadedController(t)

		err := c.Load(context.Background())

		assert.ErrorIs(t, err, ErrAlreadyLoaded)
	})
}

func TestControllerFilterAndSort(t *testing.T) {
	t.Run("filter change recomputes the view", func(t *testing.T) {
		c := loadedController(t)

		c.SetFilter(domain.FilterState{Severity: domain.SeverityFilter(domain.SeverityHigh)})

		rows := c.Rows()
		require.Len(t, rows, 2)
		assert.Equal(t, "REC-0003", rows[0].RecordingID)
		assert.Equal(t, "REC-0004", rows[1].RecordingID)
	})

	t.Run("sort applies on top of the filtered set", func(t *testing.T) {
		c := loadedController(t)

		c.SetFilter(domain.FilterState{Severity: domain.SeverityAll})
		require.NoError(t, c.SetSort(domain.SortState{Key: domain.SortKeyScore, Descending: true}))

		rows := c.Rows()
		require.Len(t, rows, 4)
		assert.Equal(t, "REC-0004", rows[0].RecordingID)
		assert.Equal(t, "REC-0001", rows[3].RecordingID)
	})

	t.Run("unknown sort key is rejected without a recompute", func(t *testing.T) {
		c := loadedController(t)
		before := c.Snapshot().Version

		err := c.SetSort(domain.SortState{Key: domain.SortKey("bogus")})

		require.Error(t, err)
		assert.Equal(t, before, c.Snapshot().Version)
	})

	t.Run("bounds stay pinned to the full dataset when filters change", func(t *testing.T) {
		c := loadedController(t)
		before, ok := c.Bounds()
		require.True(t, ok)

		c.SetFilter(domain.FilterState{Search: "REC-0001"})

		after, ok := c.Bounds()
		require.True(t, ok)
		assert.Equal(t, before, after)
	})
}

func TestControllerReset(t *testing.T) {
	c := loadedController(t)

	search := "rec-0004"
	c.SetFilter(domain.FilterState{Search: search, Severity: domain.SeverityFilter(domain.SeverityHigh)})
	require.NoError(t, c.SetSort(domain.SortState{Key: domain.SortKeyScore, Descending: true}))

	c.Reset()

	snap := c.Snapshot()
	assert.Equal(t, domain.DefaultFilterState(), snap.Filter)
	assert.Equal(t, domain.SortState{}, snap.Sort)

	// Displayed sequence equals the default filter applied with no sort.
	rows := c.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "REC-0001", rows[0].RecordingID)
	assert.Equal(t, "REC-0002", rows[1].RecordingID)
	assert.Equal(t, "REC-0003", rows[2].RecordingID)
}

func TestControllerToggles(t *testing.T) {
	c := loadedController(t)

	assert.True(t, c.ToggleMapExpanded())
	assert.False(t, c.ToggleMapExpanded())
	assert.True(t, c.ToggleDarkMode())

	snap := c.Snapshot()
	assert.False(t, snap.MapExpanded)
	assert.True(t, snap.DarkMode)
}

func TestControllerNotifiesOncePerMutation(t *testing.T) {
	c := newTestController(t, &stubSource{rows: testRows()})

	var versions []int64
	c.Subscribe(func(s Snapshot) { versions = append(versions, s.Version) })

	require.NoError(t, c.Load(context.Background()))
	c.SetFilter(domain.FilterState{Search: "REC"})
	require.NoError(t, c.SetSort(domain.SortState{Key: domain.SortKeyScore}))
	c.Reset()
	c.ToggleDarkMode()

	// One notification per mutation, versions strictly increasing by one.
	require.Len(t, versions, 5)
	for i, v := range versions {
		assert.Equal(t, int64(i+1), v)
	}
}

func TestControllerEmptyFilteredResultIsValid(t *testing.T) {
	c := loadedController(t)

	c.SetFilter(domain.FilterState{Search: "no-such-record"})

	rows := c.Rows()
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	// Base dataset and bounds are untouched.
	assert.Equal(t, 4, c.Snapshot().TotalReadings)
	_, ok := c.Bounds()
	assert.True(t, ok)
}
