// Package dashboard owns all interactive view state and orchestrates
// load → normalize → bounds → filter → sort. Every state mutation triggers
// exactly one recomputation of the visible sequence; mutations and
// recomputes are serialized so no reader ever observes a stale intermediate
// result.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/mikasimoncelli/Railway-Temperature-Dashboard/internal/domain"
	"github.com/mikasimoncelli/Railway-Temperature-Dashboard/internal/observability"
)

// Source yields the raw dataset. The load happens once per session.
type Source interface {
	Load(ctx context.Context) ([]domain.RawReading, error)
}

// ErrAlreadyLoaded is returned when Load is called a second time; the base
// dataset is populated exactly once.
var ErrAlreadyLoaded = errors.New("dataset already loaded")

// Snapshot is a consistent view of the controller state at one version.
// Versions increase by one per mutation.
type Snapshot struct {
	Version         int64              `json:"version"`
	Filter          domain.FilterState `json:"filter"`
	Sort            domain.SortState   `json:"sort"`
	MapExpanded     bool               `json:"map_expanded"`
	DarkMode        bool               `json:"dark_mode"`
	TotalReadings   int                `json:"total_readings"`
	VisibleReadings int                `json:"visible_readings"`
	LoadedAt        time.Time          `json:"loaded_at"`
}

// Controller holds the immutable base dataset and the mutable view state
// (filters, sort, theme, map expansion). The base collection and bounds are
// written once by Load and read-only afterwards.
type Controller struct {
	source  Source
	logger  *slog.Logger
	metrics *observability.Metrics

	mu        sync.Mutex
	loaded    bool
	loadedAt  time.Time
	base      []domain.Reading
	bounds    domain.GeoBounds
	hasBounds bool

	filter      domain.FilterState
	sort        domain.SortState
	mapExpanded bool
	darkMode    bool

	visible     []domain.Reading
	version     int64
	subscribers []func(Snapshot)
}

// New creates a Controller with the default filter state and no sort.
func New(source Source, logger *slog.Logger, metrics *observability.Metrics) *Controller {
	return &Controller{
		source:  source,
		logger:  logger,
		metrics: metrics,
		filter:  domain.DefaultFilterState(),
	}
}

// Load fetches the raw dataset, normalizes it, and computes the geographic
// bounds, then runs the first filter/sort pass. A fetch or parse failure is
// logged and degrades to an empty dataset — the dashboard renders its
// empty state instead of crashing. Calling Load twice is an error.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return ErrAlreadyLoaded
	}

	start := time.Now()
	raws, err := c.source.Load(ctx)
	if err != nil {
		c.logger.Error("dataset load failed, continuing with empty dataset", "error", err)
		raws = nil
	}

	c.base = domain.NormalizeAll(raws)
	c.bounds, c.hasBounds = domain.ComputeBounds(c.base)
	c.loaded = true
	c.loadedAt = time.Now()

	c.metrics.ReadingsLoaded.Set(float64(len(c.base)))
	c.metrics.DatasetReady.Set(1)
	c.metrics.LoadDuration.Observe(time.Since(start).Seconds())

	c.recomputeLocked()
	c.logger.Info("dataset loaded",
		"readings", len(c.base),
		"has_bounds", c.hasBounds,
		"duration", time.Since(start),
	)
	c.notifyLocked()
	return nil
}

// SetFilter replaces the filter state and recomputes the visible sequence.
func (c *Controller) SetFilter(f domain.FilterState) {
	c.mutate(func() { c.filter = f })
}

// SetSort replaces the sort state and recomputes the visible sequence.
// Unknown keys are rejected.
func (c *Controller) SetSort(s domain.SortState) error {
	if !s.Key.Valid() {
		return errors.New("unknown sort key")
	}
	c.mutate(func() { c.sort = s })
	return nil
}

// Reset restores the filter defaults (score range [40, 80], all severities,
// empty search, open date bounds) and clears the sort key.
func (c *Controller) Reset() {
	c.mutate(func() {
		c.filter = domain.DefaultFilterState()
		c.sort = domain.SortState{}
	})
}

// ToggleMapExpanded flips the map expansion flag and returns the new value.
func (c *Controller) ToggleMapExpanded() bool {
	var v bool
	c.mutate(func() {
		c.mapExpanded = !c.mapExpanded
		v = c.mapExpanded
	})
	return v
}

// ToggleDarkMode flips the theme flag and returns the new value.
func (c *Controller) ToggleDarkMode() bool {
	var v bool
	c.mutate(func() {
		c.darkMode = !c.darkMode
		v = c.darkMode
	})
	return v
}

// Rows returns the current filtered and sorted sequence. The returned slice
// is replaced wholesale on every recompute, never mutated in place.
func (c *Controller) Rows() []domain.Reading {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

// Markers projects the current visible readings into map markers.
func (c *Controller) Markers() []domain.Marker {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.Markers(c.visible)
}

// Bounds returns the full-dataset bounds. ok is false when the dataset is
// empty; the map must not be rendered in that case.
func (c *Controller) Bounds() (domain.GeoBounds, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bounds, c.hasBounds
}

// Snapshot returns a consistent copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers fn to run after every completed mutation with the new
// snapshot. Callbacks run under the controller lock so they observe
// mutations in order; they must not call back into the Controller.
func (c *Controller) Subscribe(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// CheckReadiness reports ready once the initial load has completed, even
// when it completed with an empty dataset.
func (c *Controller) CheckReadiness(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return errors.New("dataset has not been loaded yet")
	}
	return nil
}

// mutate applies one state change and its single recompute under the lock,
// then notifies subscribers.
func (c *Controller) mutate(apply func()) {
	c.mu.Lock()
	apply()
	c.recomputeLocked()
	c.notifyLocked()
	c.mu.Unlock()
}

func (c *Controller) recomputeLocked() {
	start := time.Now()
	c.visible = domain.Sort(domain.Filter(c.base, c.filter), c.sort)
	c.version++

	c.metrics.ViewRecomputes.Inc()
	c.metrics.RecomputeTime.Observe(time.Since(start).Seconds())
	c.metrics.VisibleReadings.Set(float64(len(c.visible)))

	c.logger.Debug("view recomputed",
		"version", c.version,
		"visible", len(c.visible),
		"total", len(c.base),
	)
}

func (c *Controller) notifyLocked() {
	if len(c.subscribers) == 0 {
		return
	}
	snap := c.snapshotLocked()
	for _, fn := range c.subscribers {
		fn(snap)
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Version:         c.version,
		Filter:          c.filter,
		Sort:            c.sort,
		MapExpanded:     c.mapExpanded,
		DarkMode:        c.darkMode,
		TotalReadings:   len(c.base),
		VisibleReadings: len(c.visible),
		LoadedAt:        c.loadedAt,
	}
}
