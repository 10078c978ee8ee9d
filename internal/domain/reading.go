package domain

import "time"

// RawReading is one row of the sensor CSV before any typing or validation.
// Every field is the raw cell text; empty or garbage values are expected and
// must survive into normalization without breaking it.
type RawReading struct {
	UnixTime      string `json:"UNIX_TIME"`
	Latitude      string `json:"LATITUDE"`
	Longitude     string `json:"LONGITUDE"`
	PositionYards string `json:"POSITION_YARDS"`
	Score         string `json:"SCORE"`
	RecordingID   string `json:"RECORDING_ID"`
}

// Severity is the three-level classification of a temperature reading.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// Rank orders severities for sorting: HIGH=3 > MEDIUM=2 > LOW=1.
// Unknown values rank below LOW.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// MarkerColor maps a severity to the marker color used by the map layer.
func (s Severity) MarkerColor() string {
	switch s {
	case SeverityHigh:
		return "red"
	case SeverityMedium:
		return "orange"
	default:
		return "green"
	}
}

// Reading is a normalized sensor reading. It is immutable once produced by
// Normalize: severity and the display timestamp are derived exactly once and
// reused by filtering and sorting, never recomputed from Score downstream.
type Reading struct {
	RecordingID      string    `json:"recording_id"`
	UnixTime         int64     `json:"unix_time"`
	Timestamp        time.Time `json:"timestamp"`
	DisplayTimestamp string    `json:"display_timestamp"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	PositionYards    float64   `json:"position_yards"`
	Score            float64   `json:"score"`
	Severity         Severity  `json:"severity"`
	NormalizedAt     time.Time `json:"normalized_at"`

	// Validity flags for fields that failed to parse. An invalid field keeps
	// its zero value and is treated as non-matching by the corresponding
	// filter predicate.
	TimeValid     bool `json:"-"`
	CoordsValid   bool `json:"-"`
	PositionValid bool `json:"-"`
	ScoreValid    bool `json:"-"`
}

// Marker is the per-reading payload handed to the map collaborator: a
// coordinate, a severity-derived icon color, and the popup content.
type Marker struct {
	Latitude  float64     `json:"latitude"`
	Longitude float64     `json:"longitude"`
	Color     string      `json:"color"`
	Popup     MarkerPopup `json:"popup"`
}

// MarkerPopup is the display-on-interaction content for a map marker.
type MarkerPopup struct {
	RecordingID   string   `json:"recording_id"`
	Timestamp     string   `json:"timestamp"`
	Score         float64  `json:"score"`
	PositionYards float64  `json:"position_yards"`
	Severity      Severity `json:"severity"`
}

// Markers projects readings into map markers. Readings without a valid
// coordinate pair are omitted; the map cannot place them.
func Markers(readings []Reading) []Marker {
	markers := make([]Marker, 0, len(readings))
	for i := range readings {
		r := &readings[i]
		if !r.CoordsValid {
			continue
		}
		markers = append(markers, Marker{
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			Color:     r.Severity.MarkerColor(),
			Popup: MarkerPopup{
				RecordingID:   r.RecordingID,
				Timestamp:     r.DisplayTimestamp,
				Score:         r.Score,
				PositionYards: r.PositionYards,
				Severity:      r.Severity,
			},
		})
	}
	return markers
}
