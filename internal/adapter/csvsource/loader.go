// Package csvsource loads the static readings dataset from a local CSV file
// or an HTTP URL and yields loosely-typed rows for normalization.
package csvsource

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/mikasimoncelli/Railway-Temperature-Dashboard/internal/config"
	"github.com/mikasimoncelli/Railway-Temperature-Dashboard/internal/domain"
	"github.com/mikasimoncelli/Railway-Temperature-Dashboard/internal/observability"
)

// Expected header names. A missing column is logged once and leaves the
// field empty on every row; normalization handles the rest.
var expectedColumns = []string{
	"UNIX_TIME", "LATITUDE", "LONGITUDE", "POSITION_YARDS", "SCORE", "RECORDING_ID",
}

// Loader reads the readings CSV. When a URL is configured it takes
// precedence over the local path.
type Loader struct {
	path       string
	url        string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewLoader creates a Loader from config.
func NewLoader(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Loader {
	return &Loader{
		path: cfg.CSVPath,
		url:  cfg.CSVURL,
		httpClient: &http.Client{
			Timeout: cfg.CSVFetchTimeout,
		},
		logger:  logger,
		metrics: metrics,
	}
}

// Load fetches and parses the dataset. Malformed lines are logged, counted,
// and skipped; only a failure to obtain or read the source at all returns an
// error. An empty file yields an empty slice, not an error.
func (l *Loader) Load(ctx context.Context) ([]domain.RawReading, error) {
	rc, err := l.open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return l.parse(rc)
}

func (l *Loader) open(ctx context.Context) (io.ReadCloser, error) {
	if l.url != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		resp, err := l.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch csv: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch csv: status %d", resp.StatusCode)
		}
		return resp.Body, nil
	}

	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	return f, nil
}

func (l *Loader) parse(r io.Reader) ([]domain.RawReading, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are tolerated
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		l.logger.Warn("csv source is empty")
		return []domain.RawReading{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	colIdx := indexHeader(header)
	for _, col := range expectedColumns {
		if _, ok := colIdx[col]; !ok {
			l.logger.Warn("csv header missing column", "column", col)
		}
	}

	var rows []domain.RawReading
	line := 1
	for {
		line++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			l.logger.Warn("skipping malformed csv line", "line", line, "error", err)
			l.metrics.MalformedRows.Inc()
			continue
		}
		rows = append(rows, domain.RawReading{
			UnixTime:      get(record, colIdx, "UNIX_TIME"),
			Latitude:      get(record, colIdx, "LATITUDE"),
			Longitude:     get(record, colIdx, "LONGITUDE"),
			PositionYards: get(record, colIdx, "POSITION_YARDS"),
			Score:         get(record, colIdx, "SCORE"),
			RecordingID:   get(record, colIdx, "RECORDING_ID"),
		})
	}

	l.logger.Info("csv source loaded", "rows", len(rows))
	return rows, nil
}

func indexHeader(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		idx[h] = i
	}
	return idx
}

func get(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
