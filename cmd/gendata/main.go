// Command gendata generates a deterministic sample readings CSV plus a
// normalized JSON fixture, using the actual domain package so fixtures match
// real normalization behavior. It also prints severity and bounds stats for
// updating test assertions.
//
// Usage:
//
//	go run ./cmd/gendata -out data/readings.csv -json-out data/mock/readings_normalized.json -rows 250
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mikasimoncelli/Railway-Temperature-Dashboard/internal/domain"
)

// baseTime anchors generated UNIX_TIME values so fixtures are reproducible.
var baseTime = time.Date(2024, time.June, 14, 6, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "data/readings.csv", "output path for the readings CSV")
	jsonOut := flag.String("json-out", "", "optional output path for the normalized JSON fixture")
	rows := flag.Int("rows", 250, "number of data rows to generate")
	malformed := flag.Int("malformed", 3, "number of deliberately malformed rows to mix in")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	raws := generate(*rows, *malformed, rand.New(rand.NewSource(*seed)))

	if err := writeCSV(*out, raws); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	log.Printf("wrote %d rows: %s", len(raws), *out)

	// Fixed clock for reproducible NormalizedAt stamps.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	readings := domain.NormalizeAll(raws)

	if *jsonOut != "" {
		if err := writeJSON(*jsonOut, readings); err != nil {
			return fmt.Errorf("writing JSON fixture: %w", err)
		}
		log.Printf("wrote normalized fixture: %s", *jsonOut)
	}

	printStats(readings)
	return nil
}

// generate produces rows along a track section near the Brenner line:
// position advances monotonically, coordinates drift north-east, scores
// oscillate through all three severity bands.
func generate(rows, malformed int, rng *rand.Rand) []domain.RawReading {
	raws := make([]domain.RawReading, 0, rows+malformed)

	const (
		baseLat = 46.49
		baseLon = 11.35
	)

	for i := 0; i < rows; i++ {
		ts := baseTime.Add(time.Duration(i) * 30 * time.Second)
		score := 45 + 35*rng.Float64() // spans LOW through HIGH
		raws = append(raws, domain.RawReading{
			UnixTime:      strconv.FormatInt(ts.Unix(), 10),
			Latitude:      strconv.FormatFloat(baseLat+float64(i)*0.0004+rng.Float64()*0.0001, 'f', 6, 64),
			Longitude:     strconv.FormatFloat(baseLon+float64(i)*0.0003+rng.Float64()*0.0001, 'f', 6, 64),
			PositionYards: strconv.Itoa(i * 50),
			Score:         strconv.FormatFloat(score, 'f', 2, 64),
			RecordingID:   fmt.Sprintf("REC-%04d", i%4+1),
		})
	}

	// Malformed rows exercise the lenient normalization path.
	broken := []domain.RawReading{
		{UnixTime: "not-a-time", Latitude: "46.5", Longitude: "11.4", PositionYards: "100", Score: "61.0", RecordingID: "REC-BAD-TIME"},
		{UnixTime: strconv.FormatInt(baseTime.Unix(), 10), Latitude: "", Longitude: "", PositionYards: "200", Score: "72.5", RecordingID: "REC-NO-COORDS"},
		{UnixTime: strconv.FormatInt(baseTime.Unix(), 10), Latitude: "46.51", Longitude: "11.36", PositionYards: "300", Score: "n/a", RecordingID: "REC-BAD-SCORE"},
	}
	for i := 0; i < malformed && i < len(broken); i++ {
		raws = append(raws, broken[i])
	}

	return raws
}

func writeCSV(path string, raws []domain.RawReading) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"UNIX_TIME", "LATITUDE", "LONGITUDE", "POSITION_YARDS", "SCORE", "RECORDING_ID"}); err != nil {
		return err
	}
	for _, r := range raws {
		if err := w.Write([]string{r.UnixTime, r.Latitude, r.Longitude, r.PositionYards, r.Score, r.RecordingID}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(readings []domain.Reading) {
	severityCounts := map[domain.Severity]int{}
	var invalidTime, invalidCoords, invalidScore int
	for i := range readings {
		r := &readings[i]
		severityCounts[r.Severity]++
		if !r.TimeValid {
			invalidTime++
		}
		if !r.CoordsValid {
			invalidCoords++
		}
		if !r.ScoreValid {
			invalidScore++
		}
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", len(readings))
	fmt.Printf("By severity: HIGH=%d, MEDIUM=%d, LOW=%d\n",
		severityCounts[domain.SeverityHigh], severityCounts[domain.SeverityMedium], severityCounts[domain.SeverityLow])
	fmt.Printf("Invalid: time=%d, coords=%d, score=%d\n", invalidTime, invalidCoords, invalidScore)

	if bounds, ok := domain.ComputeBounds(readings); ok {
		fmt.Printf("Bounds: (%.6f,%.6f)-(%.6f,%.6f), center (%.6f,%.6f)\n",
			bounds.MinLat, bounds.MinLon, bounds.MaxLat, bounds.MaxLon,
			bounds.Center.Lat, bounds.Center.Lon)
	} else {
		fmt.Println("Bounds: none (no valid coordinates)")
	}
}
