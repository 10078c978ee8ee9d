// Command validate performs integrity checks on a readings CSV before it is
// deployed as the dashboard dataset: header shape, per-field parse
// accounting, severity classification sanity, and bounds availability.
//
// Usage:
//
//	go run ./cmd/validate -csv data/readings.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mikasimoncelli/Railway-Temperature-Dashboard/internal/domain"
)

var requiredColumns = []string{
	"UNIX_TIME", "LATITUDE", "LONGITUDE", "POSITION_YARDS", "SCORE", "RECORDING_ID",
}

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	csvPath := flag.String("csv", "", "path to the readings CSV")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(*csvPath))
}

func run(csvPath string) int {
	fmt.Println("=== Readings Dataset Validation ===")
	fmt.Println()

	header, rows, malformedLines, err := loadCSV(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load CSV: %v\n", err)
		return 1
	}

	readings := domain.NormalizeAll(rows)

	phases := []*phase{
		validateHeader(header),
		validateRows(rows, malformedLines),
		validateFields(readings),
		validateGeo(readings),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-40s %s\n", p.name, status)
	}

	printSummary(readings)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// loadCSV reads the file leniently the way the dashboard loader does, but
// keeps account of every line it had to skip.
func loadCSV(path string) (header []string, rows []domain.RawReading, malformed []int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err = r.Read()
	if err == io.EOF {
		return nil, nil, nil, fmt.Errorf("file is empty")
	}
	if err != nil {
		return nil, nil, nil, fmt.Errorf("read header: %w", err)
	}

	colIdx := map[string]int{}
	for i, h := range header {
		colIdx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}

	get := func(row []string, col string) string {
		i, ok := colIdx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	line := 1
	for {
		line++
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			malformed = append(malformed, line)
			continue
		}
		rows = append(rows, domain.RawReading{
			UnixTime:      get(record, "UNIX_TIME"),
			Latitude:      get(record, "LATITUDE"),
			Longitude:     get(record, "LONGITUDE"),
			PositionYards: get(record, "POSITION_YARDS"),
			Score:         get(record, "SCORE"),
			RecordingID:   get(record, "RECORDING_ID"),
		})
	}

	return header, rows, malformed, nil
}

func validateHeader(header []string) *phase {
	p := &phase{name: "Phase 1: Header shape"}

	present := map[string]bool{}
	for _, h := range header {
		present[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = true
	}
	for _, col := range requiredColumns {
		if !present[col] {
			p.errorf("missing required column %q", col)
		}
	}
	return p
}

func validateRows(rows []domain.RawReading, malformedLines []int) *phase {
	p := &phase{name: "Phase 2: Row accounting"}

	if len(rows) == 0 {
		p.errorf("no data rows — dashboard would render its empty state")
	}
	for _, line := range malformedLines {
		p.errorf("line %d could not be read and would be skipped", line)
	}
	return p
}

// validateFields reports parse failures per field. Parse failures are not
// fatal for the dashboard (normalization is lenient) but a high rate means
// the export is broken.
func validateFields(readings []domain.Reading) *phase {
	p := &phase{name: "Phase 3: Field parsing"}

	var badTime, badCoords, badScore, emptyID int
	for i := range readings {
		r := &readings[i]
		if !r.TimeValid {
			badTime++
		}
		if !r.CoordsValid {
			badCoords++
		}
		if !r.ScoreValid {
			badScore++
		}
		if r.RecordingID == "" {
			emptyID++
		}
	}

	report := func(n int, what string) {
		if n == 0 {
			return
		}
		if n*10 > len(readings) { // more than 10% is an export problem
			p.errorf("%d of %d rows have %s", n, len(readings), what)
		} else {
			fmt.Printf("  note: %d row(s) with %s (tolerated)\n", n, what)
		}
	}
	report(badTime, "unparseable UNIX_TIME")
	report(badCoords, "unparseable coordinates")
	report(badScore, "unparseable SCORE")
	report(emptyID, "empty RECORDING_ID")

	return p
}

func validateGeo(readings []domain.Reading) *phase {
	p := &phase{name: "Phase 4: Geographic bounds"}

	bounds, ok := domain.ComputeBounds(readings)
	if !ok {
		if len(readings) > 0 {
			p.errorf("no reading has a valid coordinate pair — the map cannot render")
		}
		return p
	}

	if bounds.MinLat < -90 || bounds.MaxLat > 90 {
		p.errorf("latitude out of range: [%g, %g]", bounds.MinLat, bounds.MaxLat)
	}
	if bounds.MinLon < -180 || bounds.MaxLon > 180 {
		p.errorf("longitude out of range: [%g, %g]", bounds.MinLon, bounds.MaxLon)
	}
	return p
}

func printSummary(readings []domain.Reading) {
	counts := map[domain.Severity]int{}
	for i := range readings {
		counts[readings[i].Severity]++
	}
	fmt.Printf("\nRows: %d (HIGH=%d, MEDIUM=%d, LOW=%d)\n",
		len(readings), counts[domain.SeverityHigh], counts[domain.SeverityMedium], counts[domain.SeverityLow])
}
