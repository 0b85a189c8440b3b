package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"pv-yield/internal/model"
)

// Header aliases. The spaced names are those of pandas results exports.
var columnAliases = map[string]string{
	"timestamp": "timestamp",
	"time":      "timestamp",
	"datetime":  "timestamp",
	"":          "timestamp",

	"bifacial_w":  "bifacial",
	"bifacial":    "bifacial",
	"ac_bifacial": "bifacial",

	"monofacial_w":  "monofacial",
	"monofacial":    "monofacial",
	"non bifacial":  "monofacial",
	"non_bifacial":  "monofacial",
	"ac_monofacial": "monofacial",

	"effective_irradiance_wm2": "effective_irradiance",
	"effective_irradiance":     "effective_irradiance",
	"effective irradiance":     "effective_irradiance",

	"rear_irradiance_wm2": "rear_irradiance",
	"rear_irradiance":     "rear_irradiance",
	"rear irradiance":     "rear_irradiance",
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// LoadSeriesCSVFile reads a series CSV from path.
func LoadSeriesCSVFile(path string, interval time.Duration) (*model.SeriesSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadSeriesCSV(f, interval)
}

// LoadSeriesCSV parses a header row followed by one row per timestamp.
// A timestamp and a bifacial power column are required; monofacial power,
// effective irradiance and rear irradiance are optional. Empty cells read as 0.
func LoadSeriesCSV(r io.Reader, interval time.Duration) (*model.SeriesSet, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty CSV")
		}
		return nil, err
	}
	cols := map[string]int{}
	for i, h := range header {
		key, ok := columnAliases[strings.ToLower(strings.TrimSpace(h))]
		if !ok {
			continue
		}
		if _, dup := cols[key]; dup {
			return nil, fmt.Errorf("column %q appears more than once", key)
		}
		cols[key] = i
	}
	if _, ok := cols["timestamp"]; !ok {
		return nil, fmt.Errorf("missing timestamp column")
	}
	if _, ok := cols["bifacial"]; !ok {
		return nil, fmt.Errorf("missing bifacial power column")
	}

	var rows []SeriesRow
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		ts, err := parseTime(rec[cols["timestamp"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row := SeriesRow{Timestamp: ts}
		if row.BifacialW, err = parseValue(rec[cols["bifacial"]]); err != nil {
			return nil, fmt.Errorf("line %d bifacial: %w", line, err)
		}
		if row.MonofacialW, err = optionalValue(rec, cols, "monofacial"); err != nil {
			return nil, fmt.Errorf("line %d monofacial: %w", line, err)
		}
		if row.EffectiveIrradiance, err = optionalValue(rec, cols, "effective_irradiance"); err != nil {
			return nil, fmt.Errorf("line %d effective_irradiance: %w", line, err)
		}
		if row.RearIrradiance, err = optionalValue(rec, cols, "rear_irradiance"); err != nil {
			return nil, fmt.Errorf("line %d rear_irradiance: %w", line, err)
		}
		rows = append(rows, row)
	}
	return BuildSeriesSet(rows, interval)
}

func optionalValue(rec []string, cols map[string]int, key string) (*float64, error) {
	idx, ok := cols[key]
	if !ok {
		return nil, nil
	}
	v, err := parseValue(rec[idx])
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return v, nil
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
