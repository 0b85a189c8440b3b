package data

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"pv-yield/internal/model"
)

// SeriesFile is the JSON shape of a series input file.
//
// Example:
//
//	{
//	  "interval_minutes": 60,
//	  "samples": [{"timestamp": "2023-01-01T00:00:00Z", "bifacial_w": 0, ...}]
//	}
type SeriesFile struct {
	IntervalMinutes int         `json:"interval_minutes,omitempty"`
	Samples         []SeriesRow `json:"samples"`
}

func (f SeriesFile) Interval() time.Duration {
	return time.Duration(f.IntervalMinutes) * time.Minute
}

func (f SeriesFile) SeriesSet() (*model.SeriesSet, error) {
	return BuildSeriesSet(f.Samples, f.Interval())
}

// LoadSeriesJSON reads a series file. fallback is the sample interval used
// when the file has no interval_minutes; zero derives it from the timestamps.
func LoadSeriesJSON(path string, fallback time.Duration) (*model.SeriesSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f SeriesFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if f.IntervalMinutes == 0 {
		return BuildSeriesSet(f.Samples, fallback)
	}
	return f.SeriesSet()
}
