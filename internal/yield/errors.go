package yield

import (
	"errors"
	"fmt"
	"time"

	"pv-yield/internal/model"
)

var (
	// ErrEmptySeries is returned when a required series has no samples.
	ErrEmptySeries = errors.New("series is empty")
	// ErrIrregular is returned for non-increasing or non-fixed-frequency timestamps.
	ErrIrregular = errors.New("series is not strictly increasing at a fixed interval")
	// ErrMisaligned is returned when two series do not share the same timestamp index.
	ErrMisaligned = errors.New("series timestamps are not aligned")
	// ErrShapeMismatch is returned when per-period inputs differ in length.
	ErrShapeMismatch = errors.New("inputs have different lengths")
)

func validateSeries(s model.TimeSeries) error {
	if len(s.Samples) == 0 {
		return fmt.Errorf("%s: %w", seriesName(s), ErrEmptySeries)
	}
	step := s.SampleInterval()
	if step <= 0 {
		return fmt.Errorf("%s: interval %s: %w", seriesName(s), step, ErrIrregular)
	}
	for i := 1; i < len(s.Samples); i++ {
		d := s.Samples[i].Timestamp.Sub(s.Samples[i-1].Timestamp)
		if d != step {
			return fmt.Errorf("%s: sample %d is %s after the previous one, expected %s: %w",
				seriesName(s), i, d, step, ErrIrregular)
		}
	}
	return nil
}

func checkAligned(ref, other model.TimeSeries) error {
	if len(ref.Samples) != len(other.Samples) {
		return fmt.Errorf("%s has %d samples, %s has %d: %w",
			seriesName(other), len(other.Samples), seriesName(ref), len(ref.Samples), ErrMisaligned)
	}
	for i := range ref.Samples {
		if !ref.Samples[i].Timestamp.Equal(other.Samples[i].Timestamp) {
			return fmt.Errorf("%s sample %d at %s, %s at %s: %w",
				seriesName(other), i, other.Samples[i].Timestamp.Format(time.RFC3339),
				seriesName(ref), ref.Samples[i].Timestamp.Format(time.RFC3339), ErrMisaligned)
		}
	}
	if other.Interval > 0 && other.Interval != ref.SampleInterval() {
		return fmt.Errorf("%s interval %s, %s interval %s: %w",
			seriesName(other), other.Interval, seriesName(ref), ref.SampleInterval(), ErrMisaligned)
	}
	return nil
}

func seriesName(s model.TimeSeries) string {
	if s.Name == "" {
		return "series"
	}
	return s.Name
}
