package model

import "time"

// Sample is one (timestamp, value) pair of a time series.
type Sample struct {
	Timestamp time.Time
	Value     float64
}

// TimeSeries is an ordered, fixed-frequency series of samples.
// Units depend on the role of the series: W for power, W/m2 for irradiance.
type TimeSeries struct {
	Name    string
	Samples []Sample
	// Interval is the sampling interval. When zero it is derived from the
	// first two timestamps, or one hour for a single-sample series.
	Interval time.Duration
}

func (s TimeSeries) Len() int { return len(s.Samples) }

// SampleInterval returns the effective sampling interval.
func (s TimeSeries) SampleInterval() time.Duration {
	if s.Interval > 0 {
		return s.Interval
	}
	if len(s.Samples) >= 2 {
		return s.Samples[1].Timestamp.Sub(s.Samples[0].Timestamp)
	}
	return time.Hour
}

func (s TimeSeries) IntervalHours() float64 {
	return s.SampleInterval().Hours()
}

func (s TimeSeries) Values() []float64 {
	out := make([]float64, len(s.Samples))
	for i, smp := range s.Samples {
		out[i] = smp.Value
	}
	return out
}

func (s TimeSeries) Start() time.Time {
	if len(s.Samples) == 0 {
		return time.Time{}
	}
	return s.Samples[0].Timestamp
}

// End returns the end of the last sample interval.
func (s TimeSeries) End() time.Time {
	if len(s.Samples) == 0 {
		return time.Time{}
	}
	return s.Samples[len(s.Samples)-1].Timestamp.Add(s.SampleInterval())
}

// SeriesSet groups the series of one simulation run by role.
// Only Bifacial is required; nil series leave the metrics derived from them undefined.
type SeriesSet struct {
	// Bifacial is the power of the run with rear-side gain, W.
	Bifacial TimeSeries
	// Monofacial is the power of the front-only run, W.
	Monofacial *TimeSeries
	// EffectiveIrradiance is the front effective irradiance, W/m2.
	EffectiveIrradiance *TimeSeries
	// RearIrradiance is the rear-side irradiance, W/m2.
	RearIrradiance *TimeSeries
}
