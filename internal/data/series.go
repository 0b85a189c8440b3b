package data

import (
	"fmt"
	"time"

	"pv-yield/internal/model"
)

// SeriesRow is one timestamp of a run in row form, as carried by CSV, JSON
// files and API requests. Optional columns must be present on every row or on none.
type SeriesRow struct {
	Timestamp           time.Time `json:"timestamp"`
	BifacialW           float64   `json:"bifacial_w"`
	MonofacialW         *float64  `json:"monofacial_w,omitempty"`
	EffectiveIrradiance *float64  `json:"effective_irradiance_wm2,omitempty"`
	RearIrradiance      *float64  `json:"rear_irradiance_wm2,omitempty"`
}

// BuildSeriesSet turns rows into named series sharing one timestamp index.
// interval may be zero to derive it from the timestamps.
func BuildSeriesSet(rows []SeriesRow, interval time.Duration) (*model.SeriesSet, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no samples")
	}

	set := &model.SeriesSet{
		Bifacial: model.TimeSeries{Name: "bifacial", Interval: interval},
	}
	mono := newOptional("monofacial", rows[0].MonofacialW != nil, interval)
	front := newOptional("effective_irradiance", rows[0].EffectiveIrradiance != nil, interval)
	rear := newOptional("rear_irradiance", rows[0].RearIrradiance != nil, interval)

	for i, r := range rows {
		set.Bifacial.Samples = append(set.Bifacial.Samples, model.Sample{Timestamp: r.Timestamp, Value: r.BifacialW})
		if err := mono.add(i, r.Timestamp, r.MonofacialW); err != nil {
			return nil, err
		}
		if err := front.add(i, r.Timestamp, r.EffectiveIrradiance); err != nil {
			return nil, err
		}
		if err := rear.add(i, r.Timestamp, r.RearIrradiance); err != nil {
			return nil, err
		}
	}

	set.Monofacial = mono.series()
	set.EffectiveIrradiance = front.series()
	set.RearIrradiance = rear.series()
	return set, nil
}

type optionalSeries struct {
	present bool
	ts      model.TimeSeries
}

func newOptional(name string, present bool, interval time.Duration) *optionalSeries {
	return &optionalSeries{present: present, ts: model.TimeSeries{Name: name, Interval: interval}}
}

func (o *optionalSeries) add(row int, ts time.Time, v *float64) error {
	if (v != nil) != o.present {
		return fmt.Errorf("row %d: column %s must be set on every row or on none", row, o.ts.Name)
	}
	if v != nil {
		o.ts.Samples = append(o.ts.Samples, model.Sample{Timestamp: ts, Value: *v})
	}
	return nil
}

func (o *optionalSeries) series() *model.TimeSeries {
	if !o.present {
		return nil
	}
	return &o.ts
}
