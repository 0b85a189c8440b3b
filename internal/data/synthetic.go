package data

import (
	"math"
	"time"

	"pv-yield/internal/model"
)

// SyntheticParams shapes a clear-sky-like year of hourly data.
type SyntheticParams struct {
	Year        int
	Location    *time.Location
	NameplateW  float64
	RearRatio   float64 // rear / front irradiance
	Bifaciality float64
	// NightW is the (negative) inverter self-consumption at night.
	NightW float64
}

// SyntheticYear generates a full year of hourly bifacial and monofacial
// power with matching irradiance. The effective irradiance includes the
// rear contribution weighted by bifaciality, like the bifacial model run.
// It stands in for the upstream simulation in demos and tests.
func SyntheticYear(p SyntheticParams) model.SeriesSet {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(p.Year, time.January, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(1, 0, 0)

	bif := model.TimeSeries{Name: "bifacial", Interval: time.Hour}
	mono := model.TimeSeries{Name: "monofacial", Interval: time.Hour}
	front := model.TimeSeries{Name: "effective_irradiance", Interval: time.Hour}
	rear := model.TimeSeries{Name: "rear_irradiance", Interval: time.Hour}

	// Step in absolute hours so DST changes do not break the fixed interval.
	for ts := start; ts.Before(end); ts = ts.Add(time.Hour) {
		doy := float64(ts.YearDay())
		season := 0.65 + 0.35*math.Cos(2*math.Pi*(doy-172)/365)
		dayLength := 12 + 3*math.Cos(2*math.Pi*(doy-172)/365)
		hour := float64(ts.Hour()) + 0.5
		x := (hour - 12) / (dayLength / 2)

		g := 0.0
		if math.Abs(x) < 1 {
			g = 1000 * season * math.Cos(x*math.Pi/2)
		}
		r := g * p.RearRatio
		eff := g + p.Bifaciality*r

		pm := p.NightW
		pb := p.NightW
		if g > 0 {
			pm = 0.86 * p.NameplateW * g / 1000
			pb = 0.86 * p.NameplateW * eff / 1000
		}

		bif.Samples = append(bif.Samples, model.Sample{Timestamp: ts, Value: pb})
		mono.Samples = append(mono.Samples, model.Sample{Timestamp: ts, Value: pm})
		front.Samples = append(front.Samples, model.Sample{Timestamp: ts, Value: eff})
		rear.Samples = append(rear.Samples, model.Sample{Timestamp: ts, Value: r})
	}

	return model.SeriesSet{
		Bifacial:            bif,
		Monofacial:          &mono,
		EffectiveIrradiance: &front,
		RearIrradiance:      &rear,
	}
}
