package yield

import (
	"fmt"
	"math"
	"time"

	"pv-yield/internal/model"
)

// ReferenceIrradiance is the STC irradiance in W/m2.
const ReferenceIrradiance = 1000.0

// PeriodEnergy is the integrated, zero-clipped sum of one series over one period.
// For power series Energy is in Wh; for irradiance series it is insolation in Wh/m2.
type PeriodEnergy struct {
	Start   time.Time
	Label   string
	Samples int
	Energy  float64
}

// ClipNonNegative returns a copy of s with every negative value replaced by zero.
func ClipNonNegative(s model.TimeSeries) model.TimeSeries {
	out := s
	out.Samples = make([]model.Sample, len(s.Samples))
	for i, smp := range s.Samples {
		if smp.Value < 0 {
			smp.Value = 0
		}
		out.Samples[i] = smp
	}
	return out
}

// AggregatePeriod integrates s into energy per period.
// Negative values are clipped before summing, so energies are never negative.
// Sums are converted to energy using the series' native sampling interval.
// Fixed-duration buckets start at the first sample.
func AggregatePeriod(s model.TimeSeries, p Period) ([]PeriodEnergy, error) {
	if p == nil {
		return nil, fmt.Errorf("period is nil")
	}
	if err := validateSeries(s); err != nil {
		return nil, err
	}
	if a, ok := p.(anchorer); ok {
		p = a.AnchoredAt(s.Samples[0].Timestamp)
	}
	dtH := s.IntervalHours()

	var out []PeriodEnergy
	for _, smp := range s.Samples {
		start := p.Start(smp.Timestamp)
		if len(out) == 0 || !out[len(out)-1].Start.Equal(start) {
			out = append(out, PeriodEnergy{Start: start, Label: p.Label(start)})
		}
		cur := &out[len(out)-1]
		cur.Samples++
		if smp.Value > 0 {
			cur.Energy += smp.Value
		}
	}
	for i := range out {
		out[i].Energy *= dtH
	}
	return out, nil
}

// SpecificYield divides each energy (Wh) by nameplate (W), giving hours
// (read as kWh/kWp). Every value is NaN when nameplate <= 0.
func SpecificYield(energy []float64, nameplate float64) []float64 {
	out := make([]float64, len(energy))
	for i, e := range energy {
		out[i] = specificYield(e, nameplate)
	}
	return out
}

// BifacialGain computes 100*(bifacial-monofacial)/bifacial per period.
// Periods with zero bifacial energy are NaN.
func BifacialGain(bifacial, monofacial []float64) ([]float64, error) {
	if len(bifacial) != len(monofacial) {
		return nil, fmt.Errorf("bifacial %d, monofacial %d: %w", len(bifacial), len(monofacial), ErrShapeMismatch)
	}
	out := make([]float64, len(bifacial))
	for i := range bifacial {
		out[i] = bifacialGain(bifacial[i], monofacial[i])
	}
	return out, nil
}

// PerformanceRatio computes (energy/nameplate)/(insolation/1000) per period.
// insolation is the period sum of effective irradiance in Wh/m2.
func PerformanceRatio(energy, insolation []float64, nameplate float64) ([]float64, error) {
	if len(energy) != len(insolation) {
		return nil, fmt.Errorf("energy %d, insolation %d: %w", len(energy), len(insolation), ErrShapeMismatch)
	}
	out := make([]float64, len(energy))
	for i := range energy {
		out[i] = performanceRatio(energy[i], insolation[i], nameplate)
	}
	return out, nil
}

// PerformanceRatioRearCorrected is PerformanceRatio further divided by
// (1 + rear/front), removing the rear-side contribution from the ratio.
func PerformanceRatioRearCorrected(energy, front, rear []float64, nameplate float64) ([]float64, error) {
	if len(energy) != len(front) || len(energy) != len(rear) {
		return nil, fmt.Errorf("energy %d, front %d, rear %d: %w", len(energy), len(front), len(rear), ErrShapeMismatch)
	}
	out := make([]float64, len(energy))
	for i := range energy {
		out[i] = performanceRatioRearCorrected(energy[i], front[i], rear[i], nameplate)
	}
	return out, nil
}

// TotalForHorizon sums every period and re-derives the ratios from the sums.
// Ratios are never averaged across periods.
func TotalForHorizon(periods []PeriodAggregate, nameplate float64) PeriodAggregate {
	total := PeriodAggregate{Label: "total"}
	if len(periods) > 0 {
		total.Start = periods[0].Start
	}
	for _, p := range periods {
		total.Samples += p.Samples
		total.EnergyWh += p.EnergyWh
		total.MonofacialEnergyWh += p.MonofacialEnergyWh
		total.FrontInsolationWhm2 += p.FrontInsolationWhm2
		total.RearInsolationWhm2 += p.RearInsolationWhm2
	}
	total.derive(nameplate)
	return total
}

func specificYield(energyWh, nameplateW float64) float64 {
	if !(nameplateW > 0) {
		return math.NaN()
	}
	return energyWh / nameplateW
}

func bifacialGain(bifacialWh, monofacialWh float64) float64 {
	if bifacialWh == 0 {
		return math.NaN()
	}
	return 100 * (bifacialWh - monofacialWh) / bifacialWh
}

func performanceRatio(energyWh, insolationWhm2, nameplateW float64) float64 {
	if !(nameplateW > 0) || !(insolationWhm2 > 0) {
		return math.NaN()
	}
	return (energyWh / nameplateW) / (insolationWhm2 / ReferenceIrradiance)
}

func performanceRatioRearCorrected(energyWh, frontWhm2, rearWhm2, nameplateW float64) float64 {
	pr := performanceRatio(energyWh, frontWhm2, nameplateW)
	return pr / (1 + rearWhm2/frontWhm2)
}
