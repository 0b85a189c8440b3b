package yield

import (
	"fmt"
	"strings"
	"time"
)

// PeriodAggregate is the row of output for one period (or the full horizon).
// Energies are in Wh and insolation in Wh/m2. A metric whose inputs are
// missing or degenerate is NaN.
type PeriodAggregate struct {
	Start   time.Time
	Label   string
	Samples int

	EnergyWh           float64 // bifacial run, zero-clipped
	MonofacialEnergyWh float64 // front-only run, zero-clipped

	FrontInsolationWhm2 float64
	RearInsolationWhm2  float64

	SpecificYield                 float64 // kWh/kWp
	BifacialGainPct               float64 // %
	PerformanceRatio              float64 // pu
	PerformanceRatioRearCorrected float64 // pu
}

func (a *PeriodAggregate) derive(nameplate float64) {
	a.SpecificYield = specificYield(a.EnergyWh, nameplate)
	a.BifacialGainPct = bifacialGain(a.EnergyWh, a.MonofacialEnergyWh)
	a.PerformanceRatio = performanceRatio(a.EnergyWh, a.FrontInsolationWhm2, nameplate)
	a.PerformanceRatioRearCorrected = performanceRatioRearCorrected(a.EnergyWh, a.FrontInsolationWhm2, a.RearInsolationWhm2, nameplate)
}

// PR returns the performance ratio under the given convention.
func (a PeriodAggregate) PR(m PRMethod) float64 {
	if m == PRRearCorrected {
		return a.PerformanceRatioRearCorrected
	}
	return a.PerformanceRatio
}

// PRMethod names one of the two performance ratio conventions.
type PRMethod string

const (
	// PRPlain is (E/P)/(H/1000).
	PRPlain PRMethod = "plain"
	// PRRearCorrected divides PRPlain by (1 + rear/front).
	PRRearCorrected PRMethod = "rear_corrected"
)

func ParsePRMethod(s string) (PRMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "plain":
		return PRPlain, nil
	case "rear_corrected", "rear-corrected", "bifacial":
		return PRRearCorrected, nil
	default:
		return "", fmt.Errorf("unsupported performance ratio method %q", s)
	}
}

// Result is the immutable output of one aggregation run.
type Result struct {
	Periods []PeriodAggregate
	Total   PeriodAggregate

	NameplateW float64
	Period     string
	Interval   time.Duration
	Start      time.Time
	End        time.Time
}
