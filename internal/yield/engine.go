package yield

import (
	"fmt"
	"io"
	"math"

	"pv-yield/internal/model"

	"github.com/sirupsen/logrus"
)

// RunContext carries everything one aggregation run needs.
type RunContext struct {
	Series    model.SeriesSet
	Nameplate float64 // W
	Period    Period
}

type Aggregator struct {
	log logrus.FieldLogger
}

// New returns an Aggregator. A nil logger discards output.
func New(log logrus.FieldLogger) *Aggregator {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Aggregator{log: log}
}

// Run aggregates the run's series into per-period and full-horizon metrics.
// Only whole-series problems (empty, irregular or misaligned input) are errors;
// degenerate periods produce NaN metrics and never stop the run.
func (a *Aggregator) Run(rc RunContext) (*Result, error) {
	period := rc.Period
	if period == nil {
		period = Month
	}
	set := rc.Series
	if set.Bifacial.Name == "" {
		set.Bifacial.Name = "bifacial"
	}
	if err := validateSeries(set.Bifacial); err != nil {
		return nil, err
	}

	monoS := named(set.Monofacial, "monofacial")
	frontS := named(set.EffectiveIrradiance, "effective_irradiance")
	rearS := named(set.RearIrradiance, "rear_irradiance")
	for _, o := range []*model.TimeSeries{monoS, frontS, rearS} {
		if o == nil {
			continue
		}
		if err := checkAligned(set.Bifacial, *o); err != nil {
			return nil, err
		}
	}

	bif, err := AggregatePeriod(set.Bifacial, period)
	if err != nil {
		return nil, err
	}
	mono, err := aggregateOptional(monoS, set.Bifacial, period, len(bif))
	if err != nil {
		return nil, err
	}
	front, err := aggregateOptional(frontS, set.Bifacial, period, len(bif))
	if err != nil {
		return nil, err
	}
	rear, err := aggregateOptional(rearS, set.Bifacial, period, len(bif))
	if err != nil {
		return nil, err
	}

	periods := make([]PeriodAggregate, len(bif))
	for i, pe := range bif {
		agg := PeriodAggregate{
			Start:               pe.Start,
			Label:               pe.Label,
			Samples:             pe.Samples,
			EnergyWh:            pe.Energy,
			MonofacialEnergyWh:  mono[i],
			FrontInsolationWhm2: front[i],
			RearInsolationWhm2:  rear[i],
		}
		agg.derive(rc.Nameplate)
		periods[i] = agg
		a.logUndefined(agg)
	}

	res := &Result{
		Periods:    periods,
		Total:      TotalForHorizon(periods, rc.Nameplate),
		NameplateW: rc.Nameplate,
		Period:     period.Name(),
		Interval:   set.Bifacial.SampleInterval(),
		Start:      set.Bifacial.Start(),
		End:        set.Bifacial.End(),
	}
	a.log.WithFields(logrus.Fields{
		"periods":     len(periods),
		"period":      res.Period,
		"samples":     set.Bifacial.Len(),
		"energy_wh":   res.Total.EnergyWh,
		"nameplate_w": rc.Nameplate,
	}).Debug("aggregation complete")
	return res, nil
}

// named returns a copy of s carrying a default name, leaving the caller's series untouched.
func named(s *model.TimeSeries, name string) *model.TimeSeries {
	if s == nil {
		return nil
	}
	cp := *s
	if cp.Name == "" {
		cp.Name = name
	}
	return &cp
}

// aggregateOptional returns per-period energies for s, or NaN for every
// period when s is missing.
func aggregateOptional(s *model.TimeSeries, ref model.TimeSeries, p Period, n int) ([]float64, error) {
	out := make([]float64, n)
	if s == nil {
		for i := range out {
			out[i] = math.NaN()
		}
		return out, nil
	}
	cp := *s
	if cp.Interval == 0 {
		cp.Interval = ref.SampleInterval()
	}
	pes, err := AggregatePeriod(cp, p)
	if err != nil {
		return nil, err
	}
	if len(pes) != n {
		return nil, fmt.Errorf("%s: %d periods, expected %d: %w", seriesName(cp), len(pes), n, ErrMisaligned)
	}
	for i, pe := range pes {
		out[i] = pe.Energy
	}
	return out, nil
}

func (a *Aggregator) logUndefined(agg PeriodAggregate) {
	fields := logrus.Fields{}
	if math.IsNaN(agg.SpecificYield) {
		fields["yield"] = "undefined"
	}
	if math.IsNaN(agg.BifacialGainPct) {
		fields["bifacial_gain"] = "undefined"
	}
	if math.IsNaN(agg.PerformanceRatio) {
		fields["performance_ratio"] = "undefined"
	}
	if len(fields) == 0 {
		return
	}
	fields["period"] = agg.Label
	a.log.WithFields(fields).Debug("period has undefined metrics")
}
