package yield

import (
	"math"
	"testing"
	"time"

	"pv-yield/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(name string, start time.Time, step time.Duration, vals ...float64) model.TimeSeries {
	s := model.TimeSeries{Name: name}
	for i, v := range vals {
		s.Samples = append(s.Samples, model.Sample{
			Timestamp: start.Add(time.Duration(i) * step),
			Value:     v,
		})
	}
	return s
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

var jan1 = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

func TestClipNonNegative_Idempotent(t *testing.T) {
	s := series("p", jan1, time.Hour, -50, 200, -0.1, 0, 3)
	once := ClipNonNegative(s)
	twice := ClipNonNegative(once)

	assert.Equal(t, once, twice)
	for _, v := range once.Values() {
		assert.GreaterOrEqual(t, v, 0.0)
	}
	// input is left untouched
	assert.Equal(t, -50.0, s.Samples[0].Value)
}

func TestAggregatePeriod_OneDayHourly(t *testing.T) {
	s := series("p", jan1, time.Hour, repeat(100, 24)...)

	got, err := AggregatePeriod(s, Day)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 2400.0, got[0].Energy, 1e-9)
	assert.Equal(t, 24, got[0].Samples)
	assert.Equal(t, "2023-01-01", got[0].Label)

	yields := SpecificYield([]float64{got[0].Energy}, 1000)
	assert.InDelta(t, 2.4, yields[0], 1e-12)
}

func TestAggregatePeriod_ClipsNegativePower(t *testing.T) {
	s := series("p", jan1, time.Hour, -50, 200)

	got, err := AggregatePeriod(s, Day)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 200.0, got[0].Energy, 1e-9)
}

func TestAggregatePeriod_SubHourly(t *testing.T) {
	s := series("p", jan1, 15*time.Minute, 1000, 1000, 1000, 1000)

	got, err := AggregatePeriod(s, Month)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 1000.0, got[0].Energy, 1e-9)
}

func TestAggregatePeriod_FixedPeriod(t *testing.T) {
	s := series("p", jan1, time.Hour, repeat(10, 24)...)

	got, err := AggregatePeriod(s, FixedPeriod(6*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 4)
	for _, pe := range got {
		assert.Equal(t, 6, pe.Samples)
		assert.InDelta(t, 60.0, pe.Energy, 1e-9)
	}
	assert.True(t, jan1.Add(18*time.Hour).Equal(got[3].Start))
}

func TestAggregatePeriod_FixedPeriodStartsAtFirstSample(t *testing.T) {
	// 2023-01-01 is a Sunday, so zero-time alignment would start on Monday 2022-12-26.
	s := series("p", jan1, time.Hour, repeat(1, 14*24)...)

	got, err := AggregatePeriod(s, FixedPeriod(168*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, jan1.Equal(got[0].Start))
	assert.Equal(t, "2023-01-01T00:00:00Z", got[0].Label)
	assert.True(t, jan1.Add(168*time.Hour).Equal(got[1].Start))
	for _, pe := range got {
		assert.Equal(t, 168, pe.Samples)
		assert.InDelta(t, 168.0, pe.Energy, 1e-9)
	}

	offset := series("p", jan1.Add(90*time.Minute), 30*time.Minute, repeat(2, 10)...)
	got, err = AggregatePeriod(offset, FixedPeriod(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, jan1.Add(90*time.Minute).Equal(got[0].Start))
	assert.Equal(t, []int{4, 4, 2}, []int{got[0].Samples, got[1].Samples, got[2].Samples})
}

func TestAnchoredPeriod_StartBeforeOrigin(t *testing.T) {
	p := FixedPeriod(time.Hour).AnchoredAt(jan1.Add(30 * time.Minute))
	assert.True(t, jan1.Add(-30*time.Minute).Equal(p.Start(jan1)))
	assert.True(t, jan1.Add(30*time.Minute).Equal(p.Start(jan1.Add(89*time.Minute))))
	assert.Equal(t, "1h0m0s", p.Name())
}

func TestAggregatePeriod_Errors(t *testing.T) {
	_, err := AggregatePeriod(model.TimeSeries{Name: "empty"}, Month)
	assert.ErrorIs(t, err, ErrEmptySeries)

	s := series("p", jan1, time.Hour, 1, 2, 3)
	s.Samples[2].Timestamp = s.Samples[2].Timestamp.Add(time.Minute)
	_, err = AggregatePeriod(s, Month)
	assert.ErrorIs(t, err, ErrIrregular)

	back := series("p", jan1, time.Hour, 1, 2)
	back.Samples[1].Timestamp = jan1.Add(-time.Hour)
	_, err = AggregatePeriod(back, Month)
	assert.ErrorIs(t, err, ErrIrregular)

	_, err = AggregatePeriod(s, nil)
	assert.Error(t, err)
}

func TestSpecificYield_LinearInNameplate(t *testing.T) {
	energy := []float64{2400, 1200, 0}
	full := SpecificYield(energy, 1000)
	half := SpecificYield(energy, 500)
	for i := range energy {
		assert.InDelta(t, 2*full[i], half[i], 1e-12)
	}
}

func TestSpecificYield_NonPositiveNameplate(t *testing.T) {
	for _, np := range []float64{0, -1} {
		for _, v := range SpecificYield([]float64{100, 200}, np) {
			assert.True(t, math.IsNaN(v))
		}
	}
}

func TestBifacialGain(t *testing.T) {
	got, err := BifacialGain([]float64{1200, 0, 500}, []float64{1000, 0, 500})
	require.NoError(t, err)
	assert.InDelta(t, 16.6667, got[0], 1e-4)
	assert.True(t, math.IsNaN(got[1]), "zero bifacial energy must be undefined")
	assert.Equal(t, 0.0, got[2])

	_, err = BifacialGain([]float64{1}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestPerformanceRatio(t *testing.T) {
	pr, err := PerformanceRatio([]float64{2400, 100, 100}, []float64{3000, 0, 3000}, 1000)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, pr[0], 1e-12)
	assert.True(t, math.IsNaN(pr[1]), "zero insolation must be undefined")
	assert.InDelta(t, (100.0/1000)/3, pr[2], 1e-12)

	pr, err = PerformanceRatio([]float64{2400}, []float64{3000}, 0)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(pr[0]))

	_, err = PerformanceRatio([]float64{1, 2}, []float64{1}, 1000)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestPerformanceRatio_UnitRescalingInvariant(t *testing.T) {
	wh, err := PerformanceRatio([]float64{2400, 1800}, []float64{3000, 2500}, 1000)
	require.NoError(t, err)
	// same run expressed in kWh and kW
	kwh, err := PerformanceRatio([]float64{2.4, 1.8}, []float64{3000, 2500}, 1)
	require.NoError(t, err)
	for i := range wh {
		assert.InDelta(t, wh[i], kwh[i], 1e-12)
	}
}

func TestPerformanceRatioRearCorrected(t *testing.T) {
	pr, err := PerformanceRatioRearCorrected([]float64{2400, 2400}, []float64{3000, 0}, []float64{600, 600}, 1000)
	require.NoError(t, err)
	assert.InDelta(t, 0.8/1.2, pr[0], 1e-12)
	assert.True(t, math.IsNaN(pr[1]))

	plain, err := PerformanceRatio([]float64{2400}, []float64{3000}, 1000)
	require.NoError(t, err)
	noRear, err := PerformanceRatioRearCorrected([]float64{2400}, []float64{3000}, []float64{0}, 1000)
	require.NoError(t, err)
	assert.InDelta(t, plain[0], noRear[0], 1e-12)

	_, err = PerformanceRatioRearCorrected([]float64{1}, []float64{1}, nil, 1000)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestTotalForHorizon_RatioOfSums(t *testing.T) {
	periods := []PeriodAggregate{
		{Label: "a", Samples: 1, EnergyWh: 1000, MonofacialEnergyWh: 900, FrontInsolationWhm2: 1000, RearInsolationWhm2: 100},
		{Label: "b", Samples: 1, EnergyWh: 100, MonofacialEnergyWh: 50, FrontInsolationWhm2: 500, RearInsolationWhm2: 0},
	}
	for i := range periods {
		periods[i].derive(1000)
	}

	total := TotalForHorizon(periods, 1000)
	assert.Equal(t, "total", total.Label)
	assert.Equal(t, 2, total.Samples)
	assert.InDelta(t, 1100.0, total.EnergyWh, 1e-9)
	assert.InDelta(t, 1.1, total.SpecificYield, 1e-12)
	assert.InDelta(t, 100*(1100.0-950)/1100, total.BifacialGainPct, 1e-9)
	assert.InDelta(t, 1.1/1.5, total.PerformanceRatio, 1e-12)
	assert.InDelta(t, (1.1/1.5)/(1+100.0/1500), total.PerformanceRatioRearCorrected, 1e-12)

	// averaging the period gains would give a different answer
	avg := (periods[0].BifacialGainPct + periods[1].BifacialGainPct) / 2
	assert.NotEqual(t, avg, total.BifacialGainPct)
}

func TestParsePeriod(t *testing.T) {
	cases := map[string]Period{
		"":        Month,
		"monthly": Month,
		"M":       Month,
		"day":     Day,
		"year":    Year,
		"168h":    FixedPeriod(168 * time.Hour),
	}
	for in, want := range cases {
		got, err := ParsePeriod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParsePeriod("fortnight")
	assert.Error(t, err)
	_, err = ParsePeriod("-1h")
	assert.Error(t, err)
}

func TestCalendarPeriod_UsesSeriesLocation(t *testing.T) {
	madrid := time.FixedZone("CET", 3600)
	ts := time.Date(2023, time.February, 1, 0, 30, 0, 0, madrid)
	start := Month.Start(ts)
	assert.Equal(t, "2023-02", Month.Label(start))
	assert.Equal(t, "2023", Year.Label(Year.Start(ts)))
}

func TestParsePRMethod(t *testing.T) {
	m, err := ParsePRMethod("")
	require.NoError(t, err)
	assert.Equal(t, PRPlain, m)

	m, err = ParsePRMethod("rear-corrected")
	require.NoError(t, err)
	assert.Equal(t, PRRearCorrected, m)

	_, err = ParsePRMethod("iec")
	assert.Error(t, err)
}
