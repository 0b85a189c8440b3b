package chart

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pv-yield/internal/model"
	"pv-yield/internal/yield"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *yield.Result {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	return &yield.Result{
		Periods: []yield.PeriodAggregate{
			{Start: start, Label: "2023-01", EnergyWh: 2e6, SpecificYield: 200, BifacialGainPct: math.NaN(), PerformanceRatio: 0.8, PerformanceRatioRearCorrected: 0.7},
			{Start: start.AddDate(0, 1, 0), Label: "2023-02", EnergyWh: 3e6, SpecificYield: 300, BifacialGainPct: 9, PerformanceRatio: 0.82, PerformanceRatioRearCorrected: 0.72},
		},
		Total: yield.PeriodAggregate{Label: "total", EnergyWh: 5e6, SpecificYield: 500, BifacialGainPct: 9, PerformanceRatio: 0.81, PerformanceRatioRearCorrected: 0.71},
	}
}

func TestBuild(t *testing.T) {
	res := sampleResult()

	b := Build(res, KindEnergy, Options{EnergyUnit: model.UnitMWh})
	assert.Equal(t, []string{"2023-01", "2023-02"}, b.Labels)
	assert.Equal(t, []float64{2, 3}, b.Values)
	assert.Equal(t, 5.0, b.Total)
	assert.Equal(t, "[MWh]", b.YLabel)

	b = Build(res, KindPR, Options{PRMethod: yield.PRRearCorrected})
	assert.Equal(t, []float64{0.7, 0.72}, b.Values)
	assert.Equal(t, "Bifacial performance ratio", b.Title)

	b = Build(res, KindPR, Options{PRMethod: yield.PRPlain})
	assert.Equal(t, 0.81, b.Total)

	b = Build(res, KindGain, Options{})
	assert.True(t, math.IsNaN(b.Values[0]))
	assert.Equal(t, "%", b.Unit)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("performance_ratio")
	require.NoError(t, err)
	assert.Equal(t, KindPR, k)

	k, err = ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, KindEnergy, k)

	_, err = ParseKind("pie")
	assert.Error(t, err)
}

func TestRender_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gain.svg")
	require.NoError(t, Render(sampleResult(), KindGain, Options{}, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRender_Empty(t *testing.T) {
	err := Render(&yield.Result{}, KindEnergy, Options{}, filepath.Join(t.TempDir(), "x.png"))
	assert.Error(t, err)
}
