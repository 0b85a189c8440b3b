package data

import (
	"testing"
	"time"

	"pv-yield/internal/yield"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntheticYear_RunsThroughAggregator(t *testing.T) {
	set := SyntheticYear(SyntheticParams{
		Year:        2023,
		NameplateW:  11200,
		RearRatio:   0.12,
		Bifaciality: 0.75,
		NightW:      -4,
	})
	assert.Equal(t, 8760, set.Bifacial.Len())
	assert.Equal(t, time.Hour, set.Bifacial.SampleInterval())

	res, err := yield.New(nil).Run(yield.RunContext{Series: set, Nameplate: 11200, Period: yield.Month})
	require.NoError(t, err)
	require.Len(t, res.Periods, 12)

	for _, p := range res.Periods {
		assert.Greater(t, p.EnergyWh, 0.0)
		assert.Greater(t, p.BifacialGainPct, 0.0)
		assert.Less(t, p.BifacialGainPct, 20.0)
		assert.Less(t, p.PerformanceRatioRearCorrected, p.PerformanceRatio)
	}
	// summer beats winter
	assert.Greater(t, res.Periods[5].EnergyWh, res.Periods[11].EnergyWh)
	assert.InDelta(t, 0.86, res.Total.PerformanceRatio, 1e-9)
	assert.InDelta(t, 0.86/(1+0.12/1.09), res.Total.PerformanceRatioRearCorrected, 1e-9)
}
