package metrics

import (
	"errors"
	"math"
	"testing"
	"time"

	"pv-yield/internal/yield"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder_ObserveRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	res := &yield.Result{Periods: []yield.PeriodAggregate{
		{SpecificYield: 1, BifacialGainPct: math.NaN(), PerformanceRatio: math.NaN(), PerformanceRatioRearCorrected: math.NaN()},
		{SpecificYield: 2, BifacialGainPct: 8, PerformanceRatio: 0.8, PerformanceRatioRearCorrected: 0.7},
	}}
	r.ObserveRun(res, 3*time.Millisecond, nil)
	r.ObserveRun(nil, 0, errors.New("misaligned"))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.periods))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.undefined.WithLabelValues("bifacial_gain")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.undefined.WithLabelValues("yield")))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() { r.ObserveRun(&yield.Result{}, time.Second, nil) })
}

func TestRecorder_ObserveRequest(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())
	r.ObserveRequest("GET", "/api/v1/runs/:id", 404)
	r.ObserveRequest("GET", "/api/v1/runs/:id", 404)
	r.ObserveRequest("GET", "", 404)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.requests.WithLabelValues("GET", "/api/v1/runs/:id", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.requests.WithLabelValues("GET", "unmatched", "404")))
}
