package metrics

import (
	"math"
	"strconv"
	"time"

	"pv-yield/internal/yield"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder exposes aggregation counters and timings to prometheus.
type Recorder struct {
	runs      *prometheus.CounterVec
	duration  prometheus.Histogram
	periods   prometheus.Counter
	undefined *prometheus.CounterVec
	requests  *prometheus.CounterVec
}

// NewRecorder registers the collectors on reg. A nil reg uses the default registerer.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &Recorder{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pvyield_runs_total",
			Help: "Aggregation runs by outcome.",
		}, []string{"status"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pvyield_run_duration_seconds",
			Help:    "Time spent aggregating one run.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
		periods: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pvyield_periods_total",
			Help: "Periods aggregated across all runs.",
		}),
		undefined: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pvyield_undefined_metrics_total",
			Help: "Period metrics left undefined by degenerate denominators or missing series.",
		}, []string{"metric"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pvyield_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"method", "route", "code"}),
	}
	reg.MustRegister(r.runs, r.duration, r.periods, r.undefined, r.requests)
	return r
}

// ObserveRun records the outcome of one aggregation.
func (r *Recorder) ObserveRun(res *yield.Result, elapsed time.Duration, err error) {
	if r == nil {
		return
	}
	if err != nil {
		r.runs.WithLabelValues("error").Inc()
		return
	}
	r.runs.WithLabelValues("ok").Inc()
	r.duration.Observe(elapsed.Seconds())
	if res == nil {
		return
	}
	r.periods.Add(float64(len(res.Periods)))
	for _, p := range res.Periods {
		r.countUndefined("yield", p.SpecificYield)
		r.countUndefined("bifacial_gain", p.BifacialGainPct)
		r.countUndefined("performance_ratio", p.PerformanceRatio)
		r.countUndefined("performance_ratio_rear_corrected", p.PerformanceRatioRearCorrected)
	}
}

func (r *Recorder) countUndefined(metric string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		r.undefined.WithLabelValues(metric).Inc()
	}
}

// ObserveRequest counts one served HTTP request. route is the matched
// pattern, not the raw path, to keep label cardinality bounded.
func (r *Recorder) ObserveRequest(method, route string, status int) {
	if r == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	r.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
