package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pv-yield/internal/api/models"
	"pv-yield/internal/config"
	"pv-yield/internal/data"
	"pv-yield/internal/metrics"
	"pv-yield/internal/model"
	"pv-yield/internal/yield"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RunHandler handles aggregation runs
type RunHandler struct {
	store    *data.RunStore
	agg      *yield.Aggregator
	recorder *metrics.Recorder
	arrayDir string
	log      logrus.FieldLogger
}

// NewRunHandler creates a new run handler. recorder may be nil.
func NewRunHandler(store *data.RunStore, recorder *metrics.Recorder, arrayDir string, log logrus.FieldLogger) *RunHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RunHandler{
		store:    store,
		agg:      yield.New(log.WithField("component", "aggregator")),
		recorder: recorder,
		arrayDir: arrayDir,
		log:      log,
	}
}

// CreateRun handles POST /api/v1/runs
func (h *RunHandler) CreateRun(c *gin.Context) {
	var req models.RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	cfg, err := h.buildConfig(req)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_CONFIG", err)
		return
	}

	interval := time.Duration(req.Series.IntervalMinutes) * time.Minute
	set, err := data.BuildSeriesSet(req.Series.Samples, interval)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_SERIES", err)
		return
	}

	period, _ := cfg.Aggregation.ParsePeriod() // validated by buildConfig
	nameplate := cfg.Array.ToModelParams().Nameplate()

	began := time.Now()
	res, err := h.agg.Run(yield.RunContext{Series: *set, Nameplate: nameplate, Period: period})
	h.recorder.ObserveRun(res, time.Since(began), err)
	if err != nil {
		if isSeriesError(err) {
			abortWithError(c, http.StatusBadRequest, "INVALID_SERIES", err)
			return
		}
		h.log.WithError(err).Error("aggregation failed")
		abortWithError(c, http.StatusInternalServerError, "AGGREGATION_ERROR", err)
		return
	}

	run := h.store.Put(res, yield.ExportOptions{
		EnergyUnit: cfg.Aggregation.Unit(),
		Metadata:   cfg.Metadata(),
	})
	h.log.WithFields(logrus.Fields{
		"run_id":  run.ID,
		"periods": len(res.Periods),
		"samples": set.Bifacial.Len(),
	}).Info("run stored")

	c.JSON(http.StatusOK, buildRunResponse(run))
}

// GetRun handles GET /api/v1/runs/:id
func (h *RunHandler) GetRun(c *gin.Context) {
	run, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, buildRunResponse(run))
}

// ExportRun handles GET /api/v1/runs/:id/export
func (h *RunHandler) ExportRun(c *gin.Context) {
	run, ok := h.lookup(c)
	if !ok {
		return
	}

	opts := run.Export
	if u := c.Query("energy_unit"); u != "" {
		unit, err := model.ParseEnergyUnit(u)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
			return
		}
		opts.EnergyUnit = unit
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "run_"+run.ID+".csv"))
	c.Status(http.StatusOK)
	if err := yield.WriteResultCSV(c.Writer, run.Result, opts); err != nil {
		h.log.WithError(err).WithField("run_id", run.ID).Error("export failed")
	}
}

func (h *RunHandler) lookup(c *gin.Context) (*data.StoredRun, bool) {
	id := c.Param("id")
	run, ok := h.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "RUN_NOT_FOUND",
				Message: "Run not found or expired",
				Details: map[string]interface{}{"id": id},
			},
		})
		return nil, false
	}
	return run, true
}

// buildConfig resolves the optional array preset, overlays request values and validates.
func (h *RunHandler) buildConfig(req models.RunRequest) (*config.Config, error) {
	cfg := &config.Config{
		Array: config.ArrayConfig{
			Name:             req.Array.Name,
			ModuleSTCW:       req.Array.ModuleSTCW,
			ModulesPerString: req.Array.ModulesPerString,
			Strings:          req.Array.Strings,
			Bifaciality:      req.Array.Bifaciality,
			NameplateW:       req.Array.NameplateW,
		},
		Aggregation: config.AggregationConfig{
			Period:     req.Aggregation.Period,
			EnergyUnit: req.Aggregation.EnergyUnit,
			PRMethod:   req.Aggregation.PRMethod,
		},
	}

	if req.ArrayFile != "" {
		path, err := h.presetPath(req.ArrayFile)
		if err != nil {
			return nil, err
		}
		preset, err := config.LoadArrayFile(path)
		if err != nil {
			return nil, fmt.Errorf("load array preset %q: %w", req.ArrayFile, err)
		}
		cfg.ArrayFile = req.ArrayFile
		cfg.Array = config.MergeArray(preset, cfg.Array)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// presetPath maps a preset id (or file name) to a file inside the array directory.
func (h *RunHandler) presetPath(id string) (string, error) {
	name := filepath.Base(id)
	if name != id || name == "." || name == ".." {
		return "", fmt.Errorf("invalid array preset %q", id)
	}
	if !strings.HasSuffix(name, ".yaml") {
		name += ".yaml"
	}
	path := filepath.Join(h.arrayDir, name)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("array preset %q not found", id)
	}
	return path, nil
}

func isSeriesError(err error) bool {
	return errors.Is(err, yield.ErrEmptySeries) ||
		errors.Is(err, yield.ErrIrregular) ||
		errors.Is(err, yield.ErrMisaligned)
}

func abortWithError(c *gin.Context, status int, code string, err error) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}

func buildRunResponse(run *data.StoredRun) models.RunResponse {
	res := run.Result
	unit := run.Export.EnergyUnit
	if unit == "" {
		unit = model.UnitKWh
	}

	periods := make([]models.PeriodRow, 0, len(res.Periods))
	for _, p := range res.Periods {
		periods = append(periods, periodRow(p, unit, true))
	}

	return models.RunResponse{
		ID:        run.ID,
		Status:    "completed",
		ExpiresAt: run.ExpiresAt,
		Summary: models.RunSummary{
			Array:      metaValue(run.Export.Metadata, "array"),
			NameplateW: res.NameplateW,
			Period:     res.Period,
			Interval:   res.Interval.String(),
			EnergyUnit: string(unit),
			PRMethod:   metaValue(run.Export.Metadata, "pr_method"),
			Window:     models.TimeWindow{Start: res.Start, End: res.End},
			Total:      periodRow(res.Total, unit, false),
		},
		Periods: periods,
	}
}

func periodRow(p yield.PeriodAggregate, unit model.EnergyUnit, withStart bool) models.PeriodRow {
	row := models.PeriodRow{
		Label:                         p.Label,
		Samples:                       p.Samples,
		Energy:                        model.Metric(unit.FromWh(p.EnergyWh)),
		MonofacialEnergy:              model.Metric(unit.FromWh(p.MonofacialEnergyWh)),
		FrontInsolationKWhm2:          model.Metric(p.FrontInsolationWhm2 / 1000),
		RearInsolationKWhm2:           model.Metric(p.RearInsolationWhm2 / 1000),
		SpecificYield:                 model.Metric(p.SpecificYield),
		BifacialGainPct:               model.Metric(p.BifacialGainPct),
		PerformanceRatio:              model.Metric(p.PerformanceRatio),
		PerformanceRatioRearCorrected: model.Metric(p.PerformanceRatioRearCorrected),
	}
	if withStart {
		start := p.Start
		row.Start = &start
	}
	return row
}

func metaValue(fields []yield.MetaField, key string) string {
	for _, f := range fields {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}
