package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"pv-yield/internal/config"
	"pv-yield/internal/data"
	"pv-yield/internal/logging"
	"pv-yield/internal/model"
	"pv-yield/internal/yield"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// runOptions are the inputs shared by every command that aggregates a run.
type runOptions struct {
	series    string
	config    string
	interval  time.Duration
	nameplate float64
	period    string
	unit      string
	prMethod  string
}

func addRunFlags(cmd *cobra.Command, o *runOptions) {
	cmd.Flags().StringVar(&o.series, "series", "", "Series file (.csv or .json)")
	cmd.Flags().StringVar(&o.config, "config", "", "YAML run config")
	cmd.Flags().DurationVar(&o.interval, "interval", 0, "Sample interval; for JSON input only used when the file has no interval_minutes (default: derived from timestamps)")
	cmd.Flags().Float64Var(&o.nameplate, "nameplate", 0, "Nameplate capacity in W (overrides config)")
	cmd.Flags().StringVar(&o.period, "period", "", "Aggregation period: month, day, year or a duration (overrides config)")
	cmd.Flags().StringVar(&o.unit, "unit", "", "Energy unit: Wh, kWh, MWh (overrides config)")
	cmd.Flags().StringVar(&o.prMethod, "pr-method", "", "Primary PR: plain or rear_corrected (overrides config)")
	_ = cmd.MarkFlagRequired("series")
}

// resolveConfig loads the config file if any and applies flag overrides.
func (o *runOptions) resolveConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if o.config != "" {
		c, err := config.LoadUnchecked(o.config)
		if err != nil {
			return nil, err
		}
		cfg = c
	}
	if o.nameplate > 0 {
		cfg.Array.NameplateW = o.nameplate
	}
	if o.period != "" {
		cfg.Aggregation.Period = o.period
	}
	if o.unit != "" {
		cfg.Aggregation.EnergyUnit = o.unit
	}
	if o.prMethod != "" {
		cfg.Aggregation.PRMethod = o.prMethod
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadSeries(path string, interval time.Duration) (*model.SeriesSet, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return data.LoadSeriesJSON(path, interval)
	}
	return data.LoadSeriesCSVFile(path, interval)
}

// execute resolves the config, loads the series and runs the aggregation.
func (o *runOptions) execute(log *logrus.Logger) (*config.Config, *yield.Result, error) {
	if o.series == "" {
		return nil, nil, errors.New("--series is required")
	}
	cfg, err := o.resolveConfig()
	if err != nil {
		return nil, nil, err
	}
	set, err := loadSeries(o.series, o.interval)
	if err != nil {
		return nil, nil, fmt.Errorf("load series: %w", err)
	}
	period, err := cfg.Aggregation.ParsePeriod()
	if err != nil {
		return nil, nil, err
	}

	log.WithFields(logrus.Fields{
		"series":  o.series,
		"samples": set.Bifacial.Len(),
		"period":  period.Name(),
	}).Info("aggregating")

	agg := yield.New(logging.Component(log, "aggregator"))
	res, err := agg.Run(yield.RunContext{
		Series:    *set,
		Nameplate: cfg.Array.ToModelParams().Nameplate(),
		Period:    period,
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, res, nil
}
