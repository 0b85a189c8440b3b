package models

import "pv-yield/internal/data"

// RunRequest represents the request body for an aggregation run
type RunRequest struct {
	ArrayFile   string            `json:"array_file,omitempty"` // preset id from GET /api/v1/arrays
	Array       ArrayConfig       `json:"array,omitempty"`
	Aggregation AggregationConfig `json:"aggregation,omitempty"`
	Series      SeriesPayload     `json:"series"`
}

// ArrayConfig overrides (or replaces) the preset's array parameters
type ArrayConfig struct {
	Name             string   `json:"name,omitempty"`
	ModuleSTCW       float64  `json:"module_stc_w,omitempty"`
	ModulesPerString int      `json:"modules_per_string,omitempty"`
	Strings          int      `json:"strings,omitempty"`
	Bifaciality      *float64 `json:"bifaciality,omitempty"` // 0 is honoured over a preset
	NameplateW       float64  `json:"nameplate_w,omitempty"`
}

// AggregationConfig selects the period and presentation of the result
type AggregationConfig struct {
	Period     string `json:"period,omitempty"`      // month | day | year | Go duration
	EnergyUnit string `json:"energy_unit,omitempty"` // Wh | kWh | MWh
	PRMethod   string `json:"pr_method,omitempty"`   // plain | rear_corrected
}

// SeriesPayload carries the simulated time series inline
type SeriesPayload struct {
	IntervalMinutes int              `json:"interval_minutes,omitempty"`
	Samples         []data.SeriesRow `json:"samples" binding:"required,min=1"`
}
