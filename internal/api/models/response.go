package models

import (
	"time"

	"pv-yield/internal/model"
)

// RunResponse represents the response from an aggregation run
type RunResponse struct {
	ID        string      `json:"id,omitempty"`
	Status    string      `json:"status"`
	ExpiresAt time.Time   `json:"expires_at,omitempty"`
	Summary   RunSummary  `json:"summary"`
	Periods   []PeriodRow `json:"periods"`
}

// RunSummary contains the run parameters and full-horizon totals
type RunSummary struct {
	Array      string     `json:"array,omitempty"`
	NameplateW float64    `json:"nameplate_w"`
	Period     string     `json:"period"`
	Interval   string     `json:"interval"`
	EnergyUnit string     `json:"energy_unit"`
	PRMethod   string     `json:"pr_method"`
	Window     TimeWindow `json:"window"`
	Total      PeriodRow  `json:"total"`
}

// TimeWindow represents a time range
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// PeriodRow is one aggregated period; undefined metrics encode as null
type PeriodRow struct {
	Label                         string       `json:"label"`
	Start                         *time.Time   `json:"start,omitempty"`
	Samples                       int          `json:"samples"`
	Energy                        model.Metric `json:"energy"`
	MonofacialEnergy              model.Metric `json:"monofacial_energy"`
	FrontInsolationKWhm2          model.Metric `json:"front_insolation_kwh_m2"`
	RearInsolationKWhm2           model.Metric `json:"rear_insolation_kwh_m2"`
	SpecificYield                 model.Metric `json:"yield_kwh_kwp"`
	BifacialGainPct               model.Metric `json:"bifacial_gain_pct"`
	PerformanceRatio              model.Metric `json:"performance_ratio"`
	PerformanceRatioRearCorrected model.Metric `json:"performance_ratio_rear_corrected"`
}

// ArrayInfo represents information about an array preset
type ArrayInfo struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	File  string     `json:"file"`
	Specs ArraySpecs `json:"specs"`
}

// ArraySpecs contains the preset's sizing
type ArraySpecs struct {
	ModuleSTCW       float64 `json:"module_stc_w"`
	ModulesPerString int     `json:"modules_per_string"`
	Strings          int     `json:"strings"`
	Bifaciality      float64 `json:"bifaciality"`
	NameplateW       float64 `json:"nameplate_w"`
}

// MethodsResponse lists the supported aggregation options
type MethodsResponse struct {
	Periods     []OptionInfo `json:"periods"`
	PRMethods   []OptionInfo `json:"pr_methods"`
	EnergyUnits []OptionInfo `json:"energy_units"`
}

// OptionInfo describes one accepted value
type OptionInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Default     bool   `json:"default,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
