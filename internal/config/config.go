package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"pv-yield/internal/model"
	"pv-yield/internal/yield"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load array parameters from a separate YAML (e.g. examples/arrays/*.yaml).
	// If both ArrayFile and Array are provided, Array overrides ArrayFile.
	ArrayFile   string            `yaml:"array_file"`
	Array       ArrayConfig       `yaml:"array"`
	Aggregation AggregationConfig `yaml:"aggregation"`
}

// ArrayConfig describes the array. Bifaciality is a pointer so an override
// can set 0 over a bifacial preset.
type ArrayConfig struct {
	Name             string   `yaml:"name"`
	ModuleSTCW       float64  `yaml:"module_stc_w"`
	ModulesPerString int      `yaml:"modules_per_string"`
	Strings          int      `yaml:"strings"`
	Bifaciality      *float64 `yaml:"bifaciality"`
	NameplateW       float64  `yaml:"nameplate_w"`
}

// BifacialityValue returns the bifaciality factor, 0 when unset.
func (a ArrayConfig) BifacialityValue() float64 {
	if a.Bifaciality == nil {
		return 0
	}
	return *a.Bifaciality
}

type AggregationConfig struct {
	Period     string `yaml:"period"`      // month | day | year | Go duration
	EnergyUnit string `yaml:"energy_unit"` // Wh | kWh | MWh
	PRMethod   string `yaml:"pr_method"`   // plain | rear_corrected
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.ArrayFile != "" {
		arrayPath := c.ArrayFile
		if !filepath.IsAbs(arrayPath) {
			// Prefer paths relative to the config file, fall back to cwd.
			cand := filepath.Join(filepath.Dir(path), arrayPath)
			if _, err := os.Stat(cand); err == nil {
				arrayPath = cand
			}
		}
		loaded, err := LoadArrayFile(arrayPath)
		if err != nil {
			return nil, err
		}
		c.Array = MergeArray(loaded, c.Array)
	}
	return &c, nil
}

// ApplyDefaults fills in monthly periods, kWh and the rear-corrected PR.
func (c *Config) ApplyDefaults() {
	if c.Aggregation.Period == "" {
		c.Aggregation.Period = "month"
	}
	if c.Aggregation.EnergyUnit == "" {
		c.Aggregation.EnergyUnit = string(model.UnitKWh)
	}
	if c.Aggregation.PRMethod == "" {
		c.Aggregation.PRMethod = string(yield.PRRearCorrected)
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := c.Array.ToModelParams().Validate(); err != nil {
		return fmt.Errorf("array config invalid: %w", err)
	}
	if _, err := c.Aggregation.ParsePeriod(); err != nil {
		return fmt.Errorf("aggregation config invalid: %w", err)
	}
	if _, err := model.ParseEnergyUnit(c.Aggregation.EnergyUnit); err != nil {
		return fmt.Errorf("aggregation config invalid: %w", err)
	}
	if _, err := yield.ParsePRMethod(c.Aggregation.PRMethod); err != nil {
		return fmt.Errorf("aggregation config invalid: %w", err)
	}
	return nil
}

func (a ArrayConfig) ToModelParams() model.ArrayParams {
	return model.ArrayParams{
		Name:             a.Name,
		ModuleSTCW:       a.ModuleSTCW,
		ModulesPerString: a.ModulesPerString,
		Strings:          a.Strings,
		Bifaciality:      a.BifacialityValue(),
		NameplateW:       a.NameplateW,
	}
}

func (a AggregationConfig) ParsePeriod() (yield.Period, error) {
	return yield.ParsePeriod(a.Period)
}

func (a AggregationConfig) Unit() model.EnergyUnit {
	u, err := model.ParseEnergyUnit(a.EnergyUnit)
	if err != nil {
		return model.UnitKWh
	}
	return u
}

func (a AggregationConfig) Method() yield.PRMethod {
	m, err := yield.ParsePRMethod(a.PRMethod)
	if err != nil {
		return yield.PRPlain
	}
	return m
}

// Metadata lists the run parameters that accompany an export.
func (c *Config) Metadata() []yield.MetaField {
	return []yield.MetaField{
		{Key: "array", Value: c.Array.Name},
		{Key: "module_stc", Value: fmtNum(c.Array.ModuleSTCW), Unit: "W"},
		{Key: "modules_per_string", Value: fmt.Sprint(c.Array.ModulesPerString)},
		{Key: "strings", Value: fmt.Sprint(c.Array.Strings)},
		{Key: "bifaciality", Value: fmtNum(c.Array.BifacialityValue()), Unit: "pu"},
		{Key: "pr_method", Value: c.Aggregation.PRMethod},
	}
}

type arrayFileWrapper struct {
	Array ArrayConfig `yaml:"array"`
}

// LoadArrayFile reads an array preset file ({array: {...}}).
func LoadArrayFile(path string) (ArrayConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ArrayConfig{}, err
	}
	var w arrayFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return ArrayConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return w.Array, nil
}

// MergeArray overlays non-zero fields from override onto base.
// This is used when loading an array file and then applying overrides from the request.
// Bifaciality is overlaid whenever it is set, including an explicit 0.
func MergeArray(base, override ArrayConfig) ArrayConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.ModuleSTCW != 0 {
		out.ModuleSTCW = override.ModuleSTCW
	}
	if override.ModulesPerString != 0 {
		out.ModulesPerString = override.ModulesPerString
	}
	if override.Strings != 0 {
		out.Strings = override.Strings
	}
	if override.Bifaciality != nil {
		out.Bifaciality = override.Bifaciality
	}
	if override.NameplateW != 0 {
		out.NameplateW = override.NameplateW
	}
	return out
}

func fmtNum(x float64) string {
	return fmt.Sprintf("%g", x)
}
