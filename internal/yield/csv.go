package yield

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"pv-yield/internal/model"
)

// MetaField is one run parameter written after the metrics.
type MetaField struct {
	Key   string
	Value string
	Unit  string
}

// ExportOptions controls the delimited-text export.
type ExportOptions struct {
	EnergyUnit model.EnergyUnit
	Metadata   []MetaField
}

// WriteResultCSV writes the result in long form: period,metric,value,unit.
// Every numeric value is paired with its unit. Undefined values are written as NaN.
func WriteResultCSV(out io.Writer, res *Result, opts ExportOptions) error {
	unit := opts.EnergyUnit
	if unit == "" {
		unit = model.UnitKWh
	}

	w := csv.NewWriter(out)

	if err := w.Write([]string{"period", "metric", "value", "unit"}); err != nil {
		return err
	}
	for _, p := range res.Periods {
		if err := writeAggregate(w, p.Label, p, unit); err != nil {
			return err
		}
	}
	if err := writeAggregate(w, "total", res.Total, unit); err != nil {
		return err
	}

	meta := []MetaField{
		{Key: "nameplate", Value: fmtFloat(res.NameplateW), Unit: "W"},
		{Key: "period", Value: res.Period},
		{Key: "interval", Value: fmtFloat(res.Interval.Minutes()), Unit: "min"},
		{Key: "start", Value: fmtTime(res.Start)},
		{Key: "end", Value: fmtTime(res.End)},
	}
	meta = append(meta, opts.Metadata...)
	for _, m := range meta {
		if err := w.Write([]string{"meta", m.Key, m.Value, m.Unit}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// WriteResultCSVFile writes the export to path, creating parent directories.
func WriteResultCSVFile(path string, res *Result, opts ExportOptions) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteResultCSV(f, res, opts); err != nil {
		return err
	}
	return f.Close()
}

func writeAggregate(w *csv.Writer, label string, a PeriodAggregate, unit model.EnergyUnit) error {
	rows := [][]string{
		{label, "energy", fmtFloat(unit.FromWh(a.EnergyWh)), string(unit)},
		{label, "monofacial_energy", fmtFloat(unit.FromWh(a.MonofacialEnergyWh)), string(unit)},
		{label, "yield", fmtFloat(a.SpecificYield), "kWh/kWp"},
		{label, "bifacial_gain", fmtFloat(a.BifacialGainPct), "%"},
		{label, "performance_ratio", fmtFloat(a.PerformanceRatio), "pu"},
		{label, "performance_ratio_rear_corrected", fmtFloat(a.PerformanceRatioRearCorrected), "pu"},
		{label, "front_insolation", fmtFloat(a.FrontInsolationWhm2 / 1000), "kWh/m2"},
		{label, "rear_insolation", fmtFloat(a.RearInsolationWhm2 / 1000), "kWh/m2"},
	}
	return w.WriteAll(rows)
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
