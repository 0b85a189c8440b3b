package chart

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"pv-yield/internal/model"
	"pv-yield/internal/yield"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Kind selects which metric is plotted per period.
type Kind string

const (
	KindEnergy Kind = "energy"
	KindYield  Kind = "yield"
	KindGain   Kind = "gain"
	KindPR     Kind = "pr"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "", KindEnergy:
		return KindEnergy, nil
	case KindYield:
		return KindYield, nil
	case KindGain, "bifacial_gain":
		return KindGain, nil
	case KindPR, "performance_ratio":
		return KindPR, nil
	default:
		return "", fmt.Errorf("unsupported chart kind %q", s)
	}
}

type Options struct {
	EnergyUnit model.EnergyUnit
	PRMethod   yield.PRMethod
}

// Bars is the data behind one chart.
type Bars struct {
	Title  string
	YLabel string
	Unit   string
	Labels []string
	Values []float64 // NaN where the period metric is undefined
	Total  float64
}

// Build extracts the per-period values and the full-horizon total for kind.
func Build(res *yield.Result, kind Kind, opts Options) Bars {
	unit := opts.EnergyUnit
	if unit == "" {
		unit = model.UnitKWh
	}

	var b Bars
	var pick func(a yield.PeriodAggregate) float64
	switch kind {
	case KindYield:
		b.Title, b.Unit = "Yield ratio", "kWh/kWp"
		pick = func(a yield.PeriodAggregate) float64 { return a.SpecificYield }
	case KindGain:
		b.Title, b.Unit = "Bifacial gains", "%"
		pick = func(a yield.PeriodAggregate) float64 { return a.BifacialGainPct }
	case KindPR:
		b.Title, b.Unit = "Performance ratio", "pu"
		if opts.PRMethod == yield.PRRearCorrected {
			b.Title = "Bifacial performance ratio"
		}
		pick = func(a yield.PeriodAggregate) float64 { return a.PR(opts.PRMethod) }
	default:
		b.Title, b.Unit = "Energy generated", string(unit)
		pick = func(a yield.PeriodAggregate) float64 { return unit.FromWh(a.EnergyWh) }
	}
	b.YLabel = "[" + b.Unit + "]"

	for _, p := range res.Periods {
		b.Labels = append(b.Labels, p.Label)
		b.Values = append(b.Values, pick(p))
	}
	b.Total = pick(res.Total)
	return b
}

// Render draws a bar chart of kind to path. The image format follows the
// file extension (png, svg, pdf, ...). Undefined periods are drawn as empty bars.
func Render(res *yield.Result, kind Kind, opts Options, path string) error {
	b := Build(res, kind, opts)
	if len(b.Values) == 0 {
		return fmt.Errorf("nothing to plot")
	}

	vals := make(plotter.Values, len(b.Values))
	for i, v := range b.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		vals[i] = v
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (total: %s %s)", b.Title, fmtTotal(b.Total), b.Unit)
	p.Y.Label.Text = b.YLabel

	bars, err := plotter.NewBarChart(vals, vg.Points(20))
	if err != nil {
		return fmt.Errorf("build bars: %w", err)
	}
	bars.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(b.Labels...)

	width := vg.Length(math.Max(6, float64(len(vals))*0.6)) * vg.Inch
	if err := p.Save(width, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}

func fmtTotal(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}
