package main

import (
	"fmt"
	"io"
	"math"

	"pv-yield/internal/model"
	"pv-yield/internal/yield"

	"github.com/spf13/cobra"
)

func newAggregateCmd(g *globalOptions) *cobra.Command {
	o := &runOptions{}
	var out string

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Aggregate a series into per-period metrics",
		Example: `  pvyield aggregate --series results/run.csv --config examples/config.yaml --out results/summary.csv
  pvyield aggregate --series run.json --nameplate 11200 --period day --unit kWh`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, res, err := o.execute(g.logger())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printTable(w, res, cfg.Aggregation.Unit(), cfg.Aggregation.Method())

			if out != "" {
				if err := yield.WriteResultCSVFile(out, res, yield.ExportOptions{
					EnergyUnit: cfg.Aggregation.Unit(),
					Metadata:   cfg.Metadata(),
				}); err != nil {
					return err
				}
				fmt.Fprintf(w, "Wrote %d periods to %s\n", len(res.Periods), out)
			}
			return nil
		},
	}
	addRunFlags(cmd, o)
	cmd.Flags().StringVar(&out, "out", "", "Optional CSV export path")
	return cmd
}

func printTable(w io.Writer, res *yield.Result, unit model.EnergyUnit, pr yield.PRMethod) {
	fmt.Fprintf(w, "%-20s %14s %14s %10s %10s\n",
		"period", "energy["+string(unit)+"]", "yield[kWh/kWp]", "gain[%]", "PR[pu]")
	row := func(a yield.PeriodAggregate) {
		fmt.Fprintf(w, "%-20s %14s %14s %10s %10s\n",
			a.Label,
			cell(unit.FromWh(a.EnergyWh), 3),
			cell(a.SpecificYield, 2),
			cell(a.BifacialGainPct, 2),
			cell(a.PR(pr), 3),
		)
	}
	for _, p := range res.Periods {
		row(p)
	}
	row(res.Total)
	fmt.Fprintf(w, "nameplate=%.0fW interval=%s pr=%s\n", res.NameplateW, res.Interval, pr)
}

func cell(v float64, prec int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	return fmt.Sprintf("%.*f", prec, v)
}
