package main

import (
	"encoding/json"
	"fmt"
	"os"

	"pv-yield/internal/config"
	"pv-yield/internal/data"
	"pv-yield/internal/logging"
	"pv-yield/internal/model"
	"pv-yield/internal/yield"

	"github.com/spf13/cobra"
)

// Demo:
// - Synthesize a year of hourly bifacial/monofacial power and irradiance
// - Run it through the aggregator with the LR6-72BP 8x4 array (or --config)
// - Print monthly metrics, optionally export them
func main() {
	var (
		cfgPath  string
		year     int
		rearPct  float64
		outCSV   string
		asJSON   bool
		logLevel string
	)

	cmd := &cobra.Command{
		Use:          "demo",
		Short:        "Aggregate a synthetic year of bifacial PV output",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.New(logLevel, "text")

			// LR6-72BP 350 W, 8 modules per string, 4 strings.
			bifaciality := 0.75
			cfg := &config.Config{
				Array: config.ArrayConfig{
					Name:             "LR6-72BP 8x4",
					ModuleSTCW:       350,
					ModulesPerString: 8,
					Strings:          4,
					Bifaciality:      &bifaciality,
				},
			}
			if cfgPath != "" {
				c, err := config.Load(cfgPath)
				if err != nil {
					return err
				}
				cfg = c
			}
			cfg.ApplyDefaults()
			if err := cfg.Validate(); err != nil {
				return err
			}

			params := cfg.Array.ToModelParams()
			set := data.SyntheticYear(data.SyntheticParams{
				Year:        year,
				NameplateW:  params.Nameplate(),
				RearRatio:   rearPct / 100,
				Bifaciality: params.Bifaciality,
				NightW:      -0.002 * params.Nameplate(),
			})
			period, err := cfg.Aggregation.ParsePeriod()
			if err != nil {
				return err
			}

			res, err := yield.New(logging.Component(log, "aggregator")).Run(yield.RunContext{
				Series:    set,
				Nameplate: params.Nameplate(),
				Period:    period,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(toJSON(res, cfg.Aggregation.Unit()))
			}

			unit := cfg.Aggregation.Unit()
			method := cfg.Aggregation.Method()
			fmt.Fprintf(w, "%s: %.0f W, bifaciality %.2f, rear/front %.0f%%\n\n",
				cfg.Array.Name, res.NameplateW, params.Bifaciality, rearPct)
			fmt.Fprintf(w, "%-10s %12s %10s %8s %8s\n", "period", "E["+string(unit)+"]", "Y[kWh/kWp]", "gain[%]", "PR")
			rows := append(append([]yield.PeriodAggregate{}, res.Periods...), res.Total)
			for _, p := range rows {
				fmt.Fprintf(w, "%-10s %12.3f %10.1f %8.2f %8.3f\n",
					p.Label, unit.FromWh(p.EnergyWh), p.SpecificYield, p.BifacialGainPct, p.PR(method))
			}

			if outCSV != "" {
				if err := yield.WriteResultCSVFile(outCSV, res, yield.ExportOptions{
					EnergyUnit: unit,
					Metadata:   cfg.Metadata(),
				}); err != nil {
					return err
				}
				fmt.Fprintf(w, "\nWrote %s\n", outCSV)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "Path to YAML config (optional)")
	cmd.Flags().IntVar(&year, "year", 2023, "Year to synthesize")
	cmd.Flags().Float64Var(&rearPct, "rear-pct", 10, "Rear irradiance as a percentage of front")
	cmd.Flags().StringVar(&outCSV, "out", "", "Optional path to write the export CSV (e.g. results/demo.csv)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type periodJSON struct {
	Label           string       `json:"label"`
	Energy          model.Metric `json:"energy"`
	SpecificYield   model.Metric `json:"yield_kwh_kwp"`
	BifacialGainPct model.Metric `json:"bifacial_gain_pct"`
	PR              model.Metric `json:"performance_ratio"`
	PRRearCorrected model.Metric `json:"performance_ratio_rear_corrected"`
}

func toJSON(res *yield.Result, unit model.EnergyUnit) map[string]interface{} {
	conv := func(p yield.PeriodAggregate) periodJSON {
		return periodJSON{
			Label:           p.Label,
			Energy:          model.Metric(unit.FromWh(p.EnergyWh)),
			SpecificYield:   model.Metric(p.SpecificYield),
			BifacialGainPct: model.Metric(p.BifacialGainPct),
			PR:              model.Metric(p.PerformanceRatio),
			PRRearCorrected: model.Metric(p.PerformanceRatioRearCorrected),
		}
	}
	periods := make([]periodJSON, 0, len(res.Periods))
	for _, p := range res.Periods {
		periods = append(periods, conv(p))
	}
	return map[string]interface{}{
		"nameplate_w": res.NameplateW,
		"energy_unit": unit,
		"periods":     periods,
		"total":       conv(res.Total),
	}
}
