package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pv-yield/internal/chart"

	"github.com/spf13/cobra"
)

var allKinds = []chart.Kind{chart.KindEnergy, chart.KindYield, chart.KindGain, chart.KindPR}

func newPlotCmd(g *globalOptions) *cobra.Command {
	o := &runOptions{}
	var (
		kind   string
		outDir string
		format string
	)

	cmd := &cobra.Command{
		Use:     "plot",
		Short:   "Render per-period bar charts",
		Example: `  pvyield plot --series results/run.csv --config examples/config.yaml --kind all --out-dir results`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := parseKinds(kind)
			if err != nil {
				return err
			}
			cfg, res, err := o.execute(g.logger())
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}

			opts := chart.Options{EnergyUnit: cfg.Aggregation.Unit(), PRMethod: cfg.Aggregation.Method()}
			for _, k := range kinds {
				path := filepath.Join(outDir, string(k)+"."+strings.TrimPrefix(format, "."))
				if err := chart.Render(res, k, opts, path); err != nil {
					return fmt.Errorf("%s chart: %w", k, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			}
			return nil
		},
	}
	addRunFlags(cmd, o)
	cmd.Flags().StringVar(&kind, "kind", "all", "Chart kind: energy, yield, gain, pr or all")
	cmd.Flags().StringVar(&outDir, "out-dir", "results", "Output directory")
	cmd.Flags().StringVar(&format, "format", "png", "Image format (png, svg, pdf)")
	return cmd
}

func parseKinds(s string) ([]chart.Kind, error) {
	if strings.EqualFold(strings.TrimSpace(s), "all") {
		return allKinds, nil
	}
	k, err := chart.ParseKind(s)
	if err != nil {
		return nil, err
	}
	return []chart.Kind{k}, nil
}
