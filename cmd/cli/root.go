package main

import (
	"fmt"
	"os"

	"pv-yield/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type globalOptions struct {
	logLevel  string
	logFormat string
}

func (g *globalOptions) logger() *logrus.Logger {
	return logging.New(g.logLevel, g.logFormat)
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}

	root := &cobra.Command{
		Use:   "pvyield",
		Short: "PV energy yield aggregation",
		Long: `Aggregates simulated bifacial and monofacial PV power series into
per-period energy, specific yield, bifacial gain and performance ratio.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&g.logFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(newAggregateCmd(g))
	root.AddCommand(newPlotCmd(g))
	root.AddCommand(newArraysCmd())
	return root
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
