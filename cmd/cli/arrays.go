package main

import (
	"fmt"

	"pv-yield/internal/config"

	"github.com/spf13/cobra"
)

func newArraysCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "arrays",
		Short: "List array presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			presets, err := config.ListArrayFiles(dir, func(path string, err error) {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipping %s: %v\n", path, err)
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(w, "%-24s %-28s %12s %8s\n", "id", "name", "nameplate[W]", "bifac.")
			for _, p := range presets {
				fmt.Fprintf(w, "%-24s %-28s %12.0f %8.2f\n",
					p.ID, p.Array.Name, p.Array.ToModelParams().Nameplate(), p.Array.BifacialityValue())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "./examples/arrays", "Array preset directory")
	return cmd
}
