package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luki/hazard/internal/alert"
	"github.com/luki/hazard/internal/risk"
	"github.com/luki/hazard/internal/sensor"
)

func newScoreCmd() *cobra.Command {
	var r sensor.Reading

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a single reading and print its risk level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			score, level := risk.Evaluate(r)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "score %d %s\n", score, level.Title())
			if level == risk.Danger {
				fmt.Fprintln(out, alert.FormatMessage(score, r))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&r.Temperature, "temp", sensor.MinTemperature, "temperature in °C")
	cmd.Flags().IntVar(&r.GasLevel, "gas", sensor.MinGasLevel, "gas level")
	cmd.Flags().BoolVar(&r.Smoke, "smoke", false, "smoke detected")
	cmd.Flags().BoolVar(&r.Motion, "motion", false, "person present")
	return cmd
}
