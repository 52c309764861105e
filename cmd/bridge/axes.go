package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/serious-bridge/internal/input"
)

var axesCmd = &cobra.Command{
	Use:   "axes",
	Short: "Show the active axis rules",
	Long: `Shows how each platform motion axis maps to an engine axis, and the
buttons synthesized from the d-pad hat and the analog triggers.`,
	Args: cobra.NoArgs,
	RunE: runAxes,
}

func runAxes(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rules, err := cfg.AxisRules()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Axis rules:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-14s  %-8s  %s\n", "Source", "Target", "Scale")
	fmt.Fprintf(out, "  %-14s  %-8s  %s\n", "------", "------", "-----")
	for _, r := range rules {
		fmt.Fprintf(out, "  %-14s  %-8s  %+.3f\n", r.Source, r.Target, r.Scale)
	}

	threshold := cfg.Input.ButtonThreshold
	if threshold <= 0 {
		threshold = input.DefaultThreshold
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Synthesized buttons (threshold %.2f):\n", threshold)
	for _, code := range input.SyntheticCodes() {
		fmt.Fprintf(out, "  %s\n", code)
	}
	return nil
}
