package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/sbomdiff/sbomdiff/internal/adapter"
	"github.com/sbomdiff/sbomdiff/internal/analysis"
	"github.com/sbomdiff/sbomdiff/internal/sbomerr"
)

func newStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <file>",
		Short: "Print summary statistics for a single SBOM",
		Args:  cobra.ExactArgs(1),
		RunE:  runStats,
	}
	cmd.Flags().StringP("format", "f", "auto", "input format: auto|cyclonedx|spdx")
	cmd.Flags().Bool("json", false, "emit stats as JSON instead of text")
	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	formatFlag, _ := cmd.Flags().GetString("format")
	asJSON, _ := cmd.Flags().GetBool("json")

	format, err := parseFormat(formatFlag)
	if err != nil {
		return exitWith(1, err)
	}

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return exitWith(1, sbomerr.NewInputError(path, err))
	}
	defer f.Close()

	sbom, err := adapter.Read(f, format)
	if err != nil {
		return exitWith(1, err)
	}
	sbom.Normalize()

	stats := analysis.ComputeStats(sbom)

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(stats); err != nil {
			return exitWith(1, err)
		}
		return nil
	}

	analysis.PrintStats(os.Stdout, stats)
	return nil
}
