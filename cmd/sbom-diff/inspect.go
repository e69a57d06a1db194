package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sbomdiff/sbomdiff/internal/adapter"
	"github.com/sbomdiff/sbomdiff/internal/sbomerr"
	"github.com/sbomdiff/sbomdiff/internal/tui"
)

func newInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Browse a single SBOM's component graph interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	cmd.Flags().StringP("format", "f", "auto", "input format: auto|cyclonedx|spdx")
	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	formatFlag, _ := cmd.Flags().GetString("format")
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

	if err := tui.Run(sbom); err != nil {
		return exitWith(1, err)
	}
	return nil
}
