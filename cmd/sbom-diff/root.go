package main

import (
	"github.com/spf13/cobra"

	"github.com/sbomdiff/sbomdiff/internal/version"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "sbom-diff <old-file> <new-file>",
		Short:         "Compare two SBOM documents and gate the result on license and dependency policy",
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(2),
		RunE:          runDiff,
	}

	root.Flags().StringP("format", "f", "auto", "input format: auto|cyclonedx|spdx")
	root.Flags().StringP("output", "o", "text", "output format: text|markdown|json|sarif|junit")
	root.Flags().String("only", "", "comma-separated field filter: version,license,supplier,purl,hashes,deps")
	root.Flags().StringArray("deny-license", nil, "deny a license expression (repeatable)")
	root.Flags().StringArray("allow-license", nil, "allow only these license expressions (repeatable)")
	root.Flags().StringArray("fail-on", nil, "fail on condition: added-components|missing-hashes|deps (repeatable)")
	root.Flags().String("policy-file", "", "path to an extended policy JSON file (supplemental, beyond the core gates)")
	root.Flags().Bool("summary", false, "suppress per-component detail, keep counts")
	root.Flags().BoolP("quiet", "q", false, "suppress all non-error output")

	root.AddCommand(newStatsCommand())
	root.AddCommand(newInspectCommand())

	return root
}
