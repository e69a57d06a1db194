package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sbomdiff/sbomdiff/internal/adapter"
	"github.com/sbomdiff/sbomdiff/internal/differ"
	"github.com/sbomdiff/sbomdiff/internal/model"
	"github.com/sbomdiff/sbomdiff/internal/policy"
	"github.com/sbomdiff/sbomdiff/internal/render"
	"github.com/sbomdiff/sbomdiff/internal/sbomerr"
)

func runDiff(cmd *cobra.Command, args []string) error {
	oldPath, newPath := args[0], args[1]
	if oldPath == "-" && newPath == "-" {
		return exitWith(1, sbomerr.NewConfigError("<old-file> <new-file>", "at most one side may be \"-\" (stdin)"))
	}

	formatFlag, _ := cmd.Flags().GetString("format")
	outputFlag, _ := cmd.Flags().GetString("output")
	onlyFlag, _ := cmd.Flags().GetString("only")
	denyLicenses, _ := cmd.Flags().GetStringArray("deny-license")
	allowLicenses, _ := cmd.Flags().GetStringArray("allow-license")
	failOnFlags, _ := cmd.Flags().GetStringArray("fail-on")
	policyFilePath, _ := cmd.Flags().GetString("policy-file")
	summaryOnly, _ := cmd.Flags().GetBool("summary")
	quiet, _ := cmd.Flags().GetBool("quiet")

	format, err := parseFormat(formatFlag)
	if err != nil {
		return exitWith(1, err)
	}
	outFormat, err := parseOutputFormat(outputFlag)
	if err != nil {
		return exitWith(1, err)
	}
	fields, err := parseFieldFilter(onlyFlag)
	if err != nil {
		return exitWith(1, err)
	}
	failOn, err := parseFailOn(failOnFlags)
	if err != nil {
		return exitWith(1, err)
	}

	oldSbom, err := loadSbom(oldPath, format)
	if err != nil {
		return exitWith(1, err)
	}
	newSbom, err := loadSbom(newPath, format)
	if err != nil {
		return exitWith(1, err)
	}
	oldSbom.Normalize()
	newSbom.Normalize()

	diff := differ.Diff(oldSbom, newSbom, fields)

	cfg := policy.NewConfig(denyLicenses, allowLicenses, failOn)
	outcome := policy.Evaluate(diff, newSbom, cfg)

	var extViolations []policy.ExtendedViolation
	if policyFilePath != "" {
		data, err := os.ReadFile(policyFilePath)
		if err != nil {
			return exitWith(1, sbomerr.NewInputError(policyFilePath, err))
		}
		ext, err := policy.LoadExtendedPolicy(data)
		if err != nil {
			return exitWith(1, err)
		}
		extViolations = policy.EvaluateExtended(ext, diff, oldSbom, newSbom)
	}

	if !quiet {
		if err := renderDiff(os.Stdout, diff, outFormat, summaryOnly, &outcome); err != nil {
			return exitWith(1, err)
		}
	}
	if !quiet {
		for _, v := range extViolations {
			fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", v.Severity, v.Rule, v.Message)
		}
	}

	if policy.HasErrors(extViolations) && outcome.Kind == policy.OutcomeOK {
		return exitWith(3, &sbomerr.PolicyViolation{Kind: "fail-on", Message: "extended policy violated"})
	}

	switch outcome.Kind {
	case policy.OutcomeLicenseViolation:
		return exitWith(2, &sbomerr.PolicyViolation{Kind: "license", Message: strings.Join(outcome.Details, "; ")})
	case policy.OutcomeFailOn:
		return exitWith(3, &sbomerr.PolicyViolation{Kind: "fail-on", Message: strings.Join(outcome.Details, "; ")})
	}

	return nil
}

func renderDiff(w io.Writer, diff *differ.Diff, format render.Format, summaryOnly bool, outcome *policy.Outcome) error {
	switch format {
	case render.FormatSARIF:
		return render.SARIFWithOutcome(w, diff, outcome)
	case render.FormatJUnit:
		return render.JUnitWithOutcome(w, diff, outcome)
	default:
		return render.Render(w, diff, format, summaryOnly)
	}
}

func loadSbom(path string, format adapter.Format) (*model.Sbom, error) {
	if path == "-" {
		return adapter.Read(os.Stdin, format)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, sbomerr.NewInputError(path, err)
	}
	defer f.Close()
	return adapter.Read(f, format)
}

func parseFormat(s string) (adapter.Format, error) {
	switch s {
	case "", "auto":
		return adapter.FormatAuto, nil
	case "cyclonedx":
		return adapter.FormatCycloneDX, nil
	case "spdx":
		return adapter.FormatSPDX, nil
	default:
		return "", sbomerr.NewConfigError("--format", "unknown format "+s)
	}
}

func parseOutputFormat(s string) (render.Format, error) {
	switch s {
	case "", "text":
		return render.FormatText, nil
	case "markdown":
		return render.FormatMarkdown, nil
	case "json":
		return render.FormatJSON, nil
	case "sarif":
		return render.FormatSARIF, nil
	case "junit":
		return render.FormatJUnit, nil
	default:
		return "", sbomerr.NewConfigError("--output", "unknown format "+s)
	}
}

var fieldNames = map[string]differ.Field{
	"version":  differ.FieldVersion,
	"license":  differ.FieldLicense,
	"supplier": differ.FieldSupplier,
	"purl":     differ.FieldPurl,
	"hashes":   differ.FieldHashes,
	"deps":     differ.FieldDeps,
}

// parseFieldFilter turns a comma-separated --only value into a field filter.
// An empty string means "all fields" (nil filter, per differ.Diff's contract).
func parseFieldFilter(s string) ([]differ.Field, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	fields := make([]differ.Field, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		f, ok := fieldNames[p]
		if !ok {
			return nil, sbomerr.NewConfigError("--only", "unknown field "+p)
		}
		fields = append(fields, f)
	}
	return fields, nil
}

var failOnNames = map[string]policy.Condition{
	"added-components": policy.ConditionAddedComponents,
	"missing-hashes":   policy.ConditionMissingHashes,
	"deps":             policy.ConditionDeps,
}

func parseFailOn(values []string) ([]policy.Condition, error) {
	conditions := make([]policy.Condition, 0, len(values))
	for _, v := range values {
		c, ok := failOnNames[v]
		if !ok {
			return nil, sbomerr.NewConfigError("--fail-on", "unknown condition "+v)
		}
		conditions = append(conditions, c)
	}
	return conditions, nil
}
