package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sbomdiff/sbomdiff/internal/differ"
	"github.com/sbomdiff/sbomdiff/internal/policy"
	"github.com/sbomdiff/sbomdiff/internal/version"
)

// SARIF report types, following the 2.1.0 schema subset GitHub Code Scanning
// consumes.

type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	ShortDescription sarifMessage    `json:"shortDescription"`
	DefaultConfig    sarifRuleConfig `json:"defaultConfiguration,omitempty"`
}

type sarifRuleConfig struct {
	Level string `json:"level"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID  string       `json:"ruleId"`
	Level   string       `json:"level"`
	Message sarifMessage `json:"message"`
}

var sarifRules = []sarifRule{
	{ID: "component-added", Name: "ComponentAdded", ShortDescription: sarifMessage{Text: "A component was added to the SBOM"}, DefaultConfig: sarifRuleConfig{Level: "note"}},
	{ID: "component-removed", Name: "ComponentRemoved", ShortDescription: sarifMessage{Text: "A component was removed from the SBOM"}, DefaultConfig: sarifRuleConfig{Level: "note"}},
	{ID: "component-changed", Name: "ComponentChanged", ShortDescription: sarifMessage{Text: "A component field changed"}, DefaultConfig: sarifRuleConfig{Level: "note"}},
	{ID: "license-violation", Name: "LicenseViolation", ShortDescription: sarifMessage{Text: "A component's license violates the configured policy"}, DefaultConfig: sarifRuleConfig{Level: "error"}},
	{ID: "fail-on-condition", Name: "FailOnCondition", ShortDescription: sarifMessage{Text: "A configured fail-on condition was triggered"}, DefaultConfig: sarifRuleConfig{Level: "error"}},
}

// SARIF renders diff as a SARIF 2.1.0 report suitable for GitHub code
// scanning upload.
func SARIF(w io.Writer, diff *differ.Diff) error {
	return SARIFWithOutcome(w, diff, nil)
}

// SARIFWithOutcome is SARIF plus, when outcome is non-nil, license-violation
// and fail-on results from a policy evaluation.
func SARIFWithOutcome(w io.Writer, diff *differ.Diff, outcome *policy.Outcome) error {
	var results []sarifResult

	for _, c := range diff.Added {
		results = append(results, sarifResult{
			RuleID:  "component-added",
			Level:   "note",
			Message: sarifMessage{Text: fmt.Sprintf("%s (%s) added", c.Name, c.Version)},
		})
	}
	for _, c := range diff.Removed {
		results = append(results, sarifResult{
			RuleID:  "component-removed",
			Level:   "note",
			Message: sarifMessage{Text: fmt.Sprintf("%s (%s) removed", c.Name, c.Version)},
		})
	}
	for _, c := range diff.Changed {
		for _, fc := range c.Changes {
			results = append(results, sarifResult{
				RuleID:  "component-changed",
				Level:   "note",
				Message: sarifMessage{Text: fmt.Sprintf("%s: %s changed", c.ID, fc.Kind)},
			})
		}
	}

	if outcome != nil {
		switch outcome.Kind {
		case policy.OutcomeLicenseViolation:
			for _, d := range outcome.Details {
				results = append(results, sarifResult{RuleID: "license-violation", Level: "error", Message: sarifMessage{Text: d}})
			}
		case policy.OutcomeFailOn:
			for _, d := range outcome.Details {
				results = append(results, sarifResult{RuleID: "fail-on-condition", Level: "error", Message: sarifMessage{Text: fmt.Sprintf("[%s] %s", outcome.Condition, d)}})
			}
		}
	}

	report := sarifReport{
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarifRun{{
			Tool: sarifTool{
				Driver: sarifDriver{
					Name:           "sbom-diff",
					Version:        version.Short(),
					InformationURI: "https://github.com/sbomdiff/sbomdiff",
					Rules:          sarifRules,
				},
			},
			Results: results,
		}},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
