// Package policy evaluates a computed Diff against license allow/deny
// expressions and fail-on conditions, producing the outcome that determines
// the CLI's exit code.
package policy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sbomdiff/sbomdiff/internal/differ"
	"github.com/sbomdiff/sbomdiff/internal/model"
)

// Condition names a fail-on trigger.
type Condition string

const (
	ConditionAddedComponents Condition = "added-components"
	ConditionMissingHashes   Condition = "missing-hashes"
	ConditionDeps            Condition = "deps"
)

// Config holds the optional gate settings evaluated against a Diff and the
// new Sbom.
type Config struct {
	DenyLicenses  map[string]struct{}
	AllowLicenses map[string]struct{}
	FailOn        map[Condition]struct{}
}

// NewConfig builds a Config from case-insensitive license tokens and
// fail-on condition names.
func NewConfig(deny, allow []string, failOn []Condition) Config {
	cfg := Config{
		DenyLicenses:  toLowerSet(deny),
		AllowLicenses: toLowerSet(allow),
		FailOn:        make(map[Condition]struct{}, len(failOn)),
	}
	for _, c := range failOn {
		cfg.FailOn[c] = struct{}{}
	}
	return cfg
}

func toLowerSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[strings.ToLower(t)] = struct{}{}
	}
	return set
}

// OutcomeKind classifies the result of Evaluate.
type OutcomeKind string

const (
	OutcomeOK               OutcomeKind = "ok"
	OutcomeLicenseViolation OutcomeKind = "license-violation"
	OutcomeFailOn           OutcomeKind = "fail-on"
)

// Outcome is the result of evaluating a Config against a Diff. License
// violations take precedence over fail-on conditions when both trigger.
type Outcome struct {
	Kind      OutcomeKind
	Condition Condition // populated only for OutcomeFailOn
	Details   []string
}

// Evaluate checks diff and newSbom against cfg and returns the outcome.
func Evaluate(diff *differ.Diff, newSbom *model.Sbom, cfg Config) Outcome {
	if details := licenseViolations(newSbom, cfg); len(details) > 0 {
		return Outcome{Kind: OutcomeLicenseViolation, Details: details}
	}

	if _, on := cfg.FailOn[ConditionAddedComponents]; on && len(diff.Added) > 0 {
		return Outcome{
			Kind:      OutcomeFailOn,
			Condition: ConditionAddedComponents,
			Details:   []string{fmt.Sprintf("%d component(s) added", len(diff.Added))},
		}
	}

	if _, on := cfg.FailOn[ConditionMissingHashes]; on {
		if missing := newSbom.MissingHashes(); len(missing) > 0 {
			details := make([]string, 0, len(missing))
			for _, id := range missing {
				details = append(details, string(id))
			}
			return Outcome{Kind: OutcomeFailOn, Condition: ConditionMissingHashes, Details: details}
		}
	}

	if _, on := cfg.FailOn[ConditionDeps]; on {
		total := len(diff.EdgeChanges.Added) + len(diff.EdgeChanges.Removed)
		if total > 0 {
			return Outcome{
				Kind:      OutcomeFailOn,
				Condition: ConditionDeps,
				Details:   []string{fmt.Sprintf("%d edge change(s)", total)},
			}
		}
	}

	return Outcome{Kind: OutcomeOK}
}

func licenseViolations(newSbom *model.Sbom, cfg Config) []string {
	var details []string

	if len(cfg.DenyLicenses) > 0 {
		for _, c := range newSbom.Components() {
			for _, lic := range c.Licenses {
				if _, denied := cfg.DenyLicenses[strings.ToLower(lic)]; denied {
					details = append(details, fmt.Sprintf("%s: denied license %s", c.Name, lic))
				}
			}
		}
	}

	if len(cfg.AllowLicenses) > 0 {
		for _, c := range newSbom.Components() {
			for _, lic := range c.Licenses {
				if _, allowed := cfg.AllowLicenses[strings.ToLower(lic)]; !allowed {
					details = append(details, fmt.Sprintf("%s: license %s not in allow list", c.Name, lic))
				}
			}
		}
	}

	sort.Strings(details)
	return details
}
