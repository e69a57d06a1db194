package policy

import (
	"encoding/json"
	"fmt"

	"github.com/sbomdiff/sbomdiff/internal/analysis"
	"github.com/sbomdiff/sbomdiff/internal/differ"
	"github.com/sbomdiff/sbomdiff/internal/model"
)

// ExtendedPolicy adds CI-friendly gates beyond spec's core Config: component
// count ceilings, duplicate detection, and integrity-drift detection (a hash
// changing without a version bump, a supply-chain tamper signal). It is
// loaded from JSON and evaluated as an additional, independent layer after
// the core Evaluate; it never replaces it.
type ExtendedPolicy struct {
	MaxAdded           int  `json:"max_added,omitempty"`
	MaxRemoved         int  `json:"max_removed,omitempty"`
	MaxChanged         int  `json:"max_changed,omitempty"`
	DenyDuplicates     bool `json:"deny_duplicates,omitempty"`
	DenyIntegrityDrift bool `json:"deny_integrity_drift,omitempty"`
	MaxDepth           int  `json:"max_depth,omitempty"`
}

// Severity classifies an ExtendedViolation.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ExtendedViolation is one rule failure from EvaluateExtended.
type ExtendedViolation struct {
	Rule     string
	Message  string
	Severity Severity
}

// LoadExtendedPolicy parses an ExtendedPolicy from JSON.
func LoadExtendedPolicy(data []byte) (ExtendedPolicy, error) {
	var p ExtendedPolicy
	if err := json.Unmarshal(data, &p); err != nil {
		return ExtendedPolicy{}, fmt.Errorf("parsing policy file: %w", err)
	}
	return p, nil
}

// EvaluateExtended checks diff and newSbom against p and returns every
// violated rule.
func EvaluateExtended(p ExtendedPolicy, diff *differ.Diff, old, newSbom *model.Sbom) []ExtendedViolation {
	var violations []ExtendedViolation

	if p.MaxAdded > 0 && len(diff.Added) > p.MaxAdded {
		violations = append(violations, ExtendedViolation{
			Rule:     "max_added",
			Message:  fmt.Sprintf("too many components added: %d > %d", len(diff.Added), p.MaxAdded),
			Severity: SeverityError,
		})
	}
	if p.MaxRemoved > 0 && len(diff.Removed) > p.MaxRemoved {
		violations = append(violations, ExtendedViolation{
			Rule:     "max_removed",
			Message:  fmt.Sprintf("too many components removed: %d > %d", len(diff.Removed), p.MaxRemoved),
			Severity: SeverityError,
		})
	}
	if p.MaxChanged > 0 && len(diff.Changed) > p.MaxChanged {
		violations = append(violations, ExtendedViolation{
			Rule:     "max_changed",
			Message:  fmt.Sprintf("too many components changed: %d > %d", len(diff.Changed), p.MaxChanged),
			Severity: SeverityError,
		})
	}

	if p.DenyDuplicates {
		if dups := analysis.FindDuplicates(newSbom); len(dups) > 0 {
			violations = append(violations, ExtendedViolation{
				Rule:     "deny_duplicates",
				Message:  fmt.Sprintf("found %d duplicate component group(s)", len(dups)),
				Severity: SeverityError,
			})
		}
	}

	if p.DenyIntegrityDrift {
		for _, ch := range diff.Changed {
			hasHashChange, hasVersionChange := false, false
			for _, fc := range ch.Changes {
				switch fc.Kind {
				case differ.FieldHashes:
					hasHashChange = true
				case differ.FieldVersion:
					hasVersionChange = true
				}
			}
			if hasHashChange && !hasVersionChange {
				violations = append(violations, ExtendedViolation{
					Rule:     "deny_integrity_drift",
					Message:  fmt.Sprintf("%s: hash changed without a version change", ch.ID),
					Severity: SeverityError,
				})
			}
		}
	}

	if p.MaxDepth > 0 {
		newTransitive, _ := analysis.DiffTransitive(old, newSbom)
		var offending []string
		for _, td := range newTransitive {
			if td.Depth >= p.MaxDepth {
				offending = append(offending, fmt.Sprintf("%s (depth %d)", td.Target, td.Depth))
			}
		}
		if len(offending) > 0 {
			violations = append(violations, ExtendedViolation{
				Rule:     "max_depth",
				Message:  fmt.Sprintf("new transitive dependencies at depth >= %d: %v", p.MaxDepth, offending),
				Severity: SeverityError,
			})
		}
	}

	return violations
}

// HasErrors reports whether any violation is an error rather than a warning.
func HasErrors(violations []ExtendedViolation) bool {
	for _, v := range violations {
		if v.Severity == SeverityError {
			return true
		}
	}
	return false
}
