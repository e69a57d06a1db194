package adapter

import "strings"

// expandSPDXExpression splits an SPDX license expression into its individual
// identifiers, discarding boolean operators, parentheses, and the
// non-assertions NOASSERTION/NONE. "MIT AND (Apache-2.0 OR BSD-3-Clause)"
// becomes ["MIT", "Apache-2.0", "BSD-3-Clause"].
func expandSPDXExpression(expr string) []string {
	expr = strings.NewReplacer("(", " ", ")", " ").Replace(expr)
	var out []string
	for _, tok := range strings.Fields(expr) {
		switch strings.ToUpper(tok) {
		case "AND", "OR", "WITH":
			continue
		}
		switch strings.ToUpper(tok) {
		case "NOASSERTION", "NONE":
			continue
		}
		out = append(out, tok)
	}
	return out
}
