package analysis

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sbomdiff/sbomdiff/internal/model"
)

// Stats summarizes a single, normalized Sbom for ad-hoc inspection outside
// the diff pipeline.
type Stats struct {
	TotalComponents   int
	ByEcosystem       map[string]int
	ByLicense         map[string]int
	LicenseCategories LicenseCategory
	WithoutLicense    int
	WithHashes        int
	WithoutHashes     int
	WithPurl          int
	WithoutPurl       int
	TotalDependencies int
	WithDependencies  int
	DuplicateCount    int
	Duplicates        []DuplicateGroup
}

// LicenseCategory buckets licenses into coarse compliance classes.
type LicenseCategory struct {
	Copyleft     int
	Permissive   int
	PublicDomain int
	Unknown      int
}

// ComputeStats calculates statistics for every component in s.
func ComputeStats(s *model.Sbom) Stats {
	stats := Stats{
		ByEcosystem: make(map[string]int),
		ByLicense:   make(map[string]int),
	}

	comps := s.Components()
	stats.TotalComponents = len(comps)

	for _, c := range comps {
		ecosystem := c.Ecosystem
		if ecosystem == "" {
			ecosystem = "unknown"
		}
		stats.ByEcosystem[ecosystem]++

		if len(c.Licenses) == 0 {
			stats.WithoutLicense++
			stats.LicenseCategories.Unknown++
		} else {
			for _, lic := range c.Licenses {
				stats.ByLicense[lic]++
			}
			switch CategorizeLicense(c.Licenses[0]) {
			case "copyleft":
				stats.LicenseCategories.Copyleft++
			case "permissive":
				stats.LicenseCategories.Permissive++
			case "public_domain":
				stats.LicenseCategories.PublicDomain++
			default:
				stats.LicenseCategories.Unknown++
			}
		}

		if len(c.Hashes) > 0 {
			stats.WithHashes++
		} else {
			stats.WithoutHashes++
		}

		if c.Purl != "" {
			stats.WithPurl++
		} else {
			stats.WithoutPurl++
		}

		deps := s.Deps(c.ID)
		if len(deps) > 0 {
			stats.WithDependencies++
			stats.TotalDependencies += len(deps)
		}
	}

	stats.Duplicates = FindDuplicates(s)
	stats.DuplicateCount = len(stats.Duplicates)

	return stats
}

// CategorizeLicense classifies a license token as copyleft, permissive,
// public_domain, or unknown by prefix matching.
func CategorizeLicense(license string) string {
	lic := strings.ToUpper(license)

	for _, prefix := range []string{"GPL", "LGPL", "AGPL", "MPL", "EPL", "CPL", "CDDL", "EUPL"} {
		if strings.Contains(lic, prefix) {
			return "copyleft"
		}
	}
	for _, prefix := range []string{"MIT", "BSD", "APACHE", "ISC", "ZLIB", "UNLICENSE", "WTFPL", "CC0", "X11"} {
		if strings.Contains(lic, prefix) {
			return "permissive"
		}
	}
	if strings.Contains(lic, "PUBLIC-DOMAIN") || strings.Contains(lic, "PUBLIC DOMAIN") || strings.Contains(lic, "PUBLICDOMAIN") {
		return "public_domain"
	}
	return "unknown"
}

// PrintStats writes stats in human-readable form to w.
func PrintStats(w io.Writer, stats Stats) {
	fmt.Fprintf(w, "SBOM statistics\n")
	fmt.Fprintf(w, "===============\n\n")
	fmt.Fprintf(w, "total components: %d\n\n", stats.TotalComponents)

	if len(stats.ByEcosystem) > 0 {
		fmt.Fprintf(w, "by ecosystem:\n")
		for _, k := range sortedKeys(stats.ByEcosystem) {
			fmt.Fprintf(w, "  %-12s %d\n", k, stats.ByEcosystem[k])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "licenses:\n")
	fmt.Fprintf(w, "  with license:    %d\n", stats.TotalComponents-stats.WithoutLicense)
	fmt.Fprintf(w, "  without license: %d\n\n", stats.WithoutLicense)

	fmt.Fprintf(w, "integrity:\n")
	fmt.Fprintf(w, "  with hashes:    %d\n", stats.WithHashes)
	fmt.Fprintf(w, "  without hashes: %d\n\n", stats.WithoutHashes)

	fmt.Fprintf(w, "dependencies:\n")
	fmt.Fprintf(w, "  components with deps: %d\n", stats.WithDependencies)
	fmt.Fprintf(w, "  total dep relations:  %d\n", stats.TotalDependencies)

	if stats.DuplicateCount > 0 {
		fmt.Fprintf(w, "\nduplicates found: %d\n", stats.DuplicateCount)
		for _, d := range stats.Duplicates {
			fmt.Fprintf(w, "  %s: %v\n", d.Name, versionsOf(d))
		}
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
