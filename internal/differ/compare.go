package differ

import (
	"sort"

	"github.com/sbomdiff/sbomdiff/internal/model"
)

// compareFields returns the FieldChanges between o (old) and n (new),
// restricted to fields present in filter (nil means all). A FieldChange is
// emitted only when the two sides actually differ.
func compareFields(o, n *model.Component, filter []Field) []FieldChange {
	var out []FieldChange

	if wants(filter, FieldVersion) && o.Version != n.Version {
		out = append(out, FieldChange{Kind: FieldVersion, VersionOld: o.Version, VersionNew: n.Version})
	}

	if wants(filter, FieldLicense) {
		ol := sortedCopy(o.Licenses)
		nl := sortedCopy(n.Licenses)
		if !equalStrings(ol, nl) {
			out = append(out, FieldChange{Kind: FieldLicense, LicenseOld: ol, LicenseNew: nl})
		}
	}

	if wants(filter, FieldSupplier) && o.Supplier != n.Supplier {
		out = append(out, FieldChange{Kind: FieldSupplier, SupplierOld: optString(o.Supplier), SupplierNew: optString(n.Supplier)})
	}

	if wants(filter, FieldPurl) && o.Purl != n.Purl {
		out = append(out, FieldChange{Kind: FieldPurl, PurlOld: optString(o.Purl), PurlNew: optString(n.Purl)})
	}

	if wants(filter, FieldHashes) && !equalHashes(o.Hashes, n.Hashes) {
		out = append(out, FieldChange{Kind: FieldHashes, HashesOld: o.Hashes, HashesNew: n.Hashes})
	}

	return out
}

// optString returns nil for an absent (empty) optional string, mirroring
// spec.md's option-aware comparisons for Supplier and Purl.
func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func sortedCopy(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalHashes(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}
