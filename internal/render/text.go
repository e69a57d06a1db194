package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sbomdiff/sbomdiff/internal/differ"
)

// Text renders diff following spec's text output skeleton: a summary block,
// then added/removed/changed sections, each omitted when empty. summaryOnly
// suppresses per-component detail but keeps the counts.
func Text(w io.Writer, diff *differ.Diff, summaryOnly bool) error {
	fmt.Fprintln(w, "diff summary")
	fmt.Fprintln(w, "============")
	fmt.Fprintf(w, "added:   %d\n", len(diff.Added))
	fmt.Fprintf(w, "removed: %d\n", len(diff.Removed))
	fmt.Fprintf(w, "changed: %d\n", len(diff.Changed))

	if summaryOnly {
		return nil
	}

	if len(diff.Added) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "[+] added")
		fmt.Fprintln(w, "---------")
		for _, c := range diff.Added {
			fmt.Fprintln(w, c.ID)
		}
	}

	if len(diff.Removed) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "[-] removed")
		fmt.Fprintln(w, "-----------")
		for _, c := range diff.Removed {
			fmt.Fprintln(w, c.ID)
		}
	}

	if len(diff.Changed) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "[~] changed")
		fmt.Fprintln(w, "-----------")
		for _, c := range diff.Changed {
			fmt.Fprintln(w, c.ID)
			for _, fc := range c.Changes {
				fmt.Fprintf(w, "  %s: %s -> %s\n", fc.Kind, renderOld(fc), renderNew(fc))
			}
		}
	}

	if len(diff.EdgeChanges.Added) > 0 || len(diff.EdgeChanges.Removed) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "[>] dependencies")
		fmt.Fprintln(w, "----------------")
		for _, e := range diff.EdgeChanges.Added {
			fmt.Fprintf(w, "+ %s -> %s\n", e.Parent, e.Child)
		}
		for _, e := range diff.EdgeChanges.Removed {
			fmt.Fprintf(w, "- %s -> %s\n", e.Parent, e.Child)
		}
	}

	return nil
}

func renderOld(fc differ.FieldChange) string { return renderSide(fc, true) }
func renderNew(fc differ.FieldChange) string { return renderSide(fc, false) }

func renderSide(fc differ.FieldChange, old bool) string {
	switch fc.Kind {
	case differ.FieldVersion:
		if old {
			return orNone(fc.VersionOld)
		}
		return orNone(fc.VersionNew)
	case differ.FieldLicense:
		if old {
			return "[" + strings.Join(fc.LicenseOld, ", ") + "]"
		}
		return "[" + strings.Join(fc.LicenseNew, ", ") + "]"
	case differ.FieldSupplier:
		if old {
			return orNonePtr(fc.SupplierOld)
		}
		return orNonePtr(fc.SupplierNew)
	case differ.FieldPurl:
		if old {
			return orNonePtr(fc.PurlOld)
		}
		return orNonePtr(fc.PurlNew)
	case differ.FieldHashes:
		if old {
			return renderHashes(fc.HashesOld)
		}
		return renderHashes(fc.HashesNew)
	default:
		return ""
	}
}

func orNone(s string) string {
	if s == "" {
		return "<none>"
	}
	return s
}

func orNonePtr(s *string) string {
	if s == nil {
		return "<none>"
	}
	return *s
}

func renderHashes(h map[string]string) string {
	if len(h) == 0 {
		return "{}"
	}
	algos := make([]string, 0, len(h))
	for algo := range h {
		algos = append(algos, algo)
	}
	sort.Strings(algos)
	parts := make([]string, 0, len(algos))
	for _, algo := range algos {
		parts = append(parts, fmt.Sprintf("%s:%s", algo, h[algo]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
