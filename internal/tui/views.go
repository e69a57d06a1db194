package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sbomdiff/sbomdiff/internal/model"
)

var (
	primaryColor = lipgloss.Color("#7C3AED")
	dimColor     = lipgloss.Color("#6C7086")
	brightColor  = lipgloss.Color("#F5F5F5")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(brightColor).
			Background(primaryColor).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(dimColor)
	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	footerStyle   = lipgloss.NewStyle().Foreground(dimColor)
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}

	switch m.mode {
	case detailView, helpView:
		return m.viewport.View() + "\n" + m.footer()
	default:
		return m.list.View()
	}
}

func (m Model) footer() string {
	switch m.mode {
	case listView:
		return footerStyle.Render("enter: inspect · /: filter · ?: help · q: quit")
	default:
		return footerStyle.Render("↑/↓: scroll · esc: back · q: quit")
	}
}

// renderComponentDetail formats c's identity, metadata, and graph
// neighborhood (roots membership, direct deps/rdeps, transitive closure)
// using only the read-only Query API.
func (m Model) renderComponentDetail(comp *model.Component) string {
	var b strings.Builder

	fmt.Fprintln(&b, headingStyle.Render(comp.Name))
	fmt.Fprintln(&b, dimStyle.Render(string(comp.ID)))
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "version:  %s\n", orDash(comp.Version))
	fmt.Fprintf(&b, "purl:     %s\n", orDash(comp.Purl))
	fmt.Fprintf(&b, "ecosystem: %s\n", orDash(comp.Ecosystem))
	fmt.Fprintf(&b, "supplier: %s\n", orDash(comp.Supplier))
	fmt.Fprintf(&b, "licenses: %s\n", orDash(strings.Join(comp.Licenses, ", ")))

	if len(comp.Hashes) > 0 {
		fmt.Fprintln(&b, "hashes:")
		for algo, sum := range comp.Hashes {
			fmt.Fprintf(&b, "  %s: %s\n", algo, sum)
		}
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, headingStyle.Render("graph"))
	isRoot := false
	for _, r := range m.sbom.Roots() {
		if r == comp.ID {
			isRoot = true
			break
		}
	}
	fmt.Fprintf(&b, "root: %v\n", isRoot)

	deps := m.sbom.Deps(comp.ID)
	fmt.Fprintf(&b, "direct deps (%d): %s\n", len(deps), joinIDs(deps))

	rdeps := m.sbom.RDeps(comp.ID)
	fmt.Fprintf(&b, "direct rdeps (%d): %s\n", len(rdeps), joinIDs(rdeps))

	transitive := m.sbom.TransitiveDeps(comp.ID)
	fmt.Fprintf(&b, "transitive deps (%d): %s\n", len(transitive), joinIDs(transitive))

	return b.String()
}

func renderHelp() string {
	return headingStyle.Render("sbom-diff inspect") + "\n\n" +
		"Read-only explorer over a single normalized SBOM.\n\n" +
		"  enter   inspect the selected component\n" +
		"  /       filter the list\n" +
		"  esc     back to the list\n" +
		"  ?       this help\n" +
		"  q       quit\n"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func joinIDs[T fmt.Stringer](ids []T) string {
	if len(ids) == 0 {
		return "(none)"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ", ")
}
