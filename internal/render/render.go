// Package render turns a *differ.Diff into one of several byte-sink
// representations: text, markdown, json, and (supplemental, beyond spec.md)
// sarif and junit. Every renderer preserves Diff ordering verbatim.
package render

import (
	"fmt"
	"io"

	"github.com/sbomdiff/sbomdiff/internal/differ"
)

// Format names a renderer.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatSARIF    Format = "sarif"
	FormatJUnit    Format = "junit"
)

// Render writes diff to w using the renderer named by format.
func Render(w io.Writer, diff *differ.Diff, format Format, summaryOnly bool) error {
	switch format {
	case FormatText, "":
		return Text(w, diff, summaryOnly)
	case FormatMarkdown:
		return Markdown(w, diff, summaryOnly)
	case FormatJSON:
		return JSON(w, diff)
	case FormatSARIF:
		return SARIF(w, diff)
	case FormatJUnit:
		return JUnit(w, diff)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
