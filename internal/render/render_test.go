package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbomdiff/sbomdiff/internal/differ"
)

func sampleDiff() *differ.Diff {
	return &differ.Diff{
		Added:   []differ.ComponentRef{{ID: "pkg:npm/left-pad@1.3.0", Name: "left-pad", Version: "1.3.0"}},
		Removed: nil,
		Changed: []differ.ChangedComponent{{
			ID: "pkg:cargo/serde@1.0.191",
			Changes: []differ.FieldChange{
				{Kind: differ.FieldVersion, VersionOld: "1.0.190", VersionNew: "1.0.191"},
			},
		}},
		EdgeChanges: differ.EdgeChanges{
			Added: []differ.Edge{{Parent: "a", Child: "c"}},
		},
	}
}

func TestTextOmitsEmptySections(t *testing.T) {
	var buf bytes.Buffer
	d := &differ.Diff{}
	require.NoError(t, Text(&buf, d, false))

	out := buf.String()
	assert.Contains(t, out, "added:   0")
	assert.NotContains(t, out, "[+] added")
	assert.NotContains(t, out, "[~] changed")
}

func TestTextIncludesPopulatedSections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleDiff(), false))

	out := buf.String()
	assert.Contains(t, out, "[+] added")
	assert.Contains(t, out, "pkg:npm/left-pad@1.3.0")
	assert.Contains(t, out, "[~] changed")
	assert.Contains(t, out, "version: 1.0.190 -> 1.0.191")
	assert.Contains(t, out, "[>] dependencies")
}

func TestTextSummaryOnlySuppressesDetail(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleDiff(), true))

	out := buf.String()
	assert.Contains(t, out, "added:   1")
	assert.NotContains(t, out, "[+] added")
}

func TestJSONShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sampleDiff()))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	summary := doc["summary"].(map[string]any)
	assert.Equal(t, float64(1), summary["added"])
	assert.Equal(t, float64(0), summary["removed"])
	assert.Equal(t, float64(1), summary["changed"])

	edgeChanges := doc["edge_changes"].(map[string]any)
	added := edgeChanges["added"].([]any)
	require.Len(t, added, 1)
}

func TestMarkdownCollapsesSections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, sampleDiff(), false))

	out := buf.String()
	assert.True(t, strings.Contains(out, "<details><summary>Added (1)</summary>"))
	assert.True(t, strings.Contains(out, "<details><summary>Changed (1)</summary>"))
}

func TestRenderDispatchesByFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleDiff(), FormatJSON, false))
	assert.True(t, json.Valid(buf.Bytes()))
}

func TestRenderUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, sampleDiff(), Format("bogus"), false)
	assert.Error(t, err)
}
