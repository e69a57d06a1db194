package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbomdiff/sbomdiff/internal/model"
)

func purlComponent(purl, name, version string, licenses ...string) *model.Component {
	c := model.NewComponent(name, version)
	c.SetPurl(purl)
	c.Licenses = licenses
	return c
}

func normalized(comps ...*model.Component) *model.Sbom {
	s := model.New()
	for _, c := range comps {
		s.AddComponent(c)
	}
	s.Normalize()
	return s
}

// S1 — pure addition.
func TestDiffPureAddition(t *testing.T) {
	old := normalized(purlComponent("pkg:cargo/serde@1.0.190", "serde", "1.0.190"))
	newSbom := normalized(
		purlComponent("pkg:cargo/serde@1.0.190", "serde", "1.0.190"),
		purlComponent("pkg:npm/left-pad@1.3.0", "left-pad", "1.3.0"),
	)

	d := Diff(old, newSbom, nil)

	require.Len(t, d.Added, 1)
	assert.Equal(t, model.ComponentId("pkg:npm/left-pad@1.3.0"), d.Added[0].ID)
	assert.Empty(t, d.Removed)
	assert.Empty(t, d.Changed)
}

// S2 — version bump detected by identity fallback match.
func TestDiffVersionBumpMatchedByEcosystemName(t *testing.T) {
	old := normalized(purlComponent("pkg:cargo/serde@1.0.190", "serde", "1.0.190", "MIT"))
	newSbom := normalized(purlComponent("pkg:cargo/serde@1.0.191", "serde", "1.0.191", "Apache-2.0", "MIT"))

	d := Diff(old, newSbom, nil)

	require.Empty(t, d.Added)
	require.Empty(t, d.Removed)
	require.Len(t, d.Changed, 1)

	changes := map[Field]FieldChange{}
	for _, fc := range d.Changed[0].Changes {
		changes[fc.Kind] = fc
	}

	purlChange, ok := changes[FieldPurl]
	require.True(t, ok)
	require.NotNil(t, purlChange.PurlOld)
	require.NotNil(t, purlChange.PurlNew)
	assert.Equal(t, "pkg:cargo/serde@1.0.190", *purlChange.PurlOld)
	assert.Equal(t, "pkg:cargo/serde@1.0.191", *purlChange.PurlNew)

	versionChange, ok := changes[FieldVersion]
	require.True(t, ok)
	assert.Equal(t, "1.0.190", versionChange.VersionOld)
	assert.Equal(t, "1.0.191", versionChange.VersionNew)

	licenseChange, ok := changes[FieldLicense]
	require.True(t, ok)
	assert.Equal(t, []string{"MIT"}, licenseChange.LicenseOld)
	assert.Equal(t, []string{"Apache-2.0", "MIT"}, licenseChange.LicenseNew)
}

// S5 — deps-only filter: Changed stays empty, only edge_changes is populated.
func TestDiffOnlyDepsFilterSuppressesFieldChanges(t *testing.T) {
	a := purlComponent("pkg:npm/a@1.0.0", "a", "1.0.0")
	b := purlComponent("pkg:npm/b@1.0.0", "b", "1.0.0")
	c := purlComponent("pkg:npm/c@1.0.0", "c", "1.0.0")

	old := model.New()
	old.AddComponent(a)
	old.AddComponent(b)
	old.AddEdge(a.ID, b.ID)
	old.Normalize()

	newSbom := model.New()
	newSbom.AddComponent(a)
	newSbom.AddComponent(b)
	newSbom.AddComponent(c)
	newSbom.AddEdge(a.ID, b.ID)
	newSbom.AddEdge(a.ID, c.ID)
	newSbom.Normalize()

	d := Diff(old, newSbom, []Field{FieldDeps})

	assert.Empty(t, d.Changed)
	require.Len(t, d.EdgeChanges.Added, 1)
	assert.Equal(t, Edge{Parent: a.ID, Child: c.ID}, d.EdgeChanges.Added[0])
	assert.Empty(t, d.EdgeChanges.Removed)
	require.Len(t, d.Added, 1)
	assert.Equal(t, c.ID, d.Added[0].ID)
}

// Property 3: diffing two equal, normalized SBOMs yields an empty Diff.
func TestDiffEqualSBOMsIsEmpty(t *testing.T) {
	old := normalized(purlComponent("pkg:npm/a@1.0.0", "a", "1.0.0"))
	newSbom := normalized(purlComponent("pkg:npm/a@1.0.0", "a", "1.0.0"))

	d := Diff(old, newSbom, nil)
	assert.True(t, d.IsEmpty())
}

// Property 4: self-diff is empty for every field filter.
func TestDiffSelfIsEmptyForEveryFilter(t *testing.T) {
	s := normalized(purlComponent("pkg:npm/a@1.0.0", "a", "1.0.0"))
	for _, filter := range [][]Field{nil, {}, AllFields, {FieldDeps}, {FieldVersion, FieldLicense}} {
		d := Diff(s, s, filter)
		assert.True(t, d.IsEmpty(), "filter %v produced a non-empty self-diff", filter)
	}
}

// Property 5: swapping old/new swaps added/removed and edge changes.
func TestDiffSwappingArgumentsSwapsAddedRemoved(t *testing.T) {
	old := normalized(purlComponent("pkg:npm/a@1.0.0", "a", "1.0.0"))
	newSbom := normalized(
		purlComponent("pkg:npm/a@1.0.0", "a", "1.0.0"),
		purlComponent("pkg:npm/b@1.0.0", "b", "1.0.0"),
	)

	forward := Diff(old, newSbom, nil)
	backward := Diff(newSbom, old, nil)

	assert.Equal(t, forward.Added, backward.Removed)
	assert.Equal(t, forward.Removed, backward.Added)
}

// A removed component that was a dependency parent or child must still
// surface its edge in EdgeChanges.Removed, not silently drop it.
func TestDiffEdgeToRemovedComponentIsReportedRemoved(t *testing.T) {
	a := purlComponent("pkg:npm/a@1.0.0", "a", "1.0.0")
	b := purlComponent("pkg:npm/b@1.0.0", "b", "1.0.0")

	old := model.New()
	old.AddComponent(a)
	old.AddComponent(b)
	old.AddEdge(a.ID, b.ID)
	old.Normalize()

	newSbom := model.New()
	newSbom.AddComponent(a)
	newSbom.Normalize()

	d := Diff(old, newSbom, []Field{FieldDeps})

	require.Len(t, d.EdgeChanges.Removed, 1)
	assert.Equal(t, Edge{Parent: a.ID, Child: b.ID}, d.EdgeChanges.Removed[0])
	assert.Empty(t, d.EdgeChanges.Added)

	// Swapping the arguments must swap the edge into Added, not drop it.
	backward := Diff(newSbom, old, []Field{FieldDeps})
	require.Len(t, backward.EdgeChanges.Added, 1)
	assert.Equal(t, Edge{Parent: a.ID, Child: b.ID}, backward.EdgeChanges.Added[0])
}

// S6 — cross-format diff collapses to an empty Diff once both sides resolve
// to the same purl-derived ComponentId.
func TestDiffCrossFormatSamePurlIsEmpty(t *testing.T) {
	old := normalized(purlComponent("pkg:cargo/serde@1.0.0", "serde", "1.0.0"))
	newSbom := normalized(purlComponent("pkg:cargo/serde@1.0.0", "serde", "1.0.0"))

	d := Diff(old, newSbom, nil)
	assert.True(t, d.IsEmpty())
}
