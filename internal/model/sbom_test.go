package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func componentWithPurl(purl, version string) *Component {
	c := NewComponent("left-pad", version)
	c.SetPurl(purl)
	return c
}

func TestNormalizeIsIdempotent(t *testing.T) {
	s := New()
	c := componentWithPurl("pkg:npm/left-pad@1.3.0", "1.3.0")
	c.Licenses = []string{"MIT", "MIT", "Apache-2.0"}
	c.Hashes = map[string]string{"SHA-256": " ABCDEF "}
	s.AddComponent(c)

	s.Normalize()
	first := s.Components()[0]
	firstLicenses := append([]string(nil), first.Licenses...)
	firstHashes := map[string]string{}
	for k, v := range first.Hashes {
		firstHashes[k] = v
	}

	s.Normalize()
	second := s.Components()[0]

	assert.Equal(t, firstLicenses, second.Licenses)
	assert.Equal(t, firstHashes, second.Hashes)
	assert.True(t, s.Normalized())
}

func TestNormalizeSortsAndDedupsLicenses(t *testing.T) {
	s := New()
	c := componentWithPurl("pkg:npm/foo@1.0.0", "1.0.0")
	c.Licenses = []string{"MIT", "Apache-2.0", "MIT"}
	s.AddComponent(c)
	s.Normalize()

	got, _ := s.Component(ComponentId("pkg:npm/foo@1.0.0"))
	require.Equal(t, []string{"Apache-2.0", "MIT"}, got.Licenses)
}

func TestNormalizeLowersHashAlgoAndValue(t *testing.T) {
	s := New()
	c := componentWithPurl("pkg:npm/foo@1.0.0", "1.0.0")
	c.Hashes = map[string]string{"SHA-256": "  DEADBEEF\n"}
	s.AddComponent(c)
	s.Normalize()

	got, _ := s.Component(ComponentId("pkg:npm/foo@1.0.0"))
	require.Equal(t, map[string]string{"sha-256": "deadbeef"}, got.Hashes)
}

func TestNormalizeReassignsIDForNonPurlComponents(t *testing.T) {
	s := New()
	c := NewComponent("internal-tool", "2.0.0")
	c.Supplier = "Acme"
	c.ID = ComponentId("some-transient-bom-ref")
	s.AddComponent(c)
	s.Normalize()

	want := NewComponentID("", []Field{{"name", "internal-tool"}, {"version", "2.0.0"}, {"supplier", "Acme"}})
	_, ok := s.Component(want)
	require.True(t, ok, "expected component reachable under its recomputed hash id")
}

func TestNormalizeDropsEdgesToMissingComponents(t *testing.T) {
	s := New()
	a := componentWithPurl("pkg:npm/a@1.0.0", "1.0.0")
	s.AddComponent(a)
	s.AddEdge(a.ID, ComponentId("pkg:npm/ghost@9.9.9"))
	s.Normalize()

	assert.Empty(t, s.Deps(a.ID))
}

func TestNormalizeStripsVolatileMetadata(t *testing.T) {
	s := New()
	s.Metadata["timestamp"] = "2024-01-01T00:00:00Z"
	s.Metadata["toolVersion"] = "1.2.3"
	s.Metadata["component-count"] = 3
	s.Normalize()

	assert.NotContains(t, s.Metadata, "timestamp")
	assert.NotContains(t, s.Metadata, "toolVersion")
	assert.Contains(t, s.Metadata, "component-count")
}

func buildGraph(t *testing.T) *Sbom {
	t.Helper()
	s := New()
	a := componentWithPurl("pkg:npm/a@1.0.0", "1.0.0")
	b := componentWithPurl("pkg:npm/b@1.0.0", "1.0.0")
	c := componentWithPurl("pkg:npm/c@1.0.0", "1.0.0")
	s.AddComponent(a)
	s.AddComponent(b)
	s.AddComponent(c)
	s.AddEdge(a.ID, b.ID)
	s.AddEdge(b.ID, c.ID)
	s.Normalize()
	return s
}

func TestQueryRootsDepsRDeps(t *testing.T) {
	s := buildGraph(t)
	a := ComponentId("pkg:npm/a@1.0.0")
	b := ComponentId("pkg:npm/b@1.0.0")
	c := ComponentId("pkg:npm/c@1.0.0")

	assert.Equal(t, []ComponentId{a}, s.Roots())
	assert.Equal(t, []ComponentId{b}, s.Deps(a))
	assert.Equal(t, []ComponentId{a}, s.RDeps(b))
	assert.Equal(t, []ComponentId{b, c}, s.TransitiveDeps(a))
}

func TestQueryMissingHashes(t *testing.T) {
	s := New()
	a := componentWithPurl("pkg:npm/a@1.0.0", "1.0.0")
	a.Hashes = map[string]string{"sha-256": "aa"}
	b := componentWithPurl("pkg:npm/b@1.0.0", "1.0.0")
	s.AddComponent(a)
	s.AddComponent(b)
	s.Normalize()

	assert.Equal(t, []ComponentId{b.ID}, s.MissingHashes())
}
