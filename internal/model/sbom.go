// Package model defines the canonical SBOM data model: Component and Sbom
// entities, deterministic identity assignment, and the normalization pass
// that makes two semantically-equal SBOMs bit-identical for diffing.
package model

import (
	"regexp"
	"sort"
	"strings"
)

// Sbom is a mutable container of components and the dependency edges between
// them. It is mutable until Normalize is called; after that the Differ
// assumes it is effectively frozen.
type Sbom struct {
	Metadata map[string]any

	components map[ComponentId]*Component
	order      []ComponentId // insertion order pre-normalize, ascending-id order after

	// Dependencies maps a parent id to its children. Edges are parent -> child.
	Dependencies map[ComponentId][]ComponentId

	normalized bool
}

// New returns an empty, unnormalized Sbom.
func New() *Sbom {
	return &Sbom{
		Metadata:     make(map[string]any),
		components:   make(map[ComponentId]*Component),
		Dependencies: make(map[ComponentId][]ComponentId),
	}
}

// AddComponent inserts or replaces a component by its current ID. Insertion
// order is preserved for the first time an id is added.
func (s *Sbom) AddComponent(c *Component) {
	if _, exists := s.components[c.ID]; !exists {
		s.order = append(s.order, c.ID)
	}
	s.components[c.ID] = c
	s.normalized = false
}

// AddEdge records a parent -> child dependency edge.
func (s *Sbom) AddEdge(parent, child ComponentId) {
	s.Dependencies[parent] = append(s.Dependencies[parent], child)
	s.normalized = false
}

// Component looks up a component by id.
func (s *Sbom) Component(id ComponentId) (*Component, bool) {
	c, ok := s.components[id]
	return c, ok
}

// Components returns all components in the Sbom's current iteration order:
// insertion order before Normalize, ascending id order after.
func (s *Sbom) Components() []*Component {
	out := make([]*Component, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.components[id])
	}
	return out
}

// Len reports the number of components.
func (s *Sbom) Len() int { return len(s.components) }

// volatileMetadataKey matches the case-insensitive metadata key patterns
// Normalize strips: timestamps, tool provenance, and document identifiers
// that vary between functionally-identical SBOM generations.
var volatileMetadataKey = regexp.MustCompile(`(?i)timestamp|created|creationinfo|tools|toolversion|serialnumber|documentnamespace`)

// Normalize canonicalizes the Sbom in place, in the five-step order: ID
// reassignment, field canonicalization, metadata scrubbing, container
// reordering, edge sanitisation. It is idempotent.
func (s *Sbom) Normalize() {
	// Step 1: ID reassignment for components lacking a purl-derived id.
	reassigned := make(map[ComponentId]ComponentId, len(s.components))
	newComponents := make(map[ComponentId]*Component, len(s.components))
	for oldID, c := range s.components {
		if c.Purl != "" {
			c.ID = ComponentId(c.Purl)
		} else if !c.ID.IsPurl() {
			c.ID = NewComponentID("", []Field{
				{"name", c.Name},
				{"version", c.Version},
				{"supplier", c.Supplier},
			})
		}
		reassigned[oldID] = c.ID
		newComponents[c.ID] = c
	}
	s.components = newComponents

	// Step 2: field canonicalization.
	for _, c := range s.components {
		c.Licenses = sortDedup(c.Licenses)
		if c.Hashes != nil {
			lowered := make(map[string]string, len(c.Hashes))
			for algo, val := range c.Hashes {
				lowered[strings.ToLower(algo)] = strings.ToLower(stripWhitespace(val))
			}
			c.Hashes = lowered
		}
	}

	// Step 3: metadata scrubbing.
	for k := range s.Metadata {
		if volatileMetadataKey.MatchString(k) {
			delete(s.Metadata, k)
		}
	}

	// Step 5 (computed before step 4's reorder so remapped edges feed it):
	// remap edge endpoints through any id reassignment, then sanitise.
	remapped := make(map[ComponentId][]ComponentId, len(s.Dependencies))
	for parent, children := range s.Dependencies {
		newParent, ok := reassigned[parent]
		if !ok {
			newParent = parent
		}
		if _, exists := s.components[newParent]; !exists {
			continue
		}
		seen := make(map[ComponentId]struct{}, len(children))
		var kept []ComponentId
		for _, child := range children {
			newChild, ok := reassigned[child]
			if !ok {
				newChild = child
			}
			if _, exists := s.components[newChild]; !exists {
				continue
			}
			if _, dup := seen[newChild]; dup {
				continue
			}
			seen[newChild] = struct{}{}
			kept = append(kept, newChild)
		}
		if len(kept) > 0 {
			sort.Slice(kept, func(i, j int) bool { return kept[i] < kept[j] })
			remapped[newParent] = append(remapped[newParent], kept...)
		}
	}
	for parent, children := range remapped {
		sort.Slice(children, func(i, j int) bool { return children[i] < children[j] })
		remapped[parent] = children
	}
	s.Dependencies = remapped

	// Step 4: container reordering.
	ids := make([]ComponentId, 0, len(s.components))
	for id := range s.components {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	s.order = ids

	s.normalized = true
}

// Normalized reports whether Normalize has run since the last mutation.
func (s *Sbom) Normalized() bool { return s.normalized }

func sortDedup(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func stripWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
