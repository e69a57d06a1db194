package model

import "sort"

// Roots returns the ids of components that never appear as a child edge.
// Order is ascending lexicographic.
func (s *Sbom) Roots() []ComponentId {
	isChild := make(map[ComponentId]struct{})
	for _, children := range s.Dependencies {
		for _, c := range children {
			isChild[c] = struct{}{}
		}
	}
	var roots []ComponentId
	for id := range s.components {
		if _, ok := isChild[id]; !ok {
			roots = append(roots, id)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })
	return roots
}

// Deps returns the direct children of id in ascending lexicographic order.
func (s *Sbom) Deps(id ComponentId) []ComponentId {
	children := append([]ComponentId(nil), s.Dependencies[id]...)
	sort.Slice(children, func(i, j int) bool { return children[i] < children[j] })
	return children
}

// RDeps returns the direct parents of id in ascending lexicographic order.
// Computed on demand; the Sbom does not maintain a persistent reverse index.
func (s *Sbom) RDeps(id ComponentId) []ComponentId {
	var parents []ComponentId
	for parent, children := range s.Dependencies {
		for _, c := range children {
			if c == id {
				parents = append(parents, parent)
				break
			}
		}
	}
	sort.Slice(parents, func(i, j int) bool { return parents[i] < parents[j] })
	return parents
}

// TransitiveDeps returns every id reachable from id via forward edges,
// breadth-first, excluding id itself unless a cycle loops back through it.
// The result is lexicographically ordered.
func (s *Sbom) TransitiveDeps(id ComponentId) []ComponentId {
	visited := make(map[ComponentId]struct{})
	queue := append([]ComponentId(nil), s.Dependencies[id]...)
	reached := make(map[ComponentId]struct{})
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if _, ok := visited[cur]; ok {
			continue
		}
		visited[cur] = struct{}{}
		reached[cur] = struct{}{}
		queue = append(queue, s.Dependencies[cur]...)
	}
	out := make([]ComponentId, 0, len(reached))
	for id := range reached {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Ecosystems returns the lexicographic, deduplicated union of Ecosystem
// across all components (empty ecosystems are excluded).
func (s *Sbom) Ecosystems() []string {
	set := make(map[string]struct{})
	for _, c := range s.components {
		if c.Ecosystem != "" {
			set[c.Ecosystem] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// Licenses returns the lexicographic, deduplicated union of licenses across
// all components.
func (s *Sbom) Licenses() []string {
	set := make(map[string]struct{})
	for _, c := range s.components {
		for _, l := range c.Licenses {
			set[l] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// MissingHashes returns the ids of components with an empty Hashes mapping,
// in lexicographic order.
func (s *Sbom) MissingHashes() []ComponentId {
	var out []ComponentId
	for id, c := range s.components {
		if len(c.Hashes) == 0 {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ByPurl returns the component whose Purl equals purl, or (nil, false) if
// none matches. If the model invariant that purls are unique is violated,
// which component is returned is unspecified.
func (s *Sbom) ByPurl(purl string) (*Component, bool) {
	for _, c := range s.components {
		if c.Purl == purl {
			return c, true
		}
	}
	return nil, false
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
