// Package analysis holds supplemental, opt-in inspection features layered
// on top of the core model and differ packages: single-SBOM statistics,
// duplicate detection, and depth-annotated transitive dependency changes.
// None of it participates in the core Diff or Policy contracts.
package analysis

import (
	"sort"

	"github.com/sbomdiff/sbomdiff/internal/model"
)

// TransitiveChange is a transitive dependency that appeared or disappeared
// between two SBOMs, annotated with the path and depth at which it was
// reached from a root.
type TransitiveChange struct {
	Target model.ComponentId
	Via    []model.ComponentId
	Depth  int
}

// DepthSummary counts new transitive dependencies by how many hops they are
// from a root; depth 3+ is flagged separately as comparatively risky.
type DepthSummary struct {
	Depth1     int
	Depth2     int
	Depth3Plus int
}

// DiffTransitive compares the reachable sets of old and new and reports
// transitive dependencies (depth > 1, i.e. not a direct edge) that appeared
// (walked from new's roots) or disappeared (walked from old's roots).
func DiffTransitive(old, newSbom *model.Sbom) (added, removed []TransitiveChange) {
	added = transitiveDelta(old, newSbom, newSbom.Roots())
	removed = transitiveDelta(newSbom, old, old.Roots())
	return added, removed
}

func transitiveDelta(base, target *model.Sbom, roots []model.ComponentId) []TransitiveChange {
	var out []TransitiveChange
	seen := make(map[model.ComponentId]struct{})
	for _, root := range roots {
		baseReach := setOf(base.TransitiveDeps(root))
		for _, dep := range target.TransitiveDeps(root) {
			if _, ok := baseReach[dep]; ok {
				continue
			}
			if _, ok := seen[dep]; ok {
				continue
			}
			path, depth := pathTo(target, root, dep)
			if depth <= 1 {
				continue // a direct edge, not a transitive one
			}
			out = append(out, TransitiveChange{Target: dep, Via: path, Depth: depth})
			seen[dep] = struct{}{}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Target < out[j].Target })
	return out
}

func pathTo(s *model.Sbom, start, target model.ComponentId) ([]model.ComponentId, int) {
	type node struct {
		id   model.ComponentId
		path []model.ComponentId
	}
	visited := map[model.ComponentId]struct{}{start: {}}
	queue := []node{{id: start, path: []model.ComponentId{start}}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range s.Deps(cur.id) {
			if child == target {
				return append(append([]model.ComponentId(nil), cur.path...), child), len(cur.path)
			}
			if _, ok := visited[child]; ok {
				continue
			}
			visited[child] = struct{}{}
			queue = append(queue, node{id: child, path: append(append([]model.ComponentId(nil), cur.path...), child)})
		}
	}
	return nil, -1
}

func setOf(ids []model.ComponentId) map[model.ComponentId]struct{} {
	set := make(map[model.ComponentId]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// SummarizeDepth buckets a set of transitive changes by depth.
func SummarizeDepth(changes []TransitiveChange) DepthSummary {
	var s DepthSummary
	for _, c := range changes {
		switch c.Depth {
		case 1:
			s.Depth1++
		case 2:
			s.Depth2++
		default:
			s.Depth3Plus++
		}
	}
	return s
}
