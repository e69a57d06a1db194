// Package differ implements the two-pass reconciliation and diff engine: it
// matches components across two SBOMs first by canonical identity and then
// by an (ecosystem, name) identity fallback, and emits a structured diff of
// per-field changes and dependency-edge changes.
package differ

import (
	"sort"
	"strings"

	"github.com/sbomdiff/sbomdiff/internal/model"
)

// ComponentRef is a lightweight reference to an added or removed component,
// carrying enough context to render without a second model lookup.
type ComponentRef struct {
	ID      model.ComponentId
	Name    string
	Version string
}

// FieldChange describes a single field's before/after values for a changed
// component. Exactly one group of Old*/New* fields is populated, selected by
// Kind, mirroring the tagged-variant contract of spec.md's FieldChange.
type FieldChange struct {
	Kind Field

	VersionOld, VersionNew string

	LicenseOld, LicenseNew []string

	SupplierOld, SupplierNew *string
	PurlOld, PurlNew         *string

	HashesOld, HashesNew map[string]string
}

// ChangedComponent pairs an id with the field changes detected for it. A
// ChangedComponent with no changes is never produced.
type ChangedComponent struct {
	ID      model.ComponentId
	Changes []FieldChange
}

// Edge is a parent->child dependency edge as (parent, child) ids.
type Edge struct {
	Parent model.ComponentId
	Child  model.ComponentId
}

// EdgeChanges holds added and removed dependency edges, each lexicographically
// sorted by (parent, child).
type EdgeChanges struct {
	Added   []Edge
	Removed []Edge
}

// Diff is the structured result of comparing two normalized SBOMs.
type Diff struct {
	Added       []ComponentRef
	Removed     []ComponentRef
	Changed     []ChangedComponent
	EdgeChanges EdgeChanges
}

// IsEmpty reports whether the diff carries no changes at all.
func (d *Diff) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0 &&
		len(d.EdgeChanges.Added) == 0 && len(d.EdgeChanges.Removed) == 0
}

// pairing maps an old-side id to its matched new-side id, built across both
// matching passes, used afterwards to remap dependency edges.
type pairing map[model.ComponentId]model.ComponentId

// Diff compares old and new, both expected to be normalized, and returns the
// structured Diff. fields is nil for "all fields", or a (possibly empty)
// subset restricting which FieldChange kinds (and whether EdgeChanges is
// populated) are produced.
func Diff(old, newSbom *model.Sbom, fields []Field) *Diff {
	oldRest, newRest, pairs := matchComponents(old, newSbom)

	diff := &Diff{}

	for _, id := range sortedIDs(oldRest) {
		c := oldRest[id]
		diff.Removed = append(diff.Removed, ComponentRef{ID: id, Name: c.Name, Version: c.Version})
	}
	for _, id := range sortedIDs(newRest) {
		c := newRest[id]
		diff.Added = append(diff.Added, ComponentRef{ID: id, Name: c.Name, Version: c.Version})
	}

	var pairedOldIDs []model.ComponentId
	for oldID := range pairs {
		pairedOldIDs = append(pairedOldIDs, oldID)
	}
	sort.Slice(pairedOldIDs, func(i, j int) bool { return pairedOldIDs[i] < pairedOldIDs[j] })

	for _, oldID := range pairedOldIDs {
		newID := pairs[oldID]
		o, _ := old.Component(oldID)
		n, _ := newSbom.Component(newID)
		changes := compareFields(o, n, fields)
		if len(changes) > 0 {
			diff.Changed = append(diff.Changed, ChangedComponent{ID: newID, Changes: changes})
		}
	}
	sort.Slice(diff.Changed, func(i, j int) bool { return diff.Changed[i].ID < diff.Changed[j].ID })

	if wants(fields, FieldDeps) {
		diff.EdgeChanges = diffEdges(old, newSbom, pairs)
	}

	return diff
}

// matchComponents runs both matching passes and returns the unmatched
// remainders plus a pairing of every matched old id to its new id.
func matchComponents(old, newSbom *model.Sbom) (oldRest, newRest map[model.ComponentId]*model.Component, pairs pairing) {
	oldRest = make(map[model.ComponentId]*model.Component)
	for _, c := range old.Components() {
		oldRest[c.ID] = c
	}
	newRest = make(map[model.ComponentId]*model.Component)
	for _, c := range newSbom.Components() {
		newRest[c.ID] = c
	}
	pairs = make(pairing)

	// Pass 1: identity match.
	for id := range newRest {
		if _, ok := oldRest[id]; ok {
			pairs[id] = id
			delete(oldRest, id)
			delete(newRest, id)
		}
	}

	// Pass 2: (ecosystem, name) reconciliation.
	type key struct{ ecosystem, nameLower string }
	candidates := make(map[key][]*model.Component)
	for _, c := range oldRest {
		k := key{c.Ecosystem, strings.ToLower(c.Name)}
		candidates[k] = append(candidates[k], c)
	}
	for k := range candidates {
		sort.Slice(candidates[k], func(i, j int) bool { return candidates[k][i].ID < candidates[k][j].ID })
	}

	for _, newID := range sortedIDs(newRest) {
		nc := newRest[newID]
		k := key{nc.Ecosystem, strings.ToLower(nc.Name)}
		list := candidates[k]
		if len(list) == 0 {
			continue
		}
		var chosen *model.Component
		if len(list) == 1 {
			chosen = list[0]
		} else {
			for _, cand := range list {
				if cand.Version == nc.Version {
					chosen = cand
					break
				}
			}
			if chosen == nil {
				chosen = list[0]
			}
		}
		pairs[chosen.ID] = newID
		delete(oldRest, chosen.ID)
		delete(newRest, newID)
		candidates[k] = removeComponent(list, chosen)
	}

	return oldRest, newRest, pairs
}

func removeComponent(list []*model.Component, target *model.Component) []*model.Component {
	out := make([]*model.Component, 0, len(list)-1)
	for _, c := range list {
		if c.ID != target.ID {
			out = append(out, c)
		}
	}
	return out
}

func sortedIDs(m map[model.ComponentId]*model.Component) []model.ComponentId {
	ids := make([]model.ComponentId, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func diffEdges(old, newSbom *model.Sbom, pairs pairing) EdgeChanges {
	mapToNew := func(id model.ComponentId) (model.ComponentId, bool) {
		newID, ok := pairs[id]
		return newID, ok
	}

	// Edges are mapped into the new id-space where a counterpart exists; an
	// endpoint with no counterpart (its component was removed) keeps its old
	// id instead of being dropped, so the edge can never collide with a real
	// new-side edge and is reported in EdgeChanges.Removed below.
	oldEdgesOnNewSide := make(map[Edge]struct{})
	for _, parent := range old.Components() {
		parentID := parent.ID
		if newParent, ok := mapToNew(parent.ID); ok {
			parentID = newParent
		}
		for _, child := range old.Deps(parent.ID) {
			childID := child
			if newChild, ok := mapToNew(child); ok {
				childID = newChild
			}
			oldEdgesOnNewSide[Edge{Parent: parentID, Child: childID}] = struct{}{}
		}
	}

	newEdges := make(map[Edge]struct{})
	for _, parent := range newSbom.Components() {
		for _, child := range newSbom.Deps(parent.ID) {
			newEdges[Edge{Parent: parent.ID, Child: child}] = struct{}{}
		}
	}

	var changes EdgeChanges
	for e := range newEdges {
		if _, ok := oldEdgesOnNewSide[e]; !ok {
			changes.Added = append(changes.Added, e)
		}
	}
	for e := range oldEdgesOnNewSide {
		if _, ok := newEdges[e]; !ok {
			changes.Removed = append(changes.Removed, e)
		}
	}
	sortEdges(changes.Added)
	sortEdges(changes.Removed)
	return changes
}

func sortEdges(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Parent != edges[j].Parent {
			return edges[i].Parent < edges[j].Parent
		}
		return edges[i].Child < edges[j].Child
	})
}
