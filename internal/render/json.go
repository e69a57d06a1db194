package render

import (
	"encoding/json"
	"io"

	"github.com/sbomdiff/sbomdiff/internal/differ"
)

type jsonDoc struct {
	Summary     jsonSummary      `json:"summary"`
	Added       []jsonComponent  `json:"added"`
	Removed     []jsonComponent  `json:"removed"`
	Changed     []jsonChanged    `json:"changed"`
	EdgeChanges jsonEdgeChanges  `json:"edge_changes"`
}

type jsonSummary struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
	Changed int `json:"changed"`
}

type jsonComponent struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

type jsonChanged struct {
	ID      string            `json:"id"`
	Changes []jsonFieldChange `json:"changes"`
}

type jsonFieldChange struct {
	Field string `json:"field"`
	Old   any    `json:"old"`
	New   any    `json:"new"`
}

type jsonEdge struct {
	Parent string `json:"parent"`
	Child  string `json:"child"`
}

type jsonEdgeChanges struct {
	Added   []jsonEdge `json:"added"`
	Removed []jsonEdge `json:"removed"`
}

// JSON renders diff as the stable JSON schema: summary counts, then
// added/removed component lists, a changed list with per-field before/after
// values, and edge_changes for dependency additions and removals.
func JSON(w io.Writer, diff *differ.Diff) error {
	doc := jsonDoc{
		Summary: jsonSummary{
			Added:   len(diff.Added),
			Removed: len(diff.Removed),
			Changed: len(diff.Changed),
		},
		Added:   make([]jsonComponent, 0, len(diff.Added)),
		Removed: make([]jsonComponent, 0, len(diff.Removed)),
		Changed: make([]jsonChanged, 0, len(diff.Changed)),
	}

	for _, c := range diff.Added {
		doc.Added = append(doc.Added, jsonComponent{ID: string(c.ID), Name: c.Name, Version: c.Version})
	}
	for _, c := range diff.Removed {
		doc.Removed = append(doc.Removed, jsonComponent{ID: string(c.ID), Name: c.Name, Version: c.Version})
	}
	for _, c := range diff.Changed {
		jc := jsonChanged{ID: string(c.ID), Changes: make([]jsonFieldChange, 0, len(c.Changes))}
		for _, fc := range c.Changes {
			jc.Changes = append(jc.Changes, jsonFieldChange{
				Field: string(fc.Kind),
				Old:   fieldOldValue(fc),
				New:   fieldNewValue(fc),
			})
		}
		doc.Changed = append(doc.Changed, jc)
	}

	for _, e := range diff.EdgeChanges.Added {
		doc.EdgeChanges.Added = append(doc.EdgeChanges.Added, jsonEdge{Parent: string(e.Parent), Child: string(e.Child)})
	}
	for _, e := range diff.EdgeChanges.Removed {
		doc.EdgeChanges.Removed = append(doc.EdgeChanges.Removed, jsonEdge{Parent: string(e.Parent), Child: string(e.Child)})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func fieldOldValue(fc differ.FieldChange) any {
	switch fc.Kind {
	case differ.FieldVersion:
		return fc.VersionOld
	case differ.FieldLicense:
		return fc.LicenseOld
	case differ.FieldSupplier:
		return fc.SupplierOld
	case differ.FieldPurl:
		return fc.PurlOld
	case differ.FieldHashes:
		return fc.HashesOld
	default:
		return nil
	}
}

func fieldNewValue(fc differ.FieldChange) any {
	switch fc.Kind {
	case differ.FieldVersion:
		return fc.VersionNew
	case differ.FieldLicense:
		return fc.LicenseNew
	case differ.FieldSupplier:
		return fc.SupplierNew
	case differ.FieldPurl:
		return fc.PurlNew
	case differ.FieldHashes:
		return fc.HashesNew
	default:
		return nil
	}
}
