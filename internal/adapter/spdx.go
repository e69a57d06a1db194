package adapter

import (
	"bytes"

	"github.com/sbomdiff/sbomdiff/internal/model"
	"github.com/sbomdiff/sbomdiff/internal/sbomerr"
	spdxjson "github.com/spdx/tools-golang/json"
	"github.com/spdx/tools-golang/spdx"
)

// edgeRelationships are the SPDX relationship types that become dependency
// edges; all others (DESCRIBED_BY, GENERATED_FROM, etc.) are ignored.
var edgeRelationships = map[string]bool{
	"DEPENDS_ON": true,
	"CONTAINS":   true,
	"DESCRIBES":  true,
}

// ReadSPDX decodes an SPDX 2.3 JSON document into an unnormalized Sbom.
// SPDXID values are recorded into each Component's SourceIDs; edges are
// resolved from relationships of type DEPENDS_ON, CONTAINS, or DESCRIBES via
// a source-id lookup table built while reading packages.
func ReadSPDX(data []byte) (*model.Sbom, error) {
	doc, err := spdxjson.Read(bytes.NewReader(data))
	if err != nil {
		return nil, sbomerr.NewParseError("spdx", 0, err)
	}

	s := model.New()
	if doc.CreationInfo != nil && doc.CreationInfo.Created != "" {
		s.Metadata["created"] = doc.CreationInfo.Created
	}
	if doc.DocumentNamespace != "" {
		s.Metadata["documentNamespace"] = doc.DocumentNamespace
	}

	byID := make(map[string]*model.Component)

	for _, pkg := range doc.Packages {
		comp := componentFromSPDX(pkg)
		s.AddComponent(comp)
		byID[string(pkg.PackageSPDXIdentifier)] = comp
	}
	// The document's own SPDXID can appear as the source of a DESCRIBES
	// relationship; it never names a component, so DESCRIBES edges whose
	// parent is the document id are dropped by the byID lookup miss below.

	for _, rel := range doc.Relationships {
		if !edgeRelationships[rel.Relationship] {
			continue
		}
		parent, ok := byID[string(rel.RefA.ElementRefID)]
		if !ok {
			continue
		}
		child, ok := byID[string(rel.RefB.ElementRefID)]
		if !ok {
			continue
		}
		s.AddEdge(parent.ID, child.ID)
	}

	return s, nil
}

func componentFromSPDX(pkg *spdx.Package) *model.Component {
	comp := model.NewComponent(pkg.PackageName, pkg.PackageVersion)
	spdxID := string(pkg.PackageSPDXIdentifier)
	if spdxID != "" {
		comp.AddSourceID(spdxID)
	}
	comp.ID = model.NewComponentID("", []model.Field{{"name", pkg.PackageName}, {"version", pkg.PackageVersion}, {"spdxid", spdxID}})

	for _, ref := range pkg.PackageExternalReferences {
		switch ref.RefType {
		case spdx.PackageManagerPURL, "purl":
			comp.SetPurl(ref.Locator)
		case "cpe22Type", "cpe23Type":
			// CPEs are not part of this model's fallback-identity fields;
			// spec.md's identity construction uses only purl or
			// (name, version, supplier).
		}
	}

	if pkg.PackageLicenseConcluded != "" {
		comp.Licenses = append(comp.Licenses, expandSPDXExpression(pkg.PackageLicenseConcluded)...)
	}

	for _, cs := range pkg.PackageChecksums {
		comp.Hashes[string(cs.Algorithm)] = cs.Value
	}

	if pkg.PackageSupplier != nil && pkg.PackageSupplier.Supplier != "" {
		comp.Supplier = pkg.PackageSupplier.Supplier
	}

	return comp
}
