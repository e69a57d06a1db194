package adapter

import (
	"bytes"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/sbomdiff/sbomdiff/internal/model"
	"github.com/sbomdiff/sbomdiff/internal/sbomerr"
)

// ReadCycloneDX decodes a CycloneDX 1.4+ JSON document into an unnormalized
// Sbom. bom-ref values are recorded into each Component's SourceIDs, and the
// top-level dependencies array is the sole edge source, per the adapter
// contract.
func ReadCycloneDX(data []byte) (*model.Sbom, error) {
	decoder := cdx.NewBOMDecoder(bytes.NewReader(data), cdx.BOMFileFormatJSON)
	var bom cdx.BOM
	if err := decoder.Decode(&bom); err != nil {
		return nil, sbomerr.NewParseError("cyclonedx", 0, err)
	}

	s := model.New()
	if bom.Metadata != nil && bom.Metadata.Timestamp != "" {
		s.Metadata["timestamp"] = bom.Metadata.Timestamp
	}
	if bom.SerialNumber != "" {
		s.Metadata["serialNumber"] = bom.SerialNumber
	}

	byRef := make(map[string]*model.Component)

	if bom.Components != nil {
		for _, rc := range *bom.Components {
			comp := componentFromCDX(rc)
			s.AddComponent(comp)
			if rc.BOMRef != "" {
				byRef[rc.BOMRef] = comp
			}
		}
	}

	if bom.Dependencies != nil {
		for _, dep := range *bom.Dependencies {
			parent, ok := byRef[dep.Ref]
			if !ok {
				continue
			}
			if dep.Dependencies == nil {
				continue
			}
			for _, childRef := range *dep.Dependencies {
				child, ok := byRef[childRef]
				if !ok {
					continue
				}
				s.AddEdge(parent.ID, child.ID)
			}
		}
	}

	return s, nil
}

func componentFromCDX(rc cdx.Component) *model.Component {
	comp := model.NewComponent(rc.Name, rc.Version)
	if rc.BOMRef != "" {
		comp.AddSourceID(rc.BOMRef)
	}
	// A provisional id, unique per bom-ref, so the pre-normalize component
	// map never collides two distinct source entries; Normalize recomputes
	// this from (name, version, supplier) once purls are resolved.
	comp.ID = model.NewComponentID("", []model.Field{{"name", rc.Name}, {"version", rc.Version}, {"bom-ref", rc.BOMRef}})
	if rc.PackageURL != "" {
		comp.SetPurl(rc.PackageURL)
	}
	if rc.Licenses != nil {
		for _, lc := range *rc.Licenses {
			if lc.License != nil {
				if lc.License.ID != "" {
					comp.Licenses = append(comp.Licenses, lc.License.ID)
				} else if lc.License.Name != "" {
					comp.Licenses = append(comp.Licenses, lc.License.Name)
				}
			} else if lc.Expression != "" {
				comp.Licenses = append(comp.Licenses, expandSPDXExpression(lc.Expression)...)
			}
		}
	}
	if rc.Hashes != nil {
		for _, h := range *rc.Hashes {
			comp.Hashes[string(h.Algorithm)] = h.Value
		}
	}
	if rc.Supplier != nil && rc.Supplier.Name != "" {
		comp.Supplier = rc.Supplier.Name
	}
	return comp
}
