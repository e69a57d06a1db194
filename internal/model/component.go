package model

// Component is a single entry in an Sbom: a package, library, or other
// software unit along with the metadata needed to identify and compare it
// across two bills of materials.
type Component struct {
	ID        ComponentId
	Name      string
	Version   string // optional; empty means absent
	Purl      string // optional
	Ecosystem string // derived from Purl's "type" segment; empty if Purl is empty or malformed
	Licenses  []string
	Hashes    map[string]string // algorithm name (lowercase after normalize) -> checksum value
	Supplier  string            // optional; empty means absent
	SourceIDs map[string]struct{} // original bom-ref / SPDXID values an adapter used to resolve edges
}

// NewComponent constructs a Component with derived fields left empty, as
// required by the Model contract: identity is assigned by the caller or by
// Sbom.Normalize.
func NewComponent(name, version string) *Component {
	return &Component{
		Name:      name,
		Version:   version,
		Hashes:    make(map[string]string),
		SourceIDs: make(map[string]struct{}),
	}
}

// SetPurl assigns Purl, recomputing Ecosystem, and recomputing ID only when
// ID was not already purl-derived (so repeated assignment is idempotent).
func (c *Component) SetPurl(purl string) {
	c.Purl = purl
	c.Ecosystem = ecosystemOfPurl(purl)
	if purl != "" && (c.ID == "" || !c.ID.IsPurl()) {
		c.ID = ComponentId(purl)
	}
}

// AddSourceID records an original bom-ref / SPDXID value so dependency edges
// expressed against that identifier can be resolved back to this component.
func (c *Component) AddSourceID(id string) {
	if id == "" {
		return
	}
	if c.SourceIDs == nil {
		c.SourceIDs = make(map[string]struct{})
	}
	c.SourceIDs[id] = struct{}{}
}

// HasVersion reports whether Version is present (non-empty).
func (c *Component) HasVersion() bool { return c.Version != "" }

// clone returns a deep copy of c. Sbom.Normalize does not use it: it
// canonicalizes components in place.
func (c *Component) clone() *Component {
	cp := *c
	if c.Licenses != nil {
		cp.Licenses = append([]string(nil), c.Licenses...)
	}
	if c.Hashes != nil {
		cp.Hashes = make(map[string]string, len(c.Hashes))
		for k, v := range c.Hashes {
			cp.Hashes[k] = v
		}
	}
	if c.SourceIDs != nil {
		cp.SourceIDs = make(map[string]struct{}, len(c.SourceIDs))
		for k := range c.SourceIDs {
			cp.SourceIDs[k] = struct{}{}
		}
	}
	return &cp
}
