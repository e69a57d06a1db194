package differ

// Field names a comparable attribute of a Component. A nil filter in Diff
// means "all fields"; an empty, non-nil filter means "no field changes,
// only add/remove/edge detection".
type Field string

const (
	FieldVersion  Field = "version"
	FieldLicense  Field = "license"
	FieldSupplier Field = "supplier"
	FieldPurl     Field = "purl"
	FieldHashes   Field = "hashes"
	FieldDeps     Field = "deps"
)

// AllFields lists every Field in the canonical order used when no filter is
// supplied.
var AllFields = []Field{FieldVersion, FieldLicense, FieldSupplier, FieldPurl, FieldHashes, FieldDeps}

func wants(filter []Field, f Field) bool {
	if filter == nil {
		return true
	}
	for _, want := range filter {
		if want == f {
			return true
		}
	}
	return false
}
