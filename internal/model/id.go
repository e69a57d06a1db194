package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ComponentId is an opaque, stable identity for a Component. It is either a
// package URL verbatim, or a "h:"-prefixed hex digest computed from a set of
// fallback fields. Equality is string equality; ordering is lexicographic.
type ComponentId string

// Field is a (name, value) pair fed into the hash form of ComponentId, in
// caller-supplied order. Callers canonicalize order by convention: name,
// version, supplier.
type Field [2]string

// NewComponentID computes a ComponentId from a purl, or from fields when purl
// is empty. It is a pure function: same inputs always produce the same id.
func NewComponentID(purl string, fields []Field) ComponentId {
	if purl != "" {
		return ComponentId(purl)
	}
	return ComponentId("h:" + hashFields(fields))
}

func hashFields(fields []Field) string {
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(f[0])
		b.WriteByte('=')
		b.WriteString(f[1])
		b.WriteByte('\n')
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func (id ComponentId) String() string {
	return string(id)
}

// IsPurl reports whether id has the purl shape ("pkg:" prefix). Hash-form
// ids and any other provisional id (e.g. a raw bom-ref) report false, so the
// normalizer re-derives them.
func (id ComponentId) IsPurl() bool {
	return strings.HasPrefix(string(id), "pkg:")
}

// ecosystemOfPurl extracts the purl "type" segment (e.g. "npm" from
// "pkg:npm/left-pad@1.3.0"), or "" if id is not a well-formed purl.
func ecosystemOfPurl(purl string) string {
	const prefix = "pkg:"
	if !strings.HasPrefix(purl, prefix) {
		return ""
	}
	rest := purl[len(prefix):]
	slash := strings.IndexByte(rest, '/')
	if slash < 0 {
		return ""
	}
	return rest[:slash]
}
