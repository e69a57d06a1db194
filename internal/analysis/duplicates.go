package analysis

import (
	"sort"
	"strings"

	"github.com/sbomdiff/sbomdiff/internal/model"
)

// DuplicateGroup is a set of components sharing an (ecosystem, name) pair
// but assigned distinct ids, e.g. two versions of the same package present
// in one SBOM.
type DuplicateGroup struct {
	Ecosystem string
	Name      string
	IDs       []model.ComponentId
}

func versionsOf(g DuplicateGroup) []model.ComponentId { return g.IDs }

// FindDuplicates groups s's components by (ecosystem, name) and returns
// every group with more than one distinct id, in ascending name order.
func FindDuplicates(s *model.Sbom) []DuplicateGroup {
	type key struct{ ecosystem, name string }
	groups := make(map[key][]model.ComponentId)
	for _, c := range s.Components() {
		k := key{c.Ecosystem, strings.ToLower(c.Name)}
		groups[k] = append(groups[k], c.ID)
	}

	var out []DuplicateGroup
	for k, ids := range groups {
		if len(ids) < 2 {
			continue
		}
		sorted := append([]model.ComponentId(nil), ids...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		out = append(out, DuplicateGroup{Ecosystem: k.ecosystem, Name: k.name, IDs: sorted})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Ecosystem < out[j].Ecosystem
	})
	return out
}
