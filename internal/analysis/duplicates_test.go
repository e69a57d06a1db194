package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbomdiff/sbomdiff/internal/model"
)

func TestFindDuplicatesGroupsByEcosystemAndName(t *testing.T) {
	s := model.New()
	s.AddComponent(withPurl("left-pad", "1.2.0", "pkg:npm/left-pad@1.2.0"))
	s.AddComponent(withPurl("left-pad", "1.3.0", "pkg:npm/left-pad@1.3.0"))
	s.AddComponent(withPurl("serde", "1.0.0", "pkg:cargo/serde@1.0.0"))
	s.Normalize()

	dups := FindDuplicates(s)

	require.Len(t, dups, 1)
	assert.Equal(t, "left-pad", dups[0].Name)
	assert.Equal(t, "npm", dups[0].Ecosystem)
	assert.Len(t, dups[0].IDs, 2)
}

func TestFindDuplicatesIsCaseInsensitiveOnName(t *testing.T) {
	s := model.New()
	s.AddComponent(withPurl("Left-Pad", "1.2.0", "pkg:npm/Left-Pad@1.2.0"))
	s.AddComponent(withPurl("left-pad", "1.3.0", "pkg:npm/left-pad@1.3.0"))
	s.Normalize()

	dups := FindDuplicates(s)
	require.Len(t, dups, 1)
}

func TestFindDuplicatesIgnoresSingletons(t *testing.T) {
	s := model.New()
	s.AddComponent(withPurl("serde", "1.0.0", "pkg:cargo/serde@1.0.0"))
	s.Normalize()

	assert.Empty(t, FindDuplicates(s))
}
