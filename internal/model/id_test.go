package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewComponentIDPrefersPurl(t *testing.T) {
	id := NewComponentID("pkg:npm/left-pad@1.3.0", []Field{{"name", "left-pad"}})
	assert.Equal(t, ComponentId("pkg:npm/left-pad@1.3.0"), id)
	assert.True(t, id.IsPurl())
}

func TestNewComponentIDHashesFieldsWhenNoPurl(t *testing.T) {
	id := NewComponentID("", []Field{{"name", "left-pad"}, {"version", "1.3.0"}})
	assert.False(t, id.IsPurl())
	assert.Equal(t, id, NewComponentID("", []Field{{"name", "left-pad"}, {"version", "1.3.0"}}))
}

func TestNewComponentIDFieldOrderMatters(t *testing.T) {
	a := NewComponentID("", []Field{{"name", "x"}, {"version", "1"}})
	b := NewComponentID("", []Field{{"version", "1"}, {"name", "x"}})
	assert.NotEqual(t, a, b)
}

func TestEcosystemOfPurl(t *testing.T) {
	c := NewComponent("left-pad", "1.3.0")
	c.SetPurl("pkg:npm/left-pad@1.3.0")
	assert.Equal(t, "npm", c.Ecosystem)

	c2 := NewComponent("weird", "")
	c2.SetPurl("not-a-purl")
	assert.Equal(t, "", c2.Ecosystem)
}
