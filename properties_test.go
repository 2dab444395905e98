package openft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProperties(t *testing.T) {
	p := NewProperties()
	p.SetString("size", " 2, 3 ")
	p.SetString("height", "4")
	p.SetString("bad", "x")

	a, b, ok, err := p.Pair("size")
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, a)
	assert.Equal(t, 3, b)

	i, ok, err := p.Int("height")
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, 4, i)

	_, ok, err = p.Int("bad")
	assert.True(t, ok)
	assert.NotNil(t, err)

	_, _, ok, err = p.Pair("bad")
	assert.True(t, ok)
	assert.NotNil(t, err)

	_, ok, err = p.Int("missing")
	assert.False(t, ok)
	assert.Nil(t, err)

	m := p.Map()
	m["size"] = "changed"
	v, _ := p.String("size")
	assert.Equal(t, " 2, 3 ", v)
}

func TestPropertiesFromElements(t *testing.T) {
	doc, err := parseDocument(`<c><name> Farm </name><size>1,2</size><sprite origin="0,0"/></c>`)
	require.NoError(t, err)

	p := newPropertiesFromElements(doc.Children[0], (*element).isLeaf)

	assert.Equal(t, map[string]string{"name": "Farm", "size": "1,2"}, p.Map())
}
