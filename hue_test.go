package openft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChannel(t *testing.T) {
	cases := map[string]Channel{
		"*,0,0":   ChannelRed,
		"0,*,0":   ChannelGreen,
		"0, 0, *": ChannelBlue,
		"red":     ChannelRed,
		"Green":   ChannelGreen,
		"B":       ChannelBlue,
		"r":       ChannelRed,
	}
	for from, expect := range cases {
		ch, err := parseChannel(from)
		assert.Nil(t, err, from)
		assert.Equal(t, expect, ch, from)
	}

	for _, bad := range []string{"*,*,0", "0,0,0", "purple", "*,0", ""} {
		_, err := parseChannel(bad)
		assert.NotNil(t, err, bad)
	}
}

func TestParseTargetColor(t *testing.T) {
	c, err := parseTargetColor("255, 0, 51")

	assert.Nil(t, err)
	assert.Equal(t, Color{R: 1, G: 0, B: 51.0 / 255}, c)

	for _, bad := range []string{"1,2", "a,b,c", "0,0,256", "-1,0,0"} {
		_, err := parseTargetColor(bad)
		assert.NotNil(t, err, bad)
	}
}

func TestParseHueTransformsSkipsBrokenNodes(t *testing.T) {
	doc, err := parseDocument(`<contribution>
		<spriteType name="hueTransform"><map from="*,0,0" to="255,255,255"/></spriteType>
		<spriteType name="hueTransform"><map from="*,*,0" to="255,255,255"/></spriteType>
		<spriteType name="hueTransform"><map from="green" to="x,0,0"/></spriteType>
		<spriteType name="hueTransform"><map from="green"/></spriteType>
		<spriteType name="hueTransform"/>
		<spriteType name="somethingElse"><map from="blue" to="1,2,3"/></spriteType>
		<spriteType name="hueTransform"><map from="blue" to="0,0,255"/></spriteType>
	</contribution>`)
	require.NoError(t, err)

	mappings := parseHueTransforms(doc.Children[0])

	assert.Equal(t, []ColorMapping{
		{Channel: ChannelRed, Target: Color{R: 1, G: 1, B: 1}},
		{Channel: ChannelBlue, Target: Color{B: 1}},
	}, mappings)
}

func TestContributionWithoutHueTransformsGetsPassthrough(t *testing.T) {
	pkg := mustParse(t, farmsManifest)
	cache := NewVariantCache(newFakeDecoder())

	ds, err := cache.Drawables(pkg, pkg.Contributions[0])

	require.NoError(t, err)
	require.Len(t, ds, 1)
	require.Len(t, pkg.Contributions[0].ColorMappings, 1)
	assert.Equal(t, ChannelNone, pkg.Contributions[0].ColorMappings[0].Channel)
}
