package openft

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeManifestUTF8(t *testing.T) {
	text, err := decodeManifest([]byte("\xEF\xBB\xBF<plug-in>é</plug-in>"))

	assert.Nil(t, err)
	assert.Equal(t, "<plug-in>é</plug-in>", text)
}

func TestDecodeManifestInvalid(t *testing.T) {
	_, err := decodeManifest([]byte{'<', 0xFF, 0xFF, '>'})

	assert.True(t, errors.Is(err, ErrEncoding))
}

func TestParseDocument(t *testing.T) {
	doc, err := parseDocument(`<?xml version="1.0"?>
<!-- comment -->
<plug-in version="2">
	<title> A title </title>
	<empty/>
	<contribution type="picture" id="p"><picture src="a.png"/></contribution>
</plug-in>`)
	require.NoError(t, err)

	root := doc.find("plug-in")
	require.NotNil(t, root)

	v, ok := root.attr("version")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	assert.Equal(t, " A title ", root.child("title").Text)
	assert.True(t, root.child("title").isLeaf())
	assert.False(t, root.child("empty").isLeaf())
	assert.False(t, root.child("contribution").isLeaf())
	assert.Nil(t, root.child("nope"))

	pic := doc.find("picture")
	require.NotNil(t, pic)
	assert.Equal(t, "a.png", pic.Attrs["src"])
}

func TestParseDocumentSyntaxError(t *testing.T) {
	_, err := parseDocument(`<plug-in><a></b></plug-in>`)

	assert.True(t, errors.Is(err, ErrMalformedDocument))
}
