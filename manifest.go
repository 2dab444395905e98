/* this file reads plugin.xml manifests into a small element tree.

Manifests are loosely structured (metadata is "any leaf element", contribution
bodies differ by type) so rather than struct tags we walk the tokens and keep
the bits the parsers ask about: names, attributes, child elements and the
first text node.
*/
package openft

import (
	"bytes"
	"encoding/xml"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/japanese"
)

const (
	rootElement         = "plug-in"
	contributionElement = "contribution"
)

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}

	// <!ENTITY name "value"> declarations in an internal DTD subset
	entityDecl = regexp.MustCompile(`<!ENTITY\s+([A-Za-z_][\w.-]*)\s+(?:"([^"]*)"|'([^']*)')\s*>`)
)

// element is a single XML element.
type element struct {
	Name     string
	Attrs    map[string]string
	Children []*element

	// Text is the content of the first child node, if that node is text.
	Text string

	seenChild bool
}

// attr returns an attribute & whether it is set
func (e *element) attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

// child returns the first child element with the given name (or nil)
func (e *element) child(name string) *element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// children returns all child elements with the given name
func (e *element) children(name string) []*element {
	found := []*element{}
	for _, c := range e.Children {
		if c.Name == name {
			found = append(found, c)
		}
	}
	return found
}

// isLeaf is true for elements holding only text
func (e *element) isLeaf() bool {
	return len(e.Children) == 0 && e.seenChild
}

// find returns the first element named `name` in document order, including e.
func (e *element) find(name string) *element {
	if e.Name == name {
		return e
	}
	for _, c := range e.Children {
		if f := c.find(name); f != nil {
			return f
		}
	}
	return nil
}

// decodeManifest turns raw manifest bytes into text. Manifests are UTF-8
// but older ones were written in Shift-JIS.
func decodeManifest(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(data)
	if err != nil {
		return "", errors.Wrap(ErrEncoding, err.Error())
	}
	if bytes.ContainsRune(decoded, utf8.RuneError) {
		return "", ErrEncoding
	}
	return string(decoded), nil
}

// parseDocument reads a whole XML document, returning the synthetic
// document node holding the top level element(s).
func parseDocument(text string) (*element, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	dec.Strict = true
	dec.Entity = map[string]string{}

	// text is already utf-8, whatever the prolog says
	dec.CharsetReader = func(label string, in io.Reader) (io.Reader, error) {
		return in, nil
	}

	doc := &element{Attrs: map[string]string{}}
	stack := []*element{doc}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(ErrMalformedDocument, err.Error())
		}

		top := stack[len(stack)-1]
		switch t := tok.(type) {
		case xml.StartElement:
			e := &element{
				Name:  t.Name.Local,
				Attrs: make(map[string]string, len(t.Attr)),
			}
			for _, a := range t.Attr {
				e.Attrs[a.Name.Local] = a.Value
			}
			top.seenChild = true
			top.Children = append(top.Children, e)
			stack = append(stack, e)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if !top.seenChild {
				top.Text = string(t)
				top.seenChild = true
			}
		case xml.Directive:
			// DTDs are fine, we just remember any entities they declare
			for _, m := range entityDecl.FindAllStringSubmatch(string(t), -1) {
				dec.Entity[m[1]] = m[2] + m[3]
			}
		}
	}

	if len(stack) != 1 {
		return nil, errors.Wrap(ErrMalformedDocument, "unexpected end of document")
	}
	if len(doc.Children) == 0 {
		return nil, errors.Wrap(ErrMalformedDocument, "no root element")
	}
	return doc, nil
}
