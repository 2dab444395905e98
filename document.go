package openft

import (
	"encoding/json"
	"io"
)

// CatalogDocument is the on-disk (JSON) listing of a catalog, consumed by
// tooling. Its schema is generated by cmd/catalog-schema.
type CatalogDocument struct {
	Entries []EntryDocument `json:"entries" jsonschema:"title=Entries,description=Every drawable in catalog order.,required"`
}

// EntryDocument is a single drawable in a CatalogDocument
type EntryDocument struct {
	ID           int    `json:"id" jsonschema:"title=Entity Type,description=Index of this drawable in the catalog.,minimum=0,required"`
	Package      string `json:"package" jsonschema:"title=Package,description=Title of the plugin package.,required"`
	Name         string `json:"name,omitempty" jsonschema:"title=Name,description=Name of the contribution if it has one."`
	Kind         string `json:"kind" jsonschema:"title=Kind,enum=GenericStructure,enum=road,required"`
	Contribution int    `json:"contribution" jsonschema:"title=Contribution,description=Index of the contribution within its package.,minimum=0"`
	Variant      int    `json:"variant" jsonschema:"title=Image Variant,minimum=0"`
	Mapping      int    `json:"mapping" jsonschema:"title=Colour Mapping,minimum=0"`
	TextureKey   string `json:"textureKey" jsonschema:"title=Texture Key,description=package-image-mapping key of the processed texture.,required"`
	Source       Rect   `json:"source" jsonschema:"title=Source,description=Region of the texture to draw (pixels).,required"`
	OffsetX      int    `json:"offsetX"`
	OffsetY      int    `json:"offsetY"`
	Width        int    `json:"width" jsonschema:"minimum=0"`
	Height       int    `json:"height"`
	Size         Tile   `json:"size" jsonschema:"title=Footprint,description=Footprint in tiles; Z is the height.,required"`
	Flip         bool   `json:"flip,omitempty"`
	Multistorey  bool   `json:"multistorey,omitempty"`
}

// Rect is a pixel rectangle
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Document lists the catalog. Entry ids count from `first`, the type id
// returned by Register.
func (c *Catalog) Document(first int) *CatalogDocument {
	doc := &CatalogDocument{Entries: make([]EntryDocument, len(c.Entries))}
	for i, e := range c.Entries {
		d := e.Drawable
		doc.Entries[i] = EntryDocument{
			ID:           first + i,
			Package:      e.Package,
			Name:         d.Name,
			Kind:         e.Kind.String(),
			Contribution: e.Contribution,
			Variant:      e.Variant,
			Mapping:      e.Mapping,
			TextureKey:   d.TextureKey(),
			Source: Rect{
				X: d.Source.Min.X,
				Y: d.Source.Min.Y,
				W: d.Source.Dx(),
				H: d.Source.Dy(),
			},
			OffsetX:     d.Offset.X,
			OffsetY:     d.Offset.Y,
			Width:       d.Width,
			Height:      d.Height,
			Size:        d.Size,
			Flip:        d.Flip,
			Multistorey: d.Tiers != nil,
		}
	}
	return doc
}

// Encode writes the document as indented JSON
func (d *CatalogDocument) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
