package openft

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	typePicture = "picture"

	spriteElement   = "sprite"
	picturesElement = "pictures"
	pictureElement  = "picture"
	autotileElement = "autotile"
)

// contributionParser turns a <contribution> element into a Contribution
type contributionParser func(e *element) (*Contribution, error)

// parsers by lower case contribution type. Supporting a new type means
// adding a Kind & a parser here.
var parsers = map[string]contributionParser{
	"genericstructure": parseGenericStructure,
	"road":             parseRoad,
}

// ParsePackage parses the raw bytes of a package's plugin.xml. `root` is the
// package directory that image references are relative to.
//
// A manifest without a plug-in element is not an error: we log it & return
// an empty package.
func ParsePackage(root string, data []byte) (*Package, error) {
	text, err := decodeManifest(data)
	if err != nil {
		return nil, errors.Wrapf(err, "package %s", root)
	}

	doc, err := parseDocument(text)
	if err != nil {
		return nil, errors.Wrapf(err, "package %s", root)
	}

	pkg := &Package{
		Root:          root,
		Metadata:      map[string]string{},
		Contributions: []*Contribution{},
	}

	plugin := doc.find(rootElement)
	if plugin == nil {
		warnf("package %s: %v", root, ErrMissingRoot)
		return pkg, nil
	}

	meta := newPropertiesFromElements(plugin, func(c *element) bool {
		return c.Name != contributionElement
	})
	pkg.Metadata = meta.Map()

	var ok bool
	pkg.Title, ok = meta.String("title")
	if !ok || pkg.Title == "" {
		return nil, errors.Wrapf(ErrMissingMetadata, "package %s: title", root)
	}
	pkg.Author, ok = meta.String("author")
	if !ok || pkg.Author == "" {
		return nil, errors.Wrapf(ErrMissingMetadata, "package %s: author", root)
	}

	// pictures first, everything else may refer to them
	table := PictureTable{}
	functional := []*element{}
	for _, c := range plugin.children(contributionElement) {
		kind, _ := c.attr("type")
		if kind == typePicture {
			if err := table.add(c); err != nil {
				return nil, errors.Wrapf(err, "package %s", root)
			}
			continue
		}
		functional = append(functional, c)
	}

	for i, c := range functional {
		contrib, err := parseContribution(c)
		if err != nil {
			return nil, errors.Wrapf(err, "package %s: contribution %d", root, i)
		}
		pkg.Contributions = append(pkg.Contributions, contrib)
	}

	err = resolveContributions(table, pkg.Contributions)
	if err != nil {
		return nil, errors.Wrapf(err, "package %s", root)
	}

	infof("Found plugin '%s' by %s", pkg.Title, pkg.Author)
	return pkg, nil
}

// parseContribution dispatches on the contribution's type attribute
func parseContribution(e *element) (*Contribution, error) {
	kind, ok := e.attr("type")
	if !ok {
		return nil, errors.Wrap(ErrUnknownContribution, "no type attribute")
	}

	parse, ok := parsers[strings.ToLower(kind)]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownContribution, "%q", kind)
	}

	c, err := parse(e)
	if err != nil {
		id, _ := e.attr("id")
		return nil, errors.Wrapf(err, "%s %s", kind, id)
	}
	return c, nil
}

// parseGenericStructure reads buildings & other multi tile objects.
func parseGenericStructure(e *element) (*Contribution, error) {
	meta := newPropertiesFromElements(e, (*element).isLeaf)

	// size is "length,width" which is y,x in our coordinate system
	sy, sx, ok, err := meta.Pair("size")
	if err != nil {
		return nil, errors.Wrap(ErrInvalidContribution, err.Error())
	}
	if !ok {
		return nil, errors.Wrap(ErrInvalidContribution, "no size")
	}
	if sx < 0 || sy < 0 {
		return nil, errors.Wrapf(ErrInvalidContribution, "negative size %d,%d", sy, sx)
	}

	height, _, err := meta.Int("height")
	if err != nil {
		warnf("ignoring height: %v", err)
		height = 0
	} else if height < 0 {
		warnf("ignoring negative height %d", height)
		height = 0
	}

	name, _ := meta.String("name")
	c := &Contribution{
		Kind:          KindGenericStructure,
		Name:          name,
		Size:          Tile{X: sx, Y: sy, Z: height},
		ColorMappings: parseHueTransforms(e),
		Images:        []ImageVariant{},
	}

	sprites, spriteRef, err := parseSprites(e)
	if err != nil {
		return nil, err
	}
	multis, multiRef, err := parseMultistoreys(e)
	if err != nil {
		return nil, err
	}
	autos, autoRef, err := parseAutotiles(e)
	if err != nil {
		return nil, err
	}
	for _, a := range autos {
		c.Images = append(c.Images, a)
	}

	for _, s := range sprites {
		c.Images = append(c.Images, s)
	}
	for _, m := range multis {
		c.Images = append(c.Images, m)
	}

	// the resolver reports missing or mixed image data, here we only need
	// to pick the ref
	for _, ref := range []*imageRef{spriteRef, multiRef, autoRef} {
		if ref != nil {
			c.ImageRef, c.refIsID = ref.value, ref.isID
			break
		}
	}

	return c, nil
}

// parseRoad reads a road tile. Roads are always 1x1x1 & drawn from the
// top left of a single picture.
func parseRoad(e *element) (*Contribution, error) {
	pic := e.child(pictureElement)
	if pic == nil {
		return nil, errors.Wrap(ErrInvalidContribution, "road has no picture")
	}

	ref, err := parsePictureRef(pic)
	if err != nil {
		return nil, err
	}

	offset := 0
	if v, ok := pic.attr("offset"); ok {
		offset, err = strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidContribution, "road offset: %v", err)
		}
	}

	name, _ := newPropertiesFromElements(e, (*element).isLeaf).String("name")
	return &Contribution{
		Kind:          KindRoad,
		Name:          name,
		Size:          Tile{X: 1, Y: 1, Z: 1},
		ImageRef:      ref.value,
		refIsID:       ref.isID,
		Images:        []ImageVariant{&Sprite{Offset: offset}},
		ColorMappings: []ColorMapping{},
	}, nil
}

// imageRef is where a picture element points: a picture id (ref=) or a
// path (src=).
type imageRef struct {
	value string
	isID  bool
}

func parsePictureRef(pic *element) (*imageRef, error) {
	if v, ok := pic.attr("ref"); ok && v != "" {
		return &imageRef{value: v, isID: true}, nil
	}
	if v, ok := pic.attr("src"); ok && v != "" {
		return &imageRef{value: v}, nil
	}
	return nil, errors.Wrap(ErrInvalidContribution, "picture has neither ref nor src")
}

// sameRef returns the ref shared by all of `refs`
func sameRef(refs ...*imageRef) (*imageRef, error) {
	var found *imageRef
	for _, r := range refs {
		if found == nil {
			found = r
			continue
		}
		if *r != *found {
			return nil, errors.Wrapf(ErrInvalidContribution, "images refer to both %q and %q", found.value, r.value)
		}
	}
	return found, nil
}

// parseSprites reads all <sprite> children
func parseSprites(e *element) ([]*Sprite, *imageRef, error) {
	sprites := []*Sprite{}
	refs := []*imageRef{}

	for _, node := range e.children(spriteElement) {
		s, ref, err := parseSprite(node)
		if err != nil {
			return nil, nil, err
		}
		sprites = append(sprites, s)
		refs = append(refs, ref)
	}

	ref, err := sameRef(refs...)
	return sprites, ref, err
}

// parseMultistoreys reads <pictures> children, each holding top, middle &
// bottom sprites.
func parseMultistoreys(e *element) ([]*Multistorey, *imageRef, error) {
	multis := []*Multistorey{}
	refs := []*imageRef{}

	for _, node := range e.children(picturesElement) {
		tiers := [3]*Sprite{}
		for i, name := range []string{"top", "middle", "bottom"} {
			tier := node.child(name)
			if tier == nil {
				return nil, nil, errors.Wrapf(ErrInvalidContribution, "pictures has no %s", name)
			}
			s, ref, err := parseSprite(tier)
			if err != nil {
				return nil, nil, errors.Wrap(err, name)
			}
			tiers[i] = s
			refs = append(refs, ref)
		}
		multis = append(multis, &Multistorey{Top: *tiers[0], Middle: *tiers[1], Bottom: *tiers[2]})
	}

	ref, err := sameRef(refs...)
	return multis, ref, err
}

// parseAutotiles reads <autotile> children. We keep them so the package
// loads but they can't be drawn yet.
func parseAutotiles(e *element) ([]*AutotileStub, *imageRef, error) {
	autos := []*AutotileStub{}
	refs := []*imageRef{}

	for _, node := range e.children(autotileElement) {
		autos = append(autos, &AutotileStub{Variants: len(node.Children)})
		if pic := node.child(pictureElement); pic != nil {
			ref, err := parsePictureRef(pic)
			if err != nil {
				return nil, nil, err
			}
			refs = append(refs, ref)
		}
	}

	ref, err := sameRef(refs...)
	return autos, ref, err
}

// parseSprite reads an element shaped like
//
//	<sprite origin="0,16" offset="8" flip="false"><picture ref="id"/></sprite>
func parseSprite(e *element) (*Sprite, *imageRef, error) {
	origin, ok := e.attr("origin")
	if !ok {
		return nil, nil, errors.Wrapf(ErrInvalidContribution, "%s has no origin", e.Name)
	}
	x, y, err := parsePair(origin)
	if err != nil {
		return nil, nil, errors.Wrapf(ErrInvalidContribution, "%s origin: %v", e.Name, err)
	}

	offsetAttr, ok := e.attr("offset")
	if !ok {
		return nil, nil, errors.Wrapf(ErrInvalidContribution, "%s has no offset", e.Name)
	}
	offset, err := strconv.Atoi(strings.TrimSpace(offsetAttr))
	if err != nil {
		return nil, nil, errors.Wrapf(ErrInvalidContribution, "%s offset: %v", e.Name, err)
	}

	flip := false
	if v, ok := e.attr("flip"); ok {
		flip, err = strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, nil, errors.Wrapf(ErrInvalidContribution, "%s flip: %v", e.Name, err)
		}
	}

	pic := e.child(pictureElement)
	if pic == nil {
		return nil, nil, errors.Wrapf(ErrInvalidContribution, "%s has no picture", e.Name)
	}
	ref, err := parsePictureRef(pic)
	if err != nil {
		return nil, nil, err
	}

	return &Sprite{OriginX: x, OriginY: y, Offset: offset, Flip: flip}, ref, nil
}
