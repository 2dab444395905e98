package openft

import (
	"github.com/pkg/errors"
)

// PictureTable maps picture ids to image paths (relative to the package
// root). It is filled from a package's picture contributions before any
// other contribution is resolved & only read afterwards.
type PictureTable map[string]string

// add reads a picture contribution
//
//	<contribution type="picture" id="farm-pic"><picture src="farm.bmp"/></contribution>
func (t PictureTable) add(e *element) error {
	id, ok := e.attr("id")
	if !ok || id == "" {
		return errors.Wrap(ErrInvalidContribution, "picture contribution has no id")
	}

	pic := e.child(pictureElement)
	if pic == nil {
		return errors.Wrapf(ErrInvalidContribution, "picture contribution %s has no picture", id)
	}

	src, ok := pic.attr("src")
	if !ok || src == "" {
		return errors.Wrapf(ErrInvalidContribution, "picture contribution %s has no src", id)
	}

	if prev, ok := t[id]; ok && prev != src {
		warnf("picture %s declared twice, using %s over %s", id, src, prev)
	}
	t[id] = src
	return nil
}

// resolveContributions swaps picture ids for paths & checks each
// contribution can be drawn. Any failure fails the whole package since
// textures are loaded assuming every ref is a path.
func resolveContributions(table PictureTable, cs []*Contribution) error {
	for i, c := range cs {
		if path, ok := table[c.ImageRef]; ok {
			c.ImageRef = path
			c.refIsID = false
		} else if c.refIsID {
			return errors.Wrapf(ErrUnresolvedReference, "contribution %d refers to %q", i, c.ImageRef)
		}

		if c.ImageRef == "" {
			return errors.Wrapf(ErrInvalidContribution, "contribution %d has no image", i)
		}

		err := validateImages(c)
		if err != nil {
			return errors.Wrapf(err, "contribution %d", i)
		}

		if len(c.ColorMappings) == 0 {
			c.ColorMappings = []ColorMapping{{Channel: ChannelNone}}
		}
	}
	return nil
}

// validateImages checks that a contribution holds exactly one kind of
// image data: one or more sprites, a single multistorey set or autotiles.
func validateImages(c *Contribution) error {
	sprites, multis, autos := 0, 0, 0
	for _, img := range c.Images {
		switch img.(type) {
		case *Sprite:
			sprites++
		case *Multistorey:
			multis++
		case *AutotileStub:
			autos++
		}
	}

	kinds := 0
	for _, n := range []int{sprites, multis, autos} {
		if n > 0 {
			kinds++
		}
	}

	switch {
	case kinds == 0:
		return errors.Wrap(ErrInvalidContribution, "no image data")
	case kinds > 1:
		return errors.Wrap(ErrInvalidContribution, "more than one kind of image data")
	case multis > 1:
		return errors.Wrapf(ErrInvalidContribution, "%d multistorey picture sets, expected 1", multis)
	}
	return nil
}
