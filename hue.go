package openft

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	spriteTypeElement = "spriteType"
	hueTransformName  = "hueTransform"
	mapElement        = "map"
	channelWildcard   = "*"
)

// parseHueTransforms reads the colour mappings declared on a contribution:
//
//	<spriteType name="hueTransform">
//	  <map from="*,0,0" to="120,200,40"/>
//	</spriteType>
//
// Broken declarations are logged & skipped.
func parseHueTransforms(e *element) []ColorMapping {
	mappings := []ColorMapping{}

	for _, st := range e.children(spriteTypeElement) {
		if name, _ := st.attr("name"); name != hueTransformName {
			continue
		}

		m := st.child(mapElement)
		if m == nil {
			warnf("a hue transform node doesn't have a <map> element")
			continue
		}

		from, okFrom := m.attr("from")
		to, okTo := m.attr("to")
		if !okFrom || !okTo {
			warnf("a hue transform mapping doesn't have 'from' and 'to' properties")
			continue
		}

		mapping, err := parseHueMapping(from, to)
		if err != nil {
			warnf("skipping hue transform from=%q to=%q: %v", from, to, err)
			continue
		}
		mappings = append(mappings, mapping)
	}

	return mappings
}

// parseHueMapping reads a single from -> to pair
func parseHueMapping(from, to string) (ColorMapping, error) {
	channel, err := parseChannel(from)
	if err != nil {
		return ColorMapping{}, err
	}
	target, err := parseTargetColor(to)
	if err != nil {
		return ColorMapping{}, err
	}
	return ColorMapping{Target: target, Channel: channel}, nil
}

// parseChannel reads either a named channel ("red", "G", ..) or a triple with
// a single wildcard marking the channel ("*,0,0").
func parseChannel(from string) (Channel, error) {
	parts := strings.Split(from, ",")

	switch len(parts) {
	case 1:
		switch strings.ToLower(strings.TrimSpace(from)) {
		case "red", "r":
			return ChannelRed, nil
		case "green", "g":
			return ChannelGreen, nil
		case "blue", "b":
			return ChannelBlue, nil
		}
		return ChannelNone, errors.Errorf("unknown channel %q", from)
	case 3:
		found := -1
		for i, p := range parts {
			if strings.TrimSpace(p) != channelWildcard {
				continue
			}
			if found >= 0 {
				return ChannelNone, errors.New("more than one wildcard channel")
			}
			found = i
		}
		switch found {
		case 0:
			return ChannelRed, nil
		case 1:
			return ChannelGreen, nil
		case 2:
			return ChannelBlue, nil
		}
		return ChannelNone, errors.New("no wildcard channel")
	}

	return ChannelNone, errors.Errorf("expected a channel name or 3 values, got %d", len(parts))
}

// parseTargetColor reads "r,g,b" (0-255) into a colour in [0,1]
func parseTargetColor(to string) (Color, error) {
	parts := strings.Split(to, ",")
	if len(parts) != 3 {
		return Color{}, errors.Errorf("expected 3 values, got %d", len(parts))
	}

	vals := [3]float64{}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Color{}, err
		}
		if v < 0 || v > 255 {
			return Color{}, errors.Errorf("channel value %v out of range", v)
		}
		vals[i] = v / 255
	}

	return Color{R: vals[0], G: vals[1], B: vals[2]}, nil
}
