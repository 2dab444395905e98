package openft

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Properties wraps the string -> string metadata read from a manifest and
// converts fields into the types contributions store, so nothing after
// parsing needs to re-read strings.
type Properties struct {
	values map[string]string
}

// NewProperties returns an empty properties
func NewProperties() *Properties {
	return &Properties{values: map[string]string{}}
}

// newPropertiesFromElements reads every child of `e` accepted by `keep`
// as a key (tag name) & value (first text, trimmed).
func newPropertiesFromElements(e *element, keep func(*element) bool) *Properties {
	p := NewProperties()
	for _, c := range e.Children {
		if !keep(c) {
			continue
		}
		p.SetString(c.Name, strings.TrimSpace(c.Text))
	}
	return p
}

// Map returns a copy of the raw values
func (p *Properties) Map() map[string]string {
	out := make(map[string]string, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}

func (p *Properties) String(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

func (p *Properties) SetString(key, value string) {
	p.values[key] = value
}

// Int returns the field as an int. A field that is set but isn't a
// number is an error.
func (p *Properties) Int(key string) (int, bool, error) {
	v, ok := p.values[key]
	if !ok {
		return 0, false, nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, true, errors.Wrapf(err, "field %s", key)
	}
	return i, true, nil
}

// Pair returns a field of the form "a,b" as two ints.
func (p *Properties) Pair(key string) (int, int, bool, error) {
	v, ok := p.values[key]
	if !ok {
		return 0, 0, false, nil
	}
	a, b, err := parsePair(v)
	if err != nil {
		return 0, 0, true, errors.Wrapf(err, "field %s", key)
	}
	return a, b, true, nil
}

// parsePair reads "a,b"
func parsePair(in string) (int, int, error) {
	parts := strings.Split(in, ",")
	if len(parts) != 2 {
		return 0, 0, errors.Errorf("expected two comma separated numbers, got %q", in)
	}
	a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
