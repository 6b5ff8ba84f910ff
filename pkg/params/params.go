package params

import (
	"fmt"
	"net/url"
	"strings"

	"gopkg.in/yaml.v3"
)

// Param is a single named request argument
type Param struct {
	Key   string
	Value string
}

// Params is an ordered set of request arguments with unique keys.
// The zero value is an empty set ready to use. Copies share storage, so
// Clone before mutating a set owned by someone else.
type Params struct {
	items []Param
}

// New builds a Params from alternating key/value strings
func New(pairs ...string) Params {
	if len(pairs)%2 != 0 {
		panic("params.New: odd number of arguments")
	}

	var p Params
	for i := 0; i < len(pairs); i += 2 {
		p.Set(pairs[i], pairs[i+1])
	}
	return p
}

// Len returns the number of arguments
func (p Params) Len() int {
	return len(p.items)
}

// Get returns the value stored under key
func (p Params) Get(key string) (string, bool) {
	if i := p.index(key); i >= 0 {
		return p.items[i].Value, true
	}
	return "", false
}

// Has reports whether key is present
func (p Params) Has(key string) bool {
	return p.index(key) >= 0
}

// Set stores value under key. An existing key keeps its position.
func (p *Params) Set(key, value string) {
	if i := p.index(key); i >= 0 {
		p.items[i].Value = value
		return
	}
	p.items = append(p.items, Param{Key: key, Value: value})
}

// Delete removes key and reports whether it was present
func (p *Params) Delete(key string) bool {
	i := p.index(key)
	if i < 0 {
		return false
	}
	p.items = append(p.items[:i:i], p.items[i+1:]...)
	return true
}

// Keys returns the keys in insertion order
func (p Params) Keys() []string {
	keys := make([]string, len(p.items))
	for i, item := range p.items {
		keys[i] = item.Key
	}
	return keys
}

// Clone returns an independent copy
func (p Params) Clone() Params {
	items := make([]Param, len(p.items))
	copy(items, p.items)
	return Params{items: items}
}

// Values converts the arguments into url.Values for a request query string
func (p Params) Values() url.Values {
	values := make(url.Values, len(p.items))
	for _, item := range p.items {
		values.Set(item.Key, item.Value)
	}
	return values
}

// String renders the arguments in order, e.g. "tags=cat per_page=500"
func (p Params) String() string {
	parts := make([]string, len(p.items))
	for i, item := range p.items {
		parts[i] = item.Key + "=" + item.Value
	}
	return strings.Join(parts, " ")
}

func (p Params) index(key string) int {
	for i, item := range p.items {
		if item.Key == key {
			return i
		}
	}
	return -1
}

// Merge returns base updated with overlay. On a key collision the overlay
// value wins and the key keeps its position from base; overlay keys that
// base lacks are appended in overlay order. Neither input is modified.
func Merge(base, overlay Params) Params {
	merged := base.Clone()
	for _, item := range overlay.items {
		merged.Set(item.Key, item.Value)
	}
	return merged
}

// UnmarshalYAML decodes a mapping node, keeping document order. Scalars keep
// their literal text, sequences of scalars are joined with commas and null
// values are dropped.
func (p *Params) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of arguments", node.Line)
	}

	decoded := Params{items: make([]Param, 0, len(node.Content)/2)}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		value, skip, err := scalarText(valueNode)
		if err != nil {
			return fmt.Errorf("argument %q: %w", keyNode.Value, err)
		}
		if skip {
			continue
		}
		decoded.Set(keyNode.Value, value)
	}

	*p = decoded
	return nil
}

func scalarText(node *yaml.Node) (string, bool, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			return "", true, nil
		}
		return node.Value, false, nil
	case yaml.SequenceNode:
		parts := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return "", false, fmt.Errorf("line %d: list items must be scalars", item.Line)
			}
			parts = append(parts, item.Value)
		}
		return strings.Join(parts, ","), false, nil
	case yaml.AliasNode:
		return scalarText(node.Alias)
	default:
		return "", false, fmt.Errorf("line %d: nested objects are not supported", node.Line)
	}
}
