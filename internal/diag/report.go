package diag

import (
	"gopkg.in/yaml.v3"
)

// Report is an insertion-ordered mapping from probe name to value.
// Values are strings, nested *Report groups, or anything yaml can encode.
type Report struct {
	keys   []string
	values map[string]any
}

// NewReport returns an empty Report.
func NewReport() *Report {
	return &Report{values: make(map[string]any)}
}

// Set records value under key. A new key goes to the end; an existing key
// keeps its position.
func (r *Report) Set(key string, value any) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Merge copies every entry of other into r, in other's order.
func (r *Report) Merge(other *Report) {
	for _, k := range other.keys {
		r.Set(k, other.values[k])
	}
}

// Get returns the value stored under key.
func (r *Report) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (r *Report) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Len returns the number of entries.
func (r *Report) Len() int {
	return len(r.keys)
}

// MarshalYAML renders the report as a mapping that keeps insertion order.
func (r *Report) MarshalYAML() (any, error) {
	return r.node()
}

func (r *Report) node() (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range r.keys {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}

		var val *yaml.Node
		if sub, ok := r.values[k].(*Report); ok {
			v, err := sub.node()
			if err != nil {
				return nil, err
			}
			val = v
		} else {
			val = &yaml.Node{}
			if err := val.Encode(r.values[k]); err != nil {
				return nil, err
			}
		}
		n.Content = append(n.Content, key, val)
	}
	return n, nil
}
