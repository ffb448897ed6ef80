// Package dd is the data dictionary: a hierarchical, ordered key/value store
// read from YAML. Scene files and prefab definitions are dictionaries.
//
// A child dictionary holding the key "inherit" receives every key of the
// named sibling that it does not define itself. Inheritance is resolved once,
// at load time, and may chain.
package dd

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// InheritKey names the sibling a dictionary copies missing keys from.
const InheritKey = "inherit"

// Kind is the expected type of a value in Get.
type Kind int

const (
	KindFloat  Kind = iota // *float32
	KindInt                // *int
	KindBool               // *bool
	KindString             // *string
	KindVec3               // *rl.Vector3, written as [x, y, z]
	KindColor              // *rl.Color, written as [r, g, b], [r, g, b, a] in 0..255 or a name
	KindDict               // **Dict
	KindList               // *[]any
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindVec3:
		return "vec3"
	case KindColor:
		return "color"
	case KindDict:
		return "dict"
	case KindList:
		return "list"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Dict is an ordered mapping. Values are float64, int, bool, string, []any
// or *Dict.
type Dict struct {
	name   string
	keys   []string
	values map[string]any
}

// New returns an empty dictionary.
func New(name string) *Dict {
	return &Dict{name: name, values: map[string]any{}}
}

// Load reads and parses a YAML file.
func Load(path string) (*Dict, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read dictionary %s", path)
	}
	d, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Parse decodes a YAML document whose root is a mapping and resolves
// inheritance.
func Parse(name string, data []byte) (*Dict, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrapf(err, "parse dictionary %s", name)
	}
	root := &doc
	if root.Kind == 0 {
		return New(name), nil
	}
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return New(name), nil
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, eris.Errorf("dictionary %s: root is not a mapping", name)
	}
	d, err := fromMapping(name, root)
	if err != nil {
		return nil, err
	}
	if err := d.resolveInheritance(); err != nil {
		return nil, err
	}
	return d, nil
}

func fromMapping(name string, n *yaml.Node) (*Dict, error) {
	d := New(name)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, eris.Errorf("dictionary %s: line %d: non-scalar key", name, k.Line)
		}
		if _, dup := d.values[k.Value]; dup {
			return nil, eris.Errorf("dictionary %s: line %d: duplicate key %q", name, k.Line, k.Value)
		}
		val, err := fromNode(name+"."+k.Value, v)
		if err != nil {
			return nil, err
		}
		d.Set(k.Value, val)
	}
	return d, nil
}

func fromNode(name string, n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.MappingNode:
		return fromMapping(name, n)
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for i, c := range n.Content {
			v, err := fromNode(fmt.Sprintf("%s[%d]", name, i), c)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.AliasNode:
		return fromNode(name, n.Alias)
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, eris.Wrapf(err, "dictionary %s: line %d", name, n.Line)
		}
		return v, nil
	}
	return nil, eris.Errorf("dictionary %s: line %d: unsupported node", name, n.Line)
}

// Name is the dotted path of the dictionary from its file root.
func (d *Dict) Name() string { return d.name }

// Keys returns the keys in document order.
func (d *Dict) Keys() []string { return d.keys }

func (d *Dict) Len() int { return len(d.keys) }

func (d *Dict) Has(name string) bool {
	_, ok := d.values[name]
	return ok
}

// Value returns the raw value stored under name.
func (d *Dict) Value(name string) (any, bool) {
	v, ok := d.values[name]
	return v, ok
}

// Set stores v under name, keeping the original position of an existing key.
func (d *Dict) Set(name string, v any) {
	if _, ok := d.values[name]; !ok {
		d.keys = append(d.keys, name)
	}
	d.values[name] = v
}

// Get converts the value stored under name to kind and writes it through
// out. It reports false when the key is missing or holds another type; out
// is left untouched then. An out pointer that does not match kind panics.
func (d *Dict) Get(name string, kind Kind, out any) bool {
	v, ok := d.values[name]
	if !ok {
		return false
	}
	switch kind {
	case KindFloat:
		f, ok := toFloat(v)
		if ok {
			*out.(*float32) = f
		}
		return ok
	case KindInt:
		i, ok := v.(int)
		if ok {
			*out.(*int) = i
		}
		return ok
	case KindBool:
		b, ok := v.(bool)
		if ok {
			*out.(*bool) = b
		}
		return ok
	case KindString:
		s, ok := v.(string)
		if ok {
			*out.(*string) = s
		}
		return ok
	case KindVec3:
		f, ok := floats(v, 3, 3)
		if ok {
			*out.(*rl.Vector3) = rl.Vector3{X: f[0], Y: f[1], Z: f[2]}
		}
		return ok
	case KindColor:
		if name, isName := v.(string); isName {
			c, known := colorByName[name]
			if known {
				*out.(*rl.Color) = c
			}
			return known
		}
		f, ok := floats(v, 3, 4)
		if !ok {
			return false
		}
		for _, x := range f {
			if x < 0 || x > 255 {
				return false
			}
		}
		c := rl.Color{R: uint8(f[0]), G: uint8(f[1]), B: uint8(f[2]), A: 255}
		if len(f) == 4 {
			c.A = uint8(f[3])
		}
		*out.(*rl.Color) = c
		return true
	case KindDict:
		sub, ok := v.(*Dict)
		if ok {
			*out.(**Dict) = sub
		}
		return ok
	case KindList:
		l, ok := v.([]any)
		if ok {
			*out.(*[]any) = l
		}
		return ok
	}
	panic(fmt.Sprintf("dd: unknown kind %d", int(kind)))
}

// Require is Get for mandatory keys: a missing or wrong-typed value is an
// error naming the dictionary and key.
func (d *Dict) Require(name string, kind Kind, out any) error {
	if d.Get(name, kind, out) {
		return nil
	}
	if _, ok := d.values[name]; !ok {
		return eris.Errorf("%s: missing required %s %q", d.name, kind, name)
	}
	return eris.Errorf("%s: %q is not a %s", d.name, name, kind)
}

func (d *Dict) Float(name string, fallback float32) float32 {
	d.Get(name, KindFloat, &fallback)
	return fallback
}

func (d *Dict) Int(name string, fallback int) int {
	d.Get(name, KindInt, &fallback)
	return fallback
}

func (d *Dict) Bool(name string, fallback bool) bool {
	d.Get(name, KindBool, &fallback)
	return fallback
}

func (d *Dict) Str(name string, fallback string) string {
	d.Get(name, KindString, &fallback)
	return fallback
}

func (d *Dict) Vec3(name string, fallback rl.Vector3) rl.Vector3 {
	d.Get(name, KindVec3, &fallback)
	return fallback
}

func (d *Dict) Color(name string, fallback rl.Color) rl.Color {
	d.Get(name, KindColor, &fallback)
	return fallback
}

// Sub returns the child dictionary stored under name.
func (d *Dict) Sub(name string) (*Dict, bool) {
	var sub *Dict
	ok := d.Get(name, KindDict, &sub)
	return sub, ok
}

// Entry is one child dictionary and its key.
type Entry struct {
	Key  string
	Dict *Dict
}

// Children returns the child dictionaries in document order, skipping
// scalar and list values.
func (d *Dict) Children() []Entry {
	var out []Entry
	for _, k := range d.keys {
		if sub, ok := d.values[k].(*Dict); ok {
			out = append(out, Entry{Key: k, Dict: sub})
		}
	}
	return out
}

// Clone returns a deep copy of d.
func (d *Dict) Clone() *Dict {
	c := &Dict{name: d.name, keys: append([]string(nil), d.keys...), values: make(map[string]any, len(d.values))}
	for k, v := range d.values {
		c.values[k] = cloneValue(v)
	}
	return c
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case *Dict:
		return v.Clone()
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	}
	return v
}

func toFloat(v any) (float32, bool) {
	switch n := v.(type) {
	case float64:
		return float32(n), true
	case int:
		return float32(n), true
	}
	return 0, false
}

func floats(v any, min, max int) ([]float32, bool) {
	l, ok := v.([]any)
	if !ok || len(l) < min || len(l) > max {
		return nil, false
	}
	out := make([]float32, len(l))
	for i, e := range l {
		f, ok := toFloat(e)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// AsVec3 converts a raw list value, such as an element of a KindList, to a
// vector.
func AsVec3(v any) (rl.Vector3, bool) {
	f, ok := floats(v, 3, 3)
	if !ok {
		return rl.Vector3{}, false
	}
	return rl.Vector3{X: f[0], Y: f[1], Z: f[2]}, true
}
