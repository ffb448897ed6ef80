package dd

import "github.com/rotisserie/eris"

type resolveState uint8

const (
	unresolved resolveState = iota
	resolving
	resolved
)

// resolveInheritance applies "inherit" keys throughout the tree rooted at d.
// Keys are copied in the parent's document order after the child's own keys.
func (d *Dict) resolveInheritance() error {
	state := map[*Dict]resolveState{}
	for _, e := range d.Children() {
		if err := d.resolveChild(e.Dict, state); err != nil {
			return err
		}
	}
	for _, e := range d.Children() {
		if err := e.Dict.resolveInheritance(); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dict) resolveChild(c *Dict, state map[*Dict]resolveState) error {
	switch state[c] {
	case resolved:
		return nil
	case resolving:
		return eris.Errorf("%s: inheritance cycle", c.name)
	}
	state[c] = resolving

	if v, ok := c.values[InheritKey]; ok {
		base, ok := v.(string)
		if !ok {
			return eris.Errorf("%s: %q must name a sibling", c.name, InheritKey)
		}
		parent, ok := d.Sub(base)
		if !ok {
			return eris.Errorf("%s: inherits unknown %q", c.name, base)
		}
		if err := d.resolveChild(parent, state); err != nil {
			return err
		}
		c.remove(InheritKey)
		for _, k := range parent.keys {
			if _, has := c.values[k]; !has {
				c.Set(k, cloneValue(parent.values[k]))
			}
		}
	}

	state[c] = resolved
	return nil
}

func (d *Dict) remove(name string) {
	if _, ok := d.values[name]; !ok {
		return
	}
	delete(d.values, name)
	for i, k := range d.keys {
		if k == name {
			d.keys = append(d.keys[:i:i], d.keys[i+1:]...)
			return
		}
	}
}
