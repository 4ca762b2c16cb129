package nbt

import "fmt"

// Compound is the payload of a TAG_Compound tag: an ordered mapping of
// unique names to tags. Iteration order follows insertion order, which
// matters for deterministic re-serialization (§3.1).
type Compound struct {
	order   []string
	entries map[string]Tag
}

// NewCompound creates an empty Compound.
func NewCompound() *Compound {
	return &Compound{entries: make(map[string]Tag)}
}

func (*Compound) ID() ID { return IDCompound }

func (c *Compound) String() string {
	if len(c.order) == 1 {
		return "1 entry"
	}
	return fmt.Sprintf("%d entries", len(c.order))
}

// Len returns the number of entries.
func (c *Compound) Len() int { return len(c.order) }

// Names returns the entry names in insertion order. The returned slice is
// a copy and safe to retain.
func (c *Compound) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Get returns the tag named name, and whether it was present.
func (c *Compound) Get(name string) (Tag, bool) {
	t, ok := c.entries[name]
	return t, ok
}

// Set inserts or replaces the entry named name. Setting an existing name
// preserves its original position; a new name is appended.
func (c *Compound) Set(name string, t Tag) {
	if c.entries == nil {
		c.entries = make(map[string]Tag)
	}
	if _, exists := c.entries[name]; !exists {
		c.order = append(c.order, name)
	}
	c.entries[name] = t
}

// Delete removes the entry named name, if present.
func (c *Compound) Delete(name string) {
	if _, ok := c.entries[name]; !ok {
		return
	}
	delete(c.entries, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Range calls fn for each entry in insertion order, stopping early if fn
// returns false.
func (c *Compound) Range(fn func(name string, t Tag) bool) {
	for _, name := range c.order {
		if !fn(name, c.entries[name]) {
			return
		}
	}
}

// The Set* helpers below are the generic mutation surface for scalar
// tags: they accept a wide Go integer/float and validate it fits the
// tag's fixed wire width, surfacing ErrValueOutOfRange no later than this
// call rather than silently truncating (§4.1 tie-break).

func (c *Compound) SetByte(name string, v int64) error {
	if err := clampInt(v, 8); err != nil {
		return err
	}
	c.Set(name, Byte(v))
	return nil
}

func (c *Compound) SetShort(name string, v int64) error {
	if err := clampInt(v, 16); err != nil {
		return err
	}
	c.Set(name, Short(v))
	return nil
}

func (c *Compound) SetInt(name string, v int64) error {
	if err := clampInt(v, 32); err != nil {
		return err
	}
	c.Set(name, Int(v))
	return nil
}

func (c *Compound) SetLong(name string, v int64) {
	c.Set(name, Long(v))
}

func (c *Compound) SetFloat(name string, v float32) {
	c.Set(name, Float(v))
}

func (c *Compound) SetDouble(name string, v float64) {
	c.Set(name, Double(v))
}

func (c *Compound) SetString(name string, v string) {
	c.Set(name, NewStr(v))
}

func (c *Compound) SetByteArray(name string, v []byte) {
	c.Set(name, ByteArray(v))
}

func (c *Compound) SetIntArray(name string, v []int32) {
	c.Set(name, IntArray(v))
}

func (c *Compound) SetLongArray(name string, v []int64) {
	c.Set(name, LongArray(v))
}

// GetString is a convenience accessor combining Get and Str.Value: it
// returns the logical string of a TAG_String entry, whether the entry
// existed and had the right type, and any modified-UTF-8 decode error.
func (c *Compound) GetString(name string) (string, bool, error) {
	t, ok := c.Get(name)
	if !ok {
		return "", false, nil
	}
	s, ok := t.(*Str)
	if !ok {
		return "", false, nil
	}
	v, err := s.Value()
	return v, true, err
}

// GetCompound returns the named entry as a *Compound, if present and of
// that type.
func (c *Compound) GetCompound(name string) (*Compound, bool) {
	t, ok := c.Get(name)
	if !ok {
		return nil, false
	}
	sub, ok := t.(*Compound)
	return sub, ok
}

// GetList returns the named entry as a *List, if present and of that
// type.
func (c *Compound) GetList(name string) (*List, bool) {
	t, ok := c.Get(name)
	if !ok {
		return nil, false
	}
	l, ok := t.(*List)
	return l, ok
}
