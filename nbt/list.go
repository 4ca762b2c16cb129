package nbt

import "fmt"

// List is the payload of a TAG_List tag: a homogeneous, un-named sequence
// of tags sharing a single declared element id. An empty list still
// carries an element id: the one it was created or decoded with, or 0
// (End) once its last element has been removed. It always serializes
// as 0.
type List struct {
	elem  ID
	items []Tag
}

// NewList creates an empty list that will hold tags of the given element
// id. Passing IDEnd leaves the element type open: the first Append or
// Insert adopts the id of the tag it adds.
func NewList(elem ID) *List {
	return &List{elem: elem}
}

func (*List) ID() ID { return IDList }

func (l *List) String() string {
	return fmt.Sprintf("%d entries of %s", len(l.items), l.elem)
}

// ElemID returns the list's declared element type.
func (l *List) ElemID() ID { return l.elem }

// Len returns the number of elements.
func (l *List) Len() int { return len(l.items) }

// Get returns the element at index, or nil if index is out of range.
func (l *List) Get(index int) Tag {
	if index < 0 || index >= len(l.items) {
		return nil
	}
	return l.items[index]
}

// Set replaces the element at index. It returns an error if index is out
// of range or if t's id doesn't match the list's declared element type
// (§3.1 invariant).
func (l *List) Set(index int, t Tag) error {
	if index < 0 || index >= len(l.items) {
		return fmt.Errorf("nbt: list index %d out of range", index)
	}
	if err := l.checkElem(t); err != nil {
		return err
	}
	l.items[index] = t
	return nil
}

// Append adds t to the end of the list. The first Append on an empty list
// with elem==IDEnd adopts t's id as the list's element type.
func (l *List) Append(t Tag) error {
	if len(l.items) == 0 && l.elem == IDEnd {
		l.elem = t.ID()
	}
	if err := l.checkElem(t); err != nil {
		return err
	}
	l.items = append(l.items, t)
	return nil
}

// Insert inserts t at index, shifting subsequent elements right.
func (l *List) Insert(index int, t Tag) error {
	if index < 0 || index > len(l.items) {
		return fmt.Errorf("nbt: list index %d out of range", index)
	}
	if len(l.items) == 0 && l.elem == IDEnd {
		l.elem = t.ID()
	}
	if err := l.checkElem(t); err != nil {
		return err
	}
	l.items = append(l.items, nil)
	copy(l.items[index+1:], l.items[index:])
	l.items[index] = t
	return nil
}

// Remove deletes the element at index, shifting subsequent elements left.
// Removing the last element resets the declared element type to IDEnd, so
// that an emptied list re-serializes exactly like a list that was never
// populated (§3.1: "An empty List serializes its element-type as 0").
func (l *List) Remove(index int) error {
	if index < 0 || index >= len(l.items) {
		return fmt.Errorf("nbt: list index %d out of range", index)
	}
	l.items = append(l.items[:index], l.items[index+1:]...)
	if len(l.items) == 0 {
		l.elem = IDEnd
	}
	return nil
}

// Items returns the list's elements in order. The returned slice aliases
// the List's internal storage and must not be retained across mutation.
func (l *List) Items() []Tag { return l.items }

func (l *List) checkElem(t Tag) error {
	if t.ID() != l.elem {
		return fmt.Errorf("nbt: list element id %s does not match declared element type %s", t.ID(), l.elem)
	}
	return nil
}
