package nbt

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Encode writes nt as a named Compound document, mirroring Decode exactly
// (§4.1). nt.Tag must be a *Compound — the outermost value of an NBT
// document is always a Compound (§3.1).
func Encode(w io.Writer, nt *NamedTag) error {
	c, ok := nt.Tag.(*Compound)
	if !ok {
		return fmt.Errorf("%w: root tag is %T, not *Compound", ErrInvalidRoot, nt.Tag)
	}
	e := &encoder{w: w}
	e.putByte(byte(IDCompound))
	e.writeName(nt.Name)
	e.writeCompoundBody(c)
	return e.err
}

type encoder struct {
	w   io.Writer
	err error
}

func (e *encoder) write(b []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(b)
}

func (e *encoder) putByte(v byte) {
	e.write([]byte{v})
}

func (e *encoder) putUint16(v uint16) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	e.write(buf[:])
}

func (e *encoder) putInt32(v int32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	e.write(buf[:])
}

func (e *encoder) putInt64(v int64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	e.write(buf[:])
}

func (e *encoder) writeName(name string) {
	b := encodeModifiedUTF8(name)
	e.putUint16(uint16(len(b)))
	e.write(b)
}

// writeCompoundBody writes every entry of c, tagged and named, then a
// single terminating End tag.
func (e *encoder) writeCompoundBody(c *Compound) {
	c.Range(func(name string, t Tag) bool {
		e.putByte(byte(t.ID()))
		e.writeName(name)
		e.writeTag(t)
		return e.err == nil
	})
	e.putByte(byte(IDEnd))
}

// writeList writes a TAG_List payload. An empty list always serializes
// element-type 0 and length 0, regardless of what element type it was
// declared with (§3.1, and testable-properties scenario 3).
func (e *encoder) writeList(l *List) {
	if l.Len() == 0 {
		e.putByte(byte(IDEnd))
		e.putInt32(0)
		return
	}
	e.putByte(byte(l.elem))
	e.putInt32(int32(l.Len()))
	for _, item := range l.items {
		e.writeTag(item)
	}
}

// writeTag writes only the payload bytes of t — no id, no name. Used both
// for Compound entries (after the id+name header) and List elements
// (which carry neither).
func (e *encoder) writeTag(t Tag) {
	switch v := t.(type) {
	case Byte:
		e.putByte(byte(int8(v)))
	case Short:
		e.putUint16(uint16(int16(v)))
	case Int:
		e.putInt32(int32(v))
	case Long:
		e.putInt64(int64(v))
	case Float:
		e.putInt32(int32(math.Float32bits(float32(v))))
	case Double:
		e.putInt64(int64(math.Float64bits(float64(v))))
	case ByteArray:
		e.putInt32(int32(len(v)))
		e.write(v)
	case *Str:
		b := v.Bytes()
		e.putUint16(uint16(len(b)))
		e.write(b)
	case *List:
		e.writeList(v)
	case *Compound:
		e.writeCompoundBody(v)
	case IntArray:
		e.putInt32(int32(len(v)))
		for _, x := range v {
			e.putInt32(x)
		}
	case LongArray:
		e.putInt32(int32(len(v)))
		for _, x := range v {
			e.putInt64(x)
		}
	default:
		if e.err == nil {
			e.err = fmt.Errorf("%w: %T", ErrUnknownTagID, t)
		}
	}
}
