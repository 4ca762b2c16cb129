package nbt

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Decode reads exactly one named Compound document from r (§4.1). The
// first byte must be TAG_Compound (10); anything else is ErrInvalidRoot.
// Decode errors are fatal for this call — no partial tree is returned.
func Decode(r io.Reader) (*NamedTag, error) {
	d := &decoder{r: r}
	idByte, err := d.readByte()
	if err != nil {
		return nil, err
	}
	if ID(idByte) != IDCompound {
		return nil, fmt.Errorf("%w: got tag id %d", ErrInvalidRoot, idByte)
	}
	name, err := d.readName()
	if err != nil {
		return nil, err
	}
	c, err := d.readCompoundBody()
	if err != nil {
		return nil, err
	}
	return &NamedTag{Name: name, Tag: c}, nil
}

type decoder struct {
	r io.Reader
}

func (d *decoder) readFull(n int32) ([]byte, error) {
	if n < 0 {
		return nil, ErrMalformedLength
	}
	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncatedStream, err)
	}
	return buf, nil
}

func (d *decoder) readByte() (byte, error) {
	b, err := d.readFull(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *decoder) readUint16() (uint16, error) {
	b, err := d.readFull(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (d *decoder) readInt32() (int32, error) {
	b, err := d.readFull(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (d *decoder) readInt64() (int64, error) {
	b, err := d.readFull(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

// readName reads a uint16-length-prefixed modified-UTF-8 name and decodes
// it eagerly, since names are used as Compound map keys. A malformed name
// aborts the whole decode (§7: InvalidUtf8 is fatal for the current
// decode).
func (d *decoder) readName() (string, error) {
	n, err := d.readUint16()
	if err != nil {
		return "", err
	}
	raw, err := d.readFull(int32(n))
	if err != nil {
		return "", err
	}
	name, err := decodeModifiedUTF8(raw)
	if err != nil {
		return "", err
	}
	return name, nil
}

// readCompoundBody decodes the entries of a Compound up to (and
// consuming) its terminating End tag. The caller has already consumed the
// Compound's own id+name header, if it had one.
func (d *decoder) readCompoundBody() (*Compound, error) {
	c := NewCompound()
	for {
		idByte, err := d.readByte()
		if err != nil {
			return nil, err
		}
		id := ID(idByte)
		if id == IDEnd {
			return c, nil
		}
		if !id.Valid() {
			return nil, fmt.Errorf("%w: %d", ErrUnknownTagID, idByte)
		}
		name, err := d.readName()
		if err != nil {
			return nil, err
		}
		t, err := d.readPayload(id)
		if err != nil {
			return nil, err
		}
		c.Set(name, t)
	}
}

func (d *decoder) readPayload(id ID) (Tag, error) {
	switch id {
	case IDByte:
		b, err := d.readByte()
		return Byte(int8(b)), err
	case IDShort:
		v, err := d.readUint16()
		return Short(int16(v)), err
	case IDInt:
		v, err := d.readInt32()
		return Int(v), err
	case IDLong:
		v, err := d.readInt64()
		return Long(v), err
	case IDFloat:
		v, err := d.readInt32()
		return Float(math.Float32frombits(uint32(v))), err
	case IDDouble:
		v, err := d.readInt64()
		return Double(math.Float64frombits(uint64(v))), err
	case IDByteArray:
		n, err := d.readInt32()
		if err != nil {
			return nil, err
		}
		data, err := d.readFull(n)
		if err != nil {
			return nil, err
		}
		return ByteArray(data), nil
	case IDString:
		n, err := d.readUint16()
		if err != nil {
			return nil, err
		}
		raw, err := d.readFull(int32(n))
		if err != nil {
			return nil, err
		}
		return strFromRaw(raw), nil
	case IDList:
		return d.readList()
	case IDCompound:
		return d.readCompoundBody()
	case IDIntArray:
		n, err := d.readInt32()
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, ErrMalformedLength
		}
		out := make(IntArray, n)
		for i := range out {
			v, err := d.readInt32()
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case IDLongArray:
		n, err := d.readInt32()
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, ErrMalformedLength
		}
		out := make(LongArray, n)
		for i := range out {
			v, err := d.readInt64()
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownTagID, id)
	}
}

// readList decodes a TAG_List payload: an element id, a count, and that
// many un-named payloads of that id (§4.1). A non-positive count is
// always treated as an empty list, regardless of the declared element id
// (real-world producers sometimes leave a stale non-zero id on an empty
// list). A zero element id paired with a positive count is malformed: the
// decoder has no way to know what it names.
func (d *decoder) readList() (*List, error) {
	elemByte, err := d.readByte()
	if err != nil {
		return nil, err
	}
	elem := ID(elemByte)
	n, err := d.readInt32()
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return &List{elem: elem}, nil
	}
	if elem == IDEnd {
		return nil, fmt.Errorf("%w: list declares %d elements of TAG_End", ErrMalformedLength, n)
	}
	if !elem.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTagID, elemByte)
	}
	items := make([]Tag, n)
	for i := range items {
		t, err := d.readPayload(elem)
		if err != nil {
			return nil, err
		}
		items[i] = t
	}
	return &List{elem: elem, items: items}, nil
}
