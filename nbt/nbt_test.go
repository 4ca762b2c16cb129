package nbt

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecodeEmptyCompoundRoot(t *testing.T) {
	// 0A 00 00 00: tag 10 (Compound), name length 0, then End.
	in := []byte{0x0A, 0x00, 0x00, 0x00}

	nt, err := Decode(bytes.NewReader(in))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if nt.Name != "" {
		t.Fatalf("expected empty root name, got %q", nt.Name)
	}
	c, ok := nt.Tag.(*Compound)
	if !ok {
		t.Fatalf("expected *Compound root, got %T", nt.Tag)
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty compound, got %d entries", c.Len())
	}

	var out bytes.Buffer
	if err := Encode(&out, nt); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !bytes.Equal(out.Bytes(), in) {
		t.Fatalf("re-encode = % X, want % X", out.Bytes(), in)
	}
}

func TestDecodeSingleByte(t *testing.T) {
	// Compound{ "x": Byte(42) }
	in := []byte{
		0x0A, 0x00, 0x00, // root: Compound, name len 0
		0x01, 0x00, 0x01, 'x', 0x2A, // Byte "x" = 42
		0x00, // End
	}

	nt, err := Decode(bytes.NewReader(in))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	c := nt.Tag.(*Compound)
	v, ok := c.Get("x")
	if !ok {
		t.Fatal("expected entry \"x\"")
	}
	b, ok := v.(Byte)
	if !ok || b != 42 {
		t.Fatalf("expected Byte(42), got %#v", v)
	}

	var out bytes.Buffer
	if err := Encode(&out, nt); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !bytes.Equal(out.Bytes(), in) {
		t.Fatalf("re-encode = % X, want % X", out.Bytes(), in)
	}
}

func TestEmptyListAlwaysEncodesZeroElementType(t *testing.T) {
	root := NewCompound()
	root.Set("L", NewList(IDByte)) // declared Byte, but never populated

	var out bytes.Buffer
	if err := Encode(&out, &NamedTag{Name: "", Tag: root}); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	data := out.Bytes()
	// root header (0A 00 00) + list header (09 00 01 'L') + elem(1) + len(4) + end(1)
	listHeaderEnd := 3 + 1 + 2 + 1 // tag + namelen + name
	elemAndLen := data[listHeaderEnd : listHeaderEnd+5]
	want := []byte{0x00, 0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(elemAndLen, want) {
		t.Fatalf("empty list encoded as % X, want % X", elemAndLen, want)
	}
}

func TestListAcceptsEitherInputFormForEmptyList(t *testing.T) {
	// A stream that declares length 0 must decode as an empty list whether
	// its element type is 0 (End) or a stale non-zero id, per the decode
	// tie-break.
	for _, elem := range []byte{0x00, 0x01} {
		in := []byte{
			0x0A, 0x00, 0x00, // root
			0x09, 0x00, 0x01, 'L', // List "L"
			elem,                   // elem type: End, or Byte (stale, non-zero)
			0x00, 0x00, 0x00, 0x00, // length 0
			0x00, // End
		}
		nt, err := Decode(bytes.NewReader(in))
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		c := nt.Tag.(*Compound)
		l, ok := c.GetList("L")
		if !ok {
			t.Fatal("expected list \"L\"")
		}
		if l.Len() != 0 {
			t.Fatalf("expected empty list, got %d items", l.Len())
		}
	}
}

func TestCompoundInsertionOrderPreserved(t *testing.T) {
	root := NewCompound()
	names := []string{"zeta", "alpha", "mid", "beta"}
	for i, n := range names {
		root.SetInt(n, int64(i))
	}

	var buf bytes.Buffer
	if err := Encode(&buf, &NamedTag{Tag: root}); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	nt, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	got := nt.Tag.(*Compound).Names()
	if len(got) != len(names) {
		t.Fatalf("got %d names, want %d", len(got), len(names))
	}
	for i, n := range names {
		if got[i] != n {
			t.Fatalf("name[%d] = %q, want %q", i, got[i], n)
		}
	}
}

func TestListElementTypeMismatchRejected(t *testing.T) {
	l := NewList(IDByte)
	if err := l.Append(Byte(1)); err != nil {
		t.Fatalf("Append(Byte) failed: %v", err)
	}
	if err := l.Append(Int(1)); err == nil {
		t.Fatal("expected error appending Int to a Byte list")
	}
}

func TestDecodeInvalidRoot(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte{0x01, 0x00, 0x00, 0x2A}))
	if !errors.Is(err, ErrInvalidRoot) {
		t.Fatalf("expected ErrInvalidRoot, got %v", err)
	}
}

func TestDecodeUnknownTagID(t *testing.T) {
	in := []byte{
		0x0A, 0x00, 0x00,
		0x63, 0x00, 0x01, 'x', // tag id 99, unknown
		0x00,
	}
	_, err := Decode(bytes.NewReader(in))
	if !errors.Is(err, ErrUnknownTagID) {
		t.Fatalf("expected ErrUnknownTagID, got %v", err)
	}
}

func TestDecodeTruncatedStream(t *testing.T) {
	in := []byte{0x0A, 0x00, 0x00, 0x01, 0x00, 0x01, 'x'} // Byte payload missing
	_, err := Decode(bytes.NewReader(in))
	if !errors.Is(err, ErrTruncatedStream) {
		t.Fatalf("expected ErrTruncatedStream, got %v", err)
	}
}

func TestDecodeNegativeArrayLength(t *testing.T) {
	in := []byte{
		0x0A, 0x00, 0x00,
		0x07, 0x00, 0x01, 'a', 0xFF, 0xFF, 0xFF, 0xFF, // Byte_Array length -1
		0x00,
	}
	_, err := Decode(bytes.NewReader(in))
	if !errors.Is(err, ErrMalformedLength) {
		t.Fatalf("expected ErrMalformedLength, got %v", err)
	}
}

func TestStringRoundTripPreservesRawBytes(t *testing.T) {
	root := NewCompound()
	root.SetString("name", "hello")

	var buf bytes.Buffer
	if err := Encode(&buf, &NamedTag{Tag: root}); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	original := append([]byte(nil), buf.Bytes()...)

	nt, err := Decode(bytes.NewReader(original))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	var reencoded bytes.Buffer
	if err := Encode(&reencoded, nt); err != nil {
		t.Fatalf("re-Encode failed: %v", err)
	}
	if !bytes.Equal(reencoded.Bytes(), original) {
		t.Fatalf("unmutated string did not round-trip byte-for-byte")
	}
}

func TestStringMutationReencodesFromValue(t *testing.T) {
	root := NewCompound()
	root.SetString("name", "hello")

	var buf bytes.Buffer
	Encode(&buf, &NamedTag{Tag: root})
	nt, _ := Decode(bytes.NewReader(buf.Bytes()))

	s, _ := nt.Tag.(*Compound).Get("name")
	str := s.(*Str)
	str.SetValue("goodbye")

	var out bytes.Buffer
	if err := Encode(&out, nt); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	nt2, err := Decode(bytes.NewReader(out.Bytes()))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	got, _, err := nt2.Tag.(*Compound).GetString("name")
	if err != nil {
		t.Fatalf("GetString failed: %v", err)
	}
	if got != "goodbye" {
		t.Fatalf("got %q, want %q", got, "goodbye")
	}
}

func TestSetShortValueOutOfRange(t *testing.T) {
	c := NewCompound()
	if err := c.SetShort("s", 40000); !errors.Is(err, ErrValueOutOfRange) {
		t.Fatalf("expected ErrValueOutOfRange, got %v", err)
	}
}

func TestLongArrayRoundTrip(t *testing.T) {
	root := NewCompound()
	root.SetLongArray("seed", []int64{1, -2, 9223372036854775807})

	var buf bytes.Buffer
	if err := Encode(&buf, &NamedTag{Tag: root}); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	nt, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	v, ok := nt.Tag.(*Compound).Get("seed")
	if !ok {
		t.Fatal("expected entry \"seed\"")
	}
	la, ok := v.(LongArray)
	if !ok {
		t.Fatalf("expected LongArray, got %T", v)
	}
	want := []int64{1, -2, 9223372036854775807}
	if len(la) != len(want) {
		t.Fatalf("got %d elements, want %d", len(la), len(want))
	}
	for i := range want {
		if la[i] != want[i] {
			t.Fatalf("seed[%d] = %d, want %d", i, la[i], want[i])
		}
	}
}

func TestNestedCompoundAndListRoundTrip(t *testing.T) {
	root := NewCompound()
	level := NewCompound()
	level.SetInt("xPos", 3)
	level.SetInt("zPos", -4)

	sections := NewList(IDCompound)
	for i := 0; i < 3; i++ {
		sec := NewCompound()
		sec.SetByte("Y", int64(i))
		sec.SetByteArray("Blocks", make([]byte, 4096))
		if err := sections.Append(sec); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}
	level.Set("Sections", sections)
	root.Set("Level", level)

	var buf bytes.Buffer
	if err := Encode(&buf, &NamedTag{Tag: root}); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	nt, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	gotLevel, ok := nt.Tag.(*Compound).GetCompound("Level")
	if !ok {
		t.Fatal("expected Level compound")
	}
	gotSections, ok := gotLevel.GetList("Sections")
	if !ok {
		t.Fatal("expected Sections list")
	}
	if gotSections.Len() != 3 {
		t.Fatalf("got %d sections, want 3", gotSections.Len())
	}
	for i := 0; i < 3; i++ {
		sec, ok := gotSections.Get(i).(*Compound)
		if !ok {
			t.Fatalf("section %d is not a compound", i)
		}
		y, ok := sec.Get("Y")
		if !ok || y.(Byte) != Byte(i) {
			t.Fatalf("section %d Y = %#v, want %d", i, y, i)
		}
	}
}
