package nbt

// Str is the payload of a TAG_String tag. It keeps the exact bytes read
// from the wire so that an unmutated string round-trips byte-for-byte even
// when those bytes are not strictly valid modified-UTF-8 — only a caller
// that asks for the logical value pays the cost (and the risk) of
// decoding them.
type Str struct {
	raw     []byte
	value   string
	decoded bool
	mutated bool
}

// NewStr creates a String tag from a logical Go string. It has no raw
// wire bytes yet, so it always encodes via encodeModifiedUTF8.
func NewStr(value string) *Str {
	return &Str{value: value, decoded: true, mutated: true}
}

// strFromRaw creates a String tag from undecoded wire bytes. Decoding is
// deferred until Value is called.
func strFromRaw(raw []byte) *Str {
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return &Str{raw: cp}
}

// ID implements Tag.
func (s *Str) ID() ID { return IDString }

// Value returns the logical string, decoding the raw modified-UTF-8 bytes
// on first access. Returns ErrInvalidUTF8 if the raw bytes cannot be
// decoded.
func (s *Str) Value() (string, error) {
	if s.decoded {
		return s.value, nil
	}
	v, err := decodeModifiedUTF8(s.raw)
	if err != nil {
		return "", err
	}
	s.value = v
	s.decoded = true
	return v, nil
}

// SetValue replaces the logical value. The tag is marked mutated: it will
// be re-encoded from this string rather than from any previously-held raw
// bytes.
func (s *Str) SetValue(v string) {
	s.value = v
	s.decoded = true
	s.mutated = true
	s.raw = nil
}

// Bytes returns the wire payload bytes: the original raw bytes when this
// tag has not been mutated since decode, or a fresh modified-UTF-8 encoding
// of the current value otherwise.
func (s *Str) Bytes() []byte {
	if !s.mutated && s.raw != nil {
		return s.raw
	}
	return encodeModifiedUTF8(s.value)
}

func (s *Str) String() string {
	v, err := s.Value()
	if err != nil {
		return "<invalid modified-utf8>"
	}
	return v
}
