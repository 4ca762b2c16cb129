package region

import "io"

// Stream is the byte-oriented, random-access surface Region decode/encode
// needs (§6.3): reads and writes at arbitrary offsets, plus truncation,
// because the write-back pass relocates chunks and cuts the file to its
// new total size before rewriting it. *os.File satisfies this directly.
type Stream interface {
	io.ReaderAt
	io.WriterAt
	Truncate(size int64) error
}

// MemStream is an in-memory Stream backed by a growable byte slice. A
// reference implementation of this codec may require the stream to be
// fully buffered in memory (§5); MemStream is that buffer for callers who
// don't want to route through a temp file.
type MemStream struct {
	buf []byte
}

// NewMemStream creates a MemStream pre-loaded with data. Passing nil
// starts from an empty buffer.
func NewMemStream(data []byte) *MemStream {
	cp := make([]byte, len(data))
	copy(cp, data)
	return &MemStream{buf: cp}
}

// Bytes returns the current contents. The returned slice aliases the
// MemStream's storage.
func (m *MemStream) Bytes() []byte { return m.buf }

// Len reports the current size, mirroring a file's size on disk.
func (m *MemStream) Len() int64 { return int64(len(m.buf)) }

func (m *MemStream) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, io.EOF
	}
	if off >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (m *MemStream) WriteAt(p []byte, off int64) (int, error) {
	end := off + int64(len(p))
	if end > int64(len(m.buf)) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	copy(m.buf[off:end], p)
	return len(p), nil
}

func (m *MemStream) Truncate(size int64) error {
	switch {
	case size <= int64(len(m.buf)):
		m.buf = m.buf[:size]
	default:
		grown := make([]byte, size)
		copy(grown, m.buf)
		m.buf = grown
	}
	return nil
}
