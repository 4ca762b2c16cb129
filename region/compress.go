package region

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// Compression identifies how a Chunk's NBT payload is packed on disk,
// matching the one-byte code Mojang writes after the length field (§4.2).
type Compression byte

const (
	CompressionGzip Compression = 1
	CompressionZlib Compression = 2
	CompressionNone Compression = 3
)

func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionZlib:
		return "zlib"
	case CompressionNone:
		return "none"
	default:
		return "invalid"
	}
}

// Valid reports whether c is one of the three defined compression codes.
func (c Compression) Valid() bool {
	switch c {
	case CompressionGzip, CompressionZlib, CompressionNone:
		return true
	default:
		return false
	}
}

// decompress inflates data per the given compression code. Uses
// klauspost/compress rather than the standard library's compress/gzip and
// compress/zlib: drop-in same interfaces, faster, and already part of this
// dependency graph.
func decompress(c Compression, data []byte) ([]byte, error) {
	switch c {
	case CompressionGzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompressionFailed, err)
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompressionFailed, err)
		}
		return out, nil
	case CompressionZlib:
		r, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompressionFailed, err)
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompressionFailed, err)
		}
		return out, nil
	case CompressionNone:
		return data, nil
	default:
		return nil, ErrBadCompression
	}
}

// compress packs data per the given compression code.
func compress(c Compression, data []byte) ([]byte, error) {
	switch c {
	case CompressionGzip:
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompressionZlib:
		var buf bytes.Buffer
		w, err := zlib.NewWriterLevel(&buf, zlib.DefaultCompression)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompressionNone:
		return data, nil
	default:
		return nil, ErrBadCompression
	}
}
