package region

import "errors"

// Error kinds returned by this package, per spec §7. Per-chunk decode
// failures are absorbed into that Chunk's State and never reach the
// caller as one of these — they only surface from Region/Chunk encode
// paths and from Region decode's own up-front validation.
var (
	// ErrMissingHeader is returned when a region file is non-empty but
	// shorter than the 8192-byte two-sector header.
	ErrMissingHeader = errors.New("region: file shorter than 8192-byte header")

	// ErrBadCompression is returned when a compression byte is outside
	// {1 Gzip, 2 Zlib, 3 None}.
	ErrBadCompression = errors.New("region: compression code not in {1,2,3}")

	// ErrDecompressionFailed is returned when the gzip/zlib decoder
	// rejects a chunk's compressed payload.
	ErrDecompressionFailed = errors.New("region: decompression failed")
)
