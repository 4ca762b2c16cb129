package nbt

import "errors"

// Error kinds returned by this package. Callers should compare with
// errors.Is rather than switching on the concrete error value, since
// decode/encode errors are wrapped with positional context.
var (
	// ErrInvalidRoot is returned when the first byte of a document is not
	// TAG_Compound (10).
	ErrInvalidRoot = errors.New("nbt: invalid root, expected TAG_Compound")

	// ErrUnknownTagID is returned when a tag id outside {0..12} is read
	// from the stream.
	ErrUnknownTagID = errors.New("nbt: unknown tag id")

	// ErrMalformedLength is returned when an array declares a negative
	// length, or a list declares a positive length of TAG_End elements.
	ErrMalformedLength = errors.New("nbt: malformed length")

	// ErrTruncatedStream is returned when the reader runs out of bytes
	// mid-payload.
	ErrTruncatedStream = errors.New("nbt: truncated stream")

	// ErrInvalidUTF8 is returned when modified-UTF-8 bytes cannot be
	// decoded into a logical string.
	ErrInvalidUTF8 = errors.New("nbt: invalid modified-UTF-8")

	// ErrValueOutOfRange is returned when a caller-supplied integer does
	// not fit the tag's fixed width.
	ErrValueOutOfRange = errors.New("nbt: value out of range for tag width")
)
