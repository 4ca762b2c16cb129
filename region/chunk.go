package region

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/OCharnyshevich/mca/nbt"
)

const (
	sectorSize    = 4096
	headerSectors = 2
	gridSize      = 32
)

// State is a Chunk's position in the decode/encode state machine (§4.2,
// §4.3 "State machine").
type State int

const (
	// StateNotCreated means the directory entry is all zero: no chunk has
	// ever been generated at this position.
	StateNotCreated State = iota
	// StateOk means the chunk's directory entry, header and (if decoded)
	// NBT payload are all well-formed.
	StateOk
	// StateOverlapping means the chunk's header declares more sectors
	// than its directory entry reserved — its payload may run into a
	// neighboring chunk's sectors.
	StateOverlapping
	// StateTooBig means the chunk's required sector count exceeds 255,
	// the largest value the one-byte sectors field can hold. Only
	// reachable from the encode side (§4.2 "unreachable from decode").
	StateTooBig
	// StateCorrupted means the directory entry, header, or NBT payload
	// failed validation.
	StateCorrupted
)

func (s State) String() string {
	switch s {
	case StateNotCreated:
		return "NotCreated"
	case StateOk:
		return "Ok"
	case StateOverlapping:
		return "Overlapping"
	case StateTooBig:
		return "TooBig"
	case StateCorrupted:
		return "Corrupted"
	default:
		return "Unknown"
	}
}

// Chunk wraps one NBT tree plus its Region-level sector/compression/
// timestamp metadata (§3.2). A Region always holds 1024 of these, one per
// (cx, cz) grid position, never nil.
type Chunk struct {
	CX, CZ int

	// Offset is the chunk's sector index into the region file. 0 means
	// absent; when present it must be >= 2 (sectors 0 and 1 are the
	// header).
	Offset uint32
	// Sectors is the number of 4096-byte sectors this chunk occupies.
	Sectors uint8
	// Timestamp is the chunk's last-write unix time.
	Timestamp uint32
	// Compression selects how NBT is packed to disk (§4.2).
	Compression Compression
	// Length is the on-disk payload length in bytes, including the
	// 1-byte compression tag (§9 Open question: Mojang convention).
	Length uint32

	// NBT is the decoded tree, or nil if this chunk has none (NotCreated,
	// Corrupted before NBT decode, or never populated by the caller).
	NBT *nbt.NamedTag

	state      State
	compressed []byte
}

// NewChunk returns a default chunk at (cx, cz) in the NotCreated state,
// with zlib as its default compression the way Mojang's own writer
// defaults chunks saved by a world that never asked for anything else.
func NewChunk(cx, cz int) *Chunk {
	return &Chunk{CX: cx, CZ: cz, Compression: CompressionZlib, state: StateNotCreated}
}

// EntryIndex returns the byte offset into the region header of this
// chunk's four-byte location entry: (cx + cz*32) * 4 (§3.2).
func (c *Chunk) EntryIndex() int {
	return (c.CX + c.CZ*gridSize) * 4
}

// State returns the chunk's current classification. It is a pure getter:
// Recompute is the method with the read-time side effect of
// re-serializing the NBT tree (§9 "State recomputation side effect").
func (c *Chunk) State() State { return c.state }

// Padding returns the number of zero bytes written after the payload to
// fill out the chunk's allocated sectors. Only meaningful when State() is
// StateOk.
func (c *Chunk) Padding() uint32 {
	return uint32(c.Sectors)*sectorSize - c.Length - 4
}

// CompressedBytes returns the cached compressed payload bytes produced by
// the most recent decode or Recompute call, or nil if none.
func (c *Chunk) CompressedBytes() []byte { return c.compressed }

func sectorsFor(length uint32) int {
	return int((uint64(length) + 4 + sectorSize - 1) / sectorSize)
}

// Recompute re-serializes c.NBT (if present) through its Compression and
// recalculates Length, Sectors and State from the result. It does not
// touch Offset or Timestamp. Region.EncodeRegion calls this once per
// chunk before assigning sector offsets.
//
// A chunk with no NBT tree is left exactly as it is: there is nothing to
// re-derive, so its state (NotCreated, or whatever decode last left it
// at) stands.
func (c *Chunk) Recompute() (State, error) {
	if c.NBT == nil {
		return c.state, nil
	}
	var raw bytes.Buffer
	if err := nbt.Encode(&raw, c.NBT); err != nil {
		return c.state, fmt.Errorf("region: encode nbt for chunk (%d,%d): %w", c.CX, c.CZ, err)
	}
	compressed, err := compress(c.Compression, raw.Bytes())
	if err != nil {
		return c.state, fmt.Errorf("region: compress chunk (%d,%d): %w", c.CX, c.CZ, err)
	}
	c.compressed = compressed
	c.Length = uint32(len(compressed)) + 1

	sectors := sectorsFor(c.Length)
	if sectors > 255 {
		c.state = StateTooBig
		c.Sectors = 0
		return c.state, nil
	}
	c.Sectors = uint8(sectors)
	c.state = StateOk
	return c.state, nil
}

// readAtFull reads exactly len(buf) bytes at off. A short read (including
// reading past EOF) is reported via ok=false with a nil error — the
// caller treats that as a malformed/absent chunk, not an I/O failure. A
// non-EOF error is a genuine stream failure and is propagated.
func readAtFull(s Stream, off int64, buf []byte) (ok bool, err error) {
	n, rerr := s.ReadAt(buf, off)
	if n == len(buf) {
		return true, nil
	}
	if rerr != nil && rerr != io.EOF {
		return false, rerr
	}
	return false, nil
}

// DecodeChunk populates this chunk from the region byte stream (§4.2).
// Per-chunk format errors downgrade State rather than returning an error;
// only a genuine stream I/O failure (propagated from the underlying
// Stream) is returned.
func (c *Chunk) DecodeChunk(stream Stream, fileSize int64) error {
	var entry [4]byte
	ok, err := readAtFull(stream, int64(c.EntryIndex()), entry[:])
	if err != nil {
		return err
	}
	if !ok {
		c.state = StateCorrupted
		return nil
	}
	offset := binary.BigEndian.Uint32([]byte{0, entry[0], entry[1], entry[2]})
	sectors := entry[3]

	var tsBuf [4]byte
	ok, err = readAtFull(stream, int64(c.EntryIndex())+sectorSize, tsBuf[:])
	if err != nil {
		return err
	}
	if ok {
		c.Timestamp = binary.BigEndian.Uint32(tsBuf[:])
	}

	c.Offset = offset
	c.Sectors = sectors

	switch {
	case offset == 0 && sectors == 0:
		c.state = StateNotCreated
		return nil
	case sectors == 0:
		c.state = StateCorrupted
		return nil
	case offset < 2:
		c.state = StateCorrupted
		return nil
	case uint64(sectors)*sectorSize+5 > uint64(fileSize):
		c.state = StateCorrupted
		return nil
	default:
		c.state = StateOk
	}

	// Stage 2: chunk header.
	var hdr [5]byte
	ok, err = readAtFull(stream, int64(offset)*sectorSize, hdr[:])
	if err != nil {
		return err
	}
	if !ok {
		c.state = StateCorrupted
		return nil
	}
	length := binary.BigEndian.Uint32(hdr[0:4])
	comp := Compression(hdr[4])
	c.Length = length
	c.Compression = comp

	if !comp.Valid() {
		c.state = StateCorrupted
		return nil
	}

	sreq := sectorsFor(length)
	if sreq > int(sectors) {
		c.state = StateOverlapping
	}
	if length <= 1 {
		c.state = StateCorrupted
		return nil
	}

	// Stage 3: NBT payload, for Ok and Overlapping only.
	if c.state != StateOk && c.state != StateOverlapping {
		return nil
	}
	payload := make([]byte, length-1)
	ok, err = readAtFull(stream, int64(offset)*sectorSize+5, payload)
	if err != nil {
		return err
	}
	if !ok {
		c.state = StateCorrupted
		return nil
	}
	c.compressed = payload

	raw, derr := decompress(comp, payload)
	if derr != nil {
		c.state = StateCorrupted
		return nil
	}
	nt, derr := nbt.Decode(bytes.NewReader(raw))
	if derr != nil {
		c.state = StateCorrupted
		return nil
	}
	c.NBT = nt
	return nil
}

// EncodeChunk writes this chunk's directory entry, header and payload at
// its assigned sector (§4.2). If updateState is true, Recompute runs
// first. A chunk whose state forbids writing (NotCreated, TooBig,
// Corrupted) gets a zeroed directory entry and no payload; an Ok chunk's
// Timestamp is refreshed to the current wall-clock time as part of the
// write, regardless of updateState.
func (c *Chunk) EncodeChunk(stream Stream, updateState bool) error {
	if updateState {
		if _, err := c.Recompute(); err != nil {
			return err
		}
	}

	entryOff := int64(c.EntryIndex())
	if c.state != StateOk {
		var zero [4]byte
		if _, err := stream.WriteAt(zero[:], entryOff); err != nil {
			return err
		}
		if _, err := stream.WriteAt(zero[:], entryOff+sectorSize); err != nil {
			return err
		}
		return nil
	}

	c.Timestamp = uint32(time.Now().Unix())

	var entry [4]byte
	binary.BigEndian.PutUint32(entry[:], c.Offset<<8|uint32(c.Sectors))
	// The shift drops Offset's top byte, so the four bytes written are
	// Offset's low 24 bits, big-endian, followed by Sectors.
	if _, err := stream.WriteAt(entry[:], entryOff); err != nil {
		return err
	}

	var ts [4]byte
	binary.BigEndian.PutUint32(ts[:], c.Timestamp)
	if _, err := stream.WriteAt(ts[:], entryOff+sectorSize); err != nil {
		return err
	}

	payloadOff := int64(c.Offset) * sectorSize
	var hdr [5]byte
	binary.BigEndian.PutUint32(hdr[0:4], c.Length)
	hdr[4] = byte(c.Compression)
	if _, err := stream.WriteAt(hdr[:], payloadOff); err != nil {
		return err
	}
	if _, err := stream.WriteAt(c.compressed, payloadOff+5); err != nil {
		return err
	}
	if pad := c.Padding(); pad > 0 {
		if _, err := stream.WriteAt(make([]byte, pad), payloadOff+5+int64(len(c.compressed))); err != nil {
			return err
		}
	}
	return nil
}
