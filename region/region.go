package region

// Package region implements Minecraft's Anvil (.mca) region container:
// 1024 chunks addressed by (cx, cz) in a 32x32 grid, each occupying a
// whole number of 4096-byte sectors after an 8192-byte two-sector header
// of locations and timestamps (§3, §4).
import "fmt"

// Region holds the 32x32 grid of chunks for one region file plus the
// region's own (rx, rz) coordinates, used only to label the file — never
// consulted by decode/encode.
type Region struct {
	RX, RZ int
	chunks [gridSize * gridSize]*Chunk
}

// New returns an empty region at (rx, rz) with every slot NotCreated.
func New(rx, rz int) *Region {
	r := &Region{RX: rx, RZ: rz}
	for cz := 0; cz < gridSize; cz++ {
		for cx := 0; cx < gridSize; cx++ {
			r.chunks[cx+cz*gridSize] = NewChunk(cx, cz)
		}
	}
	return r
}

func (r *Region) index(cx, cz int) (int, error) {
	if cx < 0 || cx >= gridSize || cz < 0 || cz >= gridSize {
		return 0, fmt.Errorf("region: chunk coordinate (%d,%d) out of 0..31 grid", cx, cz)
	}
	return cx + cz*gridSize, nil
}

// Get returns the chunk at local coordinates (cx, cz), 0..31 each.
func (r *Region) Get(cx, cz int) (*Chunk, error) {
	i, err := r.index(cx, cz)
	if err != nil {
		return nil, err
	}
	return r.chunks[i], nil
}

// Replace installs c as the chunk at its own (CX, CZ) position,
// overwriting whatever was there.
func (r *Region) Replace(c *Chunk) error {
	i, err := r.index(c.CX, c.CZ)
	if err != nil {
		return err
	}
	r.chunks[i] = c
	return nil
}

// Clear resets the chunk at (cx, cz) back to NotCreated.
func (r *Region) Clear(cx, cz int) error {
	i, err := r.index(cx, cz)
	if err != nil {
		return err
	}
	r.chunks[i] = NewChunk(cx, cz)
	return nil
}

// Range walks every grid position in canonical row-major order: cz outer,
// cx inner (§5 "Write-back relocation"). fn returning false stops the
// walk early.
func (r *Region) Range(fn func(cx, cz int, c *Chunk) bool) {
	for cz := 0; cz < gridSize; cz++ {
		for cx := 0; cx < gridSize; cx++ {
			if !fn(cx, cz, r.chunks[cx+cz*gridSize]) {
				return
			}
		}
	}
}

// DecodeRegion populates every grid slot by reading stream, which is
// fileSize bytes long. An empty stream (fileSize == 0) is a region with
// no chunks generated yet: every slot is left NotCreated. A non-empty
// stream shorter than the 8192-byte header is malformed at the whole-file
// level and returns ErrMissingHeader. Otherwise each of the 1024 slots is
// decoded independently; a malformed individual chunk only downgrades
// that chunk's State, never the whole call.
func (r *Region) DecodeRegion(stream Stream, fileSize int64) error {
	if fileSize == 0 {
		for cz := 0; cz < gridSize; cz++ {
			for cx := 0; cx < gridSize; cx++ {
				r.chunks[cx+cz*gridSize] = NewChunk(cx, cz)
			}
		}
		return nil
	}
	if fileSize < headerSectors*sectorSize {
		return ErrMissingHeader
	}
	for cz := 0; cz < gridSize; cz++ {
		for cx := 0; cx < gridSize; cx++ {
			c := NewChunk(cx, cz)
			if err := c.DecodeChunk(stream, fileSize); err != nil {
				return fmt.Errorf("region: decode chunk (%d,%d): %w", cx, cz, err)
			}
			r.chunks[cx+cz*gridSize] = c
		}
	}
	return nil
}

// EncodeRegion writes every chunk back to stream in the canonical
// row-major layout, starting allocation at sector 2 (§5). It is a
// two-pass write-back:
//
//  1. Recompute every chunk (re-serializing and compressing its NBT, if
//     present) and assign contiguous sector offsets to every chunk that
//     comes out Ok, in Range order. TooBig and Corrupted chunks are
//     skipped and left unallocated, exactly as if they were NotCreated.
//  2. Truncate the stream down to the exact final size and write each
//     chunk's directory entry, header and payload (or a zeroed directory
//     entry for anything not Ok).
//
// This always defragments: two chunks that happened to share overlapping
// sectors on disk before decode can never collide again after encode,
// because offsets are reassigned from scratch every time.
func (r *Region) EncodeRegion(stream Stream) error {
	cursor := uint32(headerSectors)
	var total uint32 = headerSectors * sectorSize

	for cz := 0; cz < gridSize; cz++ {
		for cx := 0; cx < gridSize; cx++ {
			c := r.chunks[cx+cz*gridSize]
			if _, err := c.Recompute(); err != nil {
				return fmt.Errorf("region: recompute chunk (%d,%d): %w", cx, cz, err)
			}
			if c.state != StateOk {
				continue
			}
			c.Offset = cursor
			cursor += uint32(c.Sectors)
			total += uint32(c.Sectors) * sectorSize
		}
	}

	if err := stream.Truncate(int64(total)); err != nil {
		return err
	}
	// Zero the header up front; EncodeChunk only ever writes 8 bytes per
	// slot, never the whole header in one shot.
	zero := make([]byte, headerSectors*sectorSize)
	if _, err := stream.WriteAt(zero, 0); err != nil {
		return err
	}

	for cz := 0; cz < gridSize; cz++ {
		for cx := 0; cx < gridSize; cx++ {
			c := r.chunks[cx+cz*gridSize]
			if err := c.EncodeChunk(stream, false); err != nil {
				return fmt.Errorf("region: encode chunk (%d,%d): %w", cx, cz, err)
			}
		}
	}
	return nil
}
