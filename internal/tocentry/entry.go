// Package tocentry implements component B of the content store: the
// in-memory record of one stored entry and its fixed binary layout on
// disk. See spec.md §3.1 and §4.B.
package tocentry

// deletedCharLength is the on-disk sentinel stored in place of
// EntryLengthCharacters for a tombstoned entry. Readers must treat any
// negative char_length_or_deleted as "deleted, length unknown on disk".
const deletedCharLength = -1

// Entry is one record per stored string: where it lives (FileID,
// EntryOffsetBytes), how big it is in bytes and characters, and the
// block boundaries (BlockOffsetBytes) that let retrieval jump straight
// to the bytes backing an arbitrary character range.
type Entry struct {
	ID                    uint32
	FileID                uint32
	EntryOffsetBytes      uint32
	EntryLengthBytes      uint32
	EntryLengthCharacters uint32
	BlockSizeCharacters   uint32

	// BlockOffsetBytes holds the byte offset, relative to
	// EntryOffsetBytes, of the first byte of each block.
	// BlockOffsetBytes[0] == 0 whenever the entry is non-empty.
	BlockOffsetBytes []uint32

	// Deleted marks a tombstone. Tombstoned entries retain their byte
	// footprint; no bytes are reclaimed (spec.md invariant 7).
	Deleted bool
}

// NumBlocks returns len(BlockOffsetBytes), the number of blocks the
// entry was split into at write time.
func (e *Entry) NumBlocks() int {
	return len(e.BlockOffsetBytes)
}

// BlockByteRange returns the [start, end) byte range, relative to the
// data file, of block j. end is EntryOffsetBytes + EntryLengthBytes for
// the last block.
func (e *Entry) BlockByteRange(j int) (start, end uint32) {
	start = e.EntryOffsetBytes + e.BlockOffsetBytes[j]
	if j+1 < len(e.BlockOffsetBytes) {
		end = e.EntryOffsetBytes + e.BlockOffsetBytes[j+1]
	} else {
		end = e.EntryOffsetBytes + e.EntryLengthBytes
	}
	return start, end
}

// BlockForChar returns the index of the block containing character
// offset c, given the entry's block size. Used for both ends of a
// retrieval range per spec.md §4.E.2.
func (e *Entry) BlockForChar(c int) int {
	return c / int(e.BlockSizeCharacters)
}
