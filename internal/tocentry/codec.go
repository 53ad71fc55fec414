package tocentry

import (
	"encoding/binary"

	"github.com/corpusdb/contentstore/pkg/errors"
)

// headerSize is the fixed-width portion of a serialized entry: id,
// file_id, entry_offset_bytes, entry_length_bytes,
// char_length_or_deleted, block_size_characters, n_blocks.
const headerSize = 28

// Size returns the serialized size of the entry in bytes:
// 28 + 4*n_blocks, per spec.md §4.B.
func (e *Entry) Size() int {
	return headerSize + 4*len(e.BlockOffsetBytes)
}

// Marshal writes the entry's binary layout into buf, which must have at
// least e.Size() bytes available, and returns the number of bytes
// written.
func (e *Entry) Marshal(buf []byte) int {
	charLengthOrDeleted := int32(e.EntryLengthCharacters)
	if e.Deleted {
		charLengthOrDeleted = deletedCharLength
	}

	binary.LittleEndian.PutUint32(buf[0:4], e.ID)
	binary.LittleEndian.PutUint32(buf[4:8], e.FileID)
	binary.LittleEndian.PutUint32(buf[8:12], e.EntryOffsetBytes)
	binary.LittleEndian.PutUint32(buf[12:16], e.EntryLengthBytes)
	binary.LittleEndian.PutUint32(buf[16:20], uint32(charLengthOrDeleted))
	binary.LittleEndian.PutUint32(buf[20:24], e.BlockSizeCharacters)
	binary.LittleEndian.PutUint32(buf[24:28], uint32(len(e.BlockOffsetBytes)))

	offset := headerSize
	for _, b := range e.BlockOffsetBytes {
		binary.LittleEndian.PutUint32(buf[offset:offset+4], b)
		offset += 4
	}

	return offset
}

// Unmarshal reads one serialized entry from the front of buf. It
// returns the entry and the number of bytes consumed, or an error if
// buf is too short to hold a full entry's header or block table.
func Unmarshal(buf []byte) (Entry, int, error) {
	if len(buf) < headerSize {
		return Entry{}, 0, errors.NewStoreError(
			nil, errors.ErrorCodeTOCCorrupted, "TOC buffer too short for entry header",
		).WithDetail("available", len(buf)).WithDetail("want", headerSize)
	}

	var e Entry
	e.ID = binary.LittleEndian.Uint32(buf[0:4])
	e.FileID = binary.LittleEndian.Uint32(buf[4:8])
	e.EntryOffsetBytes = binary.LittleEndian.Uint32(buf[8:12])
	e.EntryLengthBytes = binary.LittleEndian.Uint32(buf[12:16])

	charLengthOrDeleted := int32(binary.LittleEndian.Uint32(buf[16:20]))
	e.BlockSizeCharacters = binary.LittleEndian.Uint32(buf[20:24])
	nBlocks := binary.LittleEndian.Uint32(buf[24:28])

	if charLengthOrDeleted < 0 {
		e.Deleted = true
	} else {
		e.EntryLengthCharacters = uint32(charLengthOrDeleted)
	}

	offset := headerSize
	need := offset + 4*int(nBlocks)
	if len(buf) < need {
		return Entry{}, 0, errors.NewStoreError(
			nil, errors.ErrorCodeTOCCorrupted, "TOC buffer too short for block offset table",
		).WithDetail("available", len(buf)).WithDetail("want", need)
	}

	if nBlocks > 0 {
		e.BlockOffsetBytes = make([]uint32, nBlocks)
		for i := range e.BlockOffsetBytes {
			e.BlockOffsetBytes[i] = binary.LittleEndian.Uint32(buf[offset : offset+4])
			offset += 4
		}
	}

	return e, offset, nil
}
