package engine

import (
	"github.com/corpusdb/contentstore/internal/codec"
	"github.com/corpusdb/contentstore/internal/tocentry"
	"github.com/corpusdb/contentstore/pkg/errors"
)

// ensureBuilding starts a new entry's bookkeeping the first time
// StorePart or Store is called for it. It rolls the data file set over
// before any bytes of the new entry are written, since rollover may
// only happen between entries (invariant 5).
func (e *Engine) ensureBuilding() error {
	if e.building {
		return nil
	}

	if err := e.data.RolloverIfNeeded(); err != nil {
		return err
	}

	e.building = true
	e.entryFileID = e.data.CurrentFileID()
	e.entryOffsetBytes = uint32(e.data.CurrentLength())
	e.blockSize = e.opts.BlockSizeCharacters
	e.charsWritten = 0
	e.bytesWritten = 0
	e.blockOffsets = nil
	e.currentBlockChars.Reset()
	return nil
}

// StorePart streams s into the entry currently being built, emitting
// one encoded block to the data file every time a block-size character
// boundary is crossed. See spec.md §4.E.1.
func (e *Engine) StorePart(s string) error {
	if e.closed.Load() {
		return ErrClosed
	}
	if s == "" {
		return nil
	}
	if err := e.ensureBuilding(); err != nil {
		return err
	}

	if len(e.blockOffsets) == 0 {
		e.blockOffsets = append(e.blockOffsets, 0)
	}

	chars := []rune(s)
	pos := 0
	blockSize := int(e.blockSize)
	after := int(e.charsWritten) + len(chars)
	nextBoundary := len(e.blockOffsets) * blockSize

	for after > nextBoundary {
		take := nextBoundary - int(e.charsWritten)
		if take > 0 {
			e.currentBlockChars.WriteString(string(chars[pos : pos+take]))
			e.charsWritten += uint32(take)
			pos += take
		}

		if e.currentBlockChars.Len() > 0 {
			if err := e.flushBlock(true); err != nil {
				return err
			}
		}

		nextBoundary = len(e.blockOffsets) * blockSize
	}

	if pos < len(chars) {
		e.currentBlockChars.WriteString(string(chars[pos:]))
		e.charsWritten += uint32(len(chars) - pos)
	}

	return nil
}

// flushBlock encodes the in-progress character buffer and appends it
// to the current data file. appendOffset is false only for an entry's
// final, possibly short, block — it is bounded by entry_length_bytes
// rather than by an entry in block_offset_bytes.
func (e *Engine) flushBlock(appendOffset bool) error {
	encoded := codec.Encode(e.currentBlockChars.String())
	if len(encoded) == 0 {
		return errors.NewStoreError(
			nil, errors.ErrorCodeInternal, "internal invariant violated: attempted to encode an empty block",
		).WithFileID(e.entryFileID)
	}

	if _, err := e.data.Append(encoded); err != nil {
		return err
	}

	e.bytesWritten += uint32(len(encoded))
	if appendOffset {
		e.blockOffsets = append(e.blockOffsets, e.bytesWritten)
	}
	e.currentBlockChars.Reset()
	return nil
}

// Store finishes the entry being built: it streams s through
// StorePart, flushes any trailing short block, inserts the finished
// entry into the TOC, and returns its id.
func (e *Engine) Store(s string) (uint32, error) {
	if e.closed.Load() {
		return 0, ErrClosed
	}

	if err := e.StorePart(s); err != nil {
		return 0, err
	}
	if err := e.ensureBuilding(); err != nil {
		return 0, err
	}

	if e.currentBlockChars.Len() > 0 {
		if err := e.flushBlock(false); err != nil {
			return 0, err
		}
	}

	id := e.nextID
	entry := tocentry.Entry{
		ID:                    id,
		FileID:                e.entryFileID,
		EntryOffsetBytes:      e.entryOffsetBytes,
		EntryLengthBytes:      e.bytesWritten,
		EntryLengthCharacters: e.charsWritten,
		BlockSizeCharacters:   e.blockSize,
		BlockOffsetBytes:      e.blockOffsets,
	}
	e.toc.Put(entry)
	e.nextID++
	e.building = false

	e.log.Infow(
		"entry stored", "id", id, "fileID", entry.FileID,
		"bytes", entry.EntryLengthBytes, "chars", entry.EntryLengthCharacters, "blocks", entry.NumBlocks(),
	)
	return id, nil
}
