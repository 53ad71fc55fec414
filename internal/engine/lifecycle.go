package engine

import (
	"github.com/corpusdb/contentstore/internal/datafiles"
)

// Delete marks id's TOC entry as tombstoned. It is a no-op if id is
// absent, per spec.md §4.E.3: no bytes are reclaimed.
func (e *Engine) Delete(id uint32) error {
	if e.closed.Load() {
		return ErrClosed
	}
	e.toc.Delete(id)
	return nil
}

// Clear closes the current data file, deletes every data file the TOC
// references, empties the TOC, and resets the store's counters to
// their fresh-store values, per spec.md §4.E.4.
func (e *Engine) Clear() error {
	if e.closed.Load() {
		return ErrClosed
	}

	if err := e.data.Close(); err != nil {
		return err
	}

	seen := make(map[uint32]struct{})
	for _, entry := range e.toc.All() {
		seen[entry.FileID] = struct{}{}
	}
	fileIDs := make([]uint32, 0, len(seen))
	for id := range seen {
		fileIDs = append(fileIDs, id)
	}
	if err := datafiles.DeleteAll(e.dir, fileIDs); err != nil {
		return err
	}

	e.toc.Clear()
	e.nextID = 1
	e.building = false
	e.blockOffsets = nil
	e.currentBlockChars.Reset()

	data, err := datafiles.Open(e.dir, e.opts.DataFileSizeHint, 1, 0, e.log)
	if err != nil {
		return err
	}
	e.data = data

	e.log.Infow("store cleared", "dir", e.dir)
	return nil
}
