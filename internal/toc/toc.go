// Package toc implements component C of the content store: the
// persistent catalog of all entries, loaded into memory once at open
// and (re)written through a single memory-mapped region at close.
//
// The on-disk layout (spec.md §4.C) is a 4-byte count N followed by N
// serialized tocentry.Entry records in arbitrary order. Reads use a
// one-shot read-only mapping; writes use a mapping sized past the
// current file length by a configurable reserve, growing (unmap,
// truncate, remap) whenever an entry would overrun the mapped region.
package toc

import (
	"encoding/binary"
	"os"

	"github.com/edsrzf/mmap-go"
	"go.uber.org/zap"

	"github.com/corpusdb/contentstore/internal/tocentry"
	"github.com/corpusdb/contentstore/pkg/errors"
)

// countFieldSize is the width of the leading entry-count field.
const countFieldSize = 4

// TOC is the in-memory catalog of entries, keyed by entry id. It tracks
// whether it has been mutated since the last Flush so close() can skip
// rewriting an unmodified TOC.
type TOC struct {
	log      *zap.SugaredLogger
	entries  map[uint32]tocentry.Entry
	modified bool
}

// New returns an empty TOC, used when creating a fresh store.
func New(log *zap.SugaredLogger) *TOC {
	return &TOC{log: log, entries: make(map[uint32]tocentry.Entry)}
}

// Load reads an existing toc.dat from path. A missing file is not an
// error: it is treated the same as a freshly created, empty TOC.
func Load(path string, log *zap.SugaredLogger) (*TOC, error) {
	exists, err := fileExists(path)
	if err != nil {
		return nil, errors.NewStoreError(err, errors.ErrorCodeIO, "failed to stat TOC file").WithPath(path)
	}
	if !exists {
		log.Infow("no existing TOC file found, starting empty", "path", path)
		return New(log), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.ClassifyFileOpenError(err, path, "toc.dat")
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, errors.NewStoreError(err, errors.ErrorCodeIO, "failed to stat TOC file").WithPath(path)
	}
	if stat.Size() == 0 {
		log.Infow("TOC file is empty, starting with no entries", "path", path)
		return New(log), nil
	}

	region, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, errors.ClassifyMmapError(err, path, stat.Size())
	}
	defer region.Unmap()

	entries, err := decodeAll(region)
	if err != nil {
		return nil, err
	}

	log.Infow("loaded TOC", "path", path, "entries", len(entries))
	return &TOC{log: log, entries: entries}, nil
}

func decodeAll(region mmap.MMap) (map[uint32]tocentry.Entry, error) {
	if len(region) < countFieldSize {
		return nil, errors.NewStoreError(
			nil, errors.ErrorCodeTOCCorrupted, "TOC file too short for entry count",
		).WithDetail("size", len(region))
	}

	n := binary.LittleEndian.Uint32(region[:countFieldSize])
	entries := make(map[uint32]tocentry.Entry, n)

	offset := countFieldSize
	for i := uint32(0); i < n; i++ {
		entry, consumed, err := tocentry.Unmarshal(region[offset:])
		if err != nil {
			return nil, err
		}
		entries[entry.ID] = entry
		offset += consumed
	}

	return entries, nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Get returns the entry with the given id, if present (including
// tombstoned entries — callers decide what "absent" means).
func (t *TOC) Get(id uint32) (tocentry.Entry, bool) {
	e, ok := t.entries[id]
	return e, ok
}

// Put inserts or replaces an entry and marks the TOC modified.
func (t *TOC) Put(e tocentry.Entry) {
	t.entries[e.ID] = e
	t.modified = true
}

// Delete marks the entry's tombstone flag, if present. It is a no-op
// for an absent id, per spec.md §6.2.
func (t *TOC) Delete(id uint32) {
	e, ok := t.entries[id]
	if !ok || e.Deleted {
		return
	}
	e.Deleted = true
	t.entries[id] = e
	t.modified = true
}

// Clear empties the TOC and marks it modified.
func (t *TOC) Clear() {
	t.entries = make(map[uint32]tocentry.Entry)
	t.modified = true
}

// Modified reports whether the TOC has changed since the last Flush.
func (t *TOC) Modified() bool {
	return t.modified
}

// All returns every entry currently in the TOC, live and tombstoned.
// Used at open to reconstruct next_id/current_file_id/current_file_length.
func (t *TOC) All() []tocentry.Entry {
	out := make([]tocentry.Entry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e)
	}
	return out
}

// Len returns the number of entries in the TOC, live and tombstoned.
func (t *TOC) Len() int {
	return len(t.entries)
}
