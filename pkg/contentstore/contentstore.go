// Package contentstore is the public entry point for the content
// store: a persistent, append-only, random-access repository mapping
// small integer ids to long UTF-8 strings, with retrieval of arbitrary
// character-offset substrings.
//
// A Store is not safe for concurrent use from multiple goroutines; the
// scheduling model is single-writer, single-reader, and callers own
// serializing store/delete/retrieve calls among themselves (spec.md §5).
package contentstore

import (
	"context"

	"github.com/corpusdb/contentstore/internal/engine"
	"github.com/corpusdb/contentstore/pkg/errors"
	"github.com/corpusdb/contentstore/pkg/logger"
	"github.com/corpusdb/contentstore/pkg/options"
)

// Store is the primary handle applications hold to read and write a
// content store directory.
type Store struct {
	engine  *engine.Engine
	options *options.Options
}

// Open opens an existing store directory at dir, reconstructing its
// counters from toc.dat. When create is true, the directory is wiped
// and reinitialized as an empty store instead.
func Open(ctx context.Context, dir string, create bool, service string, opts ...options.OptionFunc) (*Store, error) {
	if dir == "" {
		return nil, errors.NewRequiredFieldError("dir")
	}

	log := logger.New(service)

	config := options.NewDefaultOptions()
	config.DataDir = dir
	for _, opt := range opts {
		opt(&config)
	}

	eng, err := engine.New(ctx, &engine.Config{Dir: dir, Create: create, Options: &config, Logger: log})
	if err != nil {
		return nil, err
	}

	return &Store{engine: eng, options: &config}, nil
}

// Close flushes the current data file and, if the TOC changed, rewrites
// it before releasing all resources. Per spec.md §3.3, durability is
// only guaranteed after Close returns without error.
func (s *Store) Close() error {
	return s.engine.Close()
}

// Clear removes every entry and every data file from the store,
// resetting it to the state of a freshly created, empty store.
func (s *Store) Clear() error {
	return s.engine.Clear()
}

// StorePart appends characters to the entry currently being built. It
// is a no-op when s is empty. One or more StorePart calls must be
// followed by exactly one Store call to finalize the entry.
func (s *Store) StorePart(chars string) error {
	return s.engine.StorePart(chars)
}

// Store finalizes the entry being built — streaming chars through
// StorePart first — and returns its id. Calling Store with no prior
// StorePart calls (or with chars = "") produces a valid, empty entry.
func (s *Store) Store(chars string) (uint32, error) {
	return s.engine.Store(chars)
}

// Retrieve returns the entire string stored under id. The second
// return value is false when id is absent or has been deleted.
func (s *Store) Retrieve(id uint32) (string, bool, error) {
	return s.engine.Retrieve(id)
}

// RetrieveParts returns one substring per (starts[i], ends[i]) character
// range. Passing [-1] for both start and end in a pair selects the
// entire entry. The second return value is false when id is absent or
// deleted, in which case it applies to the whole call, not per pair.
func (s *Store) RetrieveParts(id uint32, starts, ends []int) ([]string, bool, error) {
	return s.engine.RetrieveParts(id, starts, ends)
}

// Delete tombstones id. It does not reclaim the entry's bytes and is a
// no-op if id is absent.
func (s *Store) Delete(id uint32) error {
	return s.engine.Delete(id)
}

// SetBlockSizeCharacters changes the character-block size applied to
// entries started after this call.
func (s *Store) SetBlockSizeCharacters(n uint32) {
	s.engine.SetBlockSizeCharacters(n)
}

// SetDataFileSizeHint records a new byte threshold for data file
// rollover. Rollover checks made before Clear is next called still use
// the threshold the store was opened with.
func (s *Store) SetDataFileSizeHint(n int64) {
	s.engine.SetDataFileSizeHint(n)
}

// SetWriteMapReserve changes the extra byte span reserved past the
// TOC's current length the next time it is mapped for writing.
func (s *Store) SetWriteMapReserve(n int64) {
	s.engine.SetWriteMapReserve(n)
}
