package engine

import (
	"strings"

	"github.com/corpusdb/contentstore/internal/codec"
	"github.com/corpusdb/contentstore/internal/datafiles"
	"github.com/corpusdb/contentstore/internal/tocentry"
	"github.com/corpusdb/contentstore/pkg/errors"
)

// Retrieve returns the entire decoded string for id, per spec.md
// §4.E.2 ("retrieve(id) is defined as retrieve_parts(id, [-1], [-1])[0]").
// The second return value is false when id is absent or tombstoned.
func (e *Engine) Retrieve(id uint32) (string, bool, error) {
	results, ok, err := e.RetrieveParts(id, []int{-1}, []int{-1})
	if err != nil || !ok {
		return "", ok, err
	}
	return results[0], true, nil
}

// RetrieveParts returns one substring per (starts[i], ends[i]) pair.
// The second return value is false when id is absent or tombstoned, in
// which case results is nil — absence is signaled for the whole call,
// never per pair.
func (e *Engine) RetrieveParts(id uint32, starts, ends []int) ([]string, bool, error) {
	if e.closed.Load() {
		return nil, false, ErrClosed
	}
	if len(starts) != len(ends) {
		return nil, false, errors.NewShapeMismatchError(len(starts), len(ends))
	}

	entry, ok := e.toc.Get(id)
	if !ok || entry.Deleted {
		return nil, false, nil
	}

	var reader *datafiles.Reader
	if entry.NumBlocks() > 0 {
		r, err := datafiles.OpenReader(e.dir, entry.FileID)
		if err != nil {
			return nil, false, err
		}
		reader = r
		defer reader.Close()
	}

	results := make([]string, len(starts))
	for i := range starts {
		a, b := starts[i], ends[i]

		if a == -1 && b == -1 {
			a, b = 0, int(entry.EntryLengthCharacters)
		} else {
			if a < 0 || b < 0 {
				return nil, false, errors.NewIllegalRangeError(i, starts[i], ends[i])
			}
			if a > int(entry.EntryLengthCharacters) || b > int(entry.EntryLengthCharacters) {
				return nil, false, errors.NewRangeOutOfBoundsError(i, a, b, entry.EntryLengthCharacters)
			}
			if b <= a {
				return nil, false, errors.NewEmptySnippetError(i, a, b)
			}
		}

		if a == b {
			results[i] = ""
			continue
		}

		s, err := readRange(&entry, reader, a, b)
		if err != nil {
			return nil, false, err
		}
		results[i] = s
	}

	return results, true, nil
}

// readRange implements the per-pair algorithm of spec.md §4.E.2: find
// the span of blocks covering [a, b), read and decode exactly those
// blocks, then slice the accumulated characters to the exact range.
func readRange(entry *tocentry.Entry, reader *datafiles.Reader, a, b int) (string, error) {
	blockSize := int(entry.BlockSizeCharacters)
	firstBlock := entry.BlockForChar(a)
	lastBlock := entry.BlockForChar(b - 1)

	var acc strings.Builder
	for j := firstBlock; j <= lastBlock; j++ {
		start, end := entry.BlockByteRange(j)

		chunk, err := reader.ReadRange(start, end)
		if err != nil {
			return "", err
		}

		decoded, err := codec.Decode(chunk)
		if err != nil {
			return "", err
		}
		acc.WriteString(decoded)
	}

	firstCharInAccumulator := a % blockSize
	runes := []rune(acc.String())
	return string(runes[firstCharInAccumulator : firstCharInAccumulator+(b-a)]), nil
}
