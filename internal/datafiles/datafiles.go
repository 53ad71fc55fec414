// Package datafiles implements component D of the content store: the
// ordered, append-only sequence of data files an entry's encoded bytes
// live in, with size-capped rollover between entries.
//
// A Set holds exactly one data file stream open for writing at a time
// (the "current" file), mirroring the donor storage engine's single
// active-segment design, generalized from timestamped segment files to
// the fixed data%04d.dat naming spec.md §6.1 requires. Rollover is
// checked only between entries — never mid-entry — per invariant 5.
package datafiles

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/corpusdb/contentstore/pkg/errors"
)

// FileName returns the fixed data-file name for the given file id:
// data0001.dat, data0002.dat, and so on.
func FileName(id uint32) string {
	return fmt.Sprintf("data%04d.dat", id)
}

// Set manages the currently active data file and the rollover policy
// that rotates to a fresh file id once the active file exceeds its
// size hint.
type Set struct {
	dir      string
	sizeHint int64
	log      *zap.SugaredLogger

	currentFileID uint32
	currentLength int64
	current       *os.File
}

// Open prepares a Set rooted at dir, resuming at fileID/length (as
// recovered from the TOC on reopen, or 1/0 for a fresh store) and
// opening that file for append.
func Open(dir string, sizeHint int64, fileID uint32, length int64, log *zap.SugaredLogger) (*Set, error) {
	s := &Set{dir: dir, sizeHint: sizeHint, log: log, currentFileID: fileID, currentLength: length}

	f, err := s.openForAppend(fileID, false)
	if err != nil {
		return nil, err
	}
	s.current = f

	log.Infow("data file set opened", "dir", dir, "currentFileID", fileID, "currentLength", length)
	return s, nil
}

// openForAppend opens (creating if needed) the data file for id in
// append mode positioned at end-of-file. truncate forces a fresh file
// even if a stale remnant with the same name exists, per spec.md §4.D.
func (s *Set) openForAppend(id uint32, truncate bool) (*os.File, error) {
	name := FileName(id)
	path := filepath.Join(s.dir, name)

	flags := os.O_CREATE | os.O_RDWR | os.O_APPEND
	if truncate {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, errors.ClassifyFileOpenError(err, path, name)
	}

	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		f.Close()
		return nil, errors.NewStoreError(err, errors.ErrorCodeIO, "failed to seek to end of data file").
			WithFileID(id).WithFileName(name).WithPath(path)
	}

	return f, nil
}

// RolloverIfNeeded closes the current file and advances to a fresh file
// id when the current file has grown past the size hint. It must only
// be called between entries (invariant 5): callers never call it while
// an entry's blocks are still being appended.
func (s *Set) RolloverIfNeeded() error {
	if s.currentLength <= s.sizeHint {
		return nil
	}

	nextID := s.currentFileID + 1
	s.log.Infow(
		"data file exceeded size hint, rolling over",
		"currentFileID", s.currentFileID, "currentLength", s.currentLength,
		"sizeHint", s.sizeHint, "nextFileID", nextID,
	)

	if err := s.current.Close(); err != nil {
		return errors.NewStoreError(err, errors.ErrorCodeIO, "failed to close data file before rollover").
			WithFileID(s.currentFileID)
	}

	f, err := s.openForAppend(nextID, true)
	if err != nil {
		return err
	}

	s.current = f
	s.currentFileID = nextID
	s.currentLength = 0
	return nil
}

// Append writes p to the current data file and advances the current
// file's length. It returns the offset within the current file that p
// started at.
func (s *Set) Append(p []byte) (offset int64, err error) {
	if len(p) == 0 {
		return 0, errors.NewStoreError(nil, errors.ErrorCodeInternal, "attempted to append an empty block").
			WithFileID(s.currentFileID)
	}

	offset = s.currentLength
	n, err := s.current.Write(p)
	if err != nil {
		return 0, errors.NewStoreError(err, errors.ErrorCodeIO, "failed to append to data file").
			WithFileID(s.currentFileID).WithOffset(offset)
	}
	s.currentLength += int64(n)
	return offset, nil
}

// CurrentFileID returns the file id entries are currently being
// appended to.
func (s *Set) CurrentFileID() uint32 {
	return s.currentFileID
}

// CurrentLength returns the current file's length in bytes.
func (s *Set) CurrentLength() int64 {
	return s.currentLength
}

// Close flushes and releases the currently open data file handle.
func (s *Set) Close() error {
	if s.current == nil {
		return nil
	}
	if err := s.current.Close(); err != nil {
		return errors.NewStoreError(err, errors.ErrorCodeIO, "failed to close data file").WithFileID(s.currentFileID)
	}
	s.current = nil
	return nil
}

// DeleteAll removes every data file named by fileIDs from dir. Used by
// clear() (spec.md §4.E.4); it tolerates files that are already gone.
func DeleteAll(dir string, fileIDs []uint32) error {
	for _, id := range fileIDs {
		path := filepath.Join(dir, FileName(id))
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return errors.NewStoreError(err, errors.ErrorCodeIO, "failed to delete data file").
				WithFileID(id).WithPath(path)
		}
	}
	return nil
}
