package datafiles

import (
	"io"
	"os"
	"path/filepath"

	"github.com/corpusdb/contentstore/pkg/errors"
)

// Reader is a random-access handle on one data file, scoped to a single
// retrieve_parts call per spec.md §5: opened once, used across every
// block span the call touches, and released on return.
type Reader struct {
	f      *os.File
	fileID uint32
	path   string
}

// OpenReader opens the data file for fileID, read-only.
func OpenReader(dir string, fileID uint32) (*Reader, error) {
	path := filepath.Join(dir, FileName(fileID))

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.ClassifyFileOpenError(err, path, FileName(fileID))
	}
	return &Reader{f: f, fileID: fileID, path: path}, nil
}

// ReadRange reads exactly [start, end) from the file. A short read is
// reported as ErrorCodeShortBlock, per spec.md §7.
func (r *Reader) ReadRange(start, end uint32) ([]byte, error) {
	want := int(end - start)
	buf := make([]byte, want)

	n, err := r.f.ReadAt(buf, int64(start))
	if err != nil && err != io.EOF {
		return nil, errors.NewStoreError(err, errors.ErrorCodeIO, "failed to read data file").
			WithFileID(r.fileID).WithOffset(int64(start)).WithPath(r.path)
	}
	if n < want {
		return nil, errors.NewShortBlockError(err, want, n).WithFileID(r.fileID).WithOffset(int64(start)).WithPath(r.path)
	}

	return buf, nil
}

// Close releases the underlying file handle.
func (r *Reader) Close() error {
	return r.f.Close()
}
