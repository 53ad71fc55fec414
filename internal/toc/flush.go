package toc

import (
	"encoding/binary"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/corpusdb/contentstore/pkg/errors"
)

// Flush rewrites the entire TOC file through a single memory-mapped
// region, growing the mapping on demand. It is a no-op when the TOC
// has not been modified since the last Flush (or since Load), matching
// spec.md §4.C: "the TOC is (re)written only at close, and only if
// toc_modified is set."
//
// The mapping starts at the current file length plus reserve bytes.
// Whenever the space remaining in the mapping is too small for the
// next entry, the mapping is unmapped, the backing file is truncated
// to a larger size (grown by as many reserves as the entry needs), and
// a fresh mapping is taken up — writing then
// resumes at the same logical offset. The file is truncated down to
// the exact bytes written once serialization completes, so a reopen
// never sees trailing reserve garbage.
func (t *TOC) Flush(path string, reserveBytes int64) error {
	if !t.modified {
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return errors.ClassifyFileOpenError(err, path, "toc.dat")
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return errors.NewStoreError(err, errors.ErrorCodeIO, "failed to stat TOC file").WithPath(path)
	}

	mapLen := stat.Size() + reserveBytes
	if err := f.Truncate(mapLen); err != nil {
		return errors.NewStoreError(err, errors.ErrorCodeIO, "failed to grow TOC file for mapping").WithPath(path)
	}

	region, err := mmap.MapRegion(f, int(mapLen), mmap.RDWR, 0, 0)
	if err != nil {
		return errors.ClassifyMmapError(err, path, mapLen)
	}

	offset := int64(0)
	binary.LittleEndian.PutUint32(region[offset:offset+countFieldSize], uint32(len(t.entries)))
	offset += countFieldSize

	for _, entry := range t.entries {
		need := int64(entry.Size())

		if int64(len(region))-offset < need {
			t.log.Infow(
				"TOC write mapping exhausted, remapping with additional reserve",
				"path", path, "offset", offset, "mapLen", mapLen, "reserve", reserveBytes,
			)

			if err := region.Unmap(); err != nil {
				return errors.ClassifyMmapError(err, path, mapLen)
			}

			for mapLen-offset < need {
				mapLen += reserveBytes
			}
			if err := f.Truncate(mapLen); err != nil {
				return errors.NewStoreError(err, errors.ErrorCodeIO, "failed to grow TOC file for remap").WithPath(path)
			}

			region, err = mmap.MapRegion(f, int(mapLen), mmap.RDWR, 0, 0)
			if err != nil {
				return errors.ClassifyMmapError(err, path, mapLen)
			}
		}

		offset += int64(entry.Marshal(region[offset:]))
	}

	if err := region.Flush(); err != nil {
		return errors.ClassifyMmapError(err, path, mapLen)
	}
	if err := region.Unmap(); err != nil {
		return errors.ClassifyMmapError(err, path, mapLen)
	}
	if err := f.Truncate(offset); err != nil {
		return errors.NewStoreError(err, errors.ErrorCodeIO, "failed to trim TOC file to final size").WithPath(path)
	}

	t.modified = false
	t.log.Infow("TOC flushed", "path", path, "entries", len(t.entries), "bytes", offset)
	return nil
}
