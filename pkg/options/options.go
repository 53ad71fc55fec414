// Package options provides data structures and functions for configuring
// the content store. It defines the parameters that control block
// sizing, data-file rollover, and TOC mapping growth.
package options

import "strings"

// Options defines the configuration parameters for a content store.
// It provides control over storage layout and the tuning knobs named
// in spec.md §6.3.
type Options struct {
	// DataDir records the store directory. contentstore.Open sets it to
	// its dir argument before applying options; the store's toc.dat,
	// data%04d.dat files, and type marker are always placed under that
	// dir argument, not under a DataDir set by an option.
	//
	// Default: "/var/lib/contentstore"
	DataDir string `json:"dataDir"`

	// BlockSizeCharacters is the fixed character-block size applied to
	// entries created after the option is set. Existing entries keep the
	// block size they were created with.
	//
	// Default: 4000
	BlockSizeCharacters uint32 `json:"blockSizeCharacters"`

	// DataFileSizeHint is the byte size past which the current data file
	// is rolled over before the next entry is written.
	//
	// Default: 100,000,000
	DataFileSizeHint int64 `json:"dataFileSizeHint"`

	// WriteMapReserveBytes is the extra byte span reserved past the
	// current TOC length whenever the TOC is mapped for writing.
	//
	// Default: 1,000,000
	WriteMapReserveBytes int64 `json:"writeMapReserveBytes"`
}

// OptionFunc is a function type that modifies a store's configuration.
type OptionFunc func(*Options)

// WithDefaultOptions applies the package defaults to Options.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		opts := NewDefaultOptions()
		o.DataDir = opts.DataDir
		o.BlockSizeCharacters = opts.BlockSizeCharacters
		o.DataFileSizeHint = opts.DataFileSizeHint
		o.WriteMapReserveBytes = opts.WriteMapReserveBytes
	}
}

// WithDataDir sets the DataDir field. It does not change where
// contentstore.Open places the store's files.
func WithDataDir(directory string) OptionFunc {
	return func(o *Options) {
		directory = strings.TrimSpace(directory)
		if directory != "" {
			o.DataDir = directory
		}
	}
}

// WithBlockSizeCharacters sets the character-block size used by entries
// created from this point on. Values outside [MinBlockSizeCharacters,
// MaxBlockSizeCharacters] are ignored.
func WithBlockSizeCharacters(size uint32) OptionFunc {
	return func(o *Options) {
		if size >= MinBlockSizeCharacters && size <= MaxBlockSizeCharacters {
			o.BlockSizeCharacters = size
		}
	}
}

// WithDataFileSizeHint sets the byte threshold that triggers data-file
// rollover before the next entry is written.
func WithDataFileSizeHint(size int64) OptionFunc {
	return func(o *Options) {
		if size >= MinDataFileSizeHint {
			o.DataFileSizeHint = size
		}
	}
}

// WithWriteMapReserve sets the extra byte span reserved past the TOC's
// current length whenever it is mapped for writing.
func WithWriteMapReserve(size int64) OptionFunc {
	return func(o *Options) {
		if size >= MinWriteMapReserve {
			o.WriteMapReserveBytes = size
		}
	}
}
