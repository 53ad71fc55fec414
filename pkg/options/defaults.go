package options

const (
	// DefaultDataDir is the DataDir value NewDefaultOptions returns;
	// contentstore.Open replaces it with its required dir argument.
	DefaultDataDir = "/var/lib/contentstore"

	// DefaultBlockSizeCharacters is the fixed character-block size new
	// entries are stored with. Larger blocks mean fewer reads per
	// substring at the cost of decoding more characters than requested;
	// smaller blocks trade the other way.
	DefaultBlockSizeCharacters uint32 = 4000

	// MinBlockSizeCharacters is the smallest block size
	// WithBlockSizeCharacters will accept.
	MinBlockSizeCharacters uint32 = 1

	// MaxBlockSizeCharacters bounds block size well below where a
	// single block's byte span could approach uint32 overflow.
	MaxBlockSizeCharacters uint32 = 1 << 24

	// DefaultDataFileSizeHint is the byte threshold past which the next
	// entry triggers rollover to a new data file.
	DefaultDataFileSizeHint int64 = 100_000_000

	// MinDataFileSizeHint is the smallest size hint
	// WithDataFileSizeHint will accept.
	MinDataFileSizeHint int64 = 1

	// DefaultWriteMapReserve is the extra byte span reserved past the
	// current TOC file length whenever the TOC is mapped for writing.
	DefaultWriteMapReserve int64 = 1_000_000

	// MinWriteMapReserve is the smallest reserve
	// WithWriteMapReserve will accept.
	MinWriteMapReserve int64 = 1

	// DataFilePrefix and DataFileExtension fix the on-disk naming scheme
	// from spec.md §6.1: data%04d.dat.
	DataFilePrefix    = "data"
	DataFileExtension = ".dat"

	// TOCFileName is the fixed name of the table-of-contents file.
	TOCFileName = "toc.dat"

	// TypeMarkerName is the empty marker file identifying the store
	// format and version, per spec.md §3.1.
	TypeMarkerName = "utf8.1"
)

// defaultOptions holds the package-level defaults, copied by value into
// NewDefaultOptions callers.
var defaultOptions = Options{
	DataDir:              DefaultDataDir,
	BlockSizeCharacters:  DefaultBlockSizeCharacters,
	DataFileSizeHint:     DefaultDataFileSizeHint,
	WriteMapReserveBytes: DefaultWriteMapReserve,
}

// NewDefaultOptions returns a copy of the package defaults, ready to be
// mutated by OptionFunc values.
func NewDefaultOptions() Options {
	return defaultOptions
}
