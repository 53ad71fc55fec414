package errors

// RetrievalError is a specialized error type for the failure modes
// spec.md §7 assigns to retrieve_parts: shape mismatch, illegal values,
// out of range, and empty snippet. It embeds baseError for the standard
// cause/code/details handling and adds the request context needed to
// explain exactly which pair failed.
type RetrievalError struct {
	*baseError
	entryID uint32 // Entry the request was made against.
	pair    int    // Index into starts/ends of the offending pair, or -1.
	start   int    // Requested start offset for the offending pair.
	end     int    // Requested end offset for the offending pair.
}

// NewRetrievalError creates a new retrieval-specific error.
func NewRetrievalError(code ErrorCode, msg string) *RetrievalError {
	return &RetrievalError{baseError: NewBaseError(nil, code, msg), pair: -1}
}

// WithDetail adds contextual information while preserving the RetrievalError type.
func (re *RetrievalError) WithDetail(key string, value any) *RetrievalError {
	re.baseError.WithDetail(key, value)
	return re
}

// WithEntryID records which entry the request was made against.
func (re *RetrievalError) WithEntryID(id uint32) *RetrievalError {
	re.entryID = id
	return re
}

// WithPair records which (start, end) pair in the request failed.
func (re *RetrievalError) WithPair(index, start, end int) *RetrievalError {
	re.pair = index
	re.start = start
	re.end = end
	return re
}

// EntryID returns the entry the failing request was made against.
func (re *RetrievalError) EntryID() uint32 {
	return re.entryID
}

// Pair returns the index of the offending (start, end) pair, or -1 if
// the failure was not specific to one pair (e.g. a shape mismatch).
func (re *RetrievalError) Pair() int {
	return re.pair
}

// Start returns the requested start offset for the offending pair.
func (re *RetrievalError) Start() int {
	return re.start
}

// End returns the requested end offset for the offending pair.
func (re *RetrievalError) End() int {
	return re.end
}

// NewShapeMismatchError reports starts and ends differing in length.
func NewShapeMismatchError(startsLen, endsLen int) *RetrievalError {
	return NewRetrievalError(ErrorCodeShapeMismatch, "starts and ends must have equal length").
		WithDetail("startsLen", startsLen).
		WithDetail("endsLen", endsLen)
}

// NewIllegalRangeError reports a negative start/end outside the
// (-1, -1) sentinel.
func NewIllegalRangeError(index, start, end int) *RetrievalError {
	return NewRetrievalError(ErrorCodeIllegalRange, "start and end must be non-negative, or both -1").
		WithPair(index, start, end)
}

// NewRangeOutOfBoundsError reports a start or end beyond the entry's
// character length.
func NewRangeOutOfBoundsError(index, start, end int, entryLength uint32) *RetrievalError {
	return NewRetrievalError(ErrorCodeRangeOutOfBounds, "start or end exceeds entry length").
		WithPair(index, start, end).
		WithDetail("entryLengthCharacters", entryLength)
}

// NewEmptySnippetError reports end <= start for a requested pair.
func NewEmptySnippetError(index, start, end int) *RetrievalError {
	return NewRetrievalError(ErrorCodeEmptySnippet, "end must be greater than start").
		WithPair(index, start, end)
}

// NewShortBlockError reports a data file yielding fewer bytes than the
// TOC prescribed for a block.
func NewShortBlockError(cause error, wantBytes, gotBytes int) *StoreError {
	return NewStoreError(cause, ErrorCodeShortBlock, "short read while decoding block").
		WithDetail("wantBytes", wantBytes).
		WithDetail("gotBytes", gotBytes)
}
