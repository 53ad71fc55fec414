package errors

// StoreError is a specialized error type for data-file and TOC I/O
// failures. It embeds baseError to inherit cause/code/details handling
// and adds the location context needed to pinpoint exactly which file
// and byte offset were involved.
type StoreError struct {
	*baseError
	fileID   uint32 // Data file id, or 0 if the failure is TOC-wide.
	offset   int64  // Byte offset within the file where the problem happened.
	fileName string // Name of the file that caused the issue.
	path     string // Full path of the file that caused the issue.
}

// NewStoreError creates a new store-specific error.
func NewStoreError(err error, code ErrorCode, msg string) *StoreError {
	return &StoreError{baseError: NewBaseError(err, code, msg)}
}

// WithMessage updates the error message while preserving the StoreError type.
func (se *StoreError) WithMessage(msg string) *StoreError {
	se.baseError.WithMessage(msg)
	return se
}

// WithDetail adds contextual information while preserving the StoreError type.
func (se *StoreError) WithDetail(key string, value any) *StoreError {
	se.baseError.WithDetail(key, value)
	return se
}

// WithFileID records which data file was being accessed.
func (se *StoreError) WithFileID(id uint32) *StoreError {
	se.fileID = id
	return se
}

// WithOffset records the byte position where the error occurred.
func (se *StoreError) WithOffset(offset int64) *StoreError {
	se.offset = offset
	return se
}

// WithFileName captures which file was being processed when the error occurred.
func (se *StoreError) WithFileName(fileName string) *StoreError {
	se.fileName = fileName
	return se
}

// WithPath captures which path was being processed when the error occurred.
func (se *StoreError) WithPath(path string) *StoreError {
	se.path = path
	return se
}

// FileID returns the data file identifier involved in the error, if any.
func (se *StoreError) FileID() uint32 {
	return se.fileID
}

// Offset returns the byte offset within the file where the error happened.
func (se *StoreError) Offset() int64 {
	return se.offset
}

// FileName returns the name of the file that was being processed.
func (se *StoreError) FileName() string {
	return se.fileName
}

// Path returns the path of the file that was being processed.
func (se *StoreError) Path() string {
	return se.path
}
