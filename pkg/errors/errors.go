// Package errors gives the content store a hierarchical error system so
// that failures carry enough structured context to be handled, logged,
// and debugged without parsing error strings. A foundational baseError
// (cause, code, details) is specialized into StoreError (data-file and
// TOC I/O), RetrievalError (the retrieve_parts failure modes from
// spec.md §7), and ValidationError (bad configuration or arguments).
//
// Absence of an entry is not modeled as an error at all: per spec.md
// §7, retrieve/retrieve_parts signal a missing or tombstoned entry by
// returning the absence value, not by raising.
package errors

import (
	stdErrors "errors"
	"os"
	"syscall"
)

// IsValidationError reports whether err is, or wraps, a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return stdErrors.As(err, &ve)
}

// IsStoreError reports whether err is, or wraps, a StoreError.
func IsStoreError(err error) bool {
	var se *StoreError
	return stdErrors.As(err, &se)
}

// IsRetrievalError reports whether err is, or wraps, a RetrievalError.
func IsRetrievalError(err error) bool {
	var re *RetrievalError
	return stdErrors.As(err, &re)
}

// AsValidationError extracts a ValidationError from an error chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stdErrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AsStoreError extracts a StoreError from an error chain.
func AsStoreError(err error) (*StoreError, bool) {
	var se *StoreError
	if stdErrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// AsRetrievalError extracts a RetrievalError from an error chain.
func AsRetrievalError(err error) (*RetrievalError, bool) {
	var re *RetrievalError
	if stdErrors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from any error that supports it,
// or returns ErrorCodeInternal for errors that don't.
func GetErrorCode(err error) ErrorCode {
	if ve, ok := AsValidationError(err); ok {
		return ve.Code()
	}
	if se, ok := AsStoreError(err); ok {
		return se.Code()
	}
	if re, ok := AsRetrievalError(err); ok {
		return re.Code()
	}
	return ErrorCodeInternal
}

// GetErrorDetails extracts structured details from any error that
// supports them, returning an empty map otherwise.
func GetErrorDetails(err error) map[string]any {
	if ve, ok := AsValidationError(err); ok {
		if d := ve.Details(); d != nil {
			return d
		}
	}
	if se, ok := AsStoreError(err); ok {
		if d := se.Details(); d != nil {
			return d
		}
	}
	if re, ok := AsRetrievalError(err); ok {
		if d := re.Details(); d != nil {
			return d
		}
	}
	return make(map[string]any)
}

// ClassifyDirectoryCreationError analyzes a store-directory creation
// failure and returns a StoreError with the most specific code it can
// determine from the underlying system error.
func ClassifyDirectoryCreationError(err error, path string) error {
	if os.IsPermission(err) {
		return NewStoreError(
			err, ErrorCodePermissionDenied, "insufficient permissions to create store directory",
		).WithPath(path).WithDetail("operation", "directory_creation")
	}

	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewStoreError(
					err, ErrorCodeDiskFull, "insufficient disk space to create store directory",
				).WithPath(path).WithDetail("operation", "directory_creation")
			case syscall.EROFS:
				return NewStoreError(
					err, ErrorCodeFilesystemReadonly, "cannot create directory on read-only filesystem",
				).WithPath(path).WithDetail("operation", "directory_creation")
			}
		}
	}

	return NewStoreError(err, ErrorCodeIO, "failed to create store directory").
		WithPath(path).WithDetail("operation", "directory_creation")
}

// ClassifyFileOpenError analyzes a data-file or TOC-file open failure
// and returns a StoreError with the most specific code it can determine.
func ClassifyFileOpenError(err error, filePath, fileName string) error {
	if os.IsPermission(err) {
		return NewStoreError(
			err, ErrorCodePermissionDenied, "insufficient permissions to open file",
		).WithPath(filePath).WithFileName(fileName).WithDetail("operation", "file_open")
	}

	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewStoreError(
					err, ErrorCodeDiskFull, "insufficient disk space to create file",
				).WithPath(filePath).WithFileName(fileName).WithDetail("operation", "file_open")
			case syscall.EROFS:
				return NewStoreError(
					err, ErrorCodeFilesystemReadonly, "cannot create file on read-only filesystem",
				).WithPath(filePath).WithFileName(fileName).WithDetail("operation", "file_open")
			}
		}
	}

	return NewStoreError(err, ErrorCodeIO, "failed to open file").
		WithPath(filePath).WithFileName(fileName).WithDetail("operation", "file_open")
}

// ClassifyMmapError wraps a TOC mmap/remap/unmap failure into a
// StoreError tagged with ErrorCodeMmapFailure.
func ClassifyMmapError(err error, path string, length int64) error {
	return NewStoreError(err, ErrorCodeMmapFailure, "failed to map TOC file").
		WithPath(path).WithDetail("length", length)
}
