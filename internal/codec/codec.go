// Package codec implements component A of the content store: the
// stateless block codec. It encodes a run of characters to its UTF-8
// byte representation and decodes a byte range back to characters,
// assuming the bytes are a valid UTF-8 sequence aligned to character
// boundaries at both ends. Alignment itself is the ingestion engine's
// responsibility (internal/engine); the codec never inspects or
// assumes anything about where block boundaries fall.
package codec

import (
	"unicode/utf8"

	"github.com/corpusdb/contentstore/pkg/errors"
)

// Encode produces the UTF-8 byte sequence of the given characters.
func Encode(chars string) []byte {
	return []byte(chars)
}

// Decode interprets bytes as a UTF-8 character sequence. It returns an
// internal error if the bytes are not valid UTF-8, since that can only
// happen if a block boundary was computed incorrectly upstream.
func Decode(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", errors.NewStoreError(nil, errors.ErrorCodeInternal, "block bytes are not valid UTF-8").
			WithDetail("byteLength", len(b))
	}
	return string(b), nil
}

// RuneCount returns the number of Unicode scalar values (the store's
// definition of "character") in s.
func RuneCount(s string) int {
	return utf8.RuneCountInString(s)
}
