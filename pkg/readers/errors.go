/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Error taxonomy for the reader boundary. Distinguishes source errors,
per-record decode errors, unsupported/undetectable kinds, and missing optional
capabilities so callers can react to each class separately.
*/

package readers

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedKind is returned when no reader is registered for a kind.
	ErrUnsupportedKind = errors.New("unsupported source kind")

	// ErrUndetectableKind is returned when the detector cannot classify a
	// source and no explicit kind was supplied.
	ErrUndetectableKind = errors.New("cannot determine source kind")

	// ErrCapabilityUnavailable is returned when a kind is recognized but the
	// reader for it is not built into this binary.
	ErrCapabilityUnavailable = errors.New("reader capability unavailable")
)

// DecodeError reports a malformed record inside an otherwise readable source.
// Record numbers are 1-based and count records the reader attempted to decode.
type DecodeError struct {
	Source string
	Record int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode record %d of %s: %v", e.Record, e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsDecodeError reports whether err is (or wraps) a DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
