package base58

import (
	"errors"
	"fmt"
)

// ErrType identifies the kind of a Base58Check failure.
type ErrType uint32

const (
	// InvalidCharacter is returned when the input contains a character
	// outside of the base58 alphabet.
	InvalidCharacter ErrType = iota
	// InvalidLength is returned when a decoded payload has an unexpected
	// length.
	InvalidLength
	// ChecksumMismatch is returned when the embedded checksum does not match
	// the payload.
	ChecksumMismatch
	// InvalidVersion is returned when the version byte of a payload is not
	// recognised.
	InvalidVersion
)

// Err is the error returned by the Base58Check codec and by the parsers that
// interpret its payloads.
type Err struct {
	errType ErrType
	length  int
	version byte
}

// NewInvalidCharacterErr ...
func NewInvalidCharacterErr() Err {
	return Err{errType: InvalidCharacter}
}

// NewInvalidLengthErr records the offending payload length.
func NewInvalidLengthErr(length int) Err {
	return Err{errType: InvalidLength, length: length}
}

// NewChecksumMismatchErr ...
func NewChecksumMismatchErr() Err {
	return Err{errType: ChecksumMismatch}
}

// NewInvalidVersionErr records the offending version byte.
func NewInvalidVersionErr(version byte) Err {
	return Err{errType: InvalidVersion, version: version}
}

// Type returns the kind of the error.
func (e Err) Type() ErrType {
	return e.errType
}

// Length returns the payload length of an InvalidLength error.
func (e Err) Length() int {
	return e.length
}

// Version returns the version byte of an InvalidVersion error.
func (e Err) Version() byte {
	return e.version
}

// Error implements the error interface.
func (e Err) Error() string {
	switch e.errType {
	case InvalidCharacter:
		return "base58: invalid character"
	case InvalidLength:
		return fmt.Sprintf("base58: invalid length %d", e.length)
	case ChecksumMismatch:
		return "base58: checksum mismatch"
	case InvalidVersion:
		return fmt.Sprintf("base58: invalid version %d", e.version)
	}
	return "base58: unknown error"
}

// IsBase58 checks that err is, or wraps, an Err of type t.
func IsBase58(err error, t ErrType) bool {
	var bErr Err
	return errors.As(err, &bErr) && bErr.errType == t
}
