package keys

import (
	"errors"
)

var (
	// ErrUnknownPrefix is returned when a public key or signature string does
	// not start with a supported prefix.
	ErrUnknownPrefix = errors.New("unknown key prefix")

	// ErrCompressionMarker is returned when a 34-byte WIF payload does not end
	// with the 0x01 compression marker.
	ErrCompressionMarker = errors.New("invalid WIF compression marker")

	// ErrKeyType is returned when a raw secret key does not carry the K1 key
	// type tag, or when its padding is not zero.
	ErrKeyType = errors.New("invalid raw key type")

	// ErrSignatureHeader is returned when the first byte of a signature
	// payload is outside 27..34.
	ErrSignatureHeader = errors.New("invalid signature header")

	// ErrNilRandom is returned by GenerateSecretKey when no random source is
	// provided. There is no fallback source.
	ErrNilRandom = errors.New("nil random source")
)

// CurveErr wraps an error returned by the Curve. The underlying error is
// propagated as is.
type CurveErr struct {
	err error
}

// NewCurveErr ...
func NewCurveErr(err error) CurveErr {
	return CurveErr{err: err}
}

// Error implements the error interface.
func (e CurveErr) Error() string {
	return "curve: " + e.err.Error()
}

// Unwrap returns the error of the curve library.
func (e CurveErr) Unwrap() error {
	return e.err
}

// IsCurve checks that err is, or wraps, a CurveErr.
func IsCurve(err error) bool {
	var cErr CurveErr
	return errors.As(err, &cErr)
}
