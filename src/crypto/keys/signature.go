package keys

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mosaicnetworks/eoskeys/src/crypto"
	"github.com/mosaicnetworks/eoskeys/src/crypto/base58"
)

// K1SignaturePrefix starts the text form of every K1 signature.
const K1SignaturePrefix = "SIG_K1_"

// Header bytes accepted in a signature payload: 27 + recovery id, plus 4 when
// the signing key was compressed. Signatures made by this package carry the
// compressed header.
const (
	minSignatureHeader byte = 27
	maxSignatureHeader byte = 27 + 4 + 3
	signaturePayloadSize    = 1 + SignatureSize
)

// Signature is a recoverable ECDSA signature. The header byte it was parsed
// with is kept so that Bytes and String reproduce the input exactly.
type Signature struct {
	header     byte
	recoveryID byte
	rs         [SignatureSize]byte
}

func newSignature(rs []byte, recoveryID byte) Signature {
	return newSignatureWithHeader(rs, compactHeaderBase+recoveryID)
}

func newSignatureWithHeader(rs []byte, header byte) Signature {
	sig := Signature{
		header:     header,
		recoveryID: (header - minSignatureHeader) & 3,
	}
	copy(sig.rs[:], rs)
	return sig
}

// ParseSignature parses the "SIG_K1_..." form. The signature is not
// normalized, see IsCanonical.
func ParseSignature(s string) (Signature, error) {
	if !strings.HasPrefix(s, K1SignaturePrefix) {
		return Signature{}, ErrUnknownPrefix
	}

	data, err := base58.CheckDecodeRIPEMD160(strings.TrimPrefix(s, K1SignaturePrefix), k1Suffix)
	if err != nil {
		return Signature{}, err
	}

	return SignatureFromBytes(data)
}

// SignatureFromBytes parses the 65-byte form header || r || s.
func SignatureFromBytes(data []byte) (Signature, error) {
	if len(data) != signaturePayloadSize {
		return Signature{}, base58.NewInvalidLengthErr(len(data))
	}

	header := data[0]
	if header < minSignatureHeader || header > maxSignatureHeader {
		return Signature{}, fmt.Errorf("%w %d", ErrSignatureHeader, header)
	}

	return newSignatureWithHeader(data[1:], header), nil
}

// RecoveryID returns the recovery id, between 0 and 3.
func (s Signature) RecoveryID() byte {
	return s.recoveryID
}

// R returns a copy of the 32-byte r component.
func (s Signature) R() []byte {
	return bytes.Clone(s.rs[:32])
}

// S returns a copy of the 32-byte s component.
func (s Signature) S() []byte {
	return bytes.Clone(s.rs[32:])
}

// Header returns the header byte, 27 + recovery id for an uncompressed
// signing key and 31 + recovery id for a compressed one.
func (s Signature) Header() byte {
	if s.header == 0 {
		return compactHeaderBase + s.recoveryID
	}
	return s.header
}

// Bytes returns the 65-byte form header || r || s. A parsed signature keeps
// the header it was parsed with.
func (s Signature) Bytes() []byte {
	b := make([]byte, 0, signaturePayloadSize)
	b = append(b, s.Header())
	b = append(b, s.rs[:]...)
	return b
}

// IsCanonical tells whether s lies in the lower half of the curve order.
// Signatures made by SecretKey.Sign always are.
func (s Signature) IsCanonical() bool {
	return curve.IsLowS(s.rs[:])
}

// VerifyHash checks the signature of a 32-byte digest against pub.
func (s Signature) VerifyHash(hash []byte, pub PublicKey) bool {
	return curve.Verify(hash, s.rs[:], pub.point[:])
}

// Verify checks the signature of msg, hashed with SHA256, against pub.
func (s Signature) Verify(msg []byte, pub PublicKey) bool {
	return s.VerifyHash(crypto.SHA256(msg), pub)
}

// RecoverHash returns the public key that signed the 32-byte digest.
func (s Signature) RecoverHash(hash []byte) (PublicKey, error) {
	point, err := curve.Recover(hash, s.rs[:], s.recoveryID)
	if err != nil {
		return PublicKey{}, NewCurveErr(err)
	}
	return newPublicKey(point, true), nil
}

// RecoverPublicKey returns the public key that signed msg, hashed with SHA256.
func (s Signature) RecoverPublicKey(msg []byte) (PublicKey, error) {
	return s.RecoverHash(crypto.SHA256(msg))
}

// String returns the "SIG_K1_..." form.
func (s Signature) String() string {
	return K1SignaturePrefix + base58.CheckEncodeRIPEMD160(s.Bytes(), k1Suffix)
}

// Equal compares the header and the r and s components.
func (s Signature) Equal(other Signature) bool {
	return s.Header() == other.Header() && s.rs == other.rs
}

// MarshalText implements encoding.TextMarshaler.
func (s Signature) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Signature) UnmarshalText(text []byte) error {
	sig, err := ParseSignature(string(text))
	if err != nil {
		return err
	}
	*s = sig
	return nil
}
