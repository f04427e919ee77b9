package keys

import (
	"bytes"
	"strings"

	"github.com/mosaicnetworks/eoskeys/src/common"
	"github.com/mosaicnetworks/eoskeys/src/crypto/base58"
)

// Text prefixes of public keys and the curve-type suffix salted into their
// checksums.
const (
	LegacyPublicKeyPrefix = "EOS"
	K1PublicKeyPrefix     = "PUB_K1_"
	k1Suffix              = "K1"
)

// PublicKey is a point on the secp256k1 curve.
//
// The compression flag, inherited from the secret key, only drives Bytes. The
// text forms carry the compressed point, unless the key was parsed from text
// holding the uncompressed one, in which case that form is written back.
type PublicKey struct {
	point      [CompressedPointSize]byte
	compressed bool

	// textPoint is the uncompressed point a text form was parsed from, empty
	// otherwise.
	textPoint []byte
}

func newPublicKey(point []byte, compressed bool) PublicKey {
	pub := PublicKey{compressed: compressed}
	copy(pub.point[:], point)
	return pub
}

// ParsePublicKey parses the legacy "EOS..." form and the curve-typed
// "PUB_K1_..." form. The encoded point may be compressed or uncompressed.
func ParsePublicKey(s string) (PublicKey, error) {
	var (
		data []byte
		err  error
	)

	switch {
	case strings.HasPrefix(s, K1PublicKeyPrefix):
		data, err = base58.CheckDecodeRIPEMD160(strings.TrimPrefix(s, K1PublicKeyPrefix), k1Suffix)
	case strings.HasPrefix(s, LegacyPublicKeyPrefix):
		data, err = base58.CheckDecodeRIPEMD160(strings.TrimPrefix(s, LegacyPublicKeyPrefix), "")
	default:
		return PublicKey{}, ErrUnknownPrefix
	}
	if err != nil {
		return PublicKey{}, err
	}

	pub, err := PublicKeyFromBytes(data)
	if err != nil {
		return PublicKey{}, err
	}

	if len(data) == UncompressedPointSize {
		pub.textPoint = data
	}

	return pub, nil
}

// PublicKeyFromBytes parses a point in compressed (33 bytes) or uncompressed
// (65 bytes) SEC1 form.
func PublicKeyFromBytes(data []byte) (PublicKey, error) {
	if len(data) != CompressedPointSize && len(data) != UncompressedPointSize {
		return PublicKey{}, base58.NewInvalidLengthErr(len(data))
	}

	point, err := curve.ParsePoint(data)
	if err != nil {
		return PublicKey{}, NewCurveErr(err)
	}

	return newPublicKey(point, len(data) == CompressedPointSize), nil
}

// Compressed tells whether Bytes returns the compressed form of the point.
func (p PublicKey) Compressed() bool {
	return p.compressed
}

// SerializeCompressed returns the 33-byte compressed point.
func (p PublicKey) SerializeCompressed() []byte {
	b := make([]byte, CompressedPointSize)
	copy(b, p.point[:])
	return b
}

// Bytes returns the point in compressed or uncompressed form, following the
// compression flag.
func (p PublicKey) Bytes() ([]byte, error) {
	if p.compressed {
		return p.SerializeCompressed(), nil
	}

	b, err := curve.UncompressPoint(p.point[:])
	if err != nil {
		return nil, NewCurveErr(err)
	}

	return b, nil
}

// String returns the legacy "EOS..." form.
func (p PublicKey) String() string {
	return LegacyPublicKeyPrefix + base58.CheckEncodeRIPEMD160(p.encodedPoint(), "")
}

// K1String returns the curve-typed "PUB_K1_..." form.
func (p PublicKey) K1String() string {
	return K1PublicKeyPrefix + base58.CheckEncodeRIPEMD160(p.encodedPoint(), k1Suffix)
}

// encodedPoint returns the point written in the text forms.
func (p PublicKey) encodedPoint() []byte {
	if len(p.textPoint) > 0 {
		return p.textPoint
	}
	return p.point[:]
}

// Equal compares the points. The compression flag is ignored.
func (p PublicKey) Equal(other PublicKey) bool {
	return bytes.Equal(p.point[:], other.point[:])
}

// ID tries to give a unique uint32 representation of the public key. There is
// obviously a risk of collision here, it is only meant to tag log entries.
func (p PublicKey) ID() uint32 {
	return common.Hash32(p.point[:])
}

// MarshalText implements encoding.TextMarshaler with the legacy form.
func (p PublicKey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Both forms are accepted.
func (p *PublicKey) UnmarshalText(text []byte) error {
	pub, err := ParsePublicKey(string(text))
	if err != nil {
		return err
	}
	*p = pub
	return nil
}
