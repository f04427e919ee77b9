package keys

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
)

/*
EOSIO K1 keys and signatures are based on elliptic curve cryptography over the
secp256k1 curve, the same curve used by Bitcoin and Ethereum. The codec in this
package never does curve arithmetic itself: it goes through the Curve
interface, whose default implementation is btcsuite's golang implementation of
secp256k1.
*/

// Sizes of the raw curve values.
const (
	ScalarSize            = 32
	HashSize              = 32
	CompressedPointSize   = 33
	UncompressedPointSize = 65
	SignatureSize         = 64
)

// Parameters of the secp256k1 curve. They are used to validate scalars and to
// normalize signatures.
var (
	secp256k1N, _  = new(big.Int).SetString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)
	secp256k1halfN = new(big.Int).Div(secp256k1N, big.NewInt(2))
)

// Curve is the boundary between the key codec and the elliptic curve library.
// Points are exchanged in their 33-byte compressed SEC1 form, signatures as the
// 64-byte concatenation r || s.
type Curve interface {
	// ValidateScalar checks that d is a 32-byte value in [1, N-1].
	ValidateScalar(d []byte) error

	// DerivePoint returns the compressed public point d*G.
	DerivePoint(d []byte) ([]byte, error)

	// ParsePoint checks that p is a valid compressed or uncompressed point on
	// the curve and returns its compressed form.
	ParsePoint(p []byte) ([]byte, error)

	// UncompressPoint returns the 65-byte uncompressed form of a point.
	UncompressPoint(p []byte) ([]byte, error)

	// SignRecoverable signs a 32-byte hash with the secret scalar d and
	// returns the signature with its recovery id.
	SignRecoverable(hash, d []byte) (rs []byte, recoveryID byte, err error)

	// NormalizeLowS maps a signature to its low-S form, adjusting the
	// recovery id accordingly. Low-S signatures are returned unchanged.
	NormalizeLowS(rs []byte, recoveryID byte) ([]byte, byte)

	// IsLowS reports whether the s component lies in the lower half of the
	// curve order.
	IsLowS(rs []byte) bool

	// Recover returns the compressed public point that produced rs over hash.
	Recover(hash, rs []byte, recoveryID byte) ([]byte, error)

	// Verify checks rs against hash and a compressed or uncompressed point.
	Verify(hash, rs, point []byte) bool
}

// curve is the implementation used by every key type of this package.
var curve Curve = Secp256k1()

// SetCurve installs c as the Curve of every key type of this package and
// returns the previous one. A nil c restores Secp256k1. It must be called
// before keys are used concurrently.
func SetCurve(c Curve) Curve {
	prev := curve
	if c == nil {
		c = Secp256k1()
	}
	curve = c
	return prev
}

// Secp256k1 returns the Curve implemented with btcec.
func Secp256k1() Curve {
	return secp256k1Curve{}
}

type secp256k1Curve struct{}

func (secp256k1Curve) ValidateScalar(d []byte) error {
	if len(d) != ScalarSize {
		return fmt.Errorf("invalid private key length %d, need %d", len(d), ScalarSize)
	}

	k := new(big.Int).SetBytes(d)

	// The scalar must < N
	if k.Cmp(secp256k1N) >= 0 {
		return errors.New("invalid private key, >=N")
	}

	// The scalar must not be zero
	if k.Sign() == 0 {
		return errors.New("invalid private key, zero")
	}

	return nil
}

func (c secp256k1Curve) DerivePoint(d []byte) ([]byte, error) {
	if err := c.ValidateScalar(d); err != nil {
		return nil, err
	}

	_, pub := btcec.PrivKeyFromBytes(btcec.S256(), d)
	return pub.SerializeCompressed(), nil
}

func (secp256k1Curve) ParsePoint(p []byte) ([]byte, error) {
	if len(p) != CompressedPointSize && len(p) != UncompressedPointSize {
		return nil, fmt.Errorf("invalid public key length %d", len(p))
	}

	pub, err := btcec.ParsePubKey(p, btcec.S256())
	if err != nil {
		return nil, err
	}

	return pub.SerializeCompressed(), nil
}

func (secp256k1Curve) UncompressPoint(p []byte) ([]byte, error) {
	pub, err := btcec.ParsePubKey(p, btcec.S256())
	if err != nil {
		return nil, err
	}

	return pub.SerializeUncompressed(), nil
}

func (c secp256k1Curve) SignRecoverable(hash, d []byte) ([]byte, byte, error) {
	if len(hash) != HashSize {
		return nil, 0, fmt.Errorf("invalid message hash length %d, need %d", len(hash), HashSize)
	}

	if err := c.ValidateScalar(d); err != nil {
		return nil, 0, err
	}

	priv, _ := btcec.PrivKeyFromBytes(btcec.S256(), d)

	// RFC6979 deterministic nonce. The compact form is
	// [27 + 4 + recovery id] || r || s.
	compact, err := btcec.SignCompact(btcec.S256(), priv, hash, true)
	if err != nil {
		return nil, 0, err
	}

	return compact[1:], (compact[0] - compactHeaderBase) & 3, nil
}

func (secp256k1Curve) NormalizeLowS(rs []byte, recoveryID byte) ([]byte, byte) {
	if len(rs) != SignatureSize {
		return rs, recoveryID
	}

	s := new(big.Int).SetBytes(rs[32:])
	if s.Cmp(secp256k1halfN) <= 0 {
		return rs, recoveryID
	}

	s.Sub(secp256k1N, s)

	normalized := make([]byte, SignatureSize)
	copy(normalized[:32], rs[:32])
	readBits(s, normalized[32:])

	// Negating s mirrors the nonce point, which flips the parity of its y
	// coordinate.
	return normalized, recoveryID ^ 1
}

func (secp256k1Curve) IsLowS(rs []byte) bool {
	if len(rs) != SignatureSize {
		return false
	}
	s := new(big.Int).SetBytes(rs[32:])
	return s.Sign() > 0 && s.Cmp(secp256k1halfN) <= 0
}

func (secp256k1Curve) Recover(hash, rs []byte, recoveryID byte) ([]byte, error) {
	if len(hash) != HashSize {
		return nil, fmt.Errorf("invalid message hash length %d, need %d", len(hash), HashSize)
	}

	if len(rs) != SignatureSize || recoveryID > 3 {
		return nil, errors.New("invalid signature")
	}

	if !inOrder(rs[:32]) || !inOrder(rs[32:]) {
		return nil, errors.New("invalid signature, r or s out of range")
	}

	compact := make([]byte, 0, SignatureSize+1)
	compact = append(compact, compactHeaderBase+recoveryID)
	compact = append(compact, rs...)

	pub, _, err := btcec.RecoverCompact(btcec.S256(), compact, hash)
	if err != nil {
		return nil, err
	}

	return pub.SerializeCompressed(), nil
}

func (secp256k1Curve) Verify(hash, rs, point []byte) bool {
	if len(hash) != HashSize || len(rs) != SignatureSize {
		return false
	}

	pub, err := btcec.ParsePubKey(point, btcec.S256())
	if err != nil {
		return false
	}

	sig := &btcec.Signature{
		R: new(big.Int).SetBytes(rs[:32]),
		S: new(big.Int).SetBytes(rs[32:]),
	}

	return sig.Verify(hash, pub)
}

// inOrder checks that v is in [1, N-1].
func inOrder(v []byte) bool {
	k := new(big.Int).SetBytes(v)
	return k.Sign() > 0 && k.Cmp(secp256k1N) < 0
}

// compactHeaderBase is the first byte of a compact signature made with a
// compressed key and recovery id 0.
const compactHeaderBase byte = 27 + 4

const (
	// number of bits in a big.Word
	wordBits = 32 << (uint64(^big.Word(0)) >> 63)
	// number of bytes in a big.Word
	wordBytes = wordBits / 8
)

//readBits encodes the absolute value of bigint as big-endian bytes. Callers
//must ensure that buf has enough space. If buf is too short the result will be
//incomplete.
func readBits(bigint *big.Int, buf []byte) {
	i := len(buf)
	for _, d := range bigint.Bits() {
		for j := 0; j < wordBytes && i > 0; j++ {
			i--
			buf[i] = byte(d)
			d >>= 8
		}
	}
}
