package keys

import (
	"bytes"
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/mosaicnetworks/eoskeys/src/crypto"
	"github.com/mosaicnetworks/eoskeys/src/crypto/base58"
)

const (
	// compressedMarker terminates the WIF payload of a compressed key.
	compressedMarker byte = 0x01

	// k1KeyType tags the raw byte form of a K1 secret key.
	k1KeyType byte = 0x00

	// maxGenerateAttempts bounds the number of candidate scalars drawn by
	// GenerateSecretKey. A healthy source almost never needs a second one.
	maxGenerateAttempts = 64
)

// Lengths of the supported raw forms.
const (
	wifLength             = 1 + ScalarSize
	wifCompressedLength   = wifLength + 1
	rawCompressedLength   = 1 + ScalarSize
	rawUncompressedLength = 1 + 2*ScalarSize
)

// SecretKey is a secp256k1 secret scalar with the network it is used on and
// whether its public point is serialized in compressed form.
//
// SecretKey is a value: copies do not alias. Every fmt verb prints a
// placeholder instead of the key material, use WIF to export it.
type SecretKey struct {
	compressed bool
	network    Network
	scalar     [ScalarSize]byte
}

// GenerateSecretKey draws a new uncompressed Mainnet key from rand, which must
// be a cryptographically secure source such as crypto/rand.Reader. Candidates
// rejected by the curve are discarded and drawn again.
func GenerateSecretKey(rand io.Reader) (SecretKey, error) {
	if rand == nil {
		return SecretKey{}, ErrNilRandom
	}

	var (
		key     SecretKey
		lastErr error
	)

	for i := 0; i < maxGenerateAttempts; i++ {
		if _, err := io.ReadFull(rand, key.scalar[:]); err != nil {
			return SecretKey{}, fmt.Errorf("reading random source: %w", err)
		}

		if lastErr = curve.ValidateScalar(key.scalar[:]); lastErr == nil {
			key.network = Mainnet
			return key, nil
		}
	}

	return SecretKey{}, NewCurveErr(lastErr)
}

// ParseScalar creates an uncompressed Mainnet key with the given 32-byte
// scalar.
func ParseScalar(d []byte) (SecretKey, error) {
	return newSecretKey(d, Mainnet, false)
}

// ParseWIF parses a key in Wallet Import Format.
func ParseWIF(wif string) (SecretKey, error) {
	data, err := base58.CheckDecode(wif)
	if err != nil {
		return SecretKey{}, err
	}

	var compressed bool
	switch len(data) {
	case wifLength:
		compressed = false
	case wifCompressedLength:
		compressed = true
	default:
		return SecretKey{}, base58.NewInvalidLengthErr(len(data))
	}

	network, err := NetworkFromVersion(data[0])
	if err != nil {
		return SecretKey{}, err
	}

	if compressed && data[wifLength] != compressedMarker {
		return SecretKey{}, ErrCompressionMarker
	}

	return newSecretKey(data[1:wifLength], network, compressed)
}

// SecretKeyFromSlice parses the raw wire form of a key, which carries neither
// version nor checksum. The 33-byte form is the K1 key type tag followed by the
// scalar and yields a compressed key. The 65-byte form appends 32 zero bytes
// and yields an uncompressed key. The network is always Mainnet.
func SecretKeyFromSlice(data []byte) (SecretKey, error) {
	var compressed bool
	switch len(data) {
	case rawCompressedLength:
		compressed = true
	case rawUncompressedLength:
		compressed = false
	default:
		return SecretKey{}, base58.NewInvalidLengthErr(len(data))
	}

	if data[0] != k1KeyType {
		return SecretKey{}, ErrKeyType
	}

	padding := data[1+ScalarSize:]
	if !bytes.Equal(padding, make([]byte, len(padding))) {
		return SecretKey{}, ErrKeyType
	}

	return newSecretKey(data[1:1+ScalarSize], Mainnet, compressed)
}

func newSecretKey(d []byte, network Network, compressed bool) (SecretKey, error) {
	if err := curve.ValidateScalar(d); err != nil {
		return SecretKey{}, NewCurveErr(err)
	}

	key := SecretKey{
		compressed: compressed,
		network:    network,
	}
	copy(key.scalar[:], d)

	return key, nil
}

// Compressed tells whether the public point of the key is serialized in
// compressed form.
func (k SecretKey) Compressed() bool {
	return k.compressed
}

// Network ...
func (k SecretKey) Network() Network {
	return k.network
}

// WithNetwork returns a copy of the key bound to another network.
func (k SecretKey) WithNetwork(network Network) SecretKey {
	k.network = network
	return k
}

// WithCompressed returns a copy of the key with another compression flag.
func (k SecretKey) WithCompressed(compressed bool) SecretKey {
	k.compressed = compressed
	return k
}

// Serialize returns a copy of the 32-byte scalar.
func (k SecretKey) Serialize() []byte {
	d := make([]byte, ScalarSize)
	copy(d, k.scalar[:])
	return d
}

// Bytes returns the raw wire form parsed by SecretKeyFromSlice.
func (k SecretKey) Bytes() []byte {
	n := rawUncompressedLength
	if k.compressed {
		n = rawCompressedLength
	}

	raw := make([]byte, n)
	raw[0] = k1KeyType
	copy(raw[1:], k.scalar[:])

	return raw
}

// WIF returns the Wallet Import Format encoding of the key.
func (k SecretKey) WIF() string {
	var buf [wifCompressedLength]byte
	buf[0] = k.network.Version()
	copy(buf[1:], k.scalar[:])

	if k.compressed {
		buf[wifLength] = compressedMarker
		return base58.CheckEncode(buf[:])
	}

	return base58.CheckEncode(buf[:wifLength])
}

// PublicKey derives the public key of k. It inherits the compression flag of
// k.
func (k SecretKey) PublicKey() (PublicKey, error) {
	point, err := curve.DerivePoint(k.scalar[:])
	if err != nil {
		return PublicKey{}, NewCurveErr(err)
	}

	return newPublicKey(point, k.compressed), nil
}

// Sign hashes msg with SHA256 and signs the digest.
func (k SecretKey) Sign(msg []byte) (Signature, error) {
	return k.SignHash(crypto.SHA256(msg))
}

// SignHash signs a 32-byte digest computed by the caller. The signature is
// normalized to low-S form before it is returned.
func (k SecretKey) SignHash(hash []byte) (Signature, error) {
	rs, recoveryID, err := curve.SignRecoverable(hash, k.scalar[:])
	if err != nil {
		return Signature{}, NewCurveErr(err)
	}

	rs, recoveryID = curve.NormalizeLowS(rs, recoveryID)

	return newSignature(rs, recoveryID), nil
}

// Equal compares scalars in constant time, as well as the network and
// compression flag.
func (k SecretKey) Equal(other SecretKey) bool {
	return k.network == other.network &&
		k.compressed == other.compressed &&
		subtle.ConstantTimeCompare(k.scalar[:], other.scalar[:]) == 1
}

const redacted = "[private key data]"

// String never returns key material.
func (k SecretKey) String() string {
	return redacted
}

// GoString never returns key material.
func (k SecretKey) GoString() string {
	return redacted
}

// Format implements fmt.Formatter so that no verb, %x included, prints the
// scalar.
func (k SecretKey) Format(f fmt.State, verb rune) {
	io.WriteString(f, redacted)
}
