package crypto

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160"
)

// SHA256 returns the SHA256 hash of the data.
func SHA256(data []byte) []byte {
	hasher := sha256.New()
	hasher.Write(data)
	hash := hasher.Sum(nil)
	return hash
}

// DoubleSHA256 returns SHA256(SHA256(data)). It is the checksum hash of
// Base58Check strings such as WIF keys.
func DoubleSHA256(data []byte) []byte {
	return SHA256(SHA256(data))
}

// RIPEMD160 returns the RIPEMD160 hash of the concatenation of all the parts.
// Curve-typed keys and signatures append a literal suffix ("K1") to their
// payload before hashing, which callers pass as the last part.
func RIPEMD160(parts ...[]byte) []byte {
	hasher := ripemd160.New()
	for _, p := range parts {
		hasher.Write(p)
	}
	return hasher.Sum(nil)
}
