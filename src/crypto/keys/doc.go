// Package keys implements the EOSIO K1 key and signature formats.
//
// A SecretKey wraps a secp256k1 scalar together with the network it belongs to
// and a compression flag. It is exchanged as WIF text:
//
//	Base58Check(version || scalar [|| 0x01])
//
// where version is 128 on Mainnet and 239 on Testnet, and the trailing 0x01
// marks a key whose public point is serialized in compressed form.
//
// A PublicKey is always derived from a SecretKey or parsed from text. The
// legacy text form is "EOS" followed by the base58 encoding of the compressed
// point and the first four bytes of its RIPEMD160 hash. The curve-typed form
// is "PUB_K1_" followed by the same encoding, except that the checksum is
// computed over the point followed by the literal "K1". A key parsed from text
// holding the 65-byte uncompressed point is written back in that form.
//
// A Signature is a recoverable ECDSA signature, exchanged as "SIG_K1_"
// followed by the base58 encoding of header || r || s and a RIPEMD160 checksum
// salted with "K1". The header is 31 + recovery id, or 27 + recovery id for
// an uncompressed signing key, and is kept as parsed. Signatures produced by
// Sign and SignHash are always in low-S form; parsed signatures are not
// normalized, IsCanonical tells whether they are.
//
// All the types are immutable values and safe for concurrent use. The curve
// arithmetic is delegated to a Curve, by default btcsuite's secp256k1. SetCurve
// installs another implementation.
package keys
