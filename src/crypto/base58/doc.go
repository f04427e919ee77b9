// Package base58 implements the Base58Check text encodings used for EOSIO key
// material.
//
// Two checksum schemes coexist and are kept apart:
//
// CheckEncode and CheckDecode append the first four bytes of
// SHA256(SHA256(payload)), as in Bitcoin. This is the scheme of WIF secret
// keys.
//
// CheckEncodeRIPEMD160 and CheckDecodeRIPEMD160 append the first four bytes
// of RIPEMD160(payload || suffix), where suffix is a literal curve-type string
// such as "K1" (or empty for legacy EOS public keys). This is the scheme of
// public keys and signatures.
//
// Both use the Bitcoin alphabet, which omits 0, O, I and l. Leading zero bytes
// are encoded as leading '1' characters.
package base58
