package base58

import (
	"bytes"

	"github.com/mosaicnetworks/eoskeys/src/crypto"
	b58 "github.com/mr-tron/base58"
)

// ChecksumSize is the number of checksum bytes appended to every payload.
const ChecksumSize = 4

// CheckEncode appends the double-SHA256 checksum to payload and returns the
// base58 encoding of the result.
func CheckEncode(payload []byte) string {
	return encode(payload, doubleSHA256Checksum(payload))
}

// CheckDecode reverses CheckEncode. It returns the payload with the checksum
// stripped.
func CheckDecode(s string) ([]byte, error) {
	payload, checksum, err := decode(s)
	if err != nil {
		return nil, err
	}

	if !bytes.Equal(checksum, doubleSHA256Checksum(payload)) {
		return nil, NewChecksumMismatchErr()
	}

	return payload, nil
}

// CheckEncodeRIPEMD160 appends RIPEMD160(payload || suffix)[:4] to payload and
// returns the base58 encoding of the result. The suffix is not part of the
// encoded output.
func CheckEncodeRIPEMD160(payload []byte, suffix string) string {
	return encode(payload, ripemd160Checksum(payload, suffix))
}

// CheckDecodeRIPEMD160 reverses CheckEncodeRIPEMD160 for the same suffix.
func CheckDecodeRIPEMD160(s string, suffix string) ([]byte, error) {
	payload, checksum, err := decode(s)
	if err != nil {
		return nil, err
	}

	if !bytes.Equal(checksum, ripemd160Checksum(payload, suffix)) {
		return nil, NewChecksumMismatchErr()
	}

	return payload, nil
}

func doubleSHA256Checksum(payload []byte) []byte {
	return crypto.DoubleSHA256(payload)[:ChecksumSize]
}

func ripemd160Checksum(payload []byte, suffix string) []byte {
	return crypto.RIPEMD160(payload, []byte(suffix))[:ChecksumSize]
}

func encode(payload, checksum []byte) string {
	buf := make([]byte, 0, len(payload)+len(checksum))
	buf = append(buf, payload...)
	buf = append(buf, checksum...)
	return b58.Encode(buf)
}

// decode splits the decoded bytes of s into payload and checksum.
func decode(s string) (payload, checksum []byte, err error) {
	if len(s) == 0 {
		return nil, nil, NewInvalidLengthErr(0)
	}

	raw, err := b58.Decode(s)
	if err != nil {
		return nil, nil, NewInvalidCharacterErr()
	}

	if len(raw) < ChecksumSize {
		return nil, nil, NewInvalidLengthErr(len(raw))
	}

	split := len(raw) - ChecksumSize
	return raw[:split], raw[split:], nil
}
