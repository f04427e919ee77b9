package keys

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mosaicnetworks/eoskeys/src/crypto/base58"
)

const (
	eosWIF    = "5KJVA9P4xsiRC3zPy1KPa3GA6ffvmyZSxhKPbE924YJphvSCG4F"
	eosPubKey = "EOS55KuLPN3u9qii2hEhJhkdQSdaVLVPTHdwdkEhszhhCWDthQtfi"

	// Bitcoin wiki example, uncompressed and compressed.
	btcWIF           = "5HueCGU8rMjxEXxiPuD5BDku4MkFqeZyd4dZ1jvhTVqvbTLvyTJ"
	btcWIFCompressed = "KwdMAjGmerYanjeui5SHS7JkmpZvVipYvB2LJGU1ZxJwYvP98617"
	btcScalarHex     = "0c28fca386c7a227600b2fe50b7cae11ec86d3bf1fbe471be89827e19d72aa1d"
)

func TestParseWIF(t *testing.T) {
	for _, wif := range []string{
		eosWIF,
		"5HrBLKfeEdqH9KLMv1daHLVjrXV3DGVERAkN5cdSSc58bzqqfT4",
		btcWIF,
	} {
		key, err := ParseWIF(wif)
		if err != nil {
			t.Fatalf("%s: %v", wif, err)
		}
		if key.Compressed() {
			t.Fatalf("%s: key should not be compressed", wif)
		}
		if key.Network() != Mainnet {
			t.Fatalf("%s: network should be mainnet, not %s", wif, key.Network())
		}
		if key.WIF() != wif {
			t.Fatalf("WIF should be %s, not %s", wif, key.WIF())
		}
	}
}

func TestParseWIFCompressed(t *testing.T) {
	key, err := ParseWIF(btcWIFCompressed)
	if err != nil {
		t.Fatal(err)
	}

	if !key.Compressed() {
		t.Fatal("key should be compressed")
	}

	if got := fmt.Sprintf("%x", key.Serialize()); got != btcScalarHex {
		t.Fatalf("scalar should be %s, not %s", btcScalarHex, got)
	}

	uncompressed, err := ParseWIF(btcWIF)
	if err != nil {
		t.Fatal(err)
	}

	if key.Equal(uncompressed) {
		t.Fatal("keys with different compression flags should not be equal")
	}

	if !key.WithCompressed(false).Equal(uncompressed) {
		t.Fatal("keys should be equal once the compression flag matches")
	}

	if key.WIF() != btcWIFCompressed {
		t.Fatalf("WIF should be %s, not %s", btcWIFCompressed, key.WIF())
	}
}

func TestWIFRoundTrip(t *testing.T) {
	for i := 0; i < 20; i++ {
		key, err := GenerateSecretKey(rand.Reader)
		if err != nil {
			t.Fatal(err)
		}

		key = key.WithCompressed(i%2 == 0)
		if i%3 == 0 {
			key = key.WithNetwork(Testnet)
		}

		parsed, err := ParseWIF(key.WIF())
		if err != nil {
			t.Fatalf("%d: %v", i, err)
		}

		if !parsed.Equal(key) {
			t.Fatalf("%d: parsed key differs from original", i)
		}
	}
}

func TestWIFPrefixes(t *testing.T) {
	key, err := ParseWIF(btcWIF)
	if err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		key    SecretKey
		prefix string
	}{
		{key, "5"},
		{key.WithCompressed(true), "K"},
		{key.WithNetwork(Testnet), "9"},
		{key.WithNetwork(Testnet).WithCompressed(true), "c"},
	}

	for _, tc := range testCases {
		if wif := tc.key.WIF(); !strings.HasPrefix(wif, tc.prefix) {
			t.Fatalf("WIF %s should start with %s", wif, tc.prefix)
		}
	}
}

func TestParseWIFInvalidLength(t *testing.T) {
	for _, n := range []int{0, 1, 32, 35, 66} {
		payload := make([]byte, n)
		if n > 0 {
			payload[0] = MainnetVersion
		}

		_, err := ParseWIF(base58.CheckEncode(payload))
		if !base58.IsBase58(err, base58.InvalidLength) {
			t.Fatalf("length %d: expected InvalidLength, got %v", n, err)
		}

		var bErr base58.Err
		errors.As(err, &bErr)
		if bErr.Length() != n {
			t.Fatalf("length %d: error should carry length %d, not %d", n, n, bErr.Length())
		}
	}
}

func TestParseWIFInvalidVersion(t *testing.T) {
	for _, version := range []byte{0, 1, 127, 129, 238, 240, 255} {
		payload := make([]byte, wifLength)
		payload[0] = version
		payload[ScalarSize] = 1

		_, err := ParseWIF(base58.CheckEncode(payload))
		if !base58.IsBase58(err, base58.InvalidVersion) {
			t.Fatalf("version %d: expected InvalidVersion, got %v", version, err)
		}
	}
}

func TestParseWIFCompressionMarker(t *testing.T) {
	payload := make([]byte, wifCompressedLength)
	payload[0] = MainnetVersion
	payload[ScalarSize] = 1
	payload[wifLength] = 0x02

	if _, err := ParseWIF(base58.CheckEncode(payload)); err != ErrCompressionMarker {
		t.Fatalf("expected ErrCompressionMarker, got %v", err)
	}
}

func TestParseWIFInvalidScalar(t *testing.T) {
	zero := make([]byte, wifLength)
	zero[0] = MainnetVersion

	overflow := bytes.Repeat([]byte{0xff}, wifLength)
	overflow[0] = MainnetVersion

	for _, payload := range [][]byte{zero, overflow} {
		_, err := ParseWIF(base58.CheckEncode(payload))
		if !IsCurve(err) {
			t.Fatalf("expected CurveErr, got %v", err)
		}
	}
}

func TestParseWIFMalformed(t *testing.T) {
	_, err := ParseWIF("not-base58!!")
	if !base58.IsBase58(err, base58.InvalidCharacter) && !base58.IsBase58(err, base58.ChecksumMismatch) {
		t.Fatalf("expected InvalidCharacter or ChecksumMismatch, got %v", err)
	}

	// last character changed
	tampered := eosWIF[:len(eosWIF)-1] + "G"
	if _, err := ParseWIF(tampered); !base58.IsBase58(err, base58.ChecksumMismatch) {
		t.Fatalf("expected ChecksumMismatch, got %v", err)
	}
}

func TestSecretKeyFromSlice(t *testing.T) {
	key, err := ParseWIF(eosWIF)
	if err != nil {
		t.Fatal(err)
	}

	for _, compressed := range []bool{true, false} {
		k := key.WithCompressed(compressed)
		raw := k.Bytes()

		wantLen := 65
		if compressed {
			wantLen = 33
		}
		if len(raw) != wantLen {
			t.Fatalf("raw form should be %d bytes, not %d", wantLen, len(raw))
		}

		parsed, err := SecretKeyFromSlice(raw)
		if err != nil {
			t.Fatal(err)
		}
		if !parsed.Equal(k) {
			t.Fatalf("compressed=%v: parsed key differs from original", compressed)
		}
	}
}

func TestSecretKeyFromSliceErrors(t *testing.T) {
	for _, n := range []int{0, 32, 34, 64, 66} {
		_, err := SecretKeyFromSlice(make([]byte, n))
		if !base58.IsBase58(err, base58.InvalidLength) {
			t.Fatalf("length %d: expected InvalidLength, got %v", n, err)
		}
	}

	key, _ := ParseWIF(eosWIF)

	badType := key.Bytes()
	badType[0] = 1
	if _, err := SecretKeyFromSlice(badType); err != ErrKeyType {
		t.Fatalf("expected ErrKeyType, got %v", err)
	}

	badPadding := key.Bytes()
	badPadding[64] = 1
	if _, err := SecretKeyFromSlice(badPadding); err != ErrKeyType {
		t.Fatalf("expected ErrKeyType, got %v", err)
	}

	if _, err := SecretKeyFromSlice(make([]byte, 33)); !IsCurve(err) {
		t.Fatalf("zero scalar: expected CurveErr, got %v", err)
	}
}

func TestGenerateSecretKey(t *testing.T) {
	key, err := GenerateSecretKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	if key.Compressed() || key.Network() != Mainnet {
		t.Fatal("generated keys should be uncompressed mainnet keys")
	}

	other, err := GenerateSecretKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	if key.Equal(other) {
		t.Fatal("two generated keys should differ")
	}
}

func TestGenerateSecretKeyRetries(t *testing.T) {
	valid, _ := ParseWIF(eosWIF)

	// one candidate above the curve order, one zero candidate, then a valid
	// scalar
	entropy := bytes.Repeat([]byte{0xff}, ScalarSize)
	entropy = append(entropy, make([]byte, ScalarSize)...)
	entropy = append(entropy, valid.Serialize()...)

	key, err := GenerateSecretKey(bytes.NewReader(entropy))
	if err != nil {
		t.Fatal(err)
	}

	if !key.Equal(valid) {
		t.Fatal("GenerateSecretKey should have used the third candidate")
	}
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func TestGenerateSecretKeyErrors(t *testing.T) {
	if _, err := GenerateSecretKey(nil); err != ErrNilRandom {
		t.Fatalf("expected ErrNilRandom, got %v", err)
	}

	if _, err := GenerateSecretKey(bytes.NewReader([]byte{1, 2, 3})); err == nil {
		t.Fatal("a short random source should fail")
	}

	if _, err := GenerateSecretKey(zeroReader{}); !IsCurve(err) {
		t.Fatalf("a broken random source should end with a CurveErr, got %v", err)
	}
}

func TestSecretKeyIsNeverPrinted(t *testing.T) {
	key, err := ParseWIF(eosWIF)
	if err != nil {
		t.Fatal(err)
	}

	scalarHex := fmt.Sprintf("%x", key.Serialize())

	wrapper := struct {
		Key SecretKey
	}{key}

	outputs := []string{
		fmt.Sprint(key),
		fmt.Sprintf("%v %+v %#v %s %x %X %q", key, key, key, key, key, key, key),
		fmt.Sprintf("%v %+v %#v", wrapper, wrapper, wrapper),
		fmt.Sprintf("%v", &key),
	}

	for _, out := range outputs {
		if strings.Contains(out, eosWIF) || strings.Contains(strings.ToLower(out), scalarHex) {
			t.Fatalf("key material leaked in %q", out)
		}
		if !strings.Contains(out, redacted) {
			t.Fatalf("output %q should contain the placeholder", out)
		}
	}
}

func TestSecretKeyIsAValue(t *testing.T) {
	key, _ := ParseWIF(eosWIF)

	scalar := key.Serialize()
	scalar[0] ^= 0xff

	raw := key.Bytes()
	raw[1] ^= 0xff

	testnet := key.WithNetwork(Testnet)

	if key.WIF() != eosWIF {
		t.Fatal("mutating exported bytes or copies should not change the key")
	}

	if testnet.Network() != Testnet || key.Network() != Mainnet {
		t.Fatal("WithNetwork should return a modified copy")
	}
}
