package keys

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/mosaicnetworks/eoskeys/src/crypto"
)

func TestValidateScalar(t *testing.T) {
	c := Secp256k1()

	nMinusOne := secp256k1N.Bytes()
	nMinusOne[len(nMinusOne)-1]--

	one := make([]byte, ScalarSize)
	one[ScalarSize-1] = 1

	for _, d := range [][]byte{one, nMinusOne} {
		if err := c.ValidateScalar(d); err != nil {
			t.Fatalf("%x should be valid: %v", d, err)
		}
	}

	invalid := [][]byte{
		nil,
		make([]byte, 31),
		make([]byte, 33),
		make([]byte, ScalarSize),
		secp256k1N.Bytes(),
		bytes.Repeat([]byte{0xff}, ScalarSize),
	}
	for _, d := range invalid {
		if err := c.ValidateScalar(d); err == nil {
			t.Fatalf("%x should be invalid", d)
		}
	}
}

func TestDerivePoint(t *testing.T) {
	c := Secp256k1()

	one := make([]byte, ScalarSize)
	one[ScalarSize-1] = 1

	point, err := c.DerivePoint(one)
	if err != nil {
		t.Fatal(err)
	}

	// 1*G is the generator
	generator := "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	if got := hex.EncodeToString(point); got != generator {
		t.Fatalf("1*G should be %s, not %s", generator, got)
	}

	uncompressed, err := c.UncompressPoint(point)
	if err != nil {
		t.Fatal(err)
	}

	parsed, err := c.ParsePoint(uncompressed)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(parsed, point) {
		t.Fatal("ParsePoint should return the compressed form")
	}

	if _, err := c.ParsePoint(point[:32]); err == nil {
		t.Fatal("ParsePoint should reject truncated points")
	}
}

func TestNormalizeLowS(t *testing.T) {
	c := Secp256k1()
	key, _ := ParseWIF(devWIF)
	hash := crypto.SHA256([]byte("normalize"))

	rs, recoveryID, err := c.SignRecoverable(hash, key.Serialize())
	if err != nil {
		t.Fatal(err)
	}

	if !c.IsLowS(rs) {
		t.Fatal("the signing primitive should produce low-S signatures")
	}

	same, sameID := c.NormalizeLowS(rs, recoveryID)
	if !bytes.Equal(same, rs) || sameID != recoveryID {
		t.Fatal("NormalizeLowS should not change a low-S signature")
	}

	high := highS(newSignature(rs, recoveryID))
	if c.IsLowS(high.rs[:]) {
		t.Fatal("N - s should be high")
	}

	normalized, normalizedID := c.NormalizeLowS(high.rs[:], high.recoveryID)
	if !bytes.Equal(normalized, rs) || normalizedID != recoveryID {
		t.Fatal("NormalizeLowS should map the high-S twin back to the original")
	}

	if c.IsLowS(make([]byte, SignatureSize)) {
		t.Fatal("s = 0 is not a valid signature")
	}

	if c.IsLowS(rs[:32]) {
		t.Fatal("IsLowS should reject truncated signatures")
	}
}

func TestRecoverErrors(t *testing.T) {
	c := Secp256k1()
	hash := crypto.SHA256([]byte("recover"))

	if _, err := c.Recover(hash, make([]byte, SignatureSize), 4); err == nil {
		t.Fatal("recovery id 4 should be rejected")
	}

	if _, err := c.Recover(hash[:31], make([]byte, SignatureSize), 0); err == nil {
		t.Fatal("short hash should be rejected")
	}

	if _, err := c.Recover(hash, make([]byte, SignatureSize), 0); err == nil {
		t.Fatal("zero signature should not recover a key")
	}
}

// countingCurve delegates to another Curve and records which operations the
// codec asked for.
type countingCurve struct {
	Curve
	calls map[string]int
}

func (c *countingCurve) SignRecoverable(hash, d []byte) ([]byte, byte, error) {
	c.calls["sign"]++
	return c.Curve.SignRecoverable(hash, d)
}

func (c *countingCurve) NormalizeLowS(rs []byte, recoveryID byte) ([]byte, byte) {
	c.calls["normalize"]++
	return c.Curve.NormalizeLowS(rs, recoveryID)
}

func (c *countingCurve) ValidateScalar(d []byte) error {
	c.calls["validate"]++
	return c.Curve.ValidateScalar(d)
}

func TestCodecGoesThroughCurve(t *testing.T) {
	counting := &countingCurve{Curve: Secp256k1(), calls: map[string]int{}}

	defer SetCurve(SetCurve(counting))

	key, err := ParseWIF(eosWIF)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := key.Sign([]byte("hello")); err != nil {
		t.Fatal(err)
	}

	for _, op := range []string{"validate", "sign", "normalize"} {
		if counting.calls[op] != 1 {
			t.Fatalf("%s should have been called once, got %d", op, counting.calls[op])
		}
	}
}

type failingCurve struct {
	Curve
}

var errCurve = errors.New("curve failure")

func (failingCurve) SignRecoverable(hash, d []byte) ([]byte, byte, error) {
	return nil, 0, errCurve
}

func TestCurveErrorsAreWrapped(t *testing.T) {
	key, _ := ParseWIF(eosWIF)

	defer SetCurve(SetCurve(failingCurve{Curve: Secp256k1()}))

	_, err := key.Sign([]byte("hello"))
	if !IsCurve(err) {
		t.Fatalf("expected CurveErr, got %v", err)
	}

	if !errors.Is(err, errCurve) {
		t.Fatal("CurveErr should unwrap to the curve library error")
	}
}

func TestSetCurve(t *testing.T) {
	counting := &countingCurve{Curve: Secp256k1(), calls: map[string]int{}}

	prev := SetCurve(counting)
	defer SetCurve(prev)

	if _, err := ParseWIF(devWIF); err != nil {
		t.Fatal(err)
	}
	if counting.calls["validate"] != 1 {
		t.Fatal("the installed curve should validate parsed scalars")
	}

	if SetCurve(nil) != Curve(counting) {
		t.Fatal("SetCurve should return the previous curve")
	}

	if _, err := ParseWIF(devWIF); err != nil {
		t.Fatal(err)
	}
	if counting.calls["validate"] != 1 {
		t.Fatal("SetCurve(nil) should restore the default curve")
	}
	if _, ok := curve.(secp256k1Curve); !ok {
		t.Fatalf("SetCurve(nil) should install Secp256k1, got %T", curve)
	}
}
