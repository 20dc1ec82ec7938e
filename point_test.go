package uecc

import (
	"encoding/json"
	"testing"

	"github.com/neocturne-go/uecc/internal/gf"
)

func scalarFromUint64(n uint64) *Scalar {
	s := NewScalar()
	s.SetUint64(n)
	return s
}

func TestIdentityIsIdentity(t *testing.T) {
	if Identity.IsIdentity() != 1 {
		t.Errorf("Identity.IsIdentity() != 1")
	}
}

func TestBaseIsNotIdentity(t *testing.T) {
	if Base.IsIdentity() != 0 {
		t.Errorf("Base.IsIdentity() != 0")
	}
}

func TestAddIdentityIsNoop(t *testing.T) {
	var got Point
	got.Add(&Base, &Identity)
	if got.Equal(&Base) != 1 {
		t.Errorf("Base + Identity != Base")
	}
}

func TestDoubleMatchesAdd(t *testing.T) {
	var doubled, added Point
	doubled.Double(&Base)
	added.Add(&Base, &Base)
	if doubled.Equal(&added) != 1 {
		t.Errorf("Double(Base) != Add(Base, Base)")
	}
}

func TestNegateRoundTrip(t *testing.T) {
	var neg, back Point
	neg.Negate(&Base)
	back.Negate(&neg)
	if back.Equal(&Base) != 1 {
		t.Errorf("Negate(Negate(Base)) != Base")
	}

	var sum Point
	sum.Add(&Base, &neg)
	if sum.IsIdentity() != 1 {
		t.Errorf("Base + (-Base) != Identity")
	}
}

func TestSubMatchesAddNegate(t *testing.T) {
	var doubled Point
	doubled.Double(&Base)

	var diff Point
	diff.Sub(&doubled, &Base)
	if diff.Equal(&Base) != 1 {
		t.Errorf("2*Base - Base != Base")
	}
}

func TestScalarMultByZeroIsIdentity(t *testing.T) {
	zero := scalarFromUint64(0)
	var got Point
	got.ScalarMult(&zero.s, &Base)
	if got.IsIdentity() != 1 {
		t.Errorf("0*Base != Identity")
	}
}

func TestScalarMultByOneIsBase(t *testing.T) {
	one := scalarFromUint64(1)
	var got Point
	got.ScalarMult(&one.s, &Base)
	if got.Equal(&Base) != 1 {
		t.Errorf("1*Base != Base")
	}
}

func TestScalarMultByTwoMatchesDouble(t *testing.T) {
	two := scalarFromUint64(2)
	var viaScalar, viaDouble Point
	viaScalar.ScalarMult(&two.s, &Base)
	viaDouble.Double(&Base)
	if viaScalar.Equal(&viaDouble) != 1 {
		t.Errorf("2*Base != Double(Base)")
	}
}

func TestScalarBaseMultMatchesScalarMult(t *testing.T) {
	n := scalarFromUint64(12345)
	var viaBase, viaGeneric Point
	viaBase.ScalarBaseMult(&n.s)
	viaGeneric.ScalarMult(&n.s, &Base)
	if viaBase.Equal(&viaGeneric) != 1 {
		t.Errorf("ScalarBaseMult(n) != ScalarMult(n, Base)")
	}
}

func TestScalarMultByOrderIsIdentity(t *testing.T) {
	var order gf.Scalar
	order.SetBytes(&gf.Order)

	var got Point
	got.ScalarMult(&order, &Base)
	if got.IsIdentity() != 1 {
		t.Errorf("q*Base != Identity, got %x", got.Bytes())
	}
}

func TestDiffieHellmanConsistency(t *testing.T) {
	a := scalarFromUint64(424242)
	b := scalarFromUint64(13371337)

	var aBase, bBase Point
	aBase.ScalarBaseMult(&a.s)
	bBase.ScalarBaseMult(&b.s)

	var ab, ba Point
	ab.ScalarMult(&b.s, &aBase)
	ba.ScalarMult(&a.s, &bBase)

	if ab.Equal(&ba) != 1 {
		t.Errorf("a*(b*Base) != b*(a*Base)")
	}
}

func TestBasePackedEncoding(t *testing.T) {
	// Affine x of Base; bit 255 is clear because y = 4/5 is even.
	want := Integer256{
		0xd4, 0x6b, 0xfe, 0x7f, 0x39, 0xfa, 0x8c, 0x22,
		0xe1, 0x96, 0x23, 0xeb, 0x26, 0xb7, 0x8e, 0x6a,
		0x34, 0x74, 0x8b, 0x66, 0xd6, 0xa3, 0x26, 0xdd,
		0x19, 0x5e, 0x9f, 0x21, 0x50, 0x43, 0x7c, 0x54,
	}
	got := Base.Bytes()
	if got != want {
		t.Errorf("Base.Bytes() = %x, want %x", got, want)
	}
}

func TestPackedRoundTrip(t *testing.T) {
	n := scalarFromUint64(777)
	var p Point
	p.ScalarBaseMult(&n.s)

	enc := p.Bytes()
	var decoded Point
	if _, err := decoded.SetCanonicalBytes(enc[:]); err != nil {
		t.Fatalf("SetCanonicalBytes: %v", err)
	}
	if decoded.Equal(&p) != 1 {
		t.Errorf("decoded point != original")
	}
}

func TestSetCanonicalBytesRejectsBadLength(t *testing.T) {
	var p Point
	if _, err := p.SetCanonicalBytes(make([]byte, 31)); err == nil {
		t.Errorf("expected error for short encoding")
	}
}

func TestSetCanonicalBytesRejectsOffCurve(t *testing.T) {
	// All bytes 0xff except the lowest, 0xfe: with bit 255 stripped,
	// x = 2^255 - 2 = 17 (mod p), for which (1 - a*x^2)/(1 - d*x^2) is
	// not a square in F_p, so no y exists whatever the sign bit.
	bad := Integer256{
		0xfe, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	}
	var p Point
	_, err := p.SetCanonicalBytes(bad[:])
	if err == nil {
		t.Errorf("expected invalid encoding for x = 17")
	}
}

func TestXYRoundTrip(t *testing.T) {
	n := scalarFromUint64(555)
	var p Point
	p.ScalarBaseMult(&n.s)

	x, y := p.XY()
	var q Point
	if _, ok := q.SetXY(&x, &y); !ok {
		t.Fatalf("SetXY rejected a point's own affine coordinates")
	}
	if q.Equal(&p) != 1 {
		t.Errorf("SetXY(p.XY()) != p")
	}
}

func TestEncodeAppendsToExistingSlice(t *testing.T) {
	prefix := []byte{0xaa, 0xbb}
	out := Base.Encode(prefix)
	if len(out) != 2+32 {
		t.Fatalf("Encode length = %d, want 34", len(out))
	}
	if out[0] != 0xaa || out[1] != 0xbb {
		t.Errorf("Encode clobbered prefix: %x", out[:2])
	}
	want := Base.Bytes()
	var got [32]byte
	copy(got[:], out[2:])
	if got != want {
		t.Errorf("Encode suffix = %x, want %x", got, want)
	}
}

func TestScalarJSONRoundTrip(t *testing.T) {
	n := scalarFromUint64(31415)

	data, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Scalar
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Equal(n) != 1 {
		t.Errorf("scalar JSON round trip mismatch")
	}
}
