package uecc

import "testing"

func TestNewScalarIsZero(t *testing.T) {
	s := NewScalar()
	if s.IsZero() != 1 {
		t.Errorf("NewScalar() is not zero")
	}
}

func TestScalarAddSubRoundTrip(t *testing.T) {
	a := NewScalar().SetUint64(111)
	b := NewScalar().SetUint64(222)

	var sum, back Scalar
	sum.Add(a, b)
	back.Subtract(&sum, b)

	if back.Equal(a) != 1 {
		t.Errorf("(a+b)-b != a")
	}
}

func TestScalarMultiplyByOne(t *testing.T) {
	a := NewScalar().SetUint64(9001)
	one := NewScalar().SetUint64(1)

	var got Scalar
	got.Multiply(a, one)

	var reducedA Scalar
	reducedA.Reduce(a)
	if got.Equal(&reducedA) != 1 {
		t.Errorf("a*1 != a")
	}
}

func TestScalarReduceOrderIsZero(t *testing.T) {
	var order Scalar
	order.SetBytes(Order[:])

	var reduced Scalar
	reduced.Reduce(&order)
	if reduced.IsZero() != 1 {
		t.Errorf("reduce(q) != 0")
	}
}

func TestScalarSetCanonicalBytesRejectsOrder(t *testing.T) {
	var s Scalar
	if _, err := s.SetCanonicalBytes(Order[:]); err == nil {
		t.Errorf("expected q itself to be rejected as a non-canonical scalar encoding")
	}
}

func TestScalarSetCanonicalBytesAcceptsZero(t *testing.T) {
	var zero [32]byte
	s := NewScalar()
	if _, err := s.SetCanonicalBytes(zero[:]); err != nil {
		t.Fatalf("SetCanonicalBytes(0): %v", err)
	}
	if s.IsZero() != 1 {
		t.Errorf("decoded canonical zero is not zero")
	}
}

func TestScalarSetCanonicalBytesRejectsWrongLength(t *testing.T) {
	s := NewScalar()
	if _, err := s.SetCanonicalBytes(make([]byte, 16)); err == nil {
		t.Errorf("expected error for short scalar encoding")
	}
}

func TestScalarSanitizeSecretClampsBase(t *testing.T) {
	raw := NewScalar().SetBytes([]byte{
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	})

	var clamped Scalar
	clamped.SanitizeSecret(raw)
	b := clamped.Bytes()

	if b[0]&0x07 != 0 {
		t.Errorf("low 3 bits not cleared: %#x", b[0])
	}
	if b[31] != 0x7f&^0x80|0x40 {
		t.Errorf("top byte = %#x, want bit 254 set and bit 255 clear", b[31])
	}
}

func TestScalarEncodeAppendsToExistingSlice(t *testing.T) {
	s := NewScalar().SetUint64(7)
	prefix := []byte{1, 2, 3}
	out := s.Encode(prefix)
	if len(out) != 3+32 {
		t.Fatalf("Encode length = %d, want 35", len(out))
	}
	if out[0] != 1 || out[1] != 2 || out[2] != 3 {
		t.Errorf("Encode clobbered prefix: %v", out[:3])
	}
}

func TestScalarStringRoundTrip(t *testing.T) {
	s := NewScalar().SetUint64(424242)
	text := s.String()

	var decoded Scalar
	if err := decoded.UnmarshalText([]byte(text)); err != nil {
		t.Fatalf("UnmarshalText(%q): %v", text, err)
	}
	if decoded.Equal(s) != 1 {
		t.Errorf("round trip through String/UnmarshalText changed value")
	}
}

func TestScalarUnmarshalTextRejectsGarbage(t *testing.T) {
	var s Scalar
	if err := s.UnmarshalText([]byte("not valid base64!!")); err == nil {
		t.Errorf("expected error for invalid base64 text")
	}
}
