// Copyright (c) 2012, Matthias Schiffer <mschiffer@universe-factory.net>

package uecc

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"

	"github.com/neocturne-go/uecc/internal/gf"
)

// A Scalar is an element of the scalar field F_q, q being the prime
// order of Base:
//
//	q = 2^252 + 27742317777372353535851937790883648493
//
// The zero value is the scalar 0.
type Scalar struct {
	s gf.Scalar
}

// Order is q, the scalar field modulus, as a little-endian Integer256.
var Order = Integer256(gf.Order)

// NewScalar returns a Scalar set to the value 0.
func NewScalar() *Scalar {
	return &Scalar{}
}

// Set sets s = x and returns s.
func (s *Scalar) Set(x *Scalar) *Scalar {
	*s = *x
	return s
}

// Zero sets s = 0 and returns s.
func (s *Scalar) Zero() *Scalar {
	s.s = gf.Scalar{}
	return s
}

// Add sets s = x + y (mod q) and returns s.
func (s *Scalar) Add(x, y *Scalar) *Scalar {
	s.s.Add(&x.s, &y.s)
	return s
}

// Subtract sets s = x - y (mod q) and returns s.
func (s *Scalar) Subtract(x, y *Scalar) *Scalar {
	s.s.Sub(&x.s, &y.s)
	return s
}

// Multiply sets s = x*y (mod q) and returns s.
func (s *Scalar) Multiply(x, y *Scalar) *Scalar {
	s.s.Mul(&x.s, &y.s)
	return s
}

// Reduce sets s to x's unique representative in [0, q) and returns s.
func (s *Scalar) Reduce(x *Scalar) *Scalar {
	s.s.Reduce(&x.s)
	return s
}

// SanitizeSecret sets s to x with bit 254 set, bit 255 cleared and the
// bottom three bits cleared, and returns s. This is the standard
// Curve25519 secret-key clamping: it forces s into [2^254, 2^255) and
// makes it a multiple of 8, moving it outside the small-subgroup
// attack range and fixing the ladder's leading bit.
func (s *Scalar) SanitizeSecret(x *Scalar) *Scalar {
	s.s.SanitizeSecret(&x.s)
	return s
}

// IsZero returns 1 if s is equivalent to 0 mod q, 0 otherwise.
func (s *Scalar) IsZero() int {
	return s.s.IsZero()
}

// SetUint64 sets s = n for a small integer n and returns s.
func (s *Scalar) SetUint64(n uint64) *Scalar {
	s.s.SetUint64(n)
	return s
}

// SetBytes sets s's underlying bytes directly from a 32 byte
// little-endian value and returns s. x need not be canonical:
// arithmetic operations on s reduce as needed.
func (s *Scalar) SetBytes(x []byte) *Scalar {
	var b [32]byte
	copy(b[:], x)
	s.s.SetBytes(&b)
	return s
}

// SetCanonicalBytes sets s = x, where x is a 32 byte little-endian
// encoding of s, and returns (s, nil). If x is not a canonical
// encoding of a value in [0, q), it returns (s, error) and leaves s
// unchanged.
func (s *Scalar) SetCanonicalBytes(x []byte) (*Scalar, error) {
	if len(x) != 32 {
		return s, errors.New("uecc: invalid scalar length")
	}
	var candidate Scalar
	candidate.SetBytes(x)

	var reduced Scalar
	reduced.Reduce(&candidate)
	reducedBytes := reduced.Bytes()
	candidateBytes := candidate.Bytes()
	if subtle.ConstantTimeCompare(reducedBytes[:], candidateBytes[:]) != 1 {
		return s, errors.New("uecc: invalid scalar encoding")
	}

	*s = candidate
	return s, nil
}

// Bytes returns s's current (possibly non-canonical) 32 byte
// little-endian encoding.
func (s *Scalar) Bytes() [32]byte {
	return s.s.Bytes()
}

// Encode appends the 32 byte little-endian encoding of s to b and
// returns the extended slice.
func (s *Scalar) Encode(b []byte) []byte {
	enc := s.s.Bytes()
	res, out := sliceForAppend(b, 32)
	subtle.ConstantTimeCopy(1, out, enc[:])
	return res
}

// Equal returns 1 if s and t reduce to the same value mod q, 0
// otherwise.
func (s *Scalar) Equal(t *Scalar) int {
	return s.s.Equal(&t.s)
}

// MarshalText implements encoding.TextMarshaler.
func (s *Scalar) MarshalText() (text []byte, err error) {
	b := s.Encode([]byte{})
	return []byte(base64.StdEncoding.EncodeToString(b)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scalar) UnmarshalText(text []byte) error {
	sb, err := base64.StdEncoding.DecodeString(string(text))
	if err != nil {
		return err
	}
	_, err = s.SetCanonicalBytes(sb)
	return err
}

// String implements fmt.Stringer.
func (s *Scalar) String() string {
	result, _ := s.MarshalText()
	return string(result)
}
