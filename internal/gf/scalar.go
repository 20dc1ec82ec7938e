// Copyright (c) 2012, Matthias Schiffer <mschiffer@universe-factory.net>
// Partly based on public domain code by Matthew Dempsky and D. J. Bernstein.
//
// Package gf implements arithmetic in the prime field F_q for
// q = 2^252 + 27742317777372353535851937790883648493, the order of
// the base point of the curve implemented by package uecc.
//
// Unlike package fe, elements here are plain 32-byte little-endian
// arrays; arithmetic routines accept inputs up to 2^256 and reduce
// internally, producing canonical representatives in [0, q).
package gf

// Scalar is an element of F_q, stored as 32 little-endian bytes. The
// zero value is the scalar 0. Values are not required to be canonical
// except as documented per method.
type Scalar struct {
	b [32]byte
}

// Order is q, little-endian, as exposed to callers.
var Order = [32]byte{
	0xed, 0xd3, 0xf5, 0x5c, 0x1a, 0x63, 0x12, 0x58,
	0xd6, 0x9c, 0xf7, 0xa2, 0xde, 0xf9, 0xde, 0x14,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10,
}

// montgomeryC is 2^512 mod q, used to bring a Montgomery product back
// to the ordinary representation with a second Montgomery step.
var montgomeryC = [32]byte{
	0x01, 0x0f, 0x9c, 0x44, 0xe3, 0x11, 0x06, 0xa4,
	0x47, 0x93, 0x85, 0x68, 0xa7, 0x1b, 0x0e, 0xd0,
	0x65, 0xbe, 0xf5, 0x17, 0xd2, 0x73, 0xec, 0xce,
	0x3d, 0x9a, 0x30, 0x7c, 0x1b, 0x41, 0x99, 0x03,
}

func isNegative(n int32) int32 {
	return int32((uint32(n) >> 31) & 1)
}

// selectBytes sets out = r if b == 0, s if b == 1, in constant time.
func selectBytes(out, r, s *[32]byte, b uint32) {
	bMinus1 := b - 1
	for j := range out {
		t := byte(bMinus1) & (r[j] ^ s[j])
		out[j] = s[j] ^ t
	}
}

// SetUint64 sets s = n for a small integer n and returns s.
func (s *Scalar) SetUint64(n uint64) *Scalar {
	var out Scalar
	for i := 0; i < 8; i++ {
		out.b[i] = byte(n >> (8 * i))
	}
	*s = out
	return s
}

// SetBytes sets s's underlying bytes directly from a 32-byte
// little-endian value and returns s. The value need not be canonical;
// arithmetic routines reduce as needed.
func (s *Scalar) SetBytes(b *[32]byte) *Scalar {
	s.b = *b
	return s
}

// Bytes returns the current (possibly non-canonical) 32 little-endian
// bytes of s.
func (s *Scalar) Bytes() [32]byte {
	return s.b
}

// IsZero returns 1 if s reduces to zero mod q, 0 otherwise, in
// constant time.
func (s *Scalar) IsZero() int {
	var r Scalar
	r.Reduce(s)

	var bits byte
	for i := 0; i < 32; i++ {
		bits |= r.b[i]
	}
	return int((uint32(bits) - 1) >> 8 & 1)
}

// Add sets s = a + b (mod q) and returns s.
//
// Three candidate sums are computed limb-wise with carry -- a+b,
// a+b-8q, a+b-16q -- and a constant-time select on their carry bits
// picks one that fits in 256 bits: the unreduced sum if it does, else
// a+b-8q if that does, else a+b-16q. 16q does not fit in 256 bits,
// hence the dual subtraction. The chosen candidate is then reduced
// into [0, q).
func (s *Scalar) Add(a, b *Scalar) *Scalar {
	var out1, out2, out3 [32]byte
	var u1, u2, u3 int32

	for j := 0; j < 31; j++ {
		u1 += int32(a.b[j]) + int32(b.b[j])
		u2 += int32(a.b[j]) + int32(b.b[j]) - 8*int32(Order[j])
		u3 += int32(a.b[j]) + int32(b.b[j]) - 16*int32(Order[j])

		out1[j] = byte(u1)
		out2[j] = byte(u2)
		out3[j] = byte(u3)

		u1 = (u1+isNegative(u1))/256 - isNegative(u1)
		u2 = (u2+isNegative(u2))/256 - isNegative(u2)
		u3 = (u3+isNegative(u3))/256 - isNegative(u3)
	}
	u1 += int32(a.b[31]) + int32(b.b[31])
	u2 += int32(a.b[31]) + int32(b.b[31]) - 8*int32(Order[31])
	u3 += int32(a.b[31]) + int32(b.b[31]) - 16*int32(Order[31])
	out1[31] = byte(u1)
	out2[31] = byte(u2)
	out3[31] = byte(u3)

	var out [32]byte
	selectBytes(&out, &out1, &out2, uint32(u1>>8)&1)
	selectBytes(&out, &out, &out3, uint32(u1>>8)&uint32(u2>>8)&1)
	reduce(&out)

	s.b = out
	return s
}

// Sub sets s = a - b (mod q) and returns s, symmetric to Add.
func (s *Scalar) Sub(a, b *Scalar) *Scalar {
	var out1, out2, out3 [32]byte
	var u1, u2, u3 int32

	for j := 0; j < 31; j++ {
		u1 += int32(a.b[j]) - int32(b.b[j]) + 16*int32(Order[j])
		u2 += int32(a.b[j]) - int32(b.b[j]) + 8*int32(Order[j])
		u3 += int32(a.b[j]) - int32(b.b[j])

		out1[j] = byte(u1)
		out2[j] = byte(u2)
		out3[j] = byte(u3)

		u1 = (u1+isNegative(u1))/256 - isNegative(u1)
		u2 = (u2+isNegative(u2))/256 - isNegative(u2)
		u3 = (u3+isNegative(u3))/256 - isNegative(u3)
	}
	u1 += int32(a.b[31]) - int32(b.b[31]) + 16*int32(Order[31])
	u2 += int32(a.b[31]) - int32(b.b[31]) + 8*int32(Order[31])
	u3 += int32(a.b[31]) - int32(b.b[31])
	out1[31] = byte(u1)
	out2[31] = byte(u2)
	out3[31] = byte(u3)

	var out [32]byte
	selectBytes(&out, &out1, &out2, uint32(u1>>8)&1)
	selectBytes(&out, &out, &out3, uint32(u1>>8)&uint32(u2>>8)&1)
	reduce(&out)

	s.b = out
	return s
}

// reduce canonicalizes a into [0, q), treating the top nibble of a[31]
// as an estimate of the quotient floor(a/q).
func reduce(a *[32]byte) {
	nq := int32(a[31] >> 4)

	var out1, out2 [32]byte
	var u1, u2 int32

	for j := 0; j < 31; j++ {
		u1 += int32(a[j]) - nq*int32(Order[j])
		u2 += int32(a[j]) - (nq-1)*int32(Order[j])

		out1[j] = byte(u1)
		out2[j] = byte(u2)

		u1 = (u1+isNegative(u1))/256 - isNegative(u1)
		u2 = (u2+isNegative(u2))/256 - isNegative(u2)
	}
	u1 += int32(a[31]) - nq*int32(Order[31])
	u2 += int32(a[31]) - (nq-1)*int32(Order[31])
	out1[31] = byte(u1)
	out2[31] = byte(u2)

	selectBytes(a, &out1, &out2, uint32(isNegative(u1)))
}

// Reduce sets s to a's unique representative in [0, q) and returns s.
func (s *Scalar) Reduce(a *Scalar) *Scalar {
	out := a.b
	reduce(&out)
	s.b = out
	return s
}

// montgomery computes a*b*R^-1 mod q for R = 2^256, via the standard
// byte-at-a-time Montgomery step with q' = -q^-1 mod 256 = 0x1b. b
// must already be reduced.
func montgomery(out, a, b *[32]byte) {
	var acc [32]byte

	for i := 0; i < 32; i++ {
		u := uint32(acc[0]) + uint32(a[i])*uint32(b[0])
		nq := (u * 27) & 255
		u += nq * uint32(Order[0])

		for j := 1; j < 32; j++ {
			u += (uint32(acc[j]) + uint32(a[i])*uint32(b[j]) + nq*uint32(Order[j])) << 8
			u >>= 8
			acc[j-1] = byte(u)
		}
		acc[31] = byte(u >> 8)
	}

	*out = acc
}

// Mul sets s = a*b (mod q), using Montgomery multiplication with
// radix R = 2^256, and returns s. b is reduced before entering the
// Montgomery step to keep intermediate limbs bounded; the raw
// Montgomery product (a*b*R^-1) is brought back to the ordinary
// representation by a second Montgomery multiplication with the fixed
// constant C = R^2 mod q.
func (s *Scalar) Mul(a, b *Scalar) *Scalar {
	bReduced := b.b
	reduce(&bReduced)

	var r, out [32]byte
	montgomery(&r, &a.b, &bReduced)
	montgomery(&out, &r, &montgomeryC)
	reduce(&out)

	s.b = out
	return s
}

// SanitizeSecret sets s to in with bit 254 set, bit 255 cleared, and
// the bottom three bits cleared, and returns s. This forces the value
// into [2^254, 2^255) and makes it a multiple of 8, the standard
// Curve25519 secret-key clamping.
func (s *Scalar) SanitizeSecret(in *Scalar) *Scalar {
	out := in.b
	out[0] &^= 0x07
	out[31] &= 0x7f
	out[31] |= 0x40
	s.b = out
	return s
}

// Equal returns 1 if s and t reduce to the same value mod q, 0
// otherwise, in constant time.
func (s *Scalar) Equal(t *Scalar) int {
	var rs, rt Scalar
	rs.Reduce(s)
	rt.Reduce(t)

	var bits byte
	for i := 0; i < 32; i++ {
		bits |= rs.b[i] ^ rt.b[i]
	}
	return int((uint32(bits) - 1) >> 8 & 1)
}
