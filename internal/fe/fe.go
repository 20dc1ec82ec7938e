// Copyright (c) 2012-2015, Matthias Schiffer <mschiffer@universe-factory.net>
// Partly based on public domain code by Matthew Dempsky and D. J. Bernstein.
//
// Package fe implements arithmetic in the prime field F_p for
// p = 2^255 - 19, the base field of the twisted Edwards curve used by
// package uecc.
//
// Elements are held in a redundant little-endian radix-256
// representation: 32 limbs, each logically a base-256 digit, but
// permitted to grow beyond a byte between operations. An Element is
// "squeezed" when its value lies in [0, 2p) and its limbs are small
// enough that the next Mul, Square or MulSmall will not overflow; it
// is "frozen" when it has additionally been canonicalized into [0, p)
// with exactly one byte per limb. Mul, Square, MulSmall and Squeeze
// leave an Element squeezed but not frozen (Add and Sub do not
// squeeze); callers that need a canonical byte encoding must call
// Freeze first.
package fe

// Element is an unpacked base-field element: 32 little-endian
// radix-256 limbs. The zero value is the field element 0.
type Element struct {
	l [32]uint32
}

var (
	zero = Element{}
	one  = Element{l: [32]uint32{1}}

	// p, the field modulus, as a frozen Element.
	pElement = Element{l: [32]uint32{
		0xed, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f,
	}}

	// minusP is 2^256 - p = 2^255 + 19, used by Freeze via
	// a + (2^256 - p) = a - p (mod 2^256).
	minusP = [32]uint32{
		19, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 128,
	}

	// rhoS is the fixed field element sqrt(-1) mod p, used to correct
	// Sqrt's candidate root when the direct candidate squares to -z.
	rhoS = Element{l: [32]uint32{
		0xb0, 0xa0, 0x0e, 0x4a, 0x27, 0x1b, 0xee, 0xc4,
		0x78, 0xe4, 0x2f, 0xad, 0x06, 0x18, 0x43, 0x2f,
		0xa7, 0xd7, 0xfb, 0x3d, 0x99, 0x00, 0x4d, 0x2b,
		0x0b, 0xdf, 0xc1, 0x4f, 0x80, 0x24, 0x83, 0x2b,
	}}

	// minus1 is p-1, the frozen representation of -1 mod p.
	minus1 = Element{l: [32]uint32{
		0xec, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f,
	}}
)

// Zero sets v = 0 and returns v.
func (v *Element) Zero() *Element {
	v.l = zero.l
	return v
}

// One sets v = 1 and returns v.
func (v *Element) One() *Element {
	v.l = one.l
	return v
}

// Set sets v = a and returns v.
func (v *Element) Set(a *Element) *Element {
	v.l = a.l
	return v
}

// SetBytes sets v's limbs directly from 32 little-endian bytes and
// returns v. Each limb fits a byte, but the value is not reduced mod p
// and may be as large as 2^256-1, above the 2p squeezed bound; callers
// that need a canonical value should follow with Squeeze and Freeze.
func (v *Element) SetBytes(b *[32]byte) *Element {
	var out Element
	for i := range out.l {
		out.l[i] = uint32(b[i])
	}
	*v = out
	return v
}

// Bytes returns the low byte of each limb of v. v must already be
// frozen; otherwise the result is not a canonical encoding.
func (v *Element) Bytes() [32]byte {
	var out [32]byte
	for i := range out {
		out[i] = byte(v.l[i])
	}
	return out
}

// Add sets v = a + b and returns v. The result is not squeezed.
func (v *Element) Add(a, b *Element) *Element {
	var out Element
	var u uint32

	for j := 0; j < 31; j++ {
		u += a.l[j] + b.l[j]
		out.l[j] = u & 255
		u >>= 8
	}
	u += a.l[31] + b.l[31]
	out.l[31] = u

	*v = out
	return v
}

// Sub sets v = a - b and returns v. b must be squeezed. The result is
// safe to feed into Squeeze, Mul or Square, though limb 31 is not
// itself squeezed.
func (v *Element) Sub(a, b *Element) *Element {
	var out Element
	u := uint32(218)

	for j := 0; j < 31; j++ {
		u += a.l[j] + 65280 - b.l[j]
		out.l[j] = u & 255
		u >>= 8
	}
	u += a.l[31] - b.l[31]
	out.l[31] = u

	*v = out
	return v
}

// Squeeze performs two-pass carry propagation on v, bringing its value
// into [0, 2p) with every limb but the last fitting a byte. It returns v.
func (v *Element) Squeeze() *Element {
	var u uint32

	for j := 0; j < 31; j++ {
		u += v.l[j]
		v.l[j] = u & 255
		u >>= 8
	}
	u += v.l[31]
	v.l[31] = u & 127
	u = 19 * (u >> 7)

	for j := 0; j < 31; j++ {
		u += v.l[j]
		v.l[j] = u & 255
		u >>= 8
	}
	u += v.l[31]
	v.l[31] = u

	return v
}

// Freeze canonicalizes v, which must be squeezed, into [0, p) with one
// byte per limb, and returns v.
func (v *Element) Freeze() *Element {
	orig := v.l

	var biased Element
	biased.Add(v, &Element{l: minusP})

	negative := -((biased.l[31] >> 7) & 1)

	var out Element
	for j := range out.l {
		out.l[j] = biased.l[j] ^ (negative & (orig[j] ^ biased.l[j]))
	}
	out.l[31] &= 255
	v.l = out.l
	return v
}

// Mul sets v = a*b (mod p) and returns v. The result is squeezed.
func (v *Element) Mul(a, b *Element) *Element {
	var out Element

	for i := 0; i < 32; i++ {
		var u uint32
		for j := 0; j <= i; j++ {
			u += a.l[j] * b.l[i-j]
		}
		for j := i + 1; j < 32; j++ {
			u += 38 * a.l[j] * b.l[i+32-j]
		}
		out.l[i] = u
	}

	out.Squeeze()
	*v = out
	return v
}

// MulSmall sets v = n*a (mod p) for a small scalar n and returns v.
// The result is squeezed.
func (v *Element) MulSmall(n uint32, a *Element) *Element {
	var out Element
	var u uint32

	for j := 0; j < 31; j++ {
		u += n * a.l[j]
		out.l[j] = u & 255
		u >>= 8
	}
	u += n * a.l[31]
	out.l[31] = u & 127
	u = 19 * (u >> 7)

	for j := 0; j < 31; j++ {
		u += out.l[j]
		out.l[j] = u & 255
		u >>= 8
	}
	u += out.l[31]
	out.l[31] = u

	*v = out
	return v
}

// Square sets v = a*a (mod p) and returns v. The result is squeezed.
func (v *Element) Square(a *Element) *Element {
	var out Element

	for i := 0; i < 32; i++ {
		var u uint32
		for j := 0; j < i-j; j++ {
			u += a.l[j] * a.l[i-j]
		}
		for j := i + 1; j < i+32-j; j++ {
			u += 38 * a.l[j] * a.l[i+32-j]
		}
		u *= 2

		if i&1 == 0 {
			u += a.l[i/2] * a.l[i/2]
			u += 38 * a.l[i/2+16] * a.l[i/2+16]
		}
		out.l[i] = u
	}

	out.Squeeze()
	*v = out
	return v
}

// checkEqual returns 1 if x == y limb-wise, 0 otherwise, in constant time.
func checkEqual(x, y *[32]uint32) int {
	var differentBits uint32
	for i := 0; i < 32; i++ {
		differentBits |= (x[i] ^ y[i]) & 0xffff
		differentBits |= (x[i] ^ y[i]) >> 16
	}
	return int(1 & ((differentBits - 1) >> 16))
}

// Equal returns 1 if v and a have identical limbs, 0 otherwise, in
// constant time. Congruent values held in different representations
// compare unequal, so both operands should be frozen when a
// comparison mod p is wanted.
func (v *Element) Equal(a *Element) int {
	return checkEqual(&v.l, &a.l)
}

// IsZero returns 1 if v == 0 (mod p), 0 otherwise, in constant time.
// v must be squeezed; both the canonical zero and the canonical p
// representation are accepted.
func (v *Element) IsZero() int {
	return checkEqual(&v.l, &zero.l) | checkEqual(&v.l, &pElement.l)
}

// Select sets v = r if b == 0, v = s if b == 1, in constant time, and
// returns v. b must be 0 or 1.
func (v *Element) Select(r, s *Element, b uint32) *Element {
	var out Element
	bMinus1 := b - 1
	for j := range out.l {
		t := bMinus1 & (r.l[j] ^ s.l[j])
		out.l[j] = s.l[j] ^ t
	}
	*v = out
	return v
}

// Invert sets v = 1/z (mod p) and returns v. If z == 0, the result is 0.
//
// This follows the standard Bernstein addition chain for z^(p-2):
// build z^2, z^9, z^11, then extend windows 2^5-1, 2^10-1, 2^20-1,
// 2^50-1, 2^100-1, 2^200-1, 2^250-1 by repeated square-then-multiply,
// finishing with five more squarings and a multiply by z^11.
func (v *Element) Invert(z *Element) *Element {
	var z2, z9, z11, z2_5_0, z2_10_0, z2_20_0, z2_50_0, z2_100_0, t0, t1 Element

	z2.Square(z)
	t1.Square(&z2)
	t0.Square(&t1)
	z9.Mul(&t0, z)
	z11.Mul(&z9, &z2)
	t0.Square(&z11)
	z2_5_0.Mul(&t0, &z9)

	t0.Square(&z2_5_0)
	t1.Square(&t0)
	t0.Square(&t1)
	t1.Square(&t0)
	t0.Square(&t1)
	z2_10_0.Mul(&t0, &z2_5_0)

	t0.Square(&z2_10_0)
	t1.Square(&t0)
	for i := 2; i < 10; i += 2 {
		t0.Square(&t1)
		t1.Square(&t0)
	}
	z2_20_0.Mul(&t1, &z2_10_0)

	t0.Square(&z2_20_0)
	t1.Square(&t0)
	for i := 2; i < 20; i += 2 {
		t0.Square(&t1)
		t1.Square(&t0)
	}
	t0.Mul(&t1, &z2_20_0)

	t1.Square(&t0)
	t0.Square(&t1)
	for i := 2; i < 10; i += 2 {
		t1.Square(&t0)
		t0.Square(&t1)
	}
	z2_50_0.Mul(&t0, &z2_10_0)

	t0.Square(&z2_50_0)
	t1.Square(&t0)
	for i := 2; i < 50; i += 2 {
		t0.Square(&t1)
		t1.Square(&t0)
	}
	z2_100_0.Mul(&t1, &z2_50_0)

	t1.Square(&z2_100_0)
	t0.Square(&t1)
	for i := 2; i < 100; i += 2 {
		t1.Square(&t0)
		t0.Square(&t1)
	}
	t1.Mul(&t0, &z2_100_0)

	t0.Square(&t1)
	t1.Square(&t0)
	for i := 2; i < 50; i += 2 {
		t0.Square(&t1)
		t1.Square(&t0)
	}
	t0.Mul(&t1, &z2_50_0)

	t1.Square(&t0)
	t0.Square(&t1)
	t1.Square(&t0)
	t0.Square(&t1)
	t1.Square(&t0)
	v.Mul(&t1, &z11)
	return v
}

// Sqrt sets v to a square root of z (mod p) and returns (v, 1) if z is
// a quadratic residue, or leaves v unspecified and returns (v, 0)
// otherwise. The candidate root r = z^((p+3)/8) is squared to decide
// between r and r*rho, where rho = sqrt(-1) mod p; the returned flag
// reports whether the (possibly corrected) result truly squares to z.
func (v *Element) Sqrt(z *Element) (*Element, int) {
	var z2, z9, z11, z2_5_0, z2_10_0, z2_20_0, z2_50_0, z2_100_0, t0, t1 Element

	z2.Square(z)
	t1.Square(&z2)
	t0.Square(&t1)
	z9.Mul(&t0, z)
	z11.Mul(&z9, &z2)
	t0.Square(&z11)
	z2_5_0.Mul(&t0, &z9)

	t0.Square(&z2_5_0)
	t1.Square(&t0)
	t0.Square(&t1)
	t1.Square(&t0)
	t0.Square(&t1)
	z2_10_0.Mul(&t0, &z2_5_0)

	t0.Square(&z2_10_0)
	t1.Square(&t0)
	for i := 2; i < 10; i += 2 {
		t0.Square(&t1)
		t1.Square(&t0)
	}
	z2_20_0.Mul(&t1, &z2_10_0)

	t0.Square(&z2_20_0)
	t1.Square(&t0)
	for i := 2; i < 20; i += 2 {
		t0.Square(&t1)
		t1.Square(&t0)
	}
	t0.Mul(&t1, &z2_20_0)

	t1.Square(&t0)
	t0.Square(&t1)
	for i := 2; i < 10; i += 2 {
		t1.Square(&t0)
		t0.Square(&t1)
	}
	z2_50_0.Mul(&t0, &z2_10_0)

	t0.Square(&z2_50_0)
	t1.Square(&t0)
	for i := 2; i < 50; i += 2 {
		t0.Square(&t1)
		t1.Square(&t0)
	}
	z2_100_0.Mul(&t1, &z2_50_0)

	t1.Square(&z2_100_0)
	t0.Square(&t1)
	for i := 2; i < 100; i += 2 {
		t1.Square(&t0)
		t0.Square(&t1)
	}
	t1.Mul(&t0, &z2_100_0)

	t0.Square(&t1)
	t1.Square(&t0)
	for i := 2; i < 50; i += 2 {
		t0.Square(&t1)
		t1.Square(&t0)
	}
	t0.Mul(&t1, &z2_50_0)

	var z2_252_1 Element
	t1.Square(&t0)
	t0.Square(&t1)
	z2_252_1.Mul(&t0, &z2)

	var check Element
	t1.Square(&t0)
	t0.Mul(&t1, &z2)
	check.Mul(&t0, z)

	var candRho Element
	candRho.Mul(&z2_252_1, &rhoS)

	var out Element
	out.Select(&z2_252_1, &candRho, uint32(checkEqual(&check.l, &minus1.l)))

	var verify, zFrozen Element
	verify.Square(&out)
	verify.Freeze()
	zFrozen.Set(z).Squeeze().Freeze()
	ok := checkEqual(&verify.l, &zFrozen.l)

	*v = out
	return v, ok
}
