// Copyright (c) 2012-2015, Matthias Schiffer <mschiffer@universe-factory.net>
// Partly based on public domain code by Matthew Dempsky and D. J. Bernstein.

package uecc

import (
	"crypto/subtle"
	"errors"

	"github.com/neocturne-go/uecc/internal/fe"
	"github.com/neocturne-go/uecc/internal/gf"
)

// curve parameters: a*x^2 + y^2 = 1 + d*x^2*y^2 over F_p.
const (
	curveA = 486664
	curveD = 486660
)

// Point is a point of the twisted Edwards curve, held in extended
// projective coordinates (X:Y:Z:T) with the invariant T*Z = X*Y and
// affine value (X/Z, Y/Z). The zero value is not a valid point; use
// Identity, Base, or one of the Set* constructors.
//
// Representations are not unique -- (X,Y,Z,T) and (lX,lY,lZ,lT) for
// any nonzero l denote the same point -- so only the packed encoding
// (Bytes/SetCanonicalBytes) is canonical for comparison or storage.
type Point struct {
	X, Y, Z, T fe.Element
}

func feFromBytes(b [32]byte) fe.Element {
	var e fe.Element
	e.SetBytes(&b)
	return e
}

// Identity is the identity element of the curve group, (0:1:1:0).
var Identity = Point{
	X: feFromBytes([32]byte{}),
	Y: feFromBytes([32]byte{1}),
	Z: feFromBytes([32]byte{1}),
	T: feFromBytes([32]byte{}),
}

// Base is the default generator of the curve group: the canonical
// Curve25519 base point, with affine y = 4/5. Its packed encoding is
// its affine x, with bit 255 clear because y is even.
var Base = Point{
	X: feFromBytes([32]byte{
		0xd4, 0x6b, 0xfe, 0x7f, 0x39, 0xfa, 0x8c, 0x22,
		0xe1, 0x96, 0x23, 0xeb, 0x26, 0xb7, 0x8e, 0x6a,
		0x34, 0x74, 0x8b, 0x66, 0xd6, 0xa3, 0x26, 0xdd,
		0x19, 0x5e, 0x9f, 0x21, 0x50, 0x43, 0x7c, 0x54,
	}),
	Y: feFromBytes([32]byte{
		0x58, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66,
		0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66,
		0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66,
		0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66,
	}),
	Z: feFromBytes([32]byte{1}),
	T: feFromBytes([32]byte{
		0x47, 0x56, 0x98, 0x99, 0xc7, 0x61, 0x0a, 0x82,
		0x1a, 0xdf, 0x82, 0x22, 0x1f, 0x2c, 0x72, 0x88,
		0xc3, 0x29, 0x09, 0x52, 0x78, 0xe9, 0x1e, 0xe4,
		0x47, 0x4b, 0x4c, 0x81, 0xa6, 0x02, 0xfd, 0x29,
	}),
}

// ErrInvalidEncoding is returned by Point.SetCanonicalBytes when a
// 32-byte packed point fails to decode because the derived y^2 has no
// square root in F_p.
var ErrInvalidEncoding = errors.New("uecc: invalid point encoding")

// Set sets v = p and returns v.
func (v *Point) Set(p *Point) *Point {
	*v = *p
	return v
}

// SetXY sets v from affine coordinates (x, y) and returns (v, true) if
// (x, y) satisfies the curve equation, or (v, false) -- with v's
// contents unspecified -- if it does not.
func (v *Point) SetXY(x, y *Integer256) (*Point, bool) {
	var X, Y fe.Element
	X.SetBytes((*[32]byte)(x))
	Y.SetBytes((*[32]byte)(y))

	var X2, Y2, aX2, dX2, dX2Y2, aX2_Y2, one_dX2Y2, r fe.Element
	X2.Square(&X)
	Y2.Square(&Y)
	aX2.MulSmall(curveA, &X2)
	dX2.MulSmall(curveD, &X2)
	dX2Y2.Mul(&dX2, &Y2)
	aX2_Y2.Add(&aX2, &Y2)

	var one fe.Element
	one.One()
	one_dX2Y2.Add(&one, &dX2Y2)

	r.Sub(&aX2_Y2, &one_dX2Y2)
	r.Squeeze()

	if r.IsZero() == 0 {
		return v, false
	}

	var out Point
	out.X, out.Y = X, Y
	out.Z.One()
	out.T.Mul(&X, &Y)
	*v = out
	return v, true
}

// XY returns the affine coordinates of v, frozen into canonical form.
func (v *Point) XY() (x, y Integer256) {
	var zInv, X, Y fe.Element
	zInv.Invert(&v.Z)
	X.Mul(&zInv, &v.X)
	Y.Mul(&zInv, &v.Y)
	X.Freeze()
	Y.Freeze()
	return Integer256(X.Bytes()), Integer256(Y.Bytes())
}

// SetPacked decodes a packed point encoding: bit 255 of enc carries
// the low bit of y, bits 0..254 carry x. It sets v to the decoded
// point and returns (v, true), or leaves v unspecified and returns
// (v, false) if the derived y^2 is not a square in F_p.
func (v *Point) SetPacked(enc *Integer256) (*Point, bool) {
	var xBytes [32]byte
	copy(xBytes[:], enc[:])
	sign := (enc[31] >> 7) & 1
	xBytes[31] &= 0x7f

	var X fe.Element
	X.SetBytes(&xBytes)

	var X2, aX2, dX2, one, one_aX2, one_dX2, invOneDX2, Y2 fe.Element
	X2.Square(&X)
	aX2.MulSmall(curveA, &X2)
	dX2.MulSmall(curveD, &X2)
	one.One()
	one_aX2.Sub(&one, &aX2)
	one_dX2.Sub(&one, &dX2)
	invOneDX2.Invert(&one_dX2)
	Y2.Mul(&one_aX2, &invOneDX2)

	var Y fe.Element
	_, ok := Y.Sqrt(&Y2)
	if ok == 0 {
		return v, false
	}

	var Yneg fe.Element
	var zero fe.Element
	Yneg.Sub(&zero, &Y)

	yFrozen := Y
	yFrozen.Freeze()
	yLowBit := yFrozen.Bytes()[0] & 1
	var outY fe.Element
	outY.Select(&Y, &Yneg, uint32(sign)^uint32(yLowBit))

	var out Point
	out.X = X
	out.Y = outY
	out.Z.One()
	out.T.Mul(&X, &outY)
	*v = out
	return v, true
}

// SetCanonicalBytes decodes b, a 32-byte packed point encoding, via
// SetPacked and returns (v, nil), or (v, ErrInvalidEncoding) with v
// unspecified if b does not decode to a point on the curve.
func (v *Point) SetCanonicalBytes(b []byte) (*Point, error) {
	if len(b) != 32 {
		return v, errors.New("uecc: invalid point encoding length")
	}
	var enc Integer256
	copy(enc[:], b)
	if _, ok := v.SetPacked(&enc); !ok {
		return v, ErrInvalidEncoding
	}
	return v, nil
}

// Bytes returns the packed encoding of v: the frozen affine x with bit
// 255 set to the low bit of the frozen affine y.
func (v *Point) Bytes() Integer256 {
	x, y := v.XY()
	x[31] |= y[0] << 7
	return x
}

// Encode appends the packed encoding of v to b and returns the
// extended slice.
func (v *Point) Encode(b []byte) []byte {
	enc := v.Bytes()
	res, out := sliceForAppend(b, 32)
	subtle.ConstantTimeCopy(1, out, enc[:])
	return res
}

func sliceForAppend(in []byte, n int) (head, tail []byte) {
	if total := len(in) + n; cap(in) >= total {
		head = in[:total]
	} else {
		head = make([]byte, total)
		copy(head, in)
	}
	tail = head[len(in):]
	return
}

// IsIdentity returns 1 if v is the identity element, 0 otherwise, in
// constant time.
func (v *Point) IsIdentity() int {
	var yz fe.Element
	yz.Sub(&v.Y, &v.Z)
	yz.Squeeze()
	return v.X.IsZero() & yz.IsZero()
}

// Negate sets v = -p and returns v.
func (v *Point) Negate(p *Point) *Point {
	var zero fe.Element
	var out Point
	out.Y.Set(&p.Y)
	out.Z.Set(&p.Z)
	out.X.Sub(&zero, &p.X)
	out.T.Sub(&zero, &p.T)
	*v = out
	return v
}

// Double sets v = p+p and returns v. This is equivalent to, but
// faster than, Add(p, p).
func (v *Point) Double(p *Point) *Point {
	var A, B, C, D, E, F, G, H, t0, t1, t2, t3 fe.Element

	A.Square(&p.X)
	B.Square(&p.Y)
	t0.Square(&p.Z)
	C.MulSmall(2, &t0)
	D.MulSmall(curveA, &A)
	t1.Add(&p.X, &p.Y)
	t2.Square(&t1)
	t3.Sub(&t2, &A)
	E.Sub(&t3, &B)
	G.Add(&D, &B)
	F.Sub(&G, &C)
	H.Sub(&D, &B)

	var out Point
	out.X.Mul(&E, &F)
	out.Y.Mul(&G, &H)
	out.T.Mul(&E, &H)
	out.Z.Mul(&F, &G)
	*v = out
	return v
}

// Add sets v = p+q and returns v.
func (v *Point) Add(p, q *Point) *Point {
	var A, B, C, D, E, F, G, H, t0, t1, t2, t3, t4, t5 fe.Element

	A.Mul(&p.X, &q.X)
	B.Mul(&p.Y, &q.Y)
	t0.MulSmall(curveD, &q.T)
	C.Mul(&p.T, &t0)
	D.Mul(&p.Z, &q.Z)
	t1.Add(&p.X, &p.Y)
	t2.Add(&q.X, &q.Y)
	t3.Mul(&t1, &t2)
	t4.Sub(&t3, &A)
	E.Sub(&t4, &B)
	F.Sub(&D, &C)
	G.Add(&D, &C)
	t5.MulSmall(curveA, &A)
	H.Sub(&B, &t5)

	var out Point
	out.X.Mul(&E, &F)
	out.Y.Mul(&G, &H)
	out.T.Mul(&E, &H)
	out.Z.Mul(&F, &G)
	*v = out
	return v
}

// Sub sets v = p-q and returns v.
func (v *Point) Sub(p, q *Point) *Point {
	var qNeg Point
	qNeg.Negate(q)
	return v.Add(p, &qNeg)
}

// Equal returns 1 if v and u represent the same curve point, 0
// otherwise, in constant time. Unlike byte-equality of Bytes(), this
// is correct regardless of the (non-unique) projective representation
// of either operand.
func (v *Point) Equal(u *Point) int {
	var t1, t2, t3, t4 fe.Element
	t1.Mul(&v.X, &u.Z)
	t2.Mul(&u.X, &v.Z)
	t3.Mul(&v.Y, &u.Z)
	t4.Mul(&u.Y, &v.Z)

	t1.Squeeze().Freeze()
	t2.Squeeze().Freeze()
	t3.Squeeze().Freeze()
	t4.Squeeze().Freeze()

	return t1.Equal(&t2) & t3.Equal(&t4)
}

// selectPoint sets out = r if b == 0, s if b == 1, in constant time,
// selecting each of the four field elements limb-wise.
func selectPoint(out, r, s *Point, b uint32) {
	out.X.Select(&r.X, &s.X, b)
	out.Y.Select(&r.Y, &s.Y, b)
	out.Z.Select(&r.Z, &s.Z, b)
	out.T.Select(&r.T, &s.T, b)
}

// ScalarMultBits sets v = n*base, processing only the bottom bits
// bits of n (clamped to 256), via a fixed-length double-and-always-add
// ladder from bit bits-1 down to bit 0. bits should be a compile-time
// constant at each call site: varying it with secret data leaks the
// scalar's magnitude through timing. Both the doubled and the
// doubled-plus-base candidates are always computed; only the
// constant-time point select depends on the bit.
func (v *Point) ScalarMultBits(n *gf.Scalar, base *Point, bits int) *Point {
	if bits > 256 {
		bits = 256
	}

	nBytes := n.Bytes()
	cur := Identity

	for pos := bits - 1; pos >= 0; pos-- {
		b := (nBytes[pos/8] >> uint(pos&7)) & 1

		var q2, q2p Point
		q2.Double(&cur)
		q2p.Add(&q2, base)
		selectPoint(&cur, &q2, &q2p, uint32(b))
	}

	*v = cur
	return v
}

// ScalarMult sets v = n*base and returns v.
func (v *Point) ScalarMult(n *gf.Scalar, base *Point) *Point {
	return v.ScalarMultBits(n, base, 256)
}

// ScalarBaseMultBits sets v = n*Base, using only the bottom bits bits
// of n. See ScalarMultBits for the constant-time caveat on bits.
func (v *Point) ScalarBaseMultBits(n *gf.Scalar, bits int) *Point {
	return v.ScalarMultBits(n, &Base, bits)
}

// ScalarBaseMult sets v = n*Base and returns v.
func (v *Point) ScalarBaseMult(n *gf.Scalar) *Point {
	return v.ScalarMult(n, &Base)
}
