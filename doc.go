// Copyright (c) 2012-2015, Matthias Schiffer <mschiffer@universe-factory.net>

// Package uecc implements arithmetic on the twisted Edwards curve
//
//	a*x^2 + y^2 = 1 + d*x^2*y^2
//
// with a = 486664 and d = 486660 over the prime field F_p,
// p = 2^255 - 19 -- the curve birationally equivalent to the
// Montgomery curve used by D. J. Bernstein's Curve25519 -- together
// with arithmetic on the scalar field F_q for q the order of the
// curve's base point.
//
// The package exposes raw group and field primitives only: point
// addition, doubling, negation, subtraction and constant-time
// variable-base scalar multiplication, plus the corresponding scalar
// operations. It does not implement a key-agreement or signature
// scheme, does not generate randomness, and does not hash -- those
// concerns belong to whatever protocol is built on top.
//
// Every exported operation is synchronous, free of hidden state, and
// safe to call concurrently: the only process-wide data are the
// read-only constants Identity, Base and Order. Arithmetic operations
// other than decoding (SetXY, SetPacked, SetCanonicalBytes) are total
// and never fail. Callers needing inputs confined to the prime-order
// subgroup, or secret scalars clamped against small-subgroup attacks,
// are responsible for sanitizing them (see Scalar.SanitizeSecret)
// before use.
package uecc
