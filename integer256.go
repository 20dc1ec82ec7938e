// Copyright (c) 2012-2015, Matthias Schiffer <mschiffer@universe-factory.net>

package uecc

// Integer256 is an unsigned 256-bit integer, stored as 32 little-
// endian bytes. It is the wire shape shared by packed point encodings
// and canonical scalars; package uecc never gives it arithmetic of
// its own -- conversions to the field element and scalar field types
// are explicit, named functions, not implicit struct embedding.
type Integer256 [32]byte
