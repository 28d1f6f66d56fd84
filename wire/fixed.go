// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

package wire

// AppendFixed32 appends a 4-byte little-endian encoding of x. This is
// the wire form of fixed32, sfixed32, and float.
func AppendFixed32(b []byte, x uint32) []byte {
	return append(b, byte(x), byte(x>>8), byte(x>>16), byte(x>>24))
}

// ConsumeFixed32 decodes a 4-byte little-endian integer from the front
// of b.
func ConsumeFixed32(b []byte) (v uint32, n int, err error) {
	if len(b) < 4 {
		return 0, 0, ErrTruncated
	}
	v = uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return v, 4, nil
}

// AppendFixed64 appends an 8-byte little-endian encoding of x. This is
// the wire form of fixed64, sfixed64, and double.
func AppendFixed64(b []byte, x uint64) []byte {
	return append(b,
		byte(x), byte(x>>8), byte(x>>16), byte(x>>24),
		byte(x>>32), byte(x>>40), byte(x>>48), byte(x>>56))
}

// ConsumeFixed64 decodes an 8-byte little-endian integer from the front
// of b.
func ConsumeFixed64(b []byte) (v uint64, n int, err error) {
	if len(b) < 8 {
		return 0, 0, ErrTruncated
	}
	v = uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
	return v, 8, nil
}
