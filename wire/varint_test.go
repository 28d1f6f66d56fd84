// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"
)

func TestVarintRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 127, 128, 300, 1 << 20, 1<<63 - 1, 1 << 63, ^uint64(0)}
	for _, x := range cases {
		b := AppendVarint(nil, x)
		if len(b) != SizeVarint(x) {
			t.Errorf("SizeVarint(%d) = %d, AppendVarint produced %d bytes", x, SizeVarint(x), len(b))
		}
		got, n, err := ConsumeVarint(b)
		if err != nil {
			t.Fatalf("ConsumeVarint(%x): %v", b, err)
		}
		if n != len(b) || got != x {
			t.Errorf("ConsumeVarint(%x) = (%d, %d), want (%d, %d)", b, got, n, x, len(b))
		}
	}
}

func TestVarintZeroIsSingleByte(t *testing.T) {
	if got := AppendVarint(nil, 0); !bytes.Equal(got, []byte{0x00}) {
		t.Errorf("AppendVarint(nil, 0) = %x, want 00", got)
	}
}

func TestVarintTooLong(t *testing.T) {
	b := bytes.Repeat([]byte{0xFF}, 10)
	b = append(b, 0x02)
	if _, _, err := ConsumeVarint(b); err != ErrVarintTooLong {
		t.Errorf("ConsumeVarint(11-byte varint) = %v, want ErrVarintTooLong", err)
	}
}

func TestVarintTenthByteOverflow(t *testing.T) {
	b := bytes.Repeat([]byte{0xFF}, 9)
	b = append(b, 0x7F) // bits past position 63
	if _, _, err := ConsumeVarint(b); err != ErrVarintTooLong {
		t.Errorf("ConsumeVarint(overflowing 10-byte varint) = %v, want ErrVarintTooLong", err)
	}
}

func TestVarintTruncated(t *testing.T) {
	b := []byte{0x80, 0x80}
	if _, _, err := ConsumeVarint(b); err != ErrTruncated {
		t.Errorf("ConsumeVarint(truncated) = %v, want ErrTruncated", err)
	}
}

func TestZigZag32(t *testing.T) {
	cases := []int32{0, -1, 1, -2, 2, -2147483648, 2147483647}
	for _, n := range cases {
		if got := DecodeZigZag32(EncodeZigZag32(n)); got != n {
			t.Errorf("DecodeZigZag32(EncodeZigZag32(%d)) = %d", n, got)
		}
	}
	// 0, -1, 1, -2, 2 map to 0, 1, 2, 3, 4 per the canonical scheme.
	want := map[int32]uint32{0: 0, -1: 1, 1: 2, -2: 3, 2: 4}
	for n, u := range want {
		if got := EncodeZigZag32(n); got != u {
			t.Errorf("EncodeZigZag32(%d) = %d, want %d", n, got, u)
		}
	}
}

func TestZigZag64(t *testing.T) {
	cases := []int64{0, -1, 1, -2, 2, -9223372036854775808, 9223372036854775807}
	for _, n := range cases {
		if got := DecodeZigZag64(EncodeZigZag64(n)); got != n {
			t.Errorf("DecodeZigZag64(EncodeZigZag64(%d)) = %d", n, got)
		}
	}
}
