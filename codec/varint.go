// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

package codec

import (
	"fmt"

	"github.com/golang/protobuf-gocodec/wire"
)

// ErrRange is returned when a decoded value falls outside a field's
// declared signed/unsigned 32-bit range (spec.md §7 taxonomy item 2).
type ErrRange struct {
	Kind  Kind
	Value uint64
}

func (e *ErrRange) Error() string {
	return fmt.Sprintf("codec: value %d out of range for %v", e.Value, e.Kind)
}

// ReadInt32 decodes an INT32: a 64-bit varint truncated to 32 bits and
// sign-extended. Proto3 INT32 intentionally does not range-check on
// decode — truncation is the canonical behavior so that a value
// produced by a 64-bit-varint-emitting peer still round-trips.
func ReadInt32(r *wire.Reader) (int32, error) {
	u, err := r.ReadVarint()
	if err != nil {
		return 0, err
	}
	return int32(u), nil
}

// WriteInt32 emits v using the full 64-bit varint encoder, so negative
// values cost 10 bytes on the wire. This wastes 5 bytes per negative
// value versus a hypothetical 32-bit-aware encoding, but matches
// canonical protobuf behavior (spec.md §9) and is required for
// interoperability with other implementations.
func WriteInt32(w *wire.Writer, v int32) {
	w.PutVarint(uint64(int64(v)))
}

// DefaultInt32 is INT32's zero value.
func DefaultInt32() int32 { return 0 }

// ReadUint32 decodes a UINT32, rejecting varints that don't fit in 32
// bits.
func ReadUint32(r *wire.Reader) (uint32, error) {
	u, err := r.ReadVarint()
	if err != nil {
		return 0, err
	}
	if u > 1<<32-1 {
		return 0, &ErrRange{Kind: KindUint32, Value: u}
	}
	return uint32(u), nil
}

// WriteUint32 emits v, rejecting nothing (the Go type already bounds
// the range).
func WriteUint32(w *wire.Writer, v uint32) { w.PutVarint(uint64(v)) }

// DefaultUint32 is UINT32's zero value.
func DefaultUint32() uint32 { return 0 }

// ReadSint32 decodes a zigzag-encoded SINT32.
func ReadSint32(r *wire.Reader) (int32, error) {
	u, err := r.ReadVarint()
	if err != nil {
		return 0, err
	}
	if u > 1<<32-1 {
		return 0, &ErrRange{Kind: KindSint32, Value: u}
	}
	return wire.DecodeZigZag32(uint32(u)), nil
}

// WriteSint32 emits v zigzag-encoded.
func WriteSint32(w *wire.Writer, v int32) { w.PutVarint(uint64(wire.EncodeZigZag32(v))) }

// DefaultSint32 is SINT32's zero value.
func DefaultSint32() int32 { return 0 }

// ReadInt64 decodes an INT64 varint as a signed 64-bit integer.
func ReadInt64(r *wire.Reader) (int64, error) {
	u, err := r.ReadVarint()
	if err != nil {
		return 0, err
	}
	return int64(u), nil
}

// WriteInt64 emits v as a varint.
func WriteInt64(w *wire.Writer, v int64) { w.PutVarint(uint64(v)) }

// DefaultInt64 is INT64's zero value.
func DefaultInt64() int64 { return 0 }

// ReadUint64 decodes a UINT64 varint.
func ReadUint64(r *wire.Reader) (uint64, error) {
	return r.ReadVarint()
}

// WriteUint64 emits v as a varint.
func WriteUint64(w *wire.Writer, v uint64) { w.PutVarint(v) }

// DefaultUint64 is UINT64's zero value.
func DefaultUint64() uint64 { return 0 }

// ReadSint64 decodes a zigzag-encoded SINT64.
func ReadSint64(r *wire.Reader) (int64, error) {
	u, err := r.ReadVarint()
	if err != nil {
		return 0, err
	}
	return wire.DecodeZigZag64(u), nil
}

// WriteSint64 emits v zigzag-encoded.
func WriteSint64(w *wire.Writer, v int64) { w.PutVarint(wire.EncodeZigZag64(v)) }

// DefaultSint64 is SINT64's zero value.
func DefaultSint64() int64 { return 0 }

// ReadBool decodes a BOOL: any nonzero varint is true.
func ReadBool(r *wire.Reader) (bool, error) {
	u, err := r.ReadVarint()
	if err != nil {
		return false, err
	}
	return u != 0, nil
}

// WriteBool emits v as 0x00 or 0x01.
func WriteBool(w *wire.Writer, v bool) {
	if v {
		w.PutVarint(1)
	} else {
		w.PutVarint(0)
	}
}

// DefaultBool is BOOL's zero value.
func DefaultBool() bool { return false }
