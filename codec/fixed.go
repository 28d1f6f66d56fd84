// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

package codec

import (
	"math"

	"github.com/golang/protobuf-gocodec/wire"
)

// ReadFixed32 decodes a FIXED32.
func ReadFixed32(r *wire.Reader) (uint32, error) { return r.ReadFixed32() }

// WriteFixed32 emits v little-endian.
func WriteFixed32(w *wire.Writer, v uint32) { w.PutFixed32(v) }

// DefaultFixed32 is FIXED32's zero value.
func DefaultFixed32() uint32 { return 0 }

// ReadSfixed32 decodes an SFIXED32.
func ReadSfixed32(r *wire.Reader) (int32, error) {
	u, err := r.ReadFixed32()
	return int32(u), err
}

// WriteSfixed32 emits v little-endian.
func WriteSfixed32(w *wire.Writer, v int32) { w.PutFixed32(uint32(v)) }

// DefaultSfixed32 is SFIXED32's zero value.
func DefaultSfixed32() int32 { return 0 }

// ReadFloat decodes a FLOAT from its 4-byte IEEE-754 representation.
func ReadFloat(r *wire.Reader) (float32, error) {
	u, err := r.ReadFixed32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}

// WriteFloat emits v as 4-byte IEEE-754.
func WriteFloat(w *wire.Writer, v float32) { w.PutFixed32(math.Float32bits(v)) }

// DefaultFloat is FLOAT's zero value.
func DefaultFloat() float32 { return 0 }

// ReadFixed64 decodes a FIXED64.
func ReadFixed64(r *wire.Reader) (uint64, error) { return r.ReadFixed64() }

// WriteFixed64 emits v little-endian.
func WriteFixed64(w *wire.Writer, v uint64) { w.PutFixed64(v) }

// DefaultFixed64 is FIXED64's zero value.
func DefaultFixed64() uint64 { return 0 }

// ReadSfixed64 decodes an SFIXED64.
func ReadSfixed64(r *wire.Reader) (int64, error) {
	u, err := r.ReadFixed64()
	return int64(u), err
}

// WriteSfixed64 emits v little-endian.
func WriteSfixed64(w *wire.Writer, v int64) { w.PutFixed64(uint64(v)) }

// DefaultSfixed64 is SFIXED64's zero value.
func DefaultSfixed64() int64 { return 0 }

// ReadDouble decodes a DOUBLE from its 8-byte IEEE-754 representation.
func ReadDouble(r *wire.Reader) (float64, error) {
	u, err := r.ReadFixed64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(u), nil
}

// WriteDouble emits v as 8-byte IEEE-754.
func WriteDouble(w *wire.Writer, v float64) { w.PutFixed64(math.Float64bits(v)) }

// DefaultDouble is DOUBLE's zero value.
func DefaultDouble() float64 { return 0 }
