// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

package codec

import (
	"fmt"

	"github.com/golang/protobuf-gocodec/wire"
)

// ReadEnumRaw decodes the raw int32 backing an ENUM field. Proto3
// treats enum constants as unsigned varints on the wire even though
// the declared range is signed 32-bit (spec.md §3), so decoding is
// identical to INT32.
func ReadEnumRaw(r *wire.Reader) (int32, error) { return ReadInt32(r) }

// WriteEnumRaw emits the raw int32 backing an ENUM field.
func WriteEnumRaw(w *wire.Writer, v int32) { WriteInt32(w, v) }

// DefaultEnumRaw is every enum's default: member 0, mandatory per
// proto3 (spec.md §3 invariant 4).
func DefaultEnumRaw() int32 { return 0 }

// ErrUnknownEnumValue is returned by a generated enum's lookup
// function when a decoded int32 has no corresponding declared member
// (spec.md §7 taxonomy item 4).
type ErrUnknownEnumValue struct {
	Enum  string
	Value int32
}

func (e *ErrUnknownEnumValue) Error() string {
	return fmt.Sprintf("codec: %d is not a valid value of enum %s", e.Value, e.Enum)
}
