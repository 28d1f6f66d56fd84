// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

// Package wire implements the low-level proto3 wire format: varints,
// zigzag-encoded signed integers, little-endian fixed-width integers,
// and the (field number, wire type) tag that prefixes every field on
// the wire. Everything above this package (codec, protomsg) is built
// out of these primitives; nothing in this package knows about
// messages, fields, or schemas.
package wire

import "fmt"

// Type is the 3-bit wire type packed into the low bits of every tag.
type Type uint8

const (
	Varint Type = 0
	I64    Type = 1
	Len    Type = 2
	// StartGroup and EndGroup (3, 4) are reserved for proto2 groups,
	// which this package deliberately does not support: a Reader that
	// encounters either fails with ErrGroupsUnsupported.
	StartGroup Type = 3
	EndGroup   Type = 4
	I32        Type = 5
)

func (t Type) String() string {
	switch t {
	case Varint:
		return "varint"
	case I64:
		return "i64"
	case Len:
		return "len"
	case StartGroup:
		return "start_group"
	case EndGroup:
		return "end_group"
	case I32:
		return "i32"
	default:
		return fmt.Sprintf("wire.Type(%d)", uint8(t))
	}
}

// Number is a proto field number, valid in [1, 2^29-1].
type Number int32

// MinValidNumber and MaxValidNumber bound legal proto3 field numbers.
// 19000-19999 is reserved by the protobuf implementations themselves
// and is rejected by schema validation (see schema.Field.Validate),
// not by this package.
const (
	MinValidNumber Number = 1
	MaxValidNumber Number = (1 << 29) - 1
)

// Tag packs a field number and wire type into the single varint that
// precedes every field's value on the wire.
type Tag uint64

// MakeTag builds a Tag from a field number and wire type.
func MakeTag(num Number, typ Type) Tag {
	return Tag(uint64(num)<<3 | uint64(typ&7))
}

// Number extracts the field number from a tag.
func (t Tag) Number() Number { return Number(t >> 3) }

// Type extracts the wire type from a tag.
func (t Tag) Type() Type { return Type(t & 7) }

// ErrGroupsUnsupported is returned whenever a StartGroup/EndGroup wire
// type is encountered; spec compliance requires treating groups as a
// fatal structural error rather than silently skipping them.
var ErrGroupsUnsupported = fmt.Errorf("wire: groups (wire type 3/4) are not supported")

// MaxNestingDepth bounds how many nested length-delimited submessages a
// single parse may recurse through. The wire format itself places no
// limit on nesting; this cap exists purely to keep a pathological input
// from exhausting the goroutine stack. See SPEC_FULL.md §5.
const MaxNestingDepth = 10000
