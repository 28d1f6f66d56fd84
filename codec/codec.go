// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

// Package codec implements one encoder/decoder per proto3 scalar and
// compound data type (spec.md §4.2). Each function here is the "codec"
// the message engine (package protomsg) and generated code call by
// name for a specific field: there is no runtime table lookup and no
// boxing through interface{} on the hot path, matching the "hard-code
// the wire type, default value, and codec choice for every field"
// requirement the schema-specialized generator exists to satisfy.
//
// Every Read* function assumes the caller has already consumed the
// field's tag and validated its wire type; every Write* function
// writes only the field's body, leaving tag-writing to the caller
// (mirrors protobuf3's enc_* functions, which likewise expect the
// caller to have appended the tag).
package codec

import (
	"github.com/golang/protobuf-gocodec/wire"
)

// Kind identifies one of the 18 proto3 data types. It exists for the
// codec-metadata queries (WireTypeOf, Packable) and for range-error
// reporting; generated code never dispatches through it.
type Kind uint8

const (
	KindInt32 Kind = iota
	KindUint32
	KindSint32
	KindInt64
	KindUint64
	KindSint64
	KindFixed32
	KindSfixed32
	KindFloat
	KindFixed64
	KindSfixed64
	KindDouble
	KindBool
	KindEnum
	KindString
	KindBytes
	KindMessage
	KindMap
)

// WireTypeOf reports the wire type used to encode values of kind k.
func WireTypeOf(k Kind) wire.Type {
	switch k {
	case KindInt32, KindUint32, KindSint32, KindInt64, KindUint64, KindSint64, KindBool, KindEnum:
		return wire.Varint
	case KindFixed32, KindSfixed32, KindFloat:
		return wire.I32
	case KindFixed64, KindSfixed64, KindDouble:
		return wire.I64
	case KindString, KindBytes, KindMessage, KindMap:
		return wire.Len
	default:
		panic("codec: unknown kind")
	}
}

// Packable reports whether repeated fields of kind k may use the
// packed wire representation (spec.md §3 invariant 5): every scalar
// kind except string/bytes/message/map.
func Packable(k Kind) bool {
	switch k {
	case KindString, KindBytes, KindMessage, KindMap:
		return false
	default:
		return true
	}
}
