// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

package protomsg

import (
	stderrors "errors"

	"github.com/golang/protobuf-gocodec/codec"
	protoerrors "github.com/golang/protobuf-gocodec/internal/errors"
	"github.com/golang/protobuf-gocodec/wire"
)

// ReadUnknown consumes a field whose number is not declared in the
// schema: the body is skipped per its wire type, and, when
// RetainUnknownFields is set, the verbatim bytes (tag included) are
// recorded for later re-emission. start must be the reader position
// the tag was read from. Groups and unrecognized wire types remain
// fatal (wire.Reader.SkipField rejects them).
func ReadUnknown(r *wire.Reader, u *UnknownFields, tag wire.Tag, start int, flags ParseFlags) error {
	if err := r.SkipField(tag.Type()); err != nil {
		return WrapUnknown(err, start)
	}
	if flags.Has(RetainUnknownFields) {
		u.Record(tag, r.SliceFrom(start))
	}
	return nil
}

// SkipMismatched handles a known field whose incoming wire type does
// not match the type the schema declares for it. By default this is a
// fatal type-mismatch error; with IgnoreIncorrectTypes set it is
// demoted to skip-and-record-as-unknown (spec.md §4.3). Structural
// problems inside the skipped body (truncation, groups) stay fatal
// either way.
func SkipMismatched(r *wire.Reader, u *UnknownFields, tag wire.Tag, start int, group string, num int32, flags ParseFlags) error {
	if !flags.Has(IgnoreIncorrectTypes) {
		err := protoerrors.Newf(protoerrors.TypeMismatch,
			"wire type %v does not match the declared type of %s", tag.Type(), group)
		return WrapField(err, group, num, start)
	}
	if err := r.SkipField(tag.Type()); err != nil {
		return WrapField(err, group, num, start)
	}
	u.Record(tag, r.SliceFrom(start))
	return nil
}

// DemoteEnumUnknown inspects an error from parsing an ENUM-typed
// field's value. If it is an unknown-enum-member error and
// IgnoreIncorrectTypes is set, the already-consumed field bytes in raw
// (tag included) are recorded as an unknown field and true is
// returned; the caller then drops the value and continues. Otherwise
// false is returned and the caller must propagate the error.
func DemoteEnumUnknown(err error, flags ParseFlags, u *UnknownFields, tag wire.Tag, raw []byte) bool {
	var unknownEnum *codec.ErrUnknownEnumValue
	if !stderrors.As(err, &unknownEnum) || !flags.Has(IgnoreIncorrectTypes) {
		return false
	}
	u.Record(tag, raw)
	return true
}
