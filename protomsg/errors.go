// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

package protomsg

import (
	protoerrors "github.com/golang/protobuf-gocodec/internal/errors"
)

// WrapField decorates err, if non-nil, with the "(Field:name#number+0x
// offset)" context prefix spec.md §7 requires for an error attributed
// to a known field. Generated parse/serialize methods call this at
// every field-dispatch call site so the prefix chain accumulates one
// frame per level of nesting.
func WrapField(err error, group string, number int32, offset int) error {
	if err == nil {
		return nil
	}
	return protoerrors.Wrap(err, protoerrors.FieldContext(group, number, offset))
}

// WrapUnknown decorates err with the "(at 0xoffset)" prefix for an
// error attributed to an unknown field.
func WrapUnknown(err error, offset int) error {
	if err == nil {
		return nil
	}
	return protoerrors.Wrap(err, protoerrors.UnknownContext(offset))
}

// WrapIndex decorates err with the "(Index:i)" prefix for an error
// attributed to one element of a repeated field.
func WrapIndex(err error, i int) error {
	if err == nil {
		return nil
	}
	return protoerrors.Wrap(err, protoerrors.IndexContext(i))
}
