// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

package protomsg

import "github.com/golang/protobuf-gocodec/wire"

// subrangeLen reads a varint length prefix and carves out a bounded
// sub-reader over exactly that many bytes, preserving the parent's
// nesting-depth counter (wire.Reader.Subrange does this already) so a
// chain of nested LEN-delimited values (submessage inside submessage
// inside map value, etc.) is still subject to wire.MaxNestingDepth.
func subrangeLen(r *wire.Reader) (*wire.Reader, error) {
	n, err := r.ReadVarint()
	if err != nil {
		return nil, err
	}
	return r.Subrange(int(n))
}

// ParseSubmessage decodes a MESSAGE-typed field's LEN-delimited body
// by handing a bounded, depth-checked sub-reader to parse (spec.md
// §4.2: "varint length, sub-reader, recursive parse").
func ParseSubmessage(r *wire.Reader, parse func(*wire.Reader) error) error {
	sub, err := subrangeLen(r)
	if err != nil {
		return err
	}
	if err := sub.EnterMessage(); err != nil {
		return err
	}
	return parse(sub)
}

// SerializeSubmessage serializes a sub-message into a transient
// sub-writer via marshal, then emits tag + length + bytes — unless
// the result is empty and force is false, in which case nothing is
// written (spec.md §4.3's MESSAGE default-elision: "if the result is
// empty and the field is not OPTIONAL, skip"). Callers pass force=true
// for OPTIONAL fields holding a present (non-absent) value, for
// repeated elements and for map values; singular fields and the chosen
// candidate of a oneof group pass false, so an empty one is elided.
func SerializeSubmessage(w *wire.Writer, num wire.Number, marshal func(*wire.Writer), force bool) {
	sub := wire.NewWriter()
	marshal(sub)
	if sub.Size() == 0 && !force {
		return
	}
	w.PutTag(num, wire.Len)
	w.PutLen(sub.Bytes())
}
