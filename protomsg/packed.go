// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

package protomsg

import "github.com/golang/protobuf-gocodec/wire"

// ParsePackedScalar decodes a packed repeated scalar field's
// LEN-delimited body (spec.md §4.3: "read length varint; over the
// bounded sub-reader, parse elements to exhaustion, appending each to
// the list"), using read for one element.
func ParsePackedScalar[T any](r *wire.Reader, read func(*wire.Reader) (T, error)) ([]T, error) {
	sub, err := subrangeLen(r)
	if err != nil {
		return nil, err
	}
	var out []T
	for !sub.EOF() {
		v, err := read(sub)
		if err != nil {
			return nil, WrapIndex(err, len(out))
		}
		out = append(out, v)
	}
	return out, nil
}

// WritePackedScalar emits vals as a single LEN-delimited packed field,
// or nothing at all if vals is empty (spec.md §4.3: "if list is empty,
// skip").
func WritePackedScalar[T any](w *wire.Writer, num wire.Number, vals []T, write func(*wire.Writer, T)) {
	if len(vals) == 0 {
		return
	}
	w.PutTag(num, wire.Len)
	mark := w.BeginSpeculativeLength()
	for _, v := range vals {
		write(w, v)
	}
	w.FinishSpeculativeLength(mark)
}

// WriteRepeatedUnpacked emits one tag+body per element (used for
// string/bytes/message repeated fields, which are never packed;
// spec.md §3 invariant 5).
func WriteRepeatedUnpacked[T any](w *wire.Writer, num wire.Number, vals []T, writeOne func(*wire.Writer, wire.Number, T)) {
	for _, v := range vals {
		writeOne(w, num, v)
	}
}
