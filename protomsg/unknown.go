// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

package protomsg

import (
	"bytes"

	"github.com/golang/protobuf-gocodec/wire"
)

// UnknownEntry is one retained unknown field: its tag (for lookup/
// debugging) and the verbatim bytes of the whole field — tag and body
// together — as they appeared on the wire.
//
// spec.md §9 notes that "an ordered sequence of (tag, bytes) pairs is
// equivalent [to a multimap] and preserves insertion order more
// obviously" than a multimap keyed by tag; we take that suggestion
// directly rather than the literal multimap spec.md §3 describes.
type UnknownEntry struct {
	Tag wire.Tag
	Raw []byte
}

// UnknownFields is the ordered collection of a message's retained
// unknown fields (spec.md §3 invariant 2). The zero value is an empty
// set. Not safe for concurrent use, matching every other part of a
// message instance (spec.md §5).
type UnknownFields struct {
	entries []UnknownEntry
}

// Record appends a verbatim field to the set, copying raw so it
// survives past the lifetime of the reader's borrowed buffer.
func (u *UnknownFields) Record(tag wire.Tag, raw []byte) {
	cp := make([]byte, len(raw))
	copy(cp, raw)
	u.entries = append(u.entries, UnknownEntry{Tag: tag, Raw: cp})
}

// Len reports how many unknown fields are retained.
func (u *UnknownFields) Len() int { return len(u.entries) }

// Reset discards every retained unknown field.
func (u *UnknownFields) Reset() { u.entries = nil }

// Entries returns the retained entries in original insertion order.
// The caller must not mutate the returned slice's backing array.
func (u *UnknownFields) Entries() []UnknownEntry { return u.entries }

// WriteTo appends every retained field's verbatim bytes to w, in
// original insertion order, as the final step of serialization
// (spec.md §4.3: "unknown fields last").
func (u *UnknownFields) WriteTo(w *wire.Writer) {
	for _, e := range u.entries {
		w.PutBytes(e.Raw)
	}
}

// Equal reports whether u and o retain the same fields in the same
// order with the same bytes.
func (u *UnknownFields) Equal(o *UnknownFields) bool {
	if u.Len() != o.Len() {
		return false
	}
	for i := range u.entries {
		if u.entries[i].Tag != o.entries[i].Tag || !bytes.Equal(u.entries[i].Raw, o.entries[i].Raw) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy, so mutating either afterward does not
// affect the other (used by the generated copy-with-overrides method).
func (u *UnknownFields) Clone() UnknownFields {
	out := UnknownFields{entries: make([]UnknownEntry, len(u.entries))}
	for i, e := range u.entries {
		raw := make([]byte, len(e.Raw))
		copy(raw, e.Raw)
		out.entries[i] = UnknownEntry{Tag: e.Tag, Raw: raw}
	}
	return out
}
