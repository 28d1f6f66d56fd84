// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

package protomsg

import "github.com/golang/protobuf-gocodec/wire"

// ParseMapEntry decodes one map field's wire-level entry: a
// two-field synthetic message with field 1 = key, field 2 = value
// (spec.md §4.4). Field numbers other than 1 and 2 are silently
// skipped, matching canonical behavior. A missing key or value is
// left at the supplied defaultKey/defaultVal.
func ParseMapEntry[K comparable, V any](
	r *wire.Reader,
	readKey func(*wire.Reader) (K, error), defaultKey K,
	readVal func(*wire.Reader) (V, error), defaultVal V,
) (K, V, error) {
	sub, err := subrangeLen(r)
	if err != nil {
		return defaultKey, defaultVal, err
	}
	key, val := defaultKey, defaultVal
	for !sub.EOF() {
		tag, err := sub.ReadTag()
		if err != nil {
			return defaultKey, defaultVal, err
		}
		switch tag.Number() {
		case 1:
			if key, err = readKey(sub); err != nil {
				return defaultKey, defaultVal, err
			}
		case 2:
			if val, err = readVal(sub); err != nil {
				return defaultKey, defaultVal, err
			}
		default:
			if err := sub.SkipField(tag.Type()); err != nil {
				return defaultKey, defaultVal, err
			}
		}
	}
	return key, val, nil
}

// WriteMapEntry emits one map entry as a LEN-delimited synthetic
// two-field message. Both key and value are always written, even at
// their type's default (spec.md §9: "Emit keys/values with
// DefaultBehavior::ALWAYS_WRITE").
func WriteMapEntry[K comparable, V any](
	w *wire.Writer, num wire.Number,
	key K, val V,
	writeKey func(*wire.Writer, wire.Number, K),
	writeVal func(*wire.Writer, wire.Number, V),
) {
	w.PutTag(num, wire.Len)
	mark := w.BeginSpeculativeLength()
	writeKey(w, 1, key)
	writeVal(w, 2, val)
	w.FinishSpeculativeLength(mark)
}
