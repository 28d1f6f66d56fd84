// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

package codec

import "github.com/golang/protobuf-gocodec/wire"

// ReadString decodes a STRING. UTF-8 validity is not checked at this
// layer (spec.md §9): a caller that cares must validate separately.
// The returned string is copied out of the reader's borrowed buffer
// (Go strings alias their backing bytes immutably, but the source
// buffer is not guaranteed to outlive the parse call, so we copy).
func ReadString(r *wire.Reader) (string, error) {
	b, err := r.ReadLen()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteString emits v as a length-prefixed UTF-8 byte sequence.
func WriteString(w *wire.Writer, v string) { w.PutLen([]byte(v)) }

// DefaultString is STRING's zero value.
func DefaultString() string { return "" }

// ReadBytes decodes a BYTES field, copying the bytes so the result
// survives past the lifetime of the input buffer.
func ReadBytes(r *wire.Reader) ([]byte, error) {
	b, err := r.ReadLen()
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// WriteBytes emits v length-prefixed.
func WriteBytes(w *wire.Writer, v []byte) { w.PutLen(v) }

// DefaultBytes is BYTES's zero value: an empty, non-nil slice so that
// equality and serialization (an empty slice elides exactly like an
// empty string) behave uniformly regardless of whether a BYTES field
// was ever assigned.
func DefaultBytes() []byte { return []byte{} }
