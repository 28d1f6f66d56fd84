// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

package wire

// Reader walks a borrowed byte slice without copying it. It never
// allocates on the read path except where ReadLen returns a subslice
// of the original buffer (still no copy — the slice aliases the input).
//
// A Reader is not safe for concurrent use.
type Reader struct {
	buf   []byte
	off   int
	depth int
}

// NewReader wraps buf for reading. buf is borrowed, not copied: the
// caller must not mutate it while the Reader (or any value parsed out
// of it, e.g. a BYTES field) is still live.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Position returns the current read offset.
func (r *Reader) Position() int { return r.off }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.off }

// EOF reports whether the reader has consumed every byte.
func (r *Reader) EOF() bool { return r.off >= len(r.buf) }

// Rest returns the remaining unread bytes without consuming them.
func (r *Reader) Rest() []byte { return r.buf[r.off:] }

// Skip advances the read offset by n bytes. It fails rather than
// saturate-then-fail-later: an out-of-range skip is reported
// immediately as ErrTruncated.
func (r *Reader) Skip(n int) error {
	if n < 0 || n > r.Remaining() {
		return ErrTruncated
	}
	r.off += n
	return nil
}

// Subrange carves out an independent Reader over the next n bytes and
// advances this reader past them. The returned Reader shares the
// backing array but has its own offset, so misuse of one does not
// affect the other's position.
func (r *Reader) Subrange(n int) (*Reader, error) {
	if n < 0 || n > r.Remaining() {
		return nil, ErrOverlong
	}
	sub := &Reader{buf: r.buf[r.off : r.off+n], depth: r.depth}
	r.off += n
	return sub, nil
}

// EnterMessage increments this reader's nesting depth counter (child
// readers created via Subrange start from a copy of it), returning ErrNestingTooDeep
// once MaxNestingDepth is exceeded. Callers parsing a submessage must
// call this once on the sub-reader before recursing.
func (r *Reader) EnterMessage() error {
	r.depth++
	if r.depth > MaxNestingDepth {
		return ErrNestingTooDeep
	}
	return nil
}

// SliceFrom returns the bytes consumed between start (a value
// previously obtained from Position) and the reader's current
// offset, aliasing the underlying buffer. Used to capture an unknown
// field's raw bytes (tag and body together) for verbatim retention.
func (r *Reader) SliceFrom(start int) []byte {
	return r.buf[start:r.off]
}

// ReadTag consumes the next field tag.
func (r *Reader) ReadTag() (Tag, error) {
	u, n, err := ConsumeVarint(r.buf[r.off:])
	if err != nil {
		return 0, err
	}
	r.off += n
	return Tag(u), nil
}

// ReadVarint consumes a raw varint.
func (r *Reader) ReadVarint() (uint64, error) {
	u, n, err := ConsumeVarint(r.buf[r.off:])
	if err != nil {
		return 0, err
	}
	r.off += n
	return u, nil
}

// ReadFixed32 consumes a 4-byte little-endian integer.
func (r *Reader) ReadFixed32() (uint32, error) {
	u, n, err := ConsumeFixed32(r.buf[r.off:])
	if err != nil {
		return 0, err
	}
	r.off += n
	return u, nil
}

// ReadFixed64 consumes an 8-byte little-endian integer.
func (r *Reader) ReadFixed64() (uint64, error) {
	u, n, err := ConsumeFixed64(r.buf[r.off:])
	if err != nil {
		return 0, err
	}
	r.off += n
	return u, nil
}

// ReadLen consumes a varint length prefix followed by that many raw
// bytes, returning the bytes (aliasing the underlying buffer, not
// copied). This is the LEN wire type's body: used directly for BYTES
// and, after UTF-8 is assumed valid per spec.md §4.2, for STRING.
func (r *Reader) ReadLen() ([]byte, error) {
	n, err := r.ReadVarint()
	if err != nil {
		return nil, err
	}
	if n > uint64(r.Remaining()) {
		return nil, ErrOverlong
	}
	start := r.off
	r.off += int(n)
	return r.buf[start:r.off], nil
}

// SkipField consumes and discards the body of a field with the given
// wire type, per spec.md §4.3's skip_field. Groups are rejected rather
// than skipped: the caller must treat ErrGroupsUnsupported as fatal.
func (r *Reader) SkipField(typ Type) error {
	switch typ {
	case Varint:
		_, err := r.ReadVarint()
		return err
	case I32:
		return r.Skip(4)
	case I64:
		return r.Skip(8)
	case Len:
		_, err := r.ReadLen()
		return err
	case StartGroup, EndGroup:
		return ErrGroupsUnsupported
	default:
		return &ErrUnknownWireType{Type: typ}
	}
}
