// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

package protomsg

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/golang/protobuf-gocodec/codec"
	"github.com/golang/protobuf-gocodec/wire"
)

func TestParsePackedScalar(t *testing.T) {
	w := wire.NewWriter()
	w.PutLen([]byte{0x01, 0x02, 0xac, 0x02})
	got, err := ParsePackedScalar(wire.NewReader(w.Bytes()), codec.ReadUint64)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []uint64{1, 2, 300}) {
		t.Fatalf("got %v", got)
	}
}

func TestParsePackedScalarElementError(t *testing.T) {
	// Second element's varint is truncated by the length prefix.
	w := wire.NewWriter()
	w.PutLen([]byte{0x01, 0xac})
	_, err := ParsePackedScalar(wire.NewReader(w.Bytes()), codec.ReadUint64)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "(Index:1)") {
		t.Fatalf("error %q missing element index", err)
	}
}

func TestWritePackedScalarEmptySkips(t *testing.T) {
	w := wire.NewWriter()
	WritePackedScalar(w, 3, nil, codec.WriteUint64)
	if w.Size() != 0 {
		t.Fatalf("empty list wrote % x", w.Bytes())
	}
}

func TestWritePackedScalar(t *testing.T) {
	w := wire.NewWriter()
	WritePackedScalar(w, 3, []uint64{1, 2, 300}, codec.WriteUint64)
	want := []byte{0x1a, 0x04, 0x01, 0x02, 0xac, 0x02}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("got % x, want % x", w.Bytes(), want)
	}
}

func TestMapEntryRoundTrip(t *testing.T) {
	w := wire.NewWriter()
	WriteMapEntry(w, 5, "k", float32(1.5),
		func(w *wire.Writer, num wire.Number, v string) {
			w.PutTag(num, wire.Len)
			codec.WriteString(w, v)
		},
		func(w *wire.Writer, num wire.Number, v float32) {
			w.PutTag(num, wire.I32)
			codec.WriteFloat(w, v)
		})
	want := []byte{0x2a, 0x08, 0x0a, 0x01, 'k', 0x15, 0x00, 0x00, 0xc0, 0x3f}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("entry = % x, want % x", w.Bytes(), want)
	}

	r := wire.NewReader(w.Bytes())
	if _, err := r.ReadTag(); err != nil {
		t.Fatal(err)
	}
	k, v, err := ParseMapEntry(r, codec.ReadString, "", codec.ReadFloat, 0)
	if err != nil {
		t.Fatal(err)
	}
	if k != "k" || v != 1.5 {
		t.Fatalf("got (%q, %v)", k, v)
	}
}

func TestMapEntrySkipsForeignFields(t *testing.T) {
	// Entry body carrying field 3 (varint 9) besides key and value.
	body := wire.NewWriter()
	body.PutTag(1, wire.Len)
	codec.WriteString(body, "k")
	body.PutTag(3, wire.Varint)
	body.PutVarint(9)
	body.PutTag(2, wire.Varint)
	codec.WriteInt32(body, 7)
	w := wire.NewWriter()
	w.PutLen(body.Bytes())

	k, v, err := ParseMapEntry(wire.NewReader(w.Bytes()), codec.ReadString, "", codec.ReadInt32, 0)
	if err != nil {
		t.Fatal(err)
	}
	if k != "k" || v != 7 {
		t.Fatalf("got (%q, %v)", k, v)
	}
}

func TestMapEntryDefaultsWhenMissing(t *testing.T) {
	w := wire.NewWriter()
	w.PutLen(nil)
	k, v, err := ParseMapEntry(wire.NewReader(w.Bytes()), codec.ReadString, "absent", codec.ReadInt32, -1)
	if err != nil {
		t.Fatal(err)
	}
	if k != "absent" || v != -1 {
		t.Fatalf("got (%q, %v), want supplied defaults", k, v)
	}
}

func TestUnknownFieldsOrderAndBytes(t *testing.T) {
	var u UnknownFields
	u.Record(wire.MakeTag(9, wire.Varint), []byte{0x48, 0x01})
	u.Record(wire.MakeTag(8, wire.Len), []byte{0x42, 0x01, 'z'})
	u.Record(wire.MakeTag(9, wire.Varint), []byte{0x48, 0x02})

	w := wire.NewWriter()
	u.WriteTo(w)
	want := []byte{0x48, 0x01, 0x42, 0x01, 'z', 0x48, 0x02}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("WriteTo emitted % x, want insertion order % x", w.Bytes(), want)
	}
}

func TestUnknownFieldsRecordCopies(t *testing.T) {
	raw := []byte{0x48, 0x01}
	var u UnknownFields
	u.Record(wire.MakeTag(9, wire.Varint), raw)
	raw[1] = 0x63
	if u.Entries()[0].Raw[1] != 0x01 {
		t.Fatal("Record aliased the caller's buffer")
	}
}

func TestUnknownFieldsClone(t *testing.T) {
	var u UnknownFields
	u.Record(wire.MakeTag(9, wire.Varint), []byte{0x48, 0x01})
	c := u.Clone()
	c.Entries()[0].Raw[1] = 0x63
	if u.Entries()[0].Raw[1] != 0x01 {
		t.Fatal("Clone shared byte storage")
	}
	if !u.Equal(&u) {
		t.Fatal("Equal not reflexive")
	}
}

func TestReadUnknownRetention(t *testing.T) {
	in := []byte{0x48, 0x2a} // field 9, varint 42
	for _, tc := range []struct {
		flags  ParseFlags
		retain bool
	}{
		{RetainUnknownFields, true},
		{0, false},
	} {
		r := wire.NewReader(in)
		start := r.Position()
		tag, err := r.ReadTag()
		if err != nil {
			t.Fatal(err)
		}
		var u UnknownFields
		if err := ReadUnknown(r, &u, tag, start, tc.flags); err != nil {
			t.Fatal(err)
		}
		if got := u.Len() > 0; got != tc.retain {
			t.Errorf("flags %v: retained=%v, want %v", tc.flags, got, tc.retain)
		}
		if tc.retain && !bytes.Equal(u.Entries()[0].Raw, in) {
			t.Errorf("retained % x, want % x", u.Entries()[0].Raw, in)
		}
	}
}

func TestSkipMismatchedFatalByDefault(t *testing.T) {
	r := wire.NewReader([]byte{0x10, 0x01})
	start := r.Position()
	tag, _ := r.ReadTag()
	var u UnknownFields
	err := SkipMismatched(r, &u, tag, start, "f_oneof", 2, 0)
	if err == nil {
		t.Fatal("expected type-mismatch error")
	}
	if !strings.Contains(err.Error(), "(Field:f_oneof#2+0x0)") {
		t.Fatalf("error %q missing context prefix", err)
	}
}

func TestSkipMismatchedDemoted(t *testing.T) {
	in := []byte{0x10, 0x01}
	r := wire.NewReader(in)
	start := r.Position()
	tag, _ := r.ReadTag()
	var u UnknownFields
	if err := SkipMismatched(r, &u, tag, start, "f_oneof", 2, IgnoreIncorrectTypes); err != nil {
		t.Fatal(err)
	}
	if u.Len() != 1 || !bytes.Equal(u.Entries()[0].Raw, in) {
		t.Fatalf("demoted field not retained verbatim: %v", u.Entries())
	}
}

func TestDemoteEnumUnknown(t *testing.T) {
	var u UnknownFields
	enumErr := &codec.ErrUnknownEnumValue{Enum: "MyEnum", Value: 99}
	if DemoteEnumUnknown(enumErr, 0, &u, wire.MakeTag(1, wire.Varint), []byte{0x08, 0x63}) {
		t.Fatal("demoted without IgnoreIncorrectTypes")
	}
	if !DemoteEnumUnknown(enumErr, IgnoreIncorrectTypes, &u, wire.MakeTag(1, wire.Varint), []byte{0x08, 0x63}) {
		t.Fatal("failed to demote with IgnoreIncorrectTypes")
	}
	if u.Len() != 1 {
		t.Fatal("demotion did not record the field")
	}
	if DemoteEnumUnknown(wire.ErrTruncated, IgnoreIncorrectTypes, &u, 0, nil) {
		t.Fatal("demoted a structural error")
	}
}

func TestSerializeSubmessageElision(t *testing.T) {
	w := wire.NewWriter()
	SerializeSubmessage(w, 21, func(*wire.Writer) {}, false)
	if w.Size() != 0 {
		t.Fatalf("empty submessage wrote % x", w.Bytes())
	}
	SerializeSubmessage(w, 21, func(*wire.Writer) {}, true)
	want := []byte{0xaa, 0x01, 0x00}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("forced empty submessage = % x, want % x", w.Bytes(), want)
	}
}

func TestParseSubmessageDepthCap(t *testing.T) {
	// Build wire.MaxNestingDepth+1 nested LEN envelopes around an
	// empty body, innermost first.
	body := []byte{}
	for i := 0; i <= wire.MaxNestingDepth; i++ {
		w := wire.NewWriter()
		w.PutLen(body)
		body = w.Bytes()
	}

	var parseNested func(r *wire.Reader) error
	parseNested = func(r *wire.Reader) error {
		if r.EOF() {
			return nil
		}
		return ParseSubmessage(r, parseNested)
	}
	err := parseNested(wire.NewReader(body))
	if err == nil {
		t.Fatal("expected nesting-depth error")
	}
}

func TestFormatTruncation(t *testing.T) {
	if got := FormatString("hi"); got != `"hi"` {
		t.Errorf("FormatString = %s", got)
	}
	long := strings.Repeat("a", 10001)
	if got := FormatString(long); got != "(10001 chars)" {
		t.Errorf("FormatString(long) = %s", got)
	}
	if got := FormatBytes(bytes.Repeat([]byte{1}, 101)); got != "(101 bytes)" {
		t.Errorf("FormatBytes(long) = %s", got)
	}
}
