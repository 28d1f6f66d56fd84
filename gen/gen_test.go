// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

package gen

import (
	"os"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golang/protobuf-gocodec/schema"
)

func fixtureModule() *schema.Module {
	return &schema.Module{
		Name: "fixture",
		Enums: []schema.Enum{{
			Name: "Mode",
			Values: []schema.EnumValue{
				{Name: "OFF", Number: 0},
				{Name: "ON", Number: 1},
			},
		}},
		Messages: []schema.Message{
			{
				Name: "Inner",
				Groups: []schema.FieldGroup{
					{Name: "id", Fields: []schema.Field{{Name: "id", Number: 1, DataType: schema.INT64}}},
				},
			},
			{
				Name: "Outer",
				Groups: []schema.FieldGroup{
					{Name: "choice", Oneof: true, Fields: []schema.Field{
						{Name: "mode", Number: 1, DataType: schema.ENUM, EnumRef: "Mode"},
						{Name: "label", Number: 2, DataType: schema.STRING},
						{Name: "inner", Number: 3, DataType: schema.MESSAGE, MessageRef: "Inner"},
					}},
					{Name: "values", Fields: []schema.Field{{Name: "values", Number: 4, DataType: schema.SINT64, Cardinality: schema.REPEATED}}},
					{Name: "modes", Fields: []schema.Field{{Name: "modes", Number: 5, DataType: schema.ENUM, Cardinality: schema.REPEATED, EnumRef: "Mode"}}},
					{Name: "by_name", Fields: []schema.Field{{Name: "by_name", Number: 6, DataType: schema.MAP, Cardinality: schema.MAP_CARDINALITY, KeyType: schema.STRING, ValueType: schema.MESSAGE, ValueMsgRef: "Inner"}}},
					{Name: "maybe_note", Fields: []schema.Field{{Name: "maybe_note", Number: 7, DataType: schema.STRING, Cardinality: schema.OPTIONAL}}},
					{Name: "payload", Fields: []schema.Field{{Name: "payload", Number: 8, DataType: schema.BYTES}}},
					{Name: "sub", Fields: []schema.Field{{Name: "sub", Number: 9, DataType: schema.MESSAGE, MessageRef: "Inner"}}},
				},
			},
		},
	}
}

func TestGenerateFixture(t *testing.T) {
	files, err := Generate([]*schema.Module{fixtureModule()}, Options{})
	require.NoError(t, err)

	var names []string
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	assert.Empty(t, cmp.Diff([]string{"fixture.pbcodec.go"}, names))

	src := string(files["fixture.pbcodec.go"])

	// Header and package clause.
	assert.True(t, strings.HasPrefix(src, "// Code generated by protoc-gen-gocodec. DO NOT EDIT.\n"))
	assert.Contains(t, src, "package fixture\n")

	// Enum surface.
	assert.Contains(t, src, "type Mode int32")
	assert.Contains(t, src, "Mode_OFF Mode = 0")
	assert.Contains(t, src, "func ModeFromNumber(n int32) (Mode, error)")
	assert.Contains(t, src, "func ModeFromNumberReader(r *wire.Reader) (Mode, error)")

	// Oneof as a tagged sum.
	assert.Contains(t, src, "type isOuter_Choice interface {")
	assert.Contains(t, src, "type Outer_Mode struct {")
	assert.Contains(t, src, "type Outer_Label struct {")
	assert.Contains(t, src, "type Outer_Inner struct {")
	assert.Contains(t, src, "func (*Outer_Mode) isOuter_Choice()  {}")

	// Message surface.
	assert.Contains(t, src, "type Outer struct {")
	assert.Contains(t, src, "func NewOuter(overrides ...OuterOverride) *Outer {")
	assert.Contains(t, src, "func OuterFromBytes(b []byte, flags protomsg.ParseFlags) (*Outer, error)")
	assert.Contains(t, src, "func (m *Outer) ParseInto(b []byte, flags protomsg.ParseFlags) error")
	assert.Contains(t, src, "func (m *Outer) ToBytes() []byte")
	assert.Contains(t, src, "func (m *Outer) ToDict() map[string]interface{}")
	assert.Contains(t, src, "func (m *Outer) Equal(o *Outer) bool")
	assert.Contains(t, src, "func (m *Outer) Clone() *Outer")
	assert.Contains(t, src, "func (m *Outer) CopyWith(overrides ...OuterOverride) *Outer")
	assert.Contains(t, src, "func OuterWithMaybeNote(v *string) OuterOverride")
	assert.Contains(t, src, "func (m *Outer) HasUnknown() bool")
	assert.Contains(t, src, "func (m *Outer) MarshalBinary() ([]byte, error)")

	// Hard-coded dispatch and codec choices.
	assert.Contains(t, src, "case 4: // values")
	assert.Contains(t, src, "protomsg.ParsePackedScalar(r, codec.ReadSint64)")
	assert.Contains(t, src, "protomsg.WritePackedScalar(w, 4, m.Values, codec.WriteSint64)")
	assert.Contains(t, src, "protomsg.ParsePackedScalar(r, ModeFromNumberReader)")
	assert.Contains(t, src, "sort.Strings(keys)")
	assert.Contains(t, src, "protomsg.ReadUnknown(r, &m.unknown, tag, start, flags)")
	assert.Contains(t, src, "m.unknown.WriteTo(w)")

	// Optional string is a pointer; singular message elides when empty.
	assert.Contains(t, src, "MaybeNote *string")
	assert.Contains(t, src, "protomsg.SerializeSubmessage(w, 9, m.Sub.marshal, false)")
}

func TestGenerateFromJSONFixture(t *testing.T) {
	data, err := os.ReadFile("../examples/longmessage/longmessage.schema.json")
	require.NoError(t, err)
	mods, err := schema.UnitFromJSON(data)
	require.NoError(t, err)

	files, err := Generate(mods, Options{})
	require.NoError(t, err)
	src := string(files["longmessage.pbcodec.go"])

	assert.Contains(t, src, "package longmessage")
	assert.Contains(t, src, "type LongMessage struct {")
	assert.Contains(t, src, "type LongMessage_FEnum struct {")
	assert.Contains(t, src, "case 3: // f_uint64")
	assert.Contains(t, src, "case 23: // f_map_int_msg")
	assert.Contains(t, src, "func LongMessageWithFMapStrFloat(v map[string]float32) LongMessageOverride")
}

func TestGenerateRejectsDuplicateNamesAcrossModules(t *testing.T) {
	a := &schema.Module{Name: "a", Messages: []schema.Message{{Name: "Thing"}}}
	b := &schema.Module{Name: "b", Messages: []schema.Message{{Name: "Thing"}}}
	_, err := Generate([]*schema.Module{a, b}, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Thing")
}

func TestGenerateRejectsUnresolvedRefs(t *testing.T) {
	mod := &schema.Module{Name: "m", Messages: []schema.Message{{
		Name: "M",
		Groups: []schema.FieldGroup{
			{Name: "f", Fields: []schema.Field{{Name: "f", Number: 1, DataType: schema.MESSAGE, MessageRef: "Ghost"}}},
		},
	}}}
	_, err := Generate([]*schema.Module{mod}, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Ghost")
}

func TestGenerateCrossModuleReference(t *testing.T) {
	base := &schema.Module{Name: "base", Messages: []schema.Message{{
		Name:   "Common",
		Groups: []schema.FieldGroup{{Name: "id", Fields: []schema.Field{{Name: "id", Number: 1, DataType: schema.INT32}}}},
	}}}
	user := &schema.Module{Name: "user", Messages: []schema.Message{{
		Name:   "Ref",
		Groups: []schema.FieldGroup{{Name: "c", Fields: []schema.Field{{Name: "c", Number: 1, DataType: schema.MESSAGE, MessageRef: "Common"}}}},
	}}}
	files, err := Generate([]*schema.Module{base, user}, Options{PackageName: "unit"})
	require.NoError(t, err)
	require.Len(t, files, 2)
	// The cross-module reference resolves to the plain generated symbol.
	assert.Contains(t, string(files["user.pbcodec.go"]), "sub := NewCommon()")
	assert.Contains(t, string(files["user.pbcodec.go"]), "package unit")
	assert.Contains(t, string(files["base.pbcodec.go"]), "package unit")
}
