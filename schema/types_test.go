// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumRequiresZeroMember(t *testing.T) {
	e := &Enum{Name: "E", Values: []EnumValue{{Name: "A", Number: 1}}}
	require.Error(t, e.Validate())

	e.Values = append(e.Values, EnumValue{Name: "Z", Number: 0})
	require.NoError(t, e.Validate())
	assert.Equal(t, "Z", e.DefaultValueName())
}

func TestFieldNumberRange(t *testing.T) {
	for _, tc := range []struct {
		number int32
		ok     bool
	}{
		{0, false},
		{1, true},
		{18999, true},
		{19000, false},
		{19999, false},
		{20000, true},
		{1<<29 - 1, true},
		{1 << 29, false},
	} {
		f := &Field{Name: "f", Number: tc.number, DataType: INT32}
		err := f.Validate()
		if tc.ok {
			assert.NoError(t, err, "number %d", tc.number)
		} else {
			assert.Error(t, err, "number %d", tc.number)
		}
	}
}

func TestMapKeyLegality(t *testing.T) {
	for _, tc := range []struct {
		key DataType
		ok  bool
	}{
		{STRING, true},
		{INT32, true},
		{BOOL, true},
		{FIXED64, true},
		{FLOAT, false},
		{DOUBLE, false},
		{BYTES, false},
		{MESSAGE, false},
		{ENUM, false},
	} {
		f := &Field{
			Name:        "m",
			Number:      1,
			DataType:    MAP,
			Cardinality: MAP_CARDINALITY,
			KeyType:     tc.key,
			ValueType:   INT32,
		}
		err := f.Validate()
		if tc.ok {
			assert.NoError(t, err, "key %v", tc.key)
		} else {
			assert.Error(t, err, "key %v", tc.key)
		}
	}
}

func TestMessageRejectsDuplicateFieldNumbers(t *testing.T) {
	m := &Message{
		Name: "M",
		Groups: []FieldGroup{
			{Name: "a", Fields: []Field{{Name: "a", Number: 1, DataType: INT32}}},
			{Name: "g", Oneof: true, Fields: []Field{
				{Name: "b", Number: 2, DataType: STRING},
				{Name: "c", Number: 1, DataType: BOOL},
			}},
		},
	}
	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field number 1")
}

func TestPackable(t *testing.T) {
	assert.True(t, INT32.Packable())
	assert.True(t, ENUM.Packable())
	assert.True(t, DOUBLE.Packable())
	assert.False(t, STRING.Packable())
	assert.False(t, BYTES.Packable())
	assert.False(t, MESSAGE.Packable())
	assert.False(t, MAP.Packable())
}

func TestModuleLookups(t *testing.T) {
	mod := &Module{
		Name:     "test",
		Messages: []Message{{Name: "A"}, {Name: "B"}},
		Enums:    []Enum{{Name: "E", Values: []EnumValue{{Name: "Z", Number: 0}}}},
	}
	require.NoError(t, mod.Validate())
	assert.NotNil(t, mod.FindMessage("B"))
	assert.Nil(t, mod.FindMessage("C"))
	assert.NotNil(t, mod.FindEnum("E"))
	assert.Nil(t, mod.FindEnum("F"))
}
