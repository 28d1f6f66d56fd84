// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

// Package schema is the in-memory IR the code generator (package gen)
// walks: Module -> {Enum, Message} -> FieldGroup -> Field, exactly per
// spec.md §3. It is deliberately independent of any concrete
// descriptor representation: spec.md §1 treats the ".proto source
// parser" as an external front-end, so this package is the seam a
// front-end's output is adapted into (see fromdescriptor.go for one
// such adapter, built on descriptorpb).
package schema

import "fmt"

// DataType enumerates the 18 scalar/compound proto3 data types named
// in spec.md §3.
type DataType uint8

const (
	FLOAT DataType = iota
	DOUBLE
	INT32
	UINT32
	SINT32
	INT64
	UINT64
	SINT64
	FIXED32
	SFIXED32
	FIXED64
	SFIXED64
	BOOL
	ENUM
	STRING
	BYTES
	MAP
	MESSAGE
)

func (d DataType) String() string {
	switch d {
	case FLOAT:
		return "FLOAT"
	case DOUBLE:
		return "DOUBLE"
	case INT32:
		return "INT32"
	case UINT32:
		return "UINT32"
	case SINT32:
		return "SINT32"
	case INT64:
		return "INT64"
	case UINT64:
		return "UINT64"
	case SINT64:
		return "SINT64"
	case FIXED32:
		return "FIXED32"
	case SFIXED32:
		return "SFIXED32"
	case FIXED64:
		return "FIXED64"
	case SFIXED64:
		return "SFIXED64"
	case BOOL:
		return "BOOL"
	case ENUM:
		return "ENUM"
	case STRING:
		return "STRING"
	case BYTES:
		return "BYTES"
	case MAP:
		return "MAP"
	case MESSAGE:
		return "MESSAGE"
	default:
		return fmt.Sprintf("DataType(%d)", uint8(d))
	}
}

// Packable reports whether d is legal as the element type of a packed
// repeated field (spec.md §3 invariant 5).
func (d DataType) Packable() bool {
	switch d {
	case STRING, BYTES, MESSAGE, MAP:
		return false
	default:
		return true
	}
}

// Cardinality is a field's repetition/optionality shape.
type Cardinality uint8

const (
	SINGULAR Cardinality = iota
	OPTIONAL
	REPEATED
	MAP_CARDINALITY
)

func (c Cardinality) String() string {
	switch c {
	case SINGULAR:
		return "SINGULAR"
	case OPTIONAL:
		return "OPTIONAL"
	case REPEATED:
		return "REPEATED"
	case MAP_CARDINALITY:
		return "MAP"
	default:
		return fmt.Sprintf("Cardinality(%d)", uint8(c))
	}
}

// EnumValue is one (symbolic_name, int32_value) pair.
type EnumValue struct {
	Name   string
	Number int32
}

// Enum is a name plus a sequence of declared members. Proto3 requires
// a member with Number == 0 (spec.md §3 invariant 4); Validate checks
// this.
type Enum struct {
	Name    string
	Values  []EnumValue
	Comment string
}

// Validate checks the proto3 invariants this package is responsible
// for at schema-construction time (spec.md §4.4: "enforced by the
// generator, not the runtime").
func (e *Enum) Validate() error {
	for _, v := range e.Values {
		if v.Number == 0 {
			return nil
		}
	}
	return fmt.Errorf("schema: enum %s has no member with value 0 (proto3 requires one)", e.Name)
}

// DefaultValueName returns the symbolic name of the member with
// Number == 0.
func (e *Enum) DefaultValueName() string {
	for _, v := range e.Values {
		if v.Number == 0 {
			return v.Name
		}
	}
	return ""
}

// Field is one wire-level field: either the sole member of a
// non-oneof FieldGroup, or one candidate of an oneof FieldGroup.
type Field struct {
	Name        string
	Number      int32
	DataType    DataType
	Cardinality Cardinality

	// EnumRef names the Enum this field's values come from; set iff
	// DataType == ENUM.
	EnumRef string
	// MessageRef names the Message this field's values are instances
	// of; set iff DataType == MESSAGE.
	MessageRef string

	// KeyType/ValueType are set iff Cardinality == MAP_CARDINALITY;
	// ValueEnumRef/ValueMsgRef name the map value's Enum or Message.
	KeyType      DataType
	ValueType    DataType
	ValueEnumRef string
	ValueMsgRef  string
}

// Validate enforces per-field shape invariants the runtime assumes
// hold (spec.md §3, §4.4).
func (f *Field) Validate() error {
	if f.Number < 1 || f.Number > (1<<29)-1 {
		return fmt.Errorf("schema: field %s has out-of-range number %d", f.Name, f.Number)
	}
	if f.Number >= 19000 && f.Number <= 19999 {
		return fmt.Errorf("schema: field %s number %d falls in the reserved 19000-19999 range", f.Name, f.Number)
	}
	if f.Cardinality == MAP_CARDINALITY {
		switch f.KeyType {
		case STRING, INT32, UINT32, SINT32, INT64, UINT64, SINT64,
			FIXED32, SFIXED32, FIXED64, SFIXED64, BOOL:
			// legal map key types: the integer kinds, bool and string;
			// floating-point, bytes, enum, message and map keys are
			// rejected (spec.md §4.4).
		default:
			return fmt.Errorf("schema: map field %s has illegal key type %v", f.Name, f.KeyType)
		}
	}
	if f.Cardinality == REPEATED && f.DataType == MAP {
		return fmt.Errorf("schema: field %s: MAP cardinality is expressed via Cardinality, not DataType==MAP directly", f.Name)
	}
	return nil
}

// FieldGroup is the unit of host-language exposure (spec.md §3): a
// single non-oneof field, or every field of one oneof clause sharing
// a single host slot. len(Fields) == 1 for non-oneof groups; > 1 (in
// declaration order) for oneof groups.
type FieldGroup struct {
	Name    string
	Oneof   bool
	Fields  []Field
	Comment string
}

// SoleField returns the group's single field; callers must only call
// this on a non-oneof group.
func (g *FieldGroup) SoleField() *Field {
	if g.Oneof || len(g.Fields) != 1 {
		panic("schema: SoleField called on a group that is not a singleton")
	}
	return &g.Fields[0]
}

// Message is a name plus an ordered list of field groups.
type Message struct {
	Name    string
	Groups  []FieldGroup
	Comment string
}

// Validate checks field-number uniqueness across every field in every
// group (spec.md §3 invariant 3) and validates each field/group.
func (m *Message) Validate() error {
	seen := map[int32]string{}
	for _, g := range m.Groups {
		for _, f := range g.Fields {
			if err := f.Validate(); err != nil {
				return err
			}
			if prev, ok := seen[f.Number]; ok {
				return fmt.Errorf("schema: message %s: field number %d used by both %s and %s", m.Name, f.Number, prev, f.Name)
			}
			seen[f.Number] = f.Name
		}
	}
	return nil
}

// Module is a logical namespace, one per input schema file, holding
// every Message and Enum it declares.
type Module struct {
	Name     string
	Messages []Message
	Enums    []Enum
}

// Validate validates every message and enum in the module.
func (m *Module) Validate() error {
	for i := range m.Enums {
		if err := m.Enums[i].Validate(); err != nil {
			return err
		}
	}
	for i := range m.Messages {
		if err := m.Messages[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// FindMessage returns the message named name, or nil.
func (m *Module) FindMessage(name string) *Message {
	for i := range m.Messages {
		if m.Messages[i].Name == name {
			return &m.Messages[i]
		}
	}
	return nil
}

// FindEnum returns the enum named name, or nil.
func (m *Module) FindEnum(name string) *Enum {
	for i := range m.Enums {
		if m.Enums[i].Name == name {
			return &m.Enums[i]
		}
	}
	return nil
}
