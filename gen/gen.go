// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

// Package gen converts a schema IR (package schema) into generated Go
// source: one file per module, each containing an enum type per
// declared enum and a struct with schema-specialized parse/serialize
// methods per declared message. Generated code dispatches on hard-coded
// field numbers and calls the runtime packages (wire, codec, protomsg)
// directly; it performs no table lookups and carries no reflection.
package gen

import (
	"fmt"
	"go/format"

	log "github.com/sirupsen/logrus"

	"github.com/golang/protobuf-gocodec/schema"
)

// DefaultRuntimePath is the import path the generated files use to
// reach the wire/codec/protomsg runtime packages.
const DefaultRuntimePath = "github.com/golang/protobuf-gocodec"

// Options configures one Generate call.
type Options struct {
	// PackageName is the Go package name for every generated file.
	// All modules of a compilation unit generate into one Go package,
	// so cross-module references resolve to plain identifiers.
	// Defaults to a cleaned form of the first module's name.
	PackageName string
	// RuntimePath overrides DefaultRuntimePath.
	RuntimePath string
}

// unit is one compilation unit: every module passed to a single
// Generate call, with a unit-wide symbol index. Message and enum names
// must be unique across the unit because they share one Go package;
// cross-compilation-unit references are not supported.
type unit struct {
	messages map[string]*schema.Message
	enums    map[string]*schema.Enum
}

func newUnit(mods []*schema.Module) (*unit, error) {
	u := &unit{
		messages: map[string]*schema.Message{},
		enums:    map[string]*schema.Enum{},
	}
	for _, mod := range mods {
		for i := range mod.Messages {
			m := &mod.Messages[i]
			if _, dup := u.messages[m.Name]; dup {
				return nil, fmt.Errorf("gen: message %s declared in more than one module of the unit", m.Name)
			}
			u.messages[m.Name] = m
		}
		for i := range mod.Enums {
			e := &mod.Enums[i]
			if _, dup := u.enums[e.Name]; dup {
				return nil, fmt.Errorf("gen: enum %s declared in more than one module of the unit", e.Name)
			}
			u.enums[e.Name] = e
		}
	}
	return u, nil
}

func (u *unit) resolve(f *schema.Field) error {
	check := func(kind string, dt schema.DataType, enumRef, msgRef string) error {
		switch dt {
		case schema.ENUM:
			if _, ok := u.enums[enumRef]; !ok {
				return fmt.Errorf("gen: field %s references undeclared enum %q (%s)", f.Name, enumRef, kind)
			}
		case schema.MESSAGE:
			if _, ok := u.messages[msgRef]; !ok {
				return fmt.Errorf("gen: field %s references undeclared message %q (%s)", f.Name, msgRef, kind)
			}
		}
		return nil
	}
	if f.Cardinality == schema.MAP_CARDINALITY {
		return check("map value", f.ValueType, f.ValueEnumRef, f.ValueMsgRef)
	}
	return check("value", f.DataType, f.EnumRef, f.MessageRef)
}

// Generate renders every module of the unit, returning a map from
// output filename to file content. File contents are valid, formatted
// Go source.
func Generate(mods []*schema.Module, opts Options) (map[string][]byte, error) {
	if len(mods) == 0 {
		return nil, fmt.Errorf("gen: no modules to generate")
	}
	if opts.PackageName == "" {
		opts.PackageName = cleanPackageName(mods[0].Name)
	}
	if opts.RuntimePath == "" {
		opts.RuntimePath = DefaultRuntimePath
	}

	u, err := newUnit(mods)
	if err != nil {
		return nil, err
	}
	for _, mod := range mods {
		if err := mod.Validate(); err != nil {
			return nil, err
		}
		for i := range mod.Messages {
			for _, grp := range mod.Messages[i].Groups {
				for j := range grp.Fields {
					if err := u.resolve(&grp.Fields[j]); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	out := map[string][]byte{}
	for _, mod := range mods {
		g := newGeneratedFile(opts.PackageName, mod.Name, opts.RuntimePath)
		for i := range mod.Enums {
			log.WithFields(log.Fields{"module": mod.Name, "enum": mod.Enums[i].Name}).Debug("emitting enum")
			genEnum(g, &mod.Enums[i])
		}
		for i := range mod.Messages {
			log.WithFields(log.Fields{"module": mod.Name, "message": mod.Messages[i].Name}).Debug("emitting message")
			genMessage(g, u, mod, &mod.Messages[i])
		}
		filename := cleanPackageName(mod.Name) + ".pbcodec.go"
		if _, dup := out[filename]; dup {
			return nil, fmt.Errorf("gen: modules %q map to the same output file %s", mod.Name, filename)
		}
		src, err := format.Source(g.Content())
		if err != nil {
			// A formatting failure means the emitter produced invalid
			// Go; surface it with the raw source attached for debugging.
			return nil, fmt.Errorf("gen: module %s: emitted invalid Go: %w\n%s", mod.Name, err, g.Content())
		}
		out[filename] = src
	}
	return out, nil
}

// baseGoType maps a field's element data type to its Go type.
func baseGoType(dt schema.DataType, enumRef, msgRef string) string {
	switch dt {
	case schema.FLOAT:
		return "float32"
	case schema.DOUBLE:
		return "float64"
	case schema.INT32, schema.SINT32, schema.SFIXED32:
		return "int32"
	case schema.UINT32, schema.FIXED32:
		return "uint32"
	case schema.INT64, schema.SINT64, schema.SFIXED64:
		return "int64"
	case schema.UINT64, schema.FIXED64:
		return "uint64"
	case schema.BOOL:
		return "bool"
	case schema.STRING:
		return "string"
	case schema.BYTES:
		return "[]byte"
	case schema.ENUM:
		return camelCase(enumRef)
	case schema.MESSAGE:
		return "*" + camelCase(msgRef)
	default:
		panic(fmt.Sprintf("gen: no Go type for %v", dt))
	}
}

// scalarProps carries the per-data-type emission constants: the codec
// read/write functions and the wire type the generated dispatch
// hard-codes.
type scalarProps struct {
	read  string
	write string
	wire  string
}

var scalarTable = map[schema.DataType]scalarProps{
	schema.FLOAT:    {"codec.ReadFloat", "codec.WriteFloat", "wire.I32"},
	schema.DOUBLE:   {"codec.ReadDouble", "codec.WriteDouble", "wire.I64"},
	schema.INT32:    {"codec.ReadInt32", "codec.WriteInt32", "wire.Varint"},
	schema.UINT32:   {"codec.ReadUint32", "codec.WriteUint32", "wire.Varint"},
	schema.SINT32:   {"codec.ReadSint32", "codec.WriteSint32", "wire.Varint"},
	schema.INT64:    {"codec.ReadInt64", "codec.WriteInt64", "wire.Varint"},
	schema.UINT64:   {"codec.ReadUint64", "codec.WriteUint64", "wire.Varint"},
	schema.SINT64:   {"codec.ReadSint64", "codec.WriteSint64", "wire.Varint"},
	schema.FIXED32:  {"codec.ReadFixed32", "codec.WriteFixed32", "wire.I32"},
	schema.SFIXED32: {"codec.ReadSfixed32", "codec.WriteSfixed32", "wire.I32"},
	schema.FIXED64:  {"codec.ReadFixed64", "codec.WriteFixed64", "wire.I64"},
	schema.SFIXED64: {"codec.ReadSfixed64", "codec.WriteSfixed64", "wire.I64"},
	schema.BOOL:     {"codec.ReadBool", "codec.WriteBool", "wire.Varint"},
	schema.STRING:   {"codec.ReadString", "codec.WriteString", "wire.Len"},
	schema.BYTES:    {"codec.ReadBytes", "codec.WriteBytes", "wire.Len"},
}
