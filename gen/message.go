// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

package gen

import (
	"github.com/golang/protobuf-gocodec/schema"
)

// msgGen emits everything one message contributes to a generated file:
// the struct, the oneof candidate types, and the full method set
// (parse, serialize, dict projection, equality, String, Clone,
// CopyWith, unknown-field accessors, binary persistence hooks).
type msgGen struct {
	g    *generatedFile
	u    *unit
	mod  *schema.Module
	m    *schema.Message
	name string
}

func genMessage(g *generatedFile, u *unit, mod *schema.Module, m *schema.Message) {
	x := &msgGen{g: g, u: u, mod: mod, m: m, name: camelCase(m.Name)}
	for _, grp := range m.Groups {
		if grp.Oneof {
			x.genOneofDecls(&grp)
		}
	}
	x.genStruct()
	x.genConstructor()
	x.genParse()
	x.genMarshal()
	x.genBinary()
	x.genToDict()
	x.genEqual()
	x.genString()
	x.genClone()
	x.genOverrides()
	x.genUnknownAccessors()
}

// groupGoName is the struct field name for a field group.
func groupGoName(grp *schema.FieldGroup) string { return camelCase(grp.Name) }

// fieldGoType is the struct field's Go type for a whole group.
func (x *msgGen) fieldGoType(grp *schema.FieldGroup) string {
	if grp.Oneof {
		return "is" + x.name + "_" + groupGoName(grp)
	}
	f := grp.SoleField()
	switch f.Cardinality {
	case schema.MAP_CARDINALITY:
		return "map[" + baseGoType(f.KeyType, "", "") + "]" + baseGoType(f.ValueType, f.ValueEnumRef, f.ValueMsgRef)
	case schema.REPEATED:
		return "[]" + baseGoType(f.DataType, f.EnumRef, f.MessageRef)
	case schema.OPTIONAL:
		t := baseGoType(f.DataType, f.EnumRef, f.MessageRef)
		// Messages are already pointers and bytes are already nilable,
		// so only the remaining kinds need an explicit pointer for the
		// absence sentinel.
		if f.DataType == schema.MESSAGE || f.DataType == schema.BYTES {
			return t
		}
		return "*" + t
	default:
		return baseGoType(f.DataType, f.EnumRef, f.MessageRef)
	}
}

func (x *msgGen) genStruct() {
	g := x.g
	g.ImportRuntime("protomsg")
	if x.m.Comment != "" {
		g.P("// ", x.name, ": ", x.m.Comment)
	}
	g.P("type ", x.name, " struct {")
	for i := range x.m.Groups {
		grp := &x.m.Groups[i]
		if grp.Comment != "" {
			g.P("\t// ", grp.Comment)
		}
		g.P("\t", groupGoName(grp), " ", x.fieldGoType(grp))
	}
	g.P()
	g.P("\tunknown protomsg.UnknownFields")
	g.P("}")
	g.P()
}

func (x *msgGen) genConstructor() {
	g := x.g
	g.P("// New", x.name, " returns a ", x.name, " with every field group at its")
	g.P("// default value, then replaces the named slots via the given")
	g.P("// overrides.")
	g.P("func New", x.name, "(overrides ...", x.name, "Override) *", x.name, " {")
	g.P("\tm := &", x.name, "{}")
	g.P("\tfor _, o := range overrides {")
	g.P("\t\to(m)")
	g.P("\t}")
	g.P("\treturn m")
	g.P("}")
	g.P()
}

func (x *msgGen) genParse() {
	g := x.g
	g.ImportRuntime("wire")
	g.ImportRuntime("protomsg")

	g.P("// ", x.name, "FromBytes parses a wire-format buffer into a fresh")
	g.P("// ", x.name, ".")
	g.P("func ", x.name, "FromBytes(b []byte, flags protomsg.ParseFlags) (*", x.name, ", error) {")
	g.P("\tm := New", x.name, "()")
	g.P("\tif err := m.ParseInto(b, flags); err != nil {")
	g.P("\t\treturn nil, err")
	g.P("\t}")
	g.P("\treturn m, nil")
	g.P("}")
	g.P()
	g.P("// ParseInto merges a wire-format buffer into m: repeated and map")
	g.P("// fields accumulate, singular fields overwrite. On error m is left")
	g.P("// unchanged.")
	g.P("func (m *", x.name, ") ParseInto(b []byte, flags protomsg.ParseFlags) error {")
	g.P("\tstaged := m.Clone()")
	g.P("\tif err := staged.parse(wire.NewReader(b), flags); err != nil {")
	g.P("\t\treturn err")
	g.P("\t}")
	g.P("\t*m = *staged")
	g.P("\treturn nil")
	g.P("}")
	g.P()
	g.P("func (m *", x.name, ") parse(r *wire.Reader, flags protomsg.ParseFlags) error {")
	g.P("\tfor !r.EOF() {")
	g.P("\t\tstart := r.Position()")
	g.P("\t\ttag, err := r.ReadTag()")
	g.P("\t\tif err != nil {")
	g.P("\t\t\treturn protomsg.WrapUnknown(err, start)")
	g.P("\t\t}")
	g.P("\t\tswitch tag.Number() {")
	for i := range x.m.Groups {
		grp := &x.m.Groups[i]
		for j := range grp.Fields {
			x.genParseCase(grp, &grp.Fields[j])
		}
	}
	g.P("\t\tdefault:")
	g.P("\t\t\tif err := protomsg.ReadUnknown(r, &m.unknown, tag, start, flags); err != nil {")
	g.P("\t\t\t\treturn err")
	g.P("\t\t\t}")
	g.P("\t\t}")
	g.P("\t}")
	g.P("\treturn nil")
	g.P("}")
	g.P()
}

// pMismatchGuard emits the wire-type guard that opens every
// non-repeated-packable parse case.
func (x *msgGen) pMismatchGuard(grp *schema.FieldGroup, f *schema.Field, wt string) {
	g := x.g
	g.P("\t\t\tif tag.Type() != ", wt, " {")
	g.P("\t\t\t\tif err := protomsg.SkipMismatched(r, &m.unknown, tag, start, ", quote(grp.Name), ", ", f.Number, ", flags); err != nil {")
	g.P("\t\t\t\t\treturn err")
	g.P("\t\t\t\t}")
	g.P("\t\t\t\tbreak")
	g.P("\t\t\t}")
}

// pWrapReturn emits the standard known-field error return.
func (x *msgGen) pWrapReturn(indent string, grp *schema.FieldGroup, f *schema.Field) {
	g := x.g
	g.P(indent, "if err != nil {")
	g.P(indent, "\treturn protomsg.WrapField(err, ", quote(grp.Name), ", ", f.Number, ", start)")
	g.P(indent, "}")
}

// pEnumRead emits the raw-varint + member-lookup + demotion sequence
// shared by every singular enum parse site. assign receives the Go
// statement storing the validated member v.
func (x *msgGen) pEnumRead(grp *schema.FieldGroup, f *schema.Field, assign string) {
	g := x.g
	enum := camelCase(f.EnumRef)
	g.ImportRuntime("codec")
	g.P("\t\t\traw, err := codec.ReadEnumRaw(r)")
	x.pWrapReturn("\t\t\t", grp, f)
	g.P("\t\t\tv, err := ", enum, "FromNumber(raw)")
	g.P("\t\t\tif err != nil {")
	g.P("\t\t\t\tif !protomsg.DemoteEnumUnknown(err, flags, &m.unknown, tag, r.SliceFrom(start)) {")
	g.P("\t\t\t\t\treturn protomsg.WrapField(err, ", quote(grp.Name), ", ", f.Number, ", start)")
	g.P("\t\t\t\t}")
	g.P("\t\t\t\tbreak")
	g.P("\t\t\t}")
	g.P("\t\t\t", assign)
}

func (x *msgGen) genParseCase(grp *schema.FieldGroup, f *schema.Field) {
	g := x.g
	fieldName := groupGoName(grp)
	comment := grp.Name
	if grp.Oneof {
		comment = f.Name + ", oneof " + grp.Name
	}
	g.P("\t\tcase ", f.Number, ": // ", comment)

	switch {
	case grp.Oneof:
		x.genOneofParseCase(grp, f)
	case f.Cardinality == schema.MAP_CARDINALITY:
		x.pMismatchGuard(grp, f, "wire.Len")
		keyProps := scalarTable[f.KeyType]
		g.ImportRuntime("codec")
		switch f.ValueType {
		case schema.MESSAGE:
			sub := camelCase(f.ValueMsgRef)
			g.P("\t\t\tk, v, err := protomsg.ParseMapEntry(r, ", keyProps.read, ", ", zeroLit(f.KeyType), ",")
			g.P("\t\t\t\tfunc(vr *wire.Reader) (*", sub, ", error) {")
			g.P("\t\t\t\t\tsub := New", sub, "()")
			g.P("\t\t\t\t\tif err := protomsg.ParseSubmessage(vr, func(sr *wire.Reader) error {")
			g.P("\t\t\t\t\t\treturn sub.parse(sr, flags)")
			g.P("\t\t\t\t\t}); err != nil {")
			g.P("\t\t\t\t\t\treturn nil, err")
			g.P("\t\t\t\t\t}")
			g.P("\t\t\t\t\treturn sub, nil")
			g.P("\t\t\t\t}, New", sub, "())")
		case schema.ENUM:
			g.P("\t\t\tk, v, err := protomsg.ParseMapEntry(r, ", keyProps.read, ", ", zeroLit(f.KeyType), ", ", camelCase(f.ValueEnumRef), "FromNumberReader, 0)")
		default:
			g.P("\t\t\tk, v, err := protomsg.ParseMapEntry(r, ", keyProps.read, ", ", zeroLit(f.KeyType), ", ", scalarTable[f.ValueType].read, ", ", zeroLit(f.ValueType), ")")
		}
		x.pWrapReturn("\t\t\t", grp, f)
		g.P("\t\t\tif m.", fieldName, " == nil {")
		g.P("\t\t\t\tm.", fieldName, " = ", x.fieldGoType(grp), "{}")
		g.P("\t\t\t}")
		g.P("\t\t\tm.", fieldName, "[k] = v")
	case f.Cardinality == schema.REPEATED && f.DataType.Packable() && f.DataType != schema.ENUM:
		props := scalarTable[f.DataType]
		g.ImportRuntime("codec")
		g.P("\t\t\tswitch tag.Type() {")
		g.P("\t\t\tcase ", props.wire, ":")
		g.P("\t\t\t\tv, err := ", props.read, "(r)")
		g.P("\t\t\t\tif err != nil {")
		g.P("\t\t\t\t\treturn protomsg.WrapField(err, ", quote(grp.Name), ", ", f.Number, ", start)")
		g.P("\t\t\t\t}")
		g.P("\t\t\t\tm.", fieldName, " = append(m.", fieldName, ", v)")
		g.P("\t\t\tcase wire.Len:")
		g.P("\t\t\t\tvs, err := protomsg.ParsePackedScalar(r, ", props.read, ")")
		g.P("\t\t\t\tif err != nil {")
		g.P("\t\t\t\t\treturn protomsg.WrapField(err, ", quote(grp.Name), ", ", f.Number, ", start)")
		g.P("\t\t\t\t}")
		g.P("\t\t\t\tm.", fieldName, " = append(m.", fieldName, ", vs...)")
		g.P("\t\t\tdefault:")
		g.P("\t\t\t\tif err := protomsg.SkipMismatched(r, &m.unknown, tag, start, ", quote(grp.Name), ", ", f.Number, ", flags); err != nil {")
		g.P("\t\t\t\t\treturn err")
		g.P("\t\t\t\t}")
		g.P("\t\t\t}")
	case f.Cardinality == schema.REPEATED && f.DataType == schema.ENUM:
		enum := camelCase(f.EnumRef)
		g.ImportRuntime("codec")
		g.P("\t\t\tswitch tag.Type() {")
		g.P("\t\t\tcase wire.Varint:")
		g.P("\t\t\t\traw, err := codec.ReadEnumRaw(r)")
		g.P("\t\t\t\tif err != nil {")
		g.P("\t\t\t\t\treturn protomsg.WrapField(err, ", quote(grp.Name), ", ", f.Number, ", start)")
		g.P("\t\t\t\t}")
		g.P("\t\t\t\tv, err := ", enum, "FromNumber(raw)")
		g.P("\t\t\t\tif err != nil {")
		g.P("\t\t\t\t\tif !protomsg.DemoteEnumUnknown(err, flags, &m.unknown, tag, r.SliceFrom(start)) {")
		g.P("\t\t\t\t\t\treturn protomsg.WrapField(err, ", quote(grp.Name), ", ", f.Number, ", start)")
		g.P("\t\t\t\t\t}")
		g.P("\t\t\t\t\tbreak")
		g.P("\t\t\t\t}")
		g.P("\t\t\t\tm.", fieldName, " = append(m.", fieldName, ", v)")
		g.P("\t\t\tcase wire.Len:")
		g.P("\t\t\t\tvs, err := protomsg.ParsePackedScalar(r, ", enum, "FromNumberReader)")
		g.P("\t\t\t\tif err != nil {")
		g.P("\t\t\t\t\tif !protomsg.DemoteEnumUnknown(err, flags, &m.unknown, tag, r.SliceFrom(start)) {")
		g.P("\t\t\t\t\t\treturn protomsg.WrapField(err, ", quote(grp.Name), ", ", f.Number, ", start)")
		g.P("\t\t\t\t\t}")
		g.P("\t\t\t\t\tbreak")
		g.P("\t\t\t\t}")
		g.P("\t\t\t\tm.", fieldName, " = append(m.", fieldName, ", vs...)")
		g.P("\t\t\tdefault:")
		g.P("\t\t\t\tif err := protomsg.SkipMismatched(r, &m.unknown, tag, start, ", quote(grp.Name), ", ", f.Number, ", flags); err != nil {")
		g.P("\t\t\t\t\treturn err")
		g.P("\t\t\t\t}")
		g.P("\t\t\t}")
	case f.Cardinality == schema.REPEATED && f.DataType == schema.MESSAGE:
		x.pMismatchGuard(grp, f, "wire.Len")
		sub := camelCase(f.MessageRef)
		g.P("\t\t\tsub := New", sub, "()")
		g.P("\t\t\tif err := protomsg.ParseSubmessage(r, func(sr *wire.Reader) error {")
		g.P("\t\t\t\treturn sub.parse(sr, flags)")
		g.P("\t\t\t}); err != nil {")
		g.P("\t\t\t\treturn protomsg.WrapField(protomsg.WrapIndex(err, len(m.", fieldName, ")), ", quote(grp.Name), ", ", f.Number, ", start)")
		g.P("\t\t\t}")
		g.P("\t\t\tm.", fieldName, " = append(m.", fieldName, ", sub)")
	case f.Cardinality == schema.REPEATED:
		// string/bytes: never packed.
		props := scalarTable[f.DataType]
		g.ImportRuntime("codec")
		x.pMismatchGuard(grp, f, "wire.Len")
		g.P("\t\t\tv, err := ", props.read, "(r)")
		x.pWrapReturn("\t\t\t", grp, f)
		g.P("\t\t\tm.", fieldName, " = append(m.", fieldName, ", v)")
	case f.DataType == schema.MESSAGE:
		x.pMismatchGuard(grp, f, "wire.Len")
		sub := camelCase(f.MessageRef)
		g.P("\t\t\tsub := New", sub, "()")
		g.P("\t\t\tif err := protomsg.ParseSubmessage(r, func(sr *wire.Reader) error {")
		g.P("\t\t\t\treturn sub.parse(sr, flags)")
		g.P("\t\t\t}); err != nil {")
		g.P("\t\t\t\treturn protomsg.WrapField(err, ", quote(grp.Name), ", ", f.Number, ", start)")
		g.P("\t\t\t}")
		g.P("\t\t\tm.", fieldName, " = sub")
	case f.DataType == schema.ENUM:
		x.pMismatchGuard(grp, f, "wire.Varint")
		assign := "m." + fieldName + " = v"
		if f.Cardinality == schema.OPTIONAL {
			assign = "m." + fieldName + " = &v"
		}
		x.pEnumRead(grp, f, assign)
	default:
		props := scalarTable[f.DataType]
		g.ImportRuntime("codec")
		x.pMismatchGuard(grp, f, props.wire)
		g.P("\t\t\tv, err := ", props.read, "(r)")
		x.pWrapReturn("\t\t\t", grp, f)
		if f.Cardinality == schema.OPTIONAL && f.DataType != schema.BYTES {
			g.P("\t\t\tm.", fieldName, " = &v")
		} else {
			g.P("\t\t\tm.", fieldName, " = v")
		}
	}
}

func (x *msgGen) genMarshal() {
	g := x.g
	g.ImportRuntime("wire")
	g.P("// ToBytes serializes m in canonical form: field groups in declaration")
	g.P("// order, defaults elided, packed encoding for packable repeated")
	g.P("// fields, map keys sorted, retained unknown fields last.")
	g.P("func (m *", x.name, ") ToBytes() []byte {")
	g.P("\tw := wire.NewWriter()")
	g.P("\tm.marshal(w)")
	g.P("\treturn w.Bytes()")
	g.P("}")
	g.P()
	g.P("func (m *", x.name, ") marshal(w *wire.Writer) {")
	for i := range x.m.Groups {
		grp := &x.m.Groups[i]
		if grp.Oneof {
			x.genOneofMarshal(grp)
			continue
		}
		x.genFieldMarshal(grp, grp.SoleField())
	}
	g.P("\tm.unknown.WriteTo(w)")
	g.P("}")
	g.P()
}

// pWriteValue emits the tagged write of one already-known-present
// scalar/enum value expression.
func (x *msgGen) pWriteValue(indent string, f *schema.Field, expr string) {
	g := x.g
	g.ImportRuntime("codec")
	if f.DataType == schema.ENUM {
		g.P(indent, "w.PutTag(", f.Number, ", wire.Varint)")
		g.P(indent, "codec.WriteEnumRaw(w, int32(", expr, "))")
		return
	}
	props := scalarTable[f.DataType]
	g.P(indent, "w.PutTag(", f.Number, ", ", props.wire, ")")
	g.P(indent, props.write, "(w, ", expr, ")")
}

func (x *msgGen) genFieldMarshal(grp *schema.FieldGroup, f *schema.Field) {
	g := x.g
	fieldName := groupGoName(grp)
	switch f.Cardinality {
	case schema.MAP_CARDINALITY:
		x.genMapMarshal(grp, f)
	case schema.REPEATED:
		switch {
		case f.DataType == schema.MESSAGE:
			sub := camelCase(f.MessageRef)
			g.P("\tprotomsg.WriteRepeatedUnpacked(w, ", f.Number, ", m.", fieldName, ", func(w *wire.Writer, num wire.Number, v *", sub, ") {")
			g.P("\t\tif v == nil {")
			g.P("\t\t\tv = New", sub, "()")
			g.P("\t\t}")
			g.P("\t\tprotomsg.SerializeSubmessage(w, num, v.marshal, true)")
			g.P("\t})")
		case f.DataType == schema.ENUM:
			g.ImportRuntime("codec")
			g.P("\tprotomsg.WritePackedScalar(w, ", f.Number, ", m.", fieldName, ", func(w *wire.Writer, v ", camelCase(f.EnumRef), ") {")
			g.P("\t\tcodec.WriteEnumRaw(w, int32(v))")
			g.P("\t})")
		case f.DataType.Packable():
			g.ImportRuntime("codec")
			g.P("\tprotomsg.WritePackedScalar(w, ", f.Number, ", m.", fieldName, ", ", scalarTable[f.DataType].write, ")")
		default:
			// string/bytes: one tag per element.
			g.ImportRuntime("codec")
			props := scalarTable[f.DataType]
			g.P("\tprotomsg.WriteRepeatedUnpacked(w, ", f.Number, ", m.", fieldName, ", func(w *wire.Writer, num wire.Number, v ", baseGoType(f.DataType, "", ""), ") {")
			g.P("\t\tw.PutTag(num, wire.Len)")
			g.P("\t\t", props.write, "(w, v)")
			g.P("\t})")
		}
	case schema.OPTIONAL:
		switch f.DataType {
		case schema.MESSAGE:
			g.P("\tif m.", fieldName, " != nil {")
			g.P("\t\tprotomsg.SerializeSubmessage(w, ", f.Number, ", m.", fieldName, ".marshal, true)")
			g.P("\t}")
		case schema.BYTES:
			g.ImportRuntime("codec")
			g.P("\tif m.", fieldName, " != nil {")
			g.P("\t\tw.PutTag(", f.Number, ", wire.Len)")
			g.P("\t\tcodec.WriteBytes(w, m.", fieldName, ")")
			g.P("\t}")
		default:
			g.P("\tif m.", fieldName, " != nil {")
			x.pWriteValue("\t\t", f, "*m."+fieldName)
			g.P("\t}")
		}
	default: // SINGULAR
		if f.DataType == schema.MESSAGE {
			g.P("\tif m.", fieldName, " != nil {")
			g.P("\t\tprotomsg.SerializeSubmessage(w, ", f.Number, ", m.", fieldName, ".marshal, false)")
			g.P("\t}")
			return
		}
		g.P("\tif ", nonDefaultCheck("m."+fieldName, f.DataType), " {")
		x.pWriteValue("\t\t", f, "m."+fieldName)
		g.P("\t}")
	}
}

func (x *msgGen) genMapMarshal(grp *schema.FieldGroup, f *schema.Field) {
	g := x.g
	g.Import("sort")
	g.ImportRuntime("codec")
	fieldName := groupGoName(grp)
	keyType := baseGoType(f.KeyType, "", "")
	g.P("\tif len(m.", fieldName, ") > 0 {")
	g.P("\t\tkeys := make([]", keyType, ", 0, len(m.", fieldName, "))")
	g.P("\t\tfor k := range m.", fieldName, " {")
	g.P("\t\t\tkeys = append(keys, k)")
	g.P("\t\t}")
	switch f.KeyType {
	case schema.STRING:
		g.P("\t\tsort.Strings(keys)")
	case schema.BOOL:
		g.P("\t\tsort.Slice(keys, func(i, j int) bool { return !keys[i] && keys[j] })")
	default:
		g.P("\t\tsort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })")
	}
	g.P("\t\tfor _, k := range keys {")
	g.P("\t\t\tprotomsg.WriteMapEntry(w, ", f.Number, ", k, m.", fieldName, "[k],")
	keyProps := scalarTable[f.KeyType]
	g.P("\t\t\t\tfunc(w *wire.Writer, num wire.Number, v ", keyType, ") {")
	g.P("\t\t\t\t\tw.PutTag(num, ", keyProps.wire, ")")
	g.P("\t\t\t\t\t", keyProps.write, "(w, v)")
	g.P("\t\t\t\t},")
	switch f.ValueType {
	case schema.MESSAGE:
		sub := camelCase(f.ValueMsgRef)
		g.P("\t\t\t\tfunc(w *wire.Writer, num wire.Number, v *", sub, ") {")
		g.P("\t\t\t\t\tif v == nil {")
		g.P("\t\t\t\t\t\tv = New", sub, "()")
		g.P("\t\t\t\t\t}")
		g.P("\t\t\t\t\tprotomsg.SerializeSubmessage(w, num, v.marshal, true)")
		g.P("\t\t\t\t})")
	case schema.ENUM:
		g.P("\t\t\t\tfunc(w *wire.Writer, num wire.Number, v ", camelCase(f.ValueEnumRef), ") {")
		g.P("\t\t\t\t\tw.PutTag(num, wire.Varint)")
		g.P("\t\t\t\t\tcodec.WriteEnumRaw(w, int32(v))")
		g.P("\t\t\t\t})")
	default:
		valProps := scalarTable[f.ValueType]
		g.P("\t\t\t\tfunc(w *wire.Writer, num wire.Number, v ", baseGoType(f.ValueType, "", ""), ") {")
		g.P("\t\t\t\t\tw.PutTag(num, ", valProps.wire, ")")
		g.P("\t\t\t\t\t", valProps.write, "(w, v)")
		g.P("\t\t\t\t})")
	}
	g.P("\t\t}")
	g.P("\t}")
}

func (x *msgGen) genBinary() {
	g := x.g
	g.P("// MarshalBinary implements encoding.BinaryMarshaler for generic")
	g.P("// persistence.")
	g.P("func (m *", x.name, ") MarshalBinary() ([]byte, error) {")
	g.P("\treturn m.ToBytes(), nil")
	g.P("}")
	g.P()
	g.P("// UnmarshalBinary implements encoding.BinaryUnmarshaler.")
	g.P("func (m *", x.name, ") UnmarshalBinary(b []byte) error {")
	g.P("\treturn m.ParseInto(b, protomsg.DefaultParseFlags)")
	g.P("}")
	g.P()
}

func (x *msgGen) genToDict() {
	g := x.g
	g.P("// ToDict projects m into a generic mapping keyed by field-group name.")
	g.P("// Sub-messages are recursively projected through their own ToDict;")
	g.P("// lists and maps are copied, scalars pass through.")
	g.P("func (m *", x.name, ") ToDict() map[string]interface{} {")
	g.P("\td := map[string]interface{}{}")
	for i := range x.m.Groups {
		grp := &x.m.Groups[i]
		if grp.Oneof {
			x.genOneofToDict(grp)
			continue
		}
		f := grp.SoleField()
		fieldName := groupGoName(grp)
		key := quote(grp.Name)
		switch f.Cardinality {
		case schema.MAP_CARDINALITY:
			if f.ValueType == schema.MESSAGE {
				g.P("\t", lowerFirst(fieldName), " := make(map[", baseGoType(f.KeyType, "", ""), "]map[string]interface{}, len(m.", fieldName, "))")
				g.P("\tfor k, v := range m.", fieldName, " {")
				g.P("\t\tif v != nil {")
				g.P("\t\t\t", lowerFirst(fieldName), "[k] = v.ToDict()")
				g.P("\t\t}")
				g.P("\t}")
				g.P("\td[", key, "] = ", lowerFirst(fieldName))
			} else {
				g.P("\t", lowerFirst(fieldName), " := make(", x.fieldGoType(grp), ", len(m.", fieldName, "))")
				g.P("\tfor k, v := range m.", fieldName, " {")
				g.P("\t\t", lowerFirst(fieldName), "[k] = v")
				g.P("\t}")
				g.P("\td[", key, "] = ", lowerFirst(fieldName))
			}
		case schema.REPEATED:
			if f.DataType == schema.MESSAGE {
				g.P("\t", lowerFirst(fieldName), " := make([]map[string]interface{}, len(m.", fieldName, "))")
				g.P("\tfor i, v := range m.", fieldName, " {")
				g.P("\t\tif v != nil {")
				g.P("\t\t\t", lowerFirst(fieldName), "[i] = v.ToDict()")
				g.P("\t\t}")
				g.P("\t}")
				g.P("\td[", key, "] = ", lowerFirst(fieldName))
			} else {
				g.P("\td[", key, "] = append(", x.fieldGoType(grp), "(nil), m.", fieldName, "...)")
			}
		case schema.OPTIONAL:
			switch f.DataType {
			case schema.MESSAGE:
				g.P("\tif m.", fieldName, " != nil {")
				g.P("\t\td[", key, "] = m.", fieldName, ".ToDict()")
				g.P("\t} else {")
				g.P("\t\td[", key, "] = nil")
				g.P("\t}")
			case schema.BYTES:
				g.P("\tif m.", fieldName, " != nil {")
				g.P("\t\td[", key, "] = append([]byte(nil), m.", fieldName, "...)")
				g.P("\t} else {")
				g.P("\t\td[", key, "] = nil")
				g.P("\t}")
			default:
				g.P("\tif m.", fieldName, " != nil {")
				g.P("\t\td[", key, "] = *m.", fieldName)
				g.P("\t} else {")
				g.P("\t\td[", key, "] = nil")
				g.P("\t}")
			}
		default:
			switch f.DataType {
			case schema.MESSAGE:
				g.P("\tif m.", fieldName, " != nil {")
				g.P("\t\td[", key, "] = m.", fieldName, ".ToDict()")
				g.P("\t} else {")
				g.P("\t\td[", key, "] = nil")
				g.P("\t}")
			case schema.BYTES:
				g.P("\td[", key, "] = append([]byte(nil), m.", fieldName, "...)")
			default:
				g.P("\td[", key, "] = m.", fieldName)
			}
		}
	}
	g.P("\treturn d")
	g.P("}")
	g.P()
}

func (x *msgGen) genEqual() {
	g := x.g
	g.P("// Equal reports field-group-wise structural equality, recursive on")
	g.P("// sub-messages. A nil message compares equal to one holding only")
	g.P("// defaults.")
	g.P("func (m *", x.name, ") Equal(o *", x.name, ") bool {")
	g.P("\tif m == nil {")
	g.P("\t\tm = New", x.name, "()")
	g.P("\t}")
	g.P("\tif o == nil {")
	g.P("\t\to = New", x.name, "()")
	g.P("\t}")
	for i := range x.m.Groups {
		grp := &x.m.Groups[i]
		if grp.Oneof {
			x.genOneofEqual(grp)
			continue
		}
		f := grp.SoleField()
		fieldName := groupGoName(grp)
		switch f.Cardinality {
		case schema.MAP_CARDINALITY:
			g.P("\tif len(m.", fieldName, ") != len(o.", fieldName, ") {")
			g.P("\t\treturn false")
			g.P("\t}")
			g.P("\tfor k, v := range m.", fieldName, " {")
			g.P("\t\tov, ok := o.", fieldName, "[k]")
			switch f.ValueType {
			case schema.MESSAGE:
				g.P("\t\tif !ok || !v.Equal(ov) {")
			case schema.BYTES:
				g.Import("bytes")
				g.P("\t\tif !ok || !bytes.Equal(v, ov) {")
			default:
				g.P("\t\tif !ok || ov != v {")
			}
			g.P("\t\t\treturn false")
			g.P("\t\t}")
			g.P("\t}")
		case schema.REPEATED:
			g.P("\tif len(m.", fieldName, ") != len(o.", fieldName, ") {")
			g.P("\t\treturn false")
			g.P("\t}")
			g.P("\tfor i := range m.", fieldName, " {")
			switch f.DataType {
			case schema.MESSAGE:
				g.P("\t\tif !m.", fieldName, "[i].Equal(o.", fieldName, "[i]) {")
			case schema.BYTES:
				g.Import("bytes")
				g.P("\t\tif !bytes.Equal(m.", fieldName, "[i], o.", fieldName, "[i]) {")
			default:
				g.P("\t\tif m.", fieldName, "[i] != o.", fieldName, "[i] {")
			}
			g.P("\t\t\treturn false")
			g.P("\t\t}")
			g.P("\t}")
		case schema.OPTIONAL:
			switch f.DataType {
			case schema.MESSAGE:
				g.P("\tif (m.", fieldName, " == nil) != (o.", fieldName, " == nil) {")
				g.P("\t\treturn false")
				g.P("\t}")
				g.P("\tif m.", fieldName, " != nil && !m.", fieldName, ".Equal(o.", fieldName, ") {")
				g.P("\t\treturn false")
				g.P("\t}")
			case schema.BYTES:
				g.Import("bytes")
				g.P("\tif (m.", fieldName, " == nil) != (o.", fieldName, " == nil) {")
				g.P("\t\treturn false")
				g.P("\t}")
				g.P("\tif !bytes.Equal(m.", fieldName, ", o.", fieldName, ") {")
				g.P("\t\treturn false")
				g.P("\t}")
			default:
				g.P("\tif (m.", fieldName, " == nil) != (o.", fieldName, " == nil) {")
				g.P("\t\treturn false")
				g.P("\t}")
				g.P("\tif m.", fieldName, " != nil && *m.", fieldName, " != *o.", fieldName, " {")
				g.P("\t\treturn false")
				g.P("\t}")
			}
		default:
			switch f.DataType {
			case schema.MESSAGE:
				g.P("\tif !m.", fieldName, ".Equal(o.", fieldName, ") {")
				g.P("\t\treturn false")
				g.P("\t}")
			case schema.BYTES:
				g.Import("bytes")
				g.P("\tif !bytes.Equal(m.", fieldName, ", o.", fieldName, ") {")
				g.P("\t\treturn false")
				g.P("\t}")
			default:
				g.P("\tif m.", fieldName, " != o.", fieldName, " {")
				g.P("\t\treturn false")
				g.P("\t}")
			}
		}
	}
	g.P("\treturn m.unknown.Equal(&o.unknown)")
	g.P("}")
	g.P()
}

func (x *msgGen) genString() {
	g := x.g
	g.Import("strings")
	g.P("func (m *", x.name, ") String() string {")
	g.P("\tvar b strings.Builder")
	g.P("\tb.WriteString(", quote(x.g.pkgName+"."+x.name+"("), ")")
	for i := range x.m.Groups {
		grp := &x.m.Groups[i]
		sep := ", "
		if i == 0 {
			sep = ""
		}
		if grp.Oneof {
			x.genOneofString(grp, sep)
			continue
		}
		f := grp.SoleField()
		fieldName := groupGoName(grp)
		label := sep + grp.Name + "="
		switch {
		case f.Cardinality == schema.OPTIONAL && f.DataType != schema.BYTES && f.DataType != schema.MESSAGE:
			g.Import("fmt")
			g.P("\tb.WriteString(", quote(label), ")")
			g.P("\tif m.", fieldName, " != nil {")
			g.P("\t\tfmt.Fprintf(&b, \"%v\", *m.", fieldName, ")")
			g.P("\t} else {")
			g.P("\t\tb.WriteString(\"nil\")")
			g.P("\t}")
		case f.Cardinality == schema.OPTIONAL && f.DataType == schema.BYTES:
			g.P("\tb.WriteString(", quote(label), ")")
			g.P("\tif m.", fieldName, " != nil {")
			g.P("\t\tb.WriteString(protomsg.FormatBytes(m.", fieldName, "))")
			g.P("\t} else {")
			g.P("\t\tb.WriteString(\"nil\")")
			g.P("\t}")
		case f.Cardinality == schema.SINGULAR && f.DataType == schema.STRING:
			g.P("\tb.WriteString(", quote(label), ")")
			g.P("\tb.WriteString(protomsg.FormatString(m.", fieldName, "))")
		case f.Cardinality == schema.SINGULAR && f.DataType == schema.BYTES:
			g.P("\tb.WriteString(", quote(label), ")")
			g.P("\tb.WriteString(protomsg.FormatBytes(m.", fieldName, "))")
		case f.Cardinality != schema.REPEATED && f.Cardinality != schema.MAP_CARDINALITY && f.DataType == schema.MESSAGE:
			g.P("\tb.WriteString(", quote(label), ")")
			g.P("\tif m.", fieldName, " != nil {")
			g.P("\t\tb.WriteString(m.", fieldName, ".String())")
			g.P("\t} else {")
			g.P("\t\tb.WriteString(\"nil\")")
			g.P("\t}")
		default:
			g.Import("fmt")
			g.P("\tfmt.Fprintf(&b, ", quote(label+"%v"), ", m.", fieldName, ")")
		}
	}
	g.P("\tb.WriteString(\")\")")
	g.P("\treturn b.String()")
	g.P("}")
	g.P()
}

func (x *msgGen) genClone() {
	g := x.g
	g.P("// Clone returns a deep copy of m.")
	g.P("func (m *", x.name, ") Clone() *", x.name, " {")
	g.P("\tif m == nil {")
	g.P("\t\treturn nil")
	g.P("\t}")
	g.P("\tout := New", x.name, "()")
	for i := range x.m.Groups {
		grp := &x.m.Groups[i]
		if grp.Oneof {
			x.genOneofClone(grp)
			continue
		}
		f := grp.SoleField()
		fieldName := groupGoName(grp)
		switch f.Cardinality {
		case schema.MAP_CARDINALITY:
			g.P("\tif m.", fieldName, " != nil {")
			g.P("\t\tout.", fieldName, " = make(", x.fieldGoType(grp), ", len(m.", fieldName, "))")
			g.P("\t\tfor k, v := range m.", fieldName, " {")
			switch f.ValueType {
			case schema.MESSAGE:
				g.P("\t\t\tout.", fieldName, "[k] = v.Clone()")
			case schema.BYTES:
				g.P("\t\t\tout.", fieldName, "[k] = append([]byte(nil), v...)")
			default:
				g.P("\t\t\tout.", fieldName, "[k] = v")
			}
			g.P("\t\t}")
			g.P("\t}")
		case schema.REPEATED:
			switch f.DataType {
			case schema.MESSAGE:
				g.P("\tif m.", fieldName, " != nil {")
				g.P("\t\tout.", fieldName, " = make(", x.fieldGoType(grp), ", len(m.", fieldName, "))")
				g.P("\t\tfor i, v := range m.", fieldName, " {")
				g.P("\t\t\tout.", fieldName, "[i] = v.Clone()")
				g.P("\t\t}")
				g.P("\t}")
			case schema.BYTES:
				g.P("\tif m.", fieldName, " != nil {")
				g.P("\t\tout.", fieldName, " = make(", x.fieldGoType(grp), ", len(m.", fieldName, "))")
				g.P("\t\tfor i, v := range m.", fieldName, " {")
				g.P("\t\t\tout.", fieldName, "[i] = append([]byte(nil), v...)")
				g.P("\t\t}")
				g.P("\t}")
			default:
				g.P("\tout.", fieldName, " = append(", x.fieldGoType(grp), "(nil), m.", fieldName, "...)")
			}
		case schema.OPTIONAL:
			switch f.DataType {
			case schema.MESSAGE:
				g.P("\tout.", fieldName, " = m.", fieldName, ".Clone()")
			case schema.BYTES:
				g.P("\tif m.", fieldName, " != nil {")
				g.P("\t\tout.", fieldName, " = append([]byte{}, m.", fieldName, "...)")
				g.P("\t}")
			default:
				g.P("\tif m.", fieldName, " != nil {")
				g.P("\t\tv := *m.", fieldName)
				g.P("\t\tout.", fieldName, " = &v")
				g.P("\t}")
			}
		default:
			switch f.DataType {
			case schema.MESSAGE:
				g.P("\tout.", fieldName, " = m.", fieldName, ".Clone()")
			case schema.BYTES:
				g.P("\tout.", fieldName, " = append([]byte(nil), m.", fieldName, "...)")
			default:
				g.P("\tout.", fieldName, " = m.", fieldName)
			}
		}
	}
	g.P("\tout.unknown = m.unknown.Clone()")
	g.P("\treturn out")
	g.P("}")
	g.P()
}

func (x *msgGen) genOverrides() {
	g := x.g
	g.P("// ", x.name, "Override replaces one field group on a CopyWith copy.")
	g.P("type ", x.name, "Override func(*", x.name, ")")
	g.P()
	for i := range x.m.Groups {
		grp := &x.m.Groups[i]
		fieldName := groupGoName(grp)
		g.P("func ", x.name, "With", fieldName, "(v ", x.fieldGoType(grp), ") ", x.name, "Override {")
		g.P("\treturn func(m *", x.name, ") { m.", fieldName, " = v }")
		g.P("}")
		g.P()
	}
	g.P("// CopyWith returns a deep copy of m with the listed field groups")
	g.P("// replaced.")
	g.P("func (m *", x.name, ") CopyWith(overrides ...", x.name, "Override) *", x.name, " {")
	g.P("\tout := m.Clone()")
	g.P("\tfor _, o := range overrides {")
	g.P("\t\to(out)")
	g.P("\t}")
	g.P("\treturn out")
	g.P("}")
	g.P()
}

func (x *msgGen) genUnknownAccessors() {
	g := x.g
	g.P("// HasUnknown reports whether any unknown fields were retained by a")
	g.P("// prior parse.")
	g.P("func (m *", x.name, ") HasUnknown() bool { return m.unknown.Len() > 0 }")
	g.P()
	g.P("// ClearUnknown discards every retained unknown field.")
	g.P("func (m *", x.name, ") ClearUnknown() { m.unknown.Reset() }")
	g.P()
}

// nonDefaultCheck is the condition under which a SINGULAR field is
// serialized rather than elided.
func nonDefaultCheck(expr string, dt schema.DataType) string {
	switch dt {
	case schema.BOOL:
		return expr
	case schema.STRING:
		return expr + ` != ""`
	case schema.BYTES:
		return "len(" + expr + ") > 0"
	default:
		return expr + " != 0"
	}
}

// zeroLit is the Go literal for a data type's default, used to seed
// map-entry parsing.
func zeroLit(dt schema.DataType) string {
	switch dt {
	case schema.BOOL:
		return "false"
	case schema.STRING:
		return `""`
	case schema.BYTES:
		return "nil"
	default:
		return "0"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if 'A' <= b[0] && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	out := string(b)
	// Avoid shadowing identifiers already in the emitted scope.
	switch out {
	case "m", "o", "w", "r", "b", "d", "k", "v", "err", "out", "keys":
		return out + "Val"
	}
	return out
}
