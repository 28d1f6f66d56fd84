// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

package gen

import (
	"github.com/golang/protobuf-gocodec/schema"
)

// Oneof groups are generated as a tagged sum: an unexported interface
// with one implementing wrapper struct per candidate field. The wire
// format carries the discriminator as the field number, so parse
// assigns the matching wrapper; serialize dispatches with an
// exhaustive type switch instead of probing candidates for a type
// match at runtime.

// wrapperName is the Go type name of one candidate's wrapper struct.
func (x *msgGen) wrapperName(f *schema.Field) string {
	return x.name + "_" + camelCase(f.Name)
}

// ifaceName is the Go name of the group's sum interface.
func (x *msgGen) ifaceName(grp *schema.FieldGroup) string {
	return "is" + x.name + "_" + groupGoName(grp)
}

func (x *msgGen) genOneofDecls(grp *schema.FieldGroup) {
	g := x.g
	iface := x.ifaceName(grp)
	g.P("// ", iface, " is implemented by exactly the candidate types")
	g.P("// of the ", grp.Name, " group.")
	g.P("type ", iface, " interface {")
	g.P("\t", iface, "()")
	g.P("}")
	g.P()
	for i := range grp.Fields {
		f := &grp.Fields[i]
		g.P("type ", x.wrapperName(f), " struct {")
		g.P("\t", camelCase(f.Name), " ", baseGoType(f.DataType, f.EnumRef, f.MessageRef))
		g.P("}")
		g.P()
	}
	for i := range grp.Fields {
		f := &grp.Fields[i]
		g.P("func (*", x.wrapperName(f), ") ", iface, "() {}")
	}
	g.P()
}

func (x *msgGen) genOneofParseCase(grp *schema.FieldGroup, f *schema.Field) {
	g := x.g
	fieldName := groupGoName(grp)
	wrapper := x.wrapperName(f)
	member := camelCase(f.Name)
	switch f.DataType {
	case schema.MESSAGE:
		x.pMismatchGuard(grp, f, "wire.Len")
		sub := camelCase(f.MessageRef)
		g.P("\t\t\tsub := New", sub, "()")
		g.P("\t\t\tif err := protomsg.ParseSubmessage(r, func(sr *wire.Reader) error {")
		g.P("\t\t\t\treturn sub.parse(sr, flags)")
		g.P("\t\t\t}); err != nil {")
		g.P("\t\t\t\treturn protomsg.WrapField(err, ", quote(grp.Name), ", ", f.Number, ", start)")
		g.P("\t\t\t}")
		g.P("\t\t\tm.", fieldName, " = &", wrapper, "{", member, ": sub}")
	case schema.ENUM:
		x.pMismatchGuard(grp, f, "wire.Varint")
		x.pEnumRead(grp, f, "m."+fieldName+" = &"+wrapper+"{"+member+": v}")
	default:
		props := scalarTable[f.DataType]
		g.ImportRuntime("codec")
		x.pMismatchGuard(grp, f, props.wire)
		g.P("\t\t\tv, err := ", props.read, "(r)")
		x.pWrapReturn("\t\t\t", grp, f)
		g.P("\t\t\tm.", fieldName, " = &", wrapper, "{", member, ": v}")
	}
}

func (x *msgGen) genOneofMarshal(grp *schema.FieldGroup) {
	g := x.g
	fieldName := groupGoName(grp)
	g.P("\tswitch v := m.", fieldName, ".(type) {")
	g.P("\tcase nil:")
	for i := range grp.Fields {
		f := &grp.Fields[i]
		member := camelCase(f.Name)
		g.P("\tcase *", x.wrapperName(f), ":")
		if f.DataType == schema.MESSAGE {
			g.P("\t\tif v.", member, " != nil {")
			g.P("\t\t\tprotomsg.SerializeSubmessage(w, ", f.Number, ", v.", member, ".marshal, false)")
			g.P("\t\t}")
			continue
		}
		g.P("\t\tif ", nonDefaultCheck("v."+member, f.DataType), " {")
		x.pWriteValue("\t\t\t", f, "v."+member)
		g.P("\t\t}")
	}
	g.P("\t}")
}

func (x *msgGen) genOneofToDict(grp *schema.FieldGroup) {
	g := x.g
	fieldName := groupGoName(grp)
	key := quote(grp.Name)
	g.P("\tswitch v := m.", fieldName, ".(type) {")
	g.P("\tcase nil:")
	g.P("\t\td[", key, "] = nil")
	for i := range grp.Fields {
		f := &grp.Fields[i]
		member := camelCase(f.Name)
		g.P("\tcase *", x.wrapperName(f), ":")
		switch f.DataType {
		case schema.MESSAGE:
			g.P("\t\tif v.", member, " != nil {")
			g.P("\t\t\td[", key, "] = v.", member, ".ToDict()")
			g.P("\t\t} else {")
			g.P("\t\t\td[", key, "] = nil")
			g.P("\t\t}")
		case schema.BYTES:
			g.P("\t\td[", key, "] = append([]byte(nil), v.", member, "...)")
		default:
			g.P("\t\td[", key, "] = v.", member)
		}
	}
	g.P("\t}")
}

func (x *msgGen) genOneofEqual(grp *schema.FieldGroup) {
	g := x.g
	fieldName := groupGoName(grp)
	g.P("\tswitch v := m.", fieldName, ".(type) {")
	g.P("\tcase nil:")
	g.P("\t\tif o.", fieldName, " != nil {")
	g.P("\t\t\treturn false")
	g.P("\t\t}")
	for i := range grp.Fields {
		f := &grp.Fields[i]
		member := camelCase(f.Name)
		g.P("\tcase *", x.wrapperName(f), ":")
		g.P("\t\tov, ok := o.", fieldName, ".(*", x.wrapperName(f), ")")
		switch f.DataType {
		case schema.MESSAGE:
			g.P("\t\tif !ok || !v.", member, ".Equal(ov.", member, ") {")
		case schema.BYTES:
			g.Import("bytes")
			g.P("\t\tif !ok || !bytes.Equal(v.", member, ", ov.", member, ") {")
		default:
			g.P("\t\tif !ok || ov.", member, " != v.", member, " {")
		}
		g.P("\t\t\treturn false")
		g.P("\t\t}")
	}
	g.P("\t}")
}

func (x *msgGen) genOneofString(grp *schema.FieldGroup, sep string) {
	g := x.g
	fieldName := groupGoName(grp)
	g.P("\tb.WriteString(", quote(sep+grp.Name+"="), ")")
	g.P("\tswitch v := m.", fieldName, ".(type) {")
	g.P("\tcase nil:")
	g.P("\t\tb.WriteString(\"nil\")")
	for i := range grp.Fields {
		f := &grp.Fields[i]
		member := camelCase(f.Name)
		g.P("\tcase *", x.wrapperName(f), ":")
		switch f.DataType {
		case schema.MESSAGE:
			g.P("\t\tif v.", member, " != nil {")
			g.P("\t\t\tb.WriteString(v.", member, ".String())")
			g.P("\t\t} else {")
			g.P("\t\t\tb.WriteString(\"nil\")")
			g.P("\t\t}")
		case schema.STRING:
			g.P("\t\tb.WriteString(protomsg.FormatString(v.", member, "))")
		case schema.BYTES:
			g.P("\t\tb.WriteString(protomsg.FormatBytes(v.", member, "))")
		case schema.ENUM:
			g.P("\t\tb.WriteString(v.", member, ".String())")
		default:
			g.Import("fmt")
			g.P("\t\tfmt.Fprintf(&b, \"%v\", v.", member, ")")
		}
	}
	g.P("\t}")
}

func (x *msgGen) genOneofClone(grp *schema.FieldGroup) {
	g := x.g
	fieldName := groupGoName(grp)
	g.P("\tswitch v := m.", fieldName, ".(type) {")
	for i := range grp.Fields {
		f := &grp.Fields[i]
		member := camelCase(f.Name)
		g.P("\tcase *", x.wrapperName(f), ":")
		switch f.DataType {
		case schema.MESSAGE:
			g.P("\t\tout.", fieldName, " = &", x.wrapperName(f), "{", member, ": v.", member, ".Clone()}")
		case schema.BYTES:
			g.P("\t\tout.", fieldName, " = &", x.wrapperName(f), "{", member, ": append([]byte(nil), v.", member, "...)}")
		default:
			g.P("\t\tout.", fieldName, " = &", x.wrapperName(f), "{", member, ": v.", member, "}")
		}
	}
	g.P("\t}")
}
