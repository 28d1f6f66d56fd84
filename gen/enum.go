// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

package gen

import "github.com/golang/protobuf-gocodec/schema"

// genEnum emits one enum type: an int32-backed named type, one
// constant per declared member, the int<->name lookup tables
// (initialized at module load and immutable thereafter), a String
// method, and the FromNumber function generated parse code uses to
// reject undeclared integers.
func genEnum(g *generatedFile, e *schema.Enum) {
	name := camelCase(e.Name)
	g.Import("fmt")
	g.ImportRuntime("codec")

	if e.Comment != "" {
		g.P("// ", name, ": ", e.Comment)
	}
	g.P("type ", name, " int32")
	g.P()
	g.P("const (")
	for _, v := range e.Values {
		g.P("\t", name, "_", v.Name, " ", name, " = ", v.Number)
	}
	g.P(")")
	g.P()
	g.P("var ", name, "_name = map[int32]string{")
	seen := map[int32]bool{}
	for _, v := range e.Values {
		// Aliased numbers keep the first declared name, matching the
		// C++ generator's name table behavior.
		if seen[v.Number] {
			continue
		}
		seen[v.Number] = true
		g.P("\t", v.Number, ": ", quote(v.Name), ",")
	}
	g.P("}")
	g.P()
	g.P("var ", name, "_value = map[string]int32{")
	for _, v := range e.Values {
		g.P("\t", quote(v.Name), ": ", v.Number, ",")
	}
	g.P("}")
	g.P()
	g.P("func (x ", name, ") String() string {")
	g.P("\tif s, ok := ", name, "_name[int32(x)]; ok {")
	g.P("\t\treturn s")
	g.P("\t}")
	g.P("\treturn fmt.Sprintf(", quote(name+"(%d)"), ", int32(x))")
	g.P("}")
	g.P()
	g.P("// ", name, "FromNumber maps a decoded integer back to a declared member,")
	g.P("// failing on integers with no corresponding member.")
	g.P("func ", name, "FromNumber(n int32) (", name, ", error) {")
	g.P("\tif _, ok := ", name, "_name[n]; !ok {")
	g.P("\t\treturn 0, &codec.ErrUnknownEnumValue{Enum: ", quote(name), ", Value: n}")
	g.P("\t}")
	g.P("\treturn ", name, "(n), nil")
	g.P("}")
	g.P()
	g.ImportRuntime("wire")
	g.P("// ", name, "FromNumberReader decodes one varint-encoded member from r,")
	g.P("// shaped for the packed-run and map-entry parse helpers.")
	g.P("func ", name, "FromNumberReader(r *wire.Reader) (", name, ", error) {")
	g.P("\traw, err := codec.ReadEnumRaw(r)")
	g.P("\tif err != nil {")
	g.P("\t\treturn 0, err")
	g.P("\t}")
	g.P("\treturn ", name, "FromNumber(raw)")
	g.P("}")
	g.P()
}
