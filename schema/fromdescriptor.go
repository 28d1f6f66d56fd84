// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

package schema

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"
)

// FromFileDescriptorProto adapts a real descriptorpb.FileDescriptorProto
// (as produced by any standard proto3 front-end, protoc included) into
// this package's lightweight schema.Module IR. This is the seam spec.md
// §1 calls out: "assume descriptors are produced by an external
// front-end" — this adapter lets that front-end be the real protoc
// descriptor format rather than forcing every caller to hand-build a
// schema.Module.
//
// Only proto3 shapes are accepted: a field with a oneof_index is
// treated as belonging to that oneof's FieldGroup, a nested message
// carrying the (deprecated but universally-emitted) map_entry option
// collapses its owning field into a MAP_CARDINALITY field rather than
// a MESSAGE-typed repeated field, and group-encoded fields
// (TYPE_GROUP) are rejected outright per spec.md §1's "groups ...
// explicitly unsupported."
func FromFileDescriptorProto(fd *descriptorpb.FileDescriptorProto) (*Module, error) {
	mod := &Module{Name: fd.GetName()}

	// Keyed by fully qualified nested type name with the leading dot
	// descriptor type references carry (".pkg.Msg.Entry").
	mapEntries := map[string]*descriptorpb.DescriptorProto{}
	pkg := ""
	if p := fd.GetPackage(); p != "" {
		pkg = "." + p
	}

	var collect func(prefix string, msgs []*descriptorpb.DescriptorProto)
	collect = func(prefix string, msgs []*descriptorpb.DescriptorProto) {
		for _, m := range msgs {
			full := prefix + "." + m.GetName()
			if m.GetOptions().GetMapEntry() {
				mapEntries[full] = m
			}
			collect(full, m.GetNestedType())
		}
	}
	collect(pkg, fd.GetMessageType())

	for _, ed := range fd.GetEnumType() {
		e, err := enumFromProto(ed)
		if err != nil {
			return nil, err
		}
		mod.Enums = append(mod.Enums, *e)
	}

	var walkMessages func(prefix string, msgs []*descriptorpb.DescriptorProto) error
	walkMessages = func(prefix string, msgs []*descriptorpb.DescriptorProto) error {
		for _, md := range msgs {
			full := prefix + "." + md.GetName()
			if md.GetOptions().GetMapEntry() {
				continue // synthesized by a map field; not a real message
			}
			for _, ed := range md.GetEnumType() {
				e, err := enumFromProto(ed)
				if err != nil {
					return err
				}
				mod.Enums = append(mod.Enums, *e)
			}
			msg, err := messageFromProto(md, mapEntries)
			if err != nil {
				return err
			}
			mod.Messages = append(mod.Messages, *msg)
			if err := walkMessages(full, md.GetNestedType()); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walkMessages(pkg, fd.GetMessageType()); err != nil {
		return nil, err
	}
	return mod, mod.Validate()
}

func enumFromProto(ed *descriptorpb.EnumDescriptorProto) (*Enum, error) {
	e := &Enum{Name: ed.GetName()}
	for _, v := range ed.GetValue() {
		e.Values = append(e.Values, EnumValue{Name: v.GetName(), Number: v.GetNumber()})
	}
	return e, nil
}

func messageFromProto(md *descriptorpb.DescriptorProto, mapEntries map[string]*descriptorpb.DescriptorProto) (*Message, error) {
	msg := &Message{Name: md.GetName()}

	// groupIndexOfOneof[i] is the index into msg.Groups of the
	// FieldGroup for oneof i, once its first member has been seen; -1
	// until then.
	groupIndexOfOneof := make([]int, len(md.GetOneofDecl()))
	for i := range groupIndexOfOneof {
		groupIndexOfOneof[i] = -1
	}

	for _, fdp := range md.GetField() {
		f, _, err := fieldFromProto(fdp, mapEntries)
		if err != nil {
			return nil, fmt.Errorf("message %s: %w", md.GetName(), err)
		}
		if fdp.OneofIndex != nil && !fdp.GetProto3Optional() {
			idx := int(fdp.GetOneofIndex())
			if groupIndexOfOneof[idx] == -1 {
				od := md.GetOneofDecl()[idx]
				msg.Groups = append(msg.Groups, FieldGroup{Name: od.GetName(), Oneof: true})
				groupIndexOfOneof[idx] = len(msg.Groups) - 1
			}
			gi := groupIndexOfOneof[idx]
			msg.Groups[gi].Fields = append(msg.Groups[gi].Fields, *f)
			continue
		}
		switch {
		case fdp.GetProto3Optional():
			f.Cardinality = OPTIONAL
		case fdp.GetLabel() == descriptorpb.FieldDescriptorProto_LABEL_REPEATED && f.Cardinality != MAP_CARDINALITY:
			f.Cardinality = REPEATED
		case f.Cardinality != MAP_CARDINALITY:
			f.Cardinality = SINGULAR
		}
		msg.Groups = append(msg.Groups, FieldGroup{Name: f.Name, Fields: []Field{*f}})
	}

	return msg, msg.Validate()
}

var fieldTypeMap = map[descriptorpb.FieldDescriptorProto_Type]DataType{
	descriptorpb.FieldDescriptorProto_TYPE_FLOAT:    FLOAT,
	descriptorpb.FieldDescriptorProto_TYPE_DOUBLE:   DOUBLE,
	descriptorpb.FieldDescriptorProto_TYPE_INT32:    INT32,
	descriptorpb.FieldDescriptorProto_TYPE_UINT32:   UINT32,
	descriptorpb.FieldDescriptorProto_TYPE_SINT32:   SINT32,
	descriptorpb.FieldDescriptorProto_TYPE_INT64:    INT64,
	descriptorpb.FieldDescriptorProto_TYPE_UINT64:   UINT64,
	descriptorpb.FieldDescriptorProto_TYPE_SINT64:   SINT64,
	descriptorpb.FieldDescriptorProto_TYPE_FIXED32:  FIXED32,
	descriptorpb.FieldDescriptorProto_TYPE_SFIXED32: SFIXED32,
	descriptorpb.FieldDescriptorProto_TYPE_FIXED64:  FIXED64,
	descriptorpb.FieldDescriptorProto_TYPE_SFIXED64: SFIXED64,
	descriptorpb.FieldDescriptorProto_TYPE_BOOL:     BOOL,
	descriptorpb.FieldDescriptorProto_TYPE_ENUM:     ENUM,
	descriptorpb.FieldDescriptorProto_TYPE_STRING:   STRING,
	descriptorpb.FieldDescriptorProto_TYPE_BYTES:    BYTES,
	descriptorpb.FieldDescriptorProto_TYPE_MESSAGE:  MESSAGE,
}

func shortName(typeName string) string {
	i := strings.LastIndex(typeName, ".")
	if i < 0 {
		return typeName
	}
	return typeName[i+1:]
}

func fieldFromProto(fdp *descriptorpb.FieldDescriptorProto, mapEntries map[string]*descriptorpb.DescriptorProto) (*Field, string, error) {
	f := &Field{Name: fdp.GetName(), Number: fdp.GetNumber()}

	if fdp.GetType() == descriptorpb.FieldDescriptorProto_TYPE_GROUP {
		return nil, "", fmt.Errorf("field %s: groups (TYPE_GROUP) are not supported", fdp.GetName())
	}

	if fdp.GetLabel() == descriptorpb.FieldDescriptorProto_LABEL_REPEATED {
		if md, ok := mapEntries[fdp.GetTypeName()]; ok {
			f.Cardinality = MAP_CARDINALITY
			keyField, valField := md.GetField()[0], md.GetField()[1]
			f.KeyType = fieldTypeMap[keyField.GetType()]
			f.ValueType = fieldTypeMap[valField.GetType()]
			switch f.ValueType {
			case ENUM:
				f.ValueEnumRef = shortName(valField.GetTypeName())
			case MESSAGE:
				f.ValueMsgRef = shortName(valField.GetTypeName())
			}
			f.DataType = MAP
			return f, fdp.GetTypeName(), nil
		}
	}

	dt, ok := fieldTypeMap[fdp.GetType()]
	if !ok {
		return nil, "", fmt.Errorf("field %s: unsupported descriptor type %v", fdp.GetName(), fdp.GetType())
	}
	f.DataType = dt
	switch dt {
	case ENUM:
		f.EnumRef = shortName(fdp.GetTypeName())
	case MESSAGE:
		f.MessageRef = shortName(fdp.GetTypeName())
	}
	return f, "", nil
}
