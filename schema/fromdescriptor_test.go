// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

func demoFileDescriptor() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("demo.proto"),
		Package: proto.String("demo"),
		Syntax:  proto.String("proto3"),
		EnumType: []*descriptorpb.EnumDescriptorProto{{
			Name: proto.String("Color"),
			Value: []*descriptorpb.EnumValueDescriptorProto{
				{Name: proto.String("COLOR_UNSPECIFIED"), Number: proto.Int32(0)},
				{Name: proto.String("RED"), Number: proto.Int32(1)},
			},
		}},
		MessageType: []*descriptorpb.DescriptorProto{{
			Name: proto.String("Widget"),
			Field: []*descriptorpb.FieldDescriptorProto{
				{
					Name:   proto.String("id"),
					Number: proto.Int32(1),
					Type:   descriptorpb.FieldDescriptorProto_TYPE_INT64.Enum(),
					Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
				},
				{
					Name:     proto.String("labels"),
					Number:   proto.Int32(2),
					Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
					Label:    descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum(),
					TypeName: proto.String(".demo.Widget.LabelsEntry"),
				},
				{
					Name:       proto.String("color"),
					Number:     proto.Int32(3),
					Type:       descriptorpb.FieldDescriptorProto_TYPE_ENUM.Enum(),
					Label:      descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
					TypeName:   proto.String(".demo.Color"),
					OneofIndex: proto.Int32(0),
				},
				{
					Name:       proto.String("note"),
					Number:     proto.Int32(4),
					Type:       descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum(),
					Label:      descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
					OneofIndex: proto.Int32(0),
				},
				{
					Name:           proto.String("maybe"),
					Number:         proto.Int32(5),
					Type:           descriptorpb.FieldDescriptorProto_TYPE_INT32.Enum(),
					Label:          descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
					OneofIndex:     proto.Int32(1),
					Proto3Optional: proto.Bool(true),
				},
			},
			OneofDecl: []*descriptorpb.OneofDescriptorProto{
				{Name: proto.String("choice")},
				{Name: proto.String("_maybe")},
			},
			NestedType: []*descriptorpb.DescriptorProto{{
				Name:    proto.String("LabelsEntry"),
				Options: &descriptorpb.MessageOptions{MapEntry: proto.Bool(true)},
				Field: []*descriptorpb.FieldDescriptorProto{
					{Name: proto.String("key"), Number: proto.Int32(1), Type: descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum()},
					{Name: proto.String("value"), Number: proto.Int32(2), Type: descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum()},
				},
			}},
		}},
	}
}

func TestFromFileDescriptorProto(t *testing.T) {
	mod, err := FromFileDescriptorProto(demoFileDescriptor())
	require.NoError(t, err)

	require.Len(t, mod.Enums, 1)
	assert.Equal(t, "Color", mod.Enums[0].Name)
	require.Len(t, mod.Enums[0].Values, 2)

	// The synthesized LabelsEntry must not surface as a message.
	require.Len(t, mod.Messages, 1)
	msg := mod.Messages[0]
	assert.Equal(t, "Widget", msg.Name)

	// id, labels, choice (oneof), maybe — the synthetic _maybe oneof
	// collapses into an OPTIONAL field group.
	require.Len(t, msg.Groups, 4)

	id := msg.Groups[0].SoleField()
	assert.Equal(t, INT64, id.DataType)
	assert.Equal(t, SINGULAR, id.Cardinality)

	labels := msg.Groups[1].SoleField()
	assert.Equal(t, MAP_CARDINALITY, labels.Cardinality)
	assert.Equal(t, STRING, labels.KeyType)
	assert.Equal(t, STRING, labels.ValueType)

	choice := msg.Groups[2]
	assert.True(t, choice.Oneof)
	assert.Equal(t, "choice", choice.Name)
	require.Len(t, choice.Fields, 2)
	assert.Equal(t, ENUM, choice.Fields[0].DataType)
	assert.Equal(t, "Color", choice.Fields[0].EnumRef)
	assert.Equal(t, STRING, choice.Fields[1].DataType)

	maybe := msg.Groups[3].SoleField()
	assert.Equal(t, OPTIONAL, maybe.Cardinality)
	assert.Equal(t, INT32, maybe.DataType)
}

func TestFromFileDescriptorProtoRejectsGroups(t *testing.T) {
	fd := demoFileDescriptor()
	fd.MessageType[0].Field = append(fd.MessageType[0].Field, &descriptorpb.FieldDescriptorProto{
		Name:   proto.String("legacy"),
		Number: proto.Int32(6),
		Type:   descriptorpb.FieldDescriptorProto_TYPE_GROUP.Enum(),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
	})
	_, err := FromFileDescriptorProto(fd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "groups")
}
