// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// The JSON form of a Module is the front-end handoff format the
// generator CLI consumes: DataType and Cardinality serialize as their
// symbolic names so schema files are writable by hand or by any
// front-end that can print strings.

var dataTypeNames = map[string]DataType{
	"FLOAT": FLOAT, "DOUBLE": DOUBLE,
	"INT32": INT32, "UINT32": UINT32, "SINT32": SINT32,
	"INT64": INT64, "UINT64": UINT64, "SINT64": SINT64,
	"FIXED32": FIXED32, "SFIXED32": SFIXED32,
	"FIXED64": FIXED64, "SFIXED64": SFIXED64,
	"BOOL": BOOL, "ENUM": ENUM, "STRING": STRING, "BYTES": BYTES,
	"MAP": MAP, "MESSAGE": MESSAGE,
}

// MarshalJSON encodes d as its symbolic name.
func (d DataType) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a symbolic data-type name.
func (d *DataType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	dt, ok := dataTypeNames[s]
	if !ok {
		return fmt.Errorf("schema: unknown data type %q", s)
	}
	*d = dt
	return nil
}

var cardinalityNames = map[string]Cardinality{
	"SINGULAR": SINGULAR,
	"OPTIONAL": OPTIONAL,
	"REPEATED": REPEATED,
	"MAP":      MAP_CARDINALITY,
}

// MarshalJSON encodes c as its symbolic name.
func (c Cardinality) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a symbolic cardinality name.
func (c *Cardinality) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	card, ok := cardinalityNames[s]
	if !ok {
		return fmt.Errorf("schema: unknown cardinality %q", s)
	}
	*c = card
	return nil
}

// UnitFromJSON decodes one compilation unit: either a single module
// object or an array of modules. Every module is validated before
// being returned.
func UnitFromJSON(data []byte) ([]*Module, error) {
	trimmed := bytes.TrimSpace(data)
	var mods []*Module
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &mods); err != nil {
			return nil, fmt.Errorf("schema: decoding module list: %w", err)
		}
	} else {
		mod := &Module{}
		if err := json.Unmarshal(trimmed, mod); err != nil {
			return nil, fmt.Errorf("schema: decoding module: %w", err)
		}
		mods = []*Module{mod}
	}
	for _, mod := range mods {
		if err := mod.Validate(); err != nil {
			return nil, err
		}
	}
	return mods, nil
}
