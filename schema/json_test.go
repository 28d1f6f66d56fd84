// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const unitJSON = `[
  {
    "Name": "test",
    "Enums": [
      {"Name": "Mode", "Values": [{"Name": "OFF", "Number": 0}, {"Name": "ON", "Number": 1}]}
    ],
    "Messages": [
      {
        "Name": "Thing",
        "Groups": [
          {"Name": "id", "Fields": [{"Name": "id", "Number": 1, "DataType": "INT64", "Cardinality": "SINGULAR"}]},
          {"Name": "tags", "Fields": [{"Name": "tags", "Number": 2, "DataType": "MAP", "Cardinality": "MAP", "KeyType": "STRING", "ValueType": "STRING"}]}
        ]
      }
    ]
  }
]`

func TestUnitFromJSON(t *testing.T) {
	mods, err := UnitFromJSON([]byte(unitJSON))
	require.NoError(t, err)
	require.Len(t, mods, 1)

	mod := mods[0]
	assert.Equal(t, "test", mod.Name)
	require.Len(t, mod.Messages, 1)
	require.Len(t, mod.Messages[0].Groups, 2)

	f := mod.Messages[0].Groups[1].SoleField()
	assert.Equal(t, MAP, f.DataType)
	assert.Equal(t, MAP_CARDINALITY, f.Cardinality)
	assert.Equal(t, STRING, f.KeyType)
	assert.Equal(t, STRING, f.ValueType)
}

func TestUnitFromJSONSingleObject(t *testing.T) {
	mods, err := UnitFromJSON([]byte(`{"Name": "solo"}`))
	require.NoError(t, err)
	require.Len(t, mods, 1)
	assert.Equal(t, "solo", mods[0].Name)
}

func TestUnitFromJSONValidates(t *testing.T) {
	bad := `{"Name": "bad", "Enums": [{"Name": "E", "Values": [{"Name": "A", "Number": 1}]}]}`
	_, err := UnitFromJSON([]byte(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "value 0")
}

func TestUnitFromJSONRejectsUnknownNames(t *testing.T) {
	_, err := UnitFromJSON([]byte(`{"Name": "x", "Messages": [{"Name": "M", "Groups": [{"Name": "f", "Fields": [{"Name": "f", "Number": 1, "DataType": "VARCHAR"}]}]}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VARCHAR")
}

func TestDataTypeJSONRoundTrip(t *testing.T) {
	for name, dt := range dataTypeNames {
		b, err := json.Marshal(dt)
		require.NoError(t, err)
		assert.Equal(t, `"`+name+`"`, string(b))
		var back DataType
		require.NoError(t, json.Unmarshal(b, &back))
		assert.Equal(t, dt, back)
	}
}
