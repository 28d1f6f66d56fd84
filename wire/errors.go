// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

package wire

import "fmt"

// ErrTruncated is returned whenever a read would run past the end of
// the available bytes.
var ErrTruncated = fmt.Errorf("wire: truncated input")

// ErrOverlong is returned when a length-delimited field's declared
// length exceeds the bytes remaining in the reader.
var ErrOverlong = fmt.Errorf("wire: length prefix exceeds remaining input")

// ErrUnknownWireType is returned for a tag whose wire type is not one
// of Varint, I64, Len, I32 (and is not StartGroup/EndGroup, which get
// the more specific ErrGroupsUnsupported).
type ErrUnknownWireType struct{ Type Type }

func (e *ErrUnknownWireType) Error() string {
	return fmt.Sprintf("wire: tag has unknown wire type %d", uint8(e.Type))
}

// ErrNestingTooDeep is returned when parsing recurses past
// MaxNestingDepth levels of length-delimited submessages.
var ErrNestingTooDeep = fmt.Errorf("wire: message nesting exceeds %d levels", MaxNestingDepth)
