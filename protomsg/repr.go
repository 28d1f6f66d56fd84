// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

package protomsg

import (
	"fmt"
	"unicode/utf8"
)

// Truncation thresholds for generated String methods: a string slot
// longer than maxReprChars or a byte slot longer than maxReprBytes is
// abbreviated rather than dumped wholesale (spec.md §6).
const (
	maxReprChars = 10000
	maxReprBytes = 100
)

// FormatString renders a string slot for a generated message's String
// method, abbreviating to "(N chars)" past the truncation threshold.
func FormatString(s string) string {
	if n := utf8.RuneCountInString(s); n > maxReprChars {
		return fmt.Sprintf("(%d chars)", n)
	}
	return fmt.Sprintf("%q", s)
}

// FormatBytes renders a bytes slot, abbreviating to "(N bytes)" past
// the truncation threshold.
func FormatBytes(b []byte) string {
	if len(b) > maxReprBytes {
		return fmt.Sprintf("(%d bytes)", len(b))
	}
	return fmt.Sprintf("%q", b)
}
