// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

// Package protomsg is the message engine generated code is built on
// top of: the parse loop, the serialize loop, unknown-field retention,
// and the packed/map/oneof plumbing shared by every generated message
// type (spec.md §4.3, §4.4). Nothing in this package is schema-aware;
// generated code supplies the per-field-number dispatch and calls back
// into these shared routines for the repetitive parts.
package protomsg

// ParseFlags controls how Parse/FromBytes handle unknown fields and
// wire-type mismatches on known fields (spec.md §6).
type ParseFlags uint8

const (
	// RetainUnknownFields preserves unrecognized fields' raw bytes so
	// a later serialize round-trips them verbatim. On by default.
	RetainUnknownFields ParseFlags = 1 << iota
	// IgnoreIncorrectTypes demotes a wire-type mismatch on a known
	// field from a fatal error to a silent skip-and-record-as-unknown.
	// Off by default.
	IgnoreIncorrectTypes
)

// Has reports whether bit is set in f.
func (f ParseFlags) Has(bit ParseFlags) bool { return f&bit != 0 }

// DefaultParseFlags matches the generated-module surface's defaults
// (spec.md §6): retain_unknown_fields=True, ignore_incorrect_types=False.
const DefaultParseFlags = RetainUnknownFields
