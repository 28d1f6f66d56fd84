// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

// Package errors implements the error taxonomy of spec.md §7 and the
// context-prefix chaining ("(Field:name#number+0xoffset)", "(Index:i)")
// that every parse/serialize error accumulates as it propagates out of
// nested calls.
//
// This is adapted from the teacher's internal/errors package: the
// classify-then-decide idea behind its NonFatal accumulator is kept
// (KindError tags an error with a Kind so the caller can decide whether
// to treat it as fatal), the accumulator itself is not carried, and
// the sentinel kinds are proto3's rather than proto2's
// (RequiredNotSet/InvalidUTF8 do not apply here; TypeMismatch/
// EnumUnknown/Structural/Range do, per spec.md §7).
package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies an error per spec.md §7's taxonomy.
type Kind uint8

const (
	// Structural covers truncated input, overlong varints, length
	// prefixes exceeding remaining bytes, groups, unknown wire types.
	Structural Kind = iota
	// Range covers a decoded value outside its declared 32/64-bit range.
	Range
	// TypeMismatch covers a wire type that does not match a known
	// field's expected wire type, or a host value that does not match
	// a field's declared type at serialize time.
	TypeMismatch
	// EnumUnknown covers an int32 with no corresponding declared enum
	// member.
	EnumUnknown
	// Internal covers a missing parser/serializer function pointer for
	// a sub-message reference in a well-formed generated module.
	Internal
)

func (k Kind) String() string {
	switch k {
	case Structural:
		return "structural"
	case Range:
		return "range"
	case TypeMismatch:
		return "type-mismatch"
	case EnumUnknown:
		return "enum-unknown"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// KindError pairs a Kind with the error it classifies, so a caller
// deciding whether IGNORE_INCORRECT_TYPES should swallow it can
// inspect the Kind without string-matching the message.
type KindError struct {
	Kind Kind
	Err  error
}

func (e *KindError) Error() string { return e.Err.Error() }
func (e *KindError) Unwrap() error { return e.Err }

// New wraps err with a Kind classification.
func New(k Kind, err error) error {
	if err == nil {
		return nil
	}
	return &KindError{Kind: k, Err: err}
}

// Newf is New(k, fmt.Errorf(format, args...)).
func Newf(k Kind, format string, args ...interface{}) error {
	return New(k, fmt.Errorf(format, args...))
}

// FieldContext formats the "(Field:<group-name>#<field-number>+0x<offset>)"
// prefix spec.md §7 requires for errors attributed to a known field.
func FieldContext(group string, number int32, offset int) string {
	return fmt.Sprintf("(Field:%s#%d+0x%x)", group, number, offset)
}

// UnknownContext formats the "(at 0x<offset>)" prefix for errors
// attributed to an unknown field.
func UnknownContext(offset int) string {
	return fmt.Sprintf("(at 0x%x)", offset)
}

// IndexContext formats the "(Index:<i>)" prefix for errors attributed
// to an element of a repeated field.
func IndexContext(i int) string {
	return fmt.Sprintf("(Index:%d)", i)
}

// Wrap decorates err with a context prefix, chaining additional
// prefixes as the error propagates up through nested calls (the
// outermost prefix appears first in the final message and the original
// cause last, matching spec.md §7's "prefix chain is visible in the
// final error message").
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, context)
}

// KindOf reports the Kind of err if it (or something it wraps) is a
// *KindError, and ok=false otherwise.
func KindOf(err error) (Kind, bool) {
	var ke *KindError
	for err != nil {
		if k, ok := err.(*KindError); ok {
			ke = k
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	if ke == nil {
		return 0, false
	}
	return ke.Kind, true
}
