// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

package gen

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Name mangling follows protoc-gen-go's conventions so generated
// identifiers look like the ones Go proto users already know, but the
// inputs here are simpler than protogen's: schema IR names are bare
// snake_case identifiers (field, group, message, enum names) and
// module names are file-ish strings ("path/to/demo.proto"). There is
// no dotted package qualification to strip — the IR never carries one.

// cleanPackageName derives a valid Go package name from a module name:
// last path element, extension dropped, lower-cased, keyword-safe.
func cleanPackageName(name string) string {
	return strings.ToLower(cleanGoName(baseName(name)))
}

// cleanGoName forces a string into the shape of a valid Go identifier:
// every rune outside the Unicode L/N categories becomes '_', and a '_'
// is prepended when the result would collide with a Go keyword or not
// start with a letter.
func cleanGoName(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, s)
	r, _ := utf8.DecodeRuneInString(s)
	if token.Lookup(s).IsKeyword() || !unicode.IsLetter(r) {
		return "_" + s
	}
	return s
}

// baseName strips any path prefix and one trailing dotted suffix, so
// "path/to/demo.proto" becomes "demo".
func baseName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[:i]
	}
	return name
}

// camelCase converts a bare snake_case identifier to CamelCase: an
// interior '_' followed by a lower-case letter is dropped and the
// letter upper-cased; a leading '_' becomes 'X' so the result stays a
// valid, exported identifier; digits end the current word. This keeps
// protoc-gen-go's historic mapping (f_uint64 -> FUint64, name_2 ->
// Name_2 with the underscore preserved before a digit) so field names
// land on the identifiers Go proto users expect, at the accepted risk
// of a collision between names that differ only in case.
func camelCase(s string) string {
	var b []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_' && i == 0:
			b = append(b, 'X')
		case c == '_' && i+1 < len(s) && isASCIILower(s[i+1]):
			// Skip over '_' in "_{{lowercase}}".
		case isASCIIDigit(c):
			b = append(b, c)
		default:
			// A word starts here: upper-case its first letter and
			// swallow the lower-case run that follows.
			if isASCIILower(c) {
				c -= 'a' - 'A'
			}
			b = append(b, c)
			for ; i+1 < len(s) && isASCIILower(s[i+1]); i++ {
				b = append(b, s[i+1])
			}
		}
	}
	return string(b)
}

func isASCIILower(c byte) bool {
	return 'a' <= c && c <= 'z'
}

func isASCIIDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
