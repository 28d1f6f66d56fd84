// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

package gen

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
)

// quote renders s as a Go string literal.
func quote(s string) string { return strconv.Quote(s) }

// generatedFile accumulates the body of one generated source file and
// tracks which imports the emitted code actually uses, so the final
// file carries exactly the import block it needs. The emission model
// follows protogen's GeneratedFile: P prints one line, converting each
// argument with the fmt.Print rules and inserting no separators.
type generatedFile struct {
	pkgName     string
	source      string
	buf         bytes.Buffer
	stdImports  map[string]bool
	runtimePath string
	runtimePkgs map[string]bool
}

func newGeneratedFile(pkgName, source, runtimePath string) *generatedFile {
	return &generatedFile{
		pkgName:     pkgName,
		source:      source,
		stdImports:  map[string]bool{},
		runtimePath: runtimePath,
		runtimePkgs: map[string]bool{},
	}
}

// P prints a line to the generated output.
func (g *generatedFile) P(v ...interface{}) {
	for _, x := range v {
		fmt.Fprint(&g.buf, x)
	}
	fmt.Fprintln(&g.buf)
}

// Import records a standard-library import needed by emitted code.
func (g *generatedFile) Import(path string) { g.stdImports[path] = true }

// ImportRuntime records one of this module's runtime packages (wire,
// codec, protomsg) as needed by emitted code.
func (g *generatedFile) ImportRuntime(pkg string) { g.runtimePkgs[pkg] = true }

// Content assembles the finished file: header comment, package clause,
// import block (standard library first, then runtime packages), body.
func (g *generatedFile) Content() []byte {
	var out bytes.Buffer
	fmt.Fprintf(&out, "// Code generated by protoc-gen-gocodec. DO NOT EDIT.\n")
	fmt.Fprintf(&out, "// source: %s\n\n", g.source)
	fmt.Fprintf(&out, "package %s\n\n", g.pkgName)

	std := make([]string, 0, len(g.stdImports))
	for p := range g.stdImports {
		std = append(std, p)
	}
	sort.Strings(std)
	rt := make([]string, 0, len(g.runtimePkgs))
	for p := range g.runtimePkgs {
		rt = append(rt, p)
	}
	sort.Strings(rt)

	if len(std)+len(rt) > 0 {
		fmt.Fprintf(&out, "import (\n")
		for _, p := range std {
			fmt.Fprintf(&out, "\t%q\n", p)
		}
		if len(std) > 0 && len(rt) > 0 {
			fmt.Fprintf(&out, "\n")
		}
		for _, p := range rt {
			fmt.Fprintf(&out, "\t%q\n", g.runtimePath+"/"+p)
		}
		fmt.Fprintf(&out, ")\n\n")
	}

	out.Write(g.buf.Bytes())
	return out.Bytes()
}
