// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style.
// license that can be found in the LICENSE file.

// protoc-gen-gocodec reads a compilation unit's schema description (a
// JSON rendering of one or more schema.Module values, as produced by
// an external front-end) and writes one generated .pbcodec.go file per
// module. The protoc plugin protocol is deliberately not spoken here:
// the compiler is driven as a plain file-in, files-out tool.
package main

import (
	"os"
	"path/filepath"
	"sort"

	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/golang/protobuf-gocodec/gen"
	"github.com/golang/protobuf-gocodec/schema"
)

func main() {
	schemaPath := flag.String("schema", "", "path to the schema JSON file (one module or an array of modules)")
	outDir := flag.String("out", ".", "directory the generated .pbcodec.go files are written into")
	pkgName := flag.String("package", "", "Go package name for the generated files (default: derived from the first module's name)")
	runtimePath := flag.String("runtime", gen.DefaultRuntimePath, "import path of the codec runtime module")
	verbose := flag.BoolP("verbose", "v", false, "trace per-message emission")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	if *schemaPath == "" {
		log.Fatal("--schema is required")
	}

	data, err := os.ReadFile(*schemaPath)
	if err != nil {
		log.WithError(err).WithField("path", *schemaPath).Fatal("reading schema")
	}
	mods, err := schema.UnitFromJSON(data)
	if err != nil {
		log.WithError(err).Fatal("decoding schema")
	}
	log.WithFields(log.Fields{"modules": len(mods), "schema": *schemaPath}).Info("loaded compilation unit")

	files, err := gen.Generate(mods, gen.Options{
		PackageName: *pkgName,
		RuntimePath: *runtimePath,
	})
	if err != nil {
		log.WithError(err).Fatal("generating")
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.WithError(err).WithField("dir", *outDir).Fatal("creating output directory")
	}
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		path := filepath.Join(*outDir, name)
		if err := os.WriteFile(path, files[name], 0o644); err != nil {
			log.WithError(err).WithField("file", path).Fatal("writing generated file")
		}
		log.WithFields(log.Fields{"file": path, "bytes": len(files[name])}).Info("wrote generated module")
	}
}
