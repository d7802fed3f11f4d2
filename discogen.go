// Package discogen generates Go client packages from REST discovery
// documents.
//
// A discovery document is a machine-readable JSON description of a REST
// service: its named schemas, its resource tree and the methods under it.
// This package turns one document into one self-contained Go source file
// with typed structs for every schema and a typed method for every
// operation. Generated units depend only on this module's pkg/runtime
// package and golang.org/x/oauth2.
//
// Quick Start:
//
//	import "github.com/discokit/disco-gen"
//
//	// Generate a client package for the Books API
//	err := discogen.GenerateFile(
//		"https://www.googleapis.com/discovery/v1/apis/books/v1/rest",
//		"books.go",
//		discogen.Options{Package: "books"},
//	)
//
// For finer control, see pkg/discovery (loading and decoding) and pkg/gen
// (resolution and emission).
package discogen

import (
	"context"

	cli "github.com/discokit/disco-gen/internal/cli"
	"github.com/discokit/disco-gen/pkg/discovery"
	"github.com/discokit/disco-gen/pkg/gen"
)

// Options contains options for client generation.
type Options struct {
	// Package is the generated package name. Empty derives it from the
	// document's service name.
	Package string
	// RuntimeImport is the import path of the dispatch package generated
	// code depends on. Empty uses this module's pkg/runtime.
	RuntimeImport string
}

// Generate renders the source unit for an already-loaded document.
//
// Example:
//
//	doc, err := discovery.Load(ctx, "library.json")
//	if err != nil {
//		return err
//	}
//	src, err := discogen.Generate(doc, discogen.Options{})
func Generate(doc *discovery.Document, opts Options) ([]byte, error) {
	return gen.NewGenerator(gen.Options{
		PackageName:   opts.Package,
		RuntimeImport: opts.RuntimeImport,
	}).Generate(doc)
}

// GenerateFile loads a discovery document from a local path or an HTTP(S)
// URL and writes the generated unit to outPath. The file is written
// atomically and replaces whatever was there.
//
// Example:
//
//	err := discogen.GenerateFile("./library.json", "library.go", discogen.Options{})
func GenerateFile(input, outPath string, opts Options) error {
	doc, err := discovery.Load(context.Background(), input)
	if err != nil {
		return err
	}
	src, err := Generate(doc, opts)
	if err != nil {
		return err
	}
	return cli.WriteFileAtomic(outPath, src)
}

// Validate checks that a discovery document would generate cleanly. It
// runs the full pipeline and discards the output, so it fails on exactly
// the inputs GenerateFile fails on.
//
// Example:
//
//	if err := discogen.Validate("./library.json"); err != nil {
//		log.Fatalf("document rejected: %v", err)
//	}
func Validate(input string) error {
	return cli.RunValidate(context.Background(), input)
}
