// Package aepx extracts asset file references from After Effects XML
// project files (.aepx) and reports which referenced files exist on disk.
//
// Basic usage:
//
//	rep, warnings, err := aepx.Open("project.aepx").Report()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", aepx.FormatWarnings(warnings))
//	}
//
// With options:
//
//	rep, _, err := aepx.Open("project.aepx").
//	    NormalizeUnicode().
//	    Report()
//
// The report partitions every referenced path into existing assets and
// missing ones; see the model package for the report structure. For direct
// access to the parsed document, the lower-level aepxdoc package is also
// available.
package aepx

import (
	"github.com/tsawler/aepx/aepxdoc"
)

// Open prepares a Scanner for the project file at the given path.
// Nothing is read until a terminal operation like Report() runs.
//
// Example:
//
//	rep, warnings, err := aepx.Open("project.aepx").Report()
func Open(filename string) *Scanner {
	return &Scanner{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromDocument creates a Scanner from an already-parsed document.
// projectFile is the path the document was read from; relative references
// resolve against its directory.
//
// Example:
//
//	doc, err := aepxdoc.Open("project.aepx")
//	if err != nil {
//	    // handle error
//	}
//	rep, warnings, err := aepx.FromDocument(doc, "project.aepx").Report()
func FromDocument(doc *aepxdoc.Document, projectFile string) *Scanner {
	return &Scanner{
		filename:  projectFile,
		doc:       doc,
		docOpened: true,
		options:   defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	doc := aepx.Must(aepxdoc.Open("project.aepx"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustReport is a helper that wraps a call to Report() or Candidates() and
// panics if the error is non-nil. It discards warnings and returns just
// the value. It is intended for use in scripts or tests where error
// handling would be cumbersome.
//
// Example:
//
//	rep := aepx.MustReport(aepx.Open("project.aepx").Report())
func MustReport[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
