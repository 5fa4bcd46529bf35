package aepx

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/tsawler/aepx/aepxdoc"
	"github.com/tsawler/aepx/model"
)

// Scanner provides a fluent interface for scanning project files.
// Each configuration method returns a new Scanner instance, making it
// safe for concurrent use and allowing method chaining.
type Scanner struct {
	// Source
	filename string

	// Parsed document
	doc       *aepxdoc.Document
	docOpened bool

	// Configuration
	options ScanOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Scanner with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (s *Scanner) clone() *Scanner {
	newScan := &Scanner{
		filename:  s.filename,
		doc:       s.doc,
		docOpened: s.docOpened,
		options:   s.options.clone(),
		err:       s.err,
		warnings:  append([]Warning(nil), s.warnings...),
	}
	return newScan
}

// ensureDocument parses the project file if not already parsed.
func (s *Scanner) ensureDocument() (*aepxdoc.Document, error) {
	if s.docOpened {
		return s.doc, nil
	}
	if s.filename == "" {
		return nil, fmt.Errorf("no filename specified")
	}

	doc, err := aepxdoc.Open(s.filename)
	if err != nil {
		return nil, err
	}
	s.doc = doc
	s.docOpened = true
	return doc, nil
}

// ============================================================================
// Configuration Methods (return new Scanner instance)
// ============================================================================

// NormalizeUnicode configures the scanner to NFC-normalize candidate paths
// before resolution. Projects written on Mac HFS+ volumes store decomposed
// (NFD) path strings that fail to match files on other filesystems.
//
// Example:
//
//	rep, _, err := aepx.Open("project.aepx").NormalizeUnicode().Report()
func (s *Scanner) NormalizeUnicode() *Scanner {
	newScan := s.clone()
	newScan.options.normalizeUnicode = true
	return newScan
}

// WithRules replaces the default rule set for candidate collection.
//
// Example:
//
//	rep, _, err := aepx.Open("project.aepx").
//	    WithRules(aepx.FileReferenceRule{}).
//	    Report()
func (s *Scanner) WithRules(rules ...Rule) *Scanner {
	newScan := s.clone()
	if len(rules) == 0 {
		newScan.err = fmt.Errorf("WithRules requires at least one rule")
		return newScan
	}
	newScan.options.rules = append([]Rule(nil), rules...)
	return newScan
}

// ============================================================================
// Terminal Operations (execute the scan and return results)
// ============================================================================

// Report scans the project file and returns the extraction report.
//
// A file that cannot be read or parsed is not an error: the scan returns
// an empty report carrying the absolute project path, plus a Warning
// describing the failure. A non-nil error is reserved for misuse of the
// API and for environment failures.
//
// Example:
//
//	rep, warnings, err := aepx.Open("project.aepx").Report()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", aepx.FormatWarnings(warnings))
//	}
func (s *Scanner) Report() (*model.Report, []Warning, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	if s.filename == "" {
		return nil, nil, fmt.Errorf("no filename specified")
	}

	absPath, err := filepath.Abs(s.filename)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving project path: %w", err)
	}

	rep := model.NewReport(absPath)

	doc, err := s.ensureDocument()
	if err != nil {
		s.warnDocumentError(err)
		return rep, s.warnings, nil
	}

	resolveCandidates(rep, s.collect(doc), filepath.Dir(absPath), s.options)
	rep.Sort()

	return rep, s.warnings, nil
}

// Candidates scans the project file and returns the deduplicated raw path
// candidates before resolution, sorted for stable output. Useful for
// diagnosing why a reference did or did not make it into a report.
//
// Example:
//
//	paths, warnings, err := aepx.Open("project.aepx").Candidates()
func (s *Scanner) Candidates() ([]string, []Warning, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	if s.filename == "" && !s.docOpened {
		return nil, nil, fmt.Errorf("no filename specified")
	}

	doc, err := s.ensureDocument()
	if err != nil {
		s.warnDocumentError(err)
		return []string{}, s.warnings, nil
	}

	set := s.collect(doc)
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, s.warnings, nil
}

// warnDocumentError records a document open/parse failure as a warning.
func (s *Scanner) warnDocumentError(err error) {
	code := WarnParseError
	if errors.Is(err, aepxdoc.ErrBinaryProject) {
		code = WarnBinaryProject
	}
	s.warnings = append(s.warnings, Warning{Code: code, Message: err.Error()})
}

// collect walks the document and unions every rule's candidates.
func (s *Scanner) collect(doc *aepxdoc.Document) map[string]struct{} {
	rules := s.options.rules
	if rules == nil {
		rules = DefaultRules()
	}

	candidates := make(map[string]struct{})
	doc.Walk(func(e *aepxdoc.Element) {
		for _, r := range rules {
			for _, c := range r.Collect(e) {
				candidates[c] = struct{}{}
			}
		}
	})
	return candidates
}
