package aepx

import (
	"strings"

	"github.com/tsawler/aepx/aepxdoc"
)

// A Rule inspects a single element and returns the raw path candidates it
// references. Rules are additive: the scanner unions every rule's results
// into one candidate set before resolution, so a new reference style can
// be supported by adding a rule without touching resolution or reporting.
type Rule interface {
	// Name identifies the rule in diagnostics.
	Name() string

	// Collect returns raw path candidates found on the element.
	// Values are returned as written in the document; resolution
	// handles trimming and normalization.
	Collect(e *aepxdoc.Element) []string
}

// DefaultRules returns the standard rule set.
func DefaultRules() []Rule {
	return []Rule{
		FileReferenceRule{},
		FullPathElementRule{},
		GenericPathRule{},
	}
}

// FileReferenceRule collects the fullpath attribute of footage reference
// elements. After Effects writes footage items as
// <fileReference fullpath="..."/>, in some exports namespace-qualified,
// so the tag is matched by substring against its qualified name.
type FileReferenceRule struct{}

// Name implements Rule.
func (FileReferenceRule) Name() string { return "fileReference" }

// Collect implements Rule. The attribute must be literally named fullpath;
// a namespace-qualified variant is a different attribute and is ignored.
func (FileReferenceRule) Collect(e *aepxdoc.Element) []string {
	if !strings.Contains(e.QualifiedName(), "fileReference") {
		return nil
	}
	v, ok := e.AttrValue("fullpath")
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	return []string{strings.TrimSpace(v)}
}

// FullPathElementRule collects the text of bare <fullpath> elements, a
// form found in older project exports. The text is collected verbatim.
type FullPathElementRule struct{}

// Name implements Rule.
func (FullPathElementRule) Name() string { return "fullpath" }

// Collect implements Rule.
func (FullPathElementRule) Collect(e *aepxdoc.Element) []string {
	if e.QualifiedName() != "fullpath" || e.Text == "" {
		return nil
	}
	return []string{e.Text}
}

// genericTags are element names that commonly carry a file reference in
// tool-generated XML.
var genericTags = map[string]bool{
	"file":   true,
	"path":   true,
	"src":    true,
	"source": true,
}

// GenericPathRule collects references from generic file/path/src/source
// elements: the element text, plus the value of every attribute whose
// name mentions "path" or "file" in any case.
type GenericPathRule struct{}

// Name implements Rule.
func (GenericPathRule) Name() string { return "generic-path" }

// Collect implements Rule.
func (GenericPathRule) Collect(e *aepxdoc.Element) []string {
	if !genericTags[e.QualifiedName()] {
		return nil
	}

	var out []string
	if e.Text != "" {
		out = append(out, e.Text)
	}
	for _, a := range e.Attr {
		name := strings.ToLower(aepxdoc.ClarkName(a.Name))
		if strings.Contains(name, "path") || strings.Contains(name, "file") {
			out = append(out, a.Value)
		}
	}
	return out
}
