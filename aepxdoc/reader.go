// Package aepxdoc reads After Effects XML project files (.aepx) into a
// generic element tree.
//
// The tree preserves what the rest of the library needs from the document:
// tag names with their original case and resolved namespaces, attributes,
// and the character data that appears before an element's first child.
// Nothing After Effects-specific is interpreted here.
package aepxdoc

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/tsawler/aepx/format"
)

// Reader-related errors.
var (
	ErrBinaryProject = errors.New("aepx: binary RIFX project, re-save as XML (.aepx) to scan")
	ErrNotXML        = errors.New("aepx: invalid XML document")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Element is a single node in the project document tree.
type Element struct {
	// Name holds the tag with Local preserved case-sensitively and Space
	// set to the resolved namespace URI, or "" for unprefixed tags in
	// documents without a default namespace.
	Name xml.Name

	// Attr holds the element's attributes. Namespace declarations
	// (xmlns, xmlns:*) are not attributes and are excluded.
	Attr []xml.Attr

	// Text is the character data between the start tag and the first
	// child element. Character data after a child is discarded.
	Text string

	Children []*Element
}

// Local returns the tag name without its namespace.
func (e *Element) Local() string {
	return e.Name.Local
}

// QualifiedName returns the element's tag in Clark notation.
func (e *Element) QualifiedName() string {
	return ClarkName(e.Name)
}

// ClarkName renders an xml.Name in Clark notation: "{space}local" when the
// name is namespace-qualified, the bare local name otherwise.
func ClarkName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return "{" + n.Space + "}" + n.Local
}

// AttrValue returns the value of the unprefixed attribute with the given
// name, and whether it was present. Namespace-qualified attributes never
// match, even when their local part is the same.
func (e *Element) AttrValue(name string) (string, bool) {
	for _, a := range e.Attr {
		if a.Name.Local == name && a.Name.Space == "" {
			return a.Value, true
		}
	}
	return "", false
}

// Document is a parsed project file.
type Document struct {
	root  *Element
	count int
}

// Root returns the document's root element.
func (d *Document) Root() *Element {
	return d.root
}

// ElementCount returns the number of elements in the document.
func (d *Document) ElementCount() int {
	return d.count
}

// Walk visits every element in document order, the root first.
func (d *Document) Walk(fn func(*Element)) {
	if d.root == nil {
		return
	}
	walk(d.root, fn)
}

func walk(e *Element, fn func(*Element)) {
	fn(e)
	for _, c := range e.Children {
		walk(c, fn)
	}
}

// Open reads and parses the project file at the given path.
// A binary RIFX project returns ErrBinaryProject; anything that is not
// well-formed XML returns an error wrapping ErrNotXML.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("aepx: opening project: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses a project document from r.
func OpenReader(r io.Reader) (*Document, error) {
	br := bufio.NewReader(r)

	// Sniff before decoding so a binary project gets a targeted error
	// instead of an XML syntax error on RIFX bytes.
	magic, _ := br.Peek(12)
	if format.DetectFromMagic(magic) == format.AEP {
		return nil, ErrBinaryProject
	}
	if bytes.HasPrefix(magic, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	dec := xml.NewDecoder(br)
	dec.CharsetReader = charset.NewReaderLabel

	var (
		root  *Element
		stack []*Element
		count int
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotXML, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 && root != nil {
				return nil, fmt.Errorf("%w: junk after document element", ErrNotXML)
			}
			el := &Element{
				Name: t.Name,
				Attr: stripNamespaceDecls(t.Attr),
			}
			if len(stack) == 0 {
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
			count++

		case xml.CharData:
			if len(stack) == 0 {
				if strings.TrimSpace(string(t)) != "" {
					return nil, fmt.Errorf("%w: text outside document element", ErrNotXML)
				}
				continue
			}
			el := stack[len(stack)-1]
			if len(el.Children) == 0 {
				el.Text += string(t)
			}

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrNotXML)
	}

	return &Document{root: root, count: count}, nil
}

// stripNamespaceDecls removes xmlns declarations, which name namespaces
// rather than carrying element data.
func stripNamespaceDecls(attrs []xml.Attr) []xml.Attr {
	out := make([]xml.Attr, 0, len(attrs))
	for _, a := range attrs {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		out = append(out, a)
	}
	return out
}
