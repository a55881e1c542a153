package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding/ianaindex"
)

// ErrNoRoot is returned when the input holds no element at all.
var ErrNoRoot = errors.New("document has no root element")

// ErrTrailingContent is returned when the input holds anything but
// whitespace, comments or processing instructions outside the root element.
var ErrTrailingContent = errors.New("content outside the root element")

// Document is a parsed XML document.
type Document struct {
	doc *etree.Document
}

// SyntaxError describes input that is not well-formed XML.
type SyntaxError struct {
	Line int // Line number (0 if unknown)
	Msg  string
	Err  error
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("XML syntax error on line %d: %s", e.Line, e.Msg)
	}
	return "XML syntax error: " + e.Msg
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Parse builds a tree from raw XML.
//
// Malformed markup, a missing root and content outside the root are
// reported as *SyntaxError. Any other failure (for example an unsupported
// charset) is returned as-is. Declared charsets other than UTF-8 are decoded
// with CharsetReader.
func Parse(data []byte) (*Document, error) {
	if err := checkWellFormed(data); err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = CharsetReader
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, classifyReadError(err)
	}

	roots := 0
	for _, tok := range doc.Child {
		switch t := tok.(type) {
		case *etree.Element:
			roots++
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				return nil, &SyntaxError{Msg: ErrTrailingContent.Error(), Err: ErrTrailingContent}
			}
		}
	}
	switch {
	case roots == 0:
		return nil, &SyntaxError{Msg: ErrNoRoot.Error(), Err: ErrNoRoot}
	case roots > 1:
		return nil, &SyntaxError{Msg: "multiple root elements", Err: ErrTrailingContent}
	}

	return &Document{doc: doc}, nil
}

// ParseString is Parse for string input.
func ParseString(s string) (*Document, error) {
	return Parse([]byte(s))
}

// checkWellFormed runs the strict token scanner over data so that syntax
// errors carry the offending line, which etree does not report for
// mismatched end tags.
func checkWellFormed(data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = CharsetReader
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return classifyReadError(err)
		}
	}
}

// CharsetReader decodes input declared in any IANA-registered charset to
// UTF-8.
func CharsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

func classifyReadError(err error) error {
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &SyntaxError{Line: syntaxErr.Line, Msg: syntaxErr.Msg, Err: err}
	}
	if errors.Is(err, etree.ErrXML) {
		return &SyntaxError{Msg: "mismatched or unterminated element", Err: err}
	}
	return err
}

// Root returns the document element.
func (d *Document) Root() *etree.Element {
	return d.doc.Root()
}

// LocalName returns the tag of el without its namespace prefix.
func LocalName(el *etree.Element) string {
	return el.Tag
}

// NamespaceURI returns the namespace URI el is bound to, or "".
func NamespaceURI(el *etree.Element) string {
	return el.NamespaceURI()
}

// Text returns the trimmed character data that directly follows el's start tag.
func Text(el *etree.Element) string {
	return strings.TrimSpace(el.Text())
}

// Attr returns the value of the attribute with the given local name and
// whether it was present.
func Attr(el *etree.Element, name string) (string, bool) {
	for _, a := range el.Attr {
		if a.Key == name && a.Space != "xmlns" {
			return a.Value, true
		}
	}
	return "", false
}

// FindAll returns, in document order, every descendant of el whose local
// name is one of names. el itself is not included.
func FindAll(el *etree.Element, names ...string) []*etree.Element {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	var out []*etree.Element
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, child := range e.ChildElements() {
			if want[child.Tag] {
				out = append(out, child)
			}
			walk(child)
		}
	}
	walk(el)
	return out
}

// FindFirst returns the first descendant of el with one of names, or nil.
func FindFirst(el *etree.Element, names ...string) *etree.Element {
	found := FindAll(el, names...)
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

// HasDescendant reports whether el has a descendant with one of names.
func HasDescendant(el *etree.Element, names ...string) bool {
	return FindFirst(el, names...) != nil
}

// WithAttr returns, in document order, every element in the subtree rooted
// at el (el included) that carries an attribute with the given local name.
func WithAttr(el *etree.Element, name string) []*etree.Element {
	var out []*etree.Element
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		if _, ok := Attr(e, name); ok {
			out = append(out, e)
		}
		for _, child := range e.ChildElements() {
			walk(child)
		}
	}
	walk(el)
	return out
}

// Path returns the diagnostic element path of el.
func Path(el *etree.Element) string {
	var parts []string
	for cur := el; cur != nil; cur = cur.Parent() {
		parent := cur.Parent()
		if parent == nil || isDocument(parent) {
			parts = append(parts, cur.Tag)
			break
		}
		parts = append(parts, cur.Tag+siblingSuffix(parent, cur))
	}

	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(parts[i])
	}
	return b.String()
}

// isDocument reports whether e is the synthetic element etree uses as the
// document node. It has neither a tag nor a parent.
func isDocument(e *etree.Element) bool {
	return e.Tag == "" && e.Parent() == nil
}

func siblingSuffix(parent, el *etree.Element) string {
	count, position := 0, 0
	for _, sib := range parent.ChildElements() {
		if sib.Tag != el.Tag || sib.NamespaceURI() != el.NamespaceURI() {
			continue
		}
		count++
		if sib == el {
			position = count
		}
	}
	if count < 2 {
		return ""
	}
	return fmt.Sprintf("[%d]", position)
}
