package schema

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jacoelho/xsd"
	xsderrors "github.com/jacoelho/xsd/errors"

	"github.com/vvka-141/ddexcheck/internal/files/filesystem"
	"github.com/vvka-141/ddexcheck/internal/xmltree"
)


// NativeEngine is a pure Go XSD 1.0 engine built on github.com/jacoelho/xsd.
// It is the fallback when libxml2 is not compiled in or fails on a document.
//
// Schema files are read through the file system provider, rooted at the
// directory of the loaded schema. Imports without a schemaLocation are
// tolerated.
type NativeEngine struct {
	fs filesystem.FileSystemProvider
}

// NewNativeEngine creates an engine reading XSD files from fsProvider.
// Panics if fsProvider is nil.
func NewNativeEngine(fsProvider filesystem.FileSystemProvider) *NativeEngine {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &NativeEngine{fs: fsProvider}
}

func (e *NativeEngine) Name() string { return "xsd" }

// Load compiles path and every schema it includes or imports from the same
// directory tree.
func (e *NativeEngine) Load(schemaPath string) (Schema, error) {
	clean := filepath.Clean(schemaPath)
	fsys := providerFS{p: e.fs, root: filepath.Dir(clean)}
	opts := xsd.NewLoadOptions().WithAllowMissingImportLocations(true)

	compiled, err := xsd.LoadWithOptions(fsys, filepath.Base(clean), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", clean, err)
	}
	return &nativeSchema{schema: compiled}, nil
}

type nativeSchema struct {
	schema *xsd.Schema
}

// engineCodes are reported by the library for problems with the run itself
// rather than with the document's conformance.
var engineCodes = map[string]bool{
	string(xsderrors.ErrXMLParse):        true,
	string(xsderrors.ErrSchemaNotLoaded): true,
}

func (s *nativeSchema) Validate(doc []byte) Outcome {
	doc, err := toUTF8(doc)
	if err != nil {
		return EngineFailure{Reason: fmt.Errorf("xsd engine: %w", err)}
	}
	err = s.schema.Validate(bytes.NewReader(doc))
	if err == nil {
		return Validated{}
	}
	list, ok := xsderrors.AsValidations(err)
	if !ok {
		return EngineFailure{Reason: fmt.Errorf("xsd engine: %w", err)}
	}

	violations := make([]Violation, 0, len(list))
	for _, v := range list {
		if engineCodes[v.Code] {
			return EngineFailure{Reason: fmt.Errorf("xsd engine: %s", v.Message)}
		}
		violations = append(violations, Violation{
			Message: nativeMessage(v),
			Line:    v.Line,
			Column:  v.Column,
		})
	}
	return Validated{Violations: violations}
}

var (
	utf8BOM      = []byte{0xEF, 0xBB, 0xBF}
	encodingDecl = regexp.MustCompile(`^<\?xml[^>]*?\bencoding\s*=\s*["']([A-Za-z0-9._:-]+)["']`)
)

// toUTF8 transcodes a document that declares a non-UTF-8 charset and
// rewrites its declaration, since the library only reads UTF-8.
func toUTF8(doc []byte) ([]byte, error) {
	body := bytes.TrimPrefix(doc, utf8BOM)
	m := encodingDecl.FindSubmatchIndex(body)
	if m == nil {
		return doc, nil
	}
	label := string(body[m[2]:m[3]])
	if strings.EqualFold(label, "UTF-8") || strings.EqualFold(label, "UTF8") {
		return doc, nil
	}

	r, err := xmltree.CharsetReader(label, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decoding %s document: %w", label, err)
	}
	// the declaration must survive decoding byte for byte
	if len(decoded) < m[3] || !strings.EqualFold(string(decoded[m[2]:m[3]]), label) {
		return nil, fmt.Errorf("unsupported charset %q: declaration is not ASCII-compatible", label)
	}

	out := make([]byte, 0, len(decoded)+5)
	out = append(out, decoded[:m[2]]...)
	out = append(out, "UTF-8"...)
	out = append(out, decoded[m[3]:]...)
	return out, nil
}

// nativeMessage renders a library violation in libxml2's "Element 'x': ..."
// shape so ElementPath and Suggestion treat both engines alike.
func nativeMessage(v xsderrors.Validation) string {
	var b strings.Builder
	if name := lastStep(v.Path); name != "" {
		b.WriteString("Element '")
		b.WriteString(name)
		b.WriteString("': ")
	}
	b.WriteString(v.Message)
	if len(v.Expected) > 0 {
		b.WriteString(". Expected is ( ")
		b.WriteString(strings.Join(v.Expected, ", "))
		b.WriteString(" )")
	}
	if v.Actual != "" {
		b.WriteString(", got '")
		b.WriteString(v.Actual)
		b.WriteString("'")
	}
	b.WriteString(" [")
	b.WriteString(v.Code)
	b.WriteString("]")
	return b.String()
}

// lastStep returns the final step of an instance path such as
// /{http://ddex.net/xml/ern/382}NewReleaseMessage/MessageHeader. Slashes
// inside a {namespace} do not separate steps.
func lastStep(p string) string {
	start, inBrace := 0, false
	for i := 0; i < len(p); i++ {
		switch p[i] {
		case '{':
			inBrace = true
		case '}':
			inBrace = false
		case '/':
			if !inBrace {
				start = i + 1
			}
		}
	}
	return p[start:]
}

// providerFS exposes a FileSystemProvider subtree as an fs.FS.
type providerFS struct {
	p    filesystem.FileSystemProvider
	root string
}

func (f providerFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	full := filepath.Join(f.root, filepath.FromSlash(name))
	info, err := f.p.Stat(full)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	content, err := f.p.ReadFile(full)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return &providerFile{Reader: bytes.NewReader(content), info: info}, nil
}

type providerFile struct {
	*bytes.Reader
	info fs.FileInfo
}

func (f *providerFile) Stat() (fs.FileInfo, error) { return f.info, nil }
func (f *providerFile) Close() error               { return nil }
