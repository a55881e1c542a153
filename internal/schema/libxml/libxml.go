//go:build cgo

package libxml

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/lestrrat-go/libxml2"
	"github.com/lestrrat-go/libxml2/xsd"

	"github.com/vvka-141/ddexcheck/internal/schema"
)

// Engine compiles XSD files with libxml2.
type Engine struct{}

// New returns the libxml2 engine.
func New() Engine { return Engine{} }

func (Engine) Name() string { return "libxml2" }

// Load compiles the XSD at path. Includes and imports are resolved by
// libxml2 relative to path.
func (Engine) Load(path string) (schema.Schema, error) {
	s, err := xsd.ParseFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("libxml2 could not compile %s: %w", path, err)
	}
	compiled := &compiledSchema{xsd: s}
	runtime.SetFinalizer(compiled, func(c *compiledSchema) { c.xsd.Free() })
	return compiled, nil
}

type compiledSchema struct {
	xsd *xsd.Schema
}

// Validate parses doc with libxml2 and validates it. Anything other than a
// list of schema violations is reported as an engine failure.
func (c *compiledSchema) Validate(doc []byte) (out schema.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = schema.EngineFailure{Reason: fmt.Errorf("libxml2 panicked: %v", r)}
		}
	}()

	parsed, err := libxml2.Parse(doc)
	if err != nil {
		return schema.EngineFailure{Reason: fmt.Errorf("libxml2 could not parse document: %w", err)}
	}
	defer parsed.Free()

	err = c.xsd.Validate(parsed)
	runtime.KeepAlive(c)
	if err == nil {
		return schema.Validated{}
	}

	var verr xsd.SchemaValidationError
	if errors.As(err, &verr) {
		return schema.Validated{Violations: violations(verr.Errors())}
	}
	var verrPtr *xsd.SchemaValidationError
	if errors.As(err, &verrPtr) && verrPtr != nil {
		return schema.Validated{Violations: violations(verrPtr.Errors())}
	}
	return schema.EngineFailure{Reason: err}
}

func violations(errs []error) []schema.Violation {
	out := make([]schema.Violation, 0, len(errs))
	for _, e := range errs {
		out = append(out, schema.Violation{Message: e.Error()})
	}
	return out
}
