package schema

import (
	"errors"
	"fmt"
	"sync"
)

// ErrEngineUnavailable is returned by Engine.Load when the engine cannot run
// in this build (for example libxml2 in a binary built without cgo).
var ErrEngineUnavailable = errors.New("schema engine unavailable")

// Violation is one schema constraint the document does not satisfy.
// Line and Column are 0 when the engine does not report a position.
type Violation struct {
	Message string
	Line    int
	Column  int
}

// Outcome is the result of running a Schema over a document. It is either
// Validated or EngineFailure.
type Outcome interface {
	outcome()
}

// Validated means the engine completed. The document conforms when
// Violations is empty.
type Validated struct {
	Violations []Violation
}

func (Validated) outcome() {}

// OK reports whether the document conforms.
func (v Validated) OK() bool { return len(v.Violations) == 0 }

// EngineFailure means the engine could not complete validation.
type EngineFailure struct {
	Reason error
}

func (EngineFailure) outcome() {}

func (f EngineFailure) Error() string {
	if f.Reason == nil {
		return "schema engine failed"
	}
	return f.Reason.Error()
}

// Schema is a compiled XSD. Implementations must be safe for concurrent use.
type Schema interface {
	Validate(doc []byte) Outcome
}

// Engine compiles XSD files.
type Engine interface {
	Name() string
	Load(path string) (Schema, error)
}

// Chain runs Primary and turns to Fallback only when Primary is unavailable
// at load time or reports an EngineFailure for a document.
type Chain struct {
	Primary  Engine
	Fallback Engine
}

func (c Chain) Name() string {
	if c.Fallback == nil {
		return c.Primary.Name()
	}
	return c.Primary.Name() + "+" + c.Fallback.Name()
}

// Load compiles path with the primary engine. If the primary engine is not
// available in this build the fallback engine is used directly. Any other
// load error is returned unchanged.
func (c Chain) Load(path string) (Schema, error) {
	primary, err := c.Primary.Load(path)
	if errors.Is(err, ErrEngineUnavailable) && c.Fallback != nil {
		return c.Fallback.Load(path)
	}
	if err != nil {
		return nil, err
	}
	if c.Fallback == nil {
		return primary, nil
	}
	return &chainedSchema{primary: primary, fallback: c.Fallback, path: path}, nil
}

// chainedSchema compiles the fallback lazily, the first time the primary
// schema fails.
type chainedSchema struct {
	primary  Schema
	fallback Engine
	path     string

	once       sync.Once
	fallbackS  Schema
	fallbackEr error
}

func (s *chainedSchema) Validate(doc []byte) Outcome {
	out := s.primary.Validate(doc)
	failure, ok := out.(EngineFailure)
	if !ok {
		return out
	}

	s.once.Do(func() {
		s.fallbackS, s.fallbackEr = s.fallback.Load(s.path)
	})
	if s.fallbackEr != nil {
		return EngineFailure{Reason: fmt.Errorf("%v (fallback %s: %v)", failure, s.fallback.Name(), s.fallbackEr)}
	}
	return s.fallbackS.Validate(doc)
}
