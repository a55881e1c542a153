//go:build !cgo

package libxml

import (
	"fmt"

	"github.com/vvka-141/ddexcheck/internal/schema"
)

// Engine is unavailable without cgo.
type Engine struct{}

// New returns the libxml2 engine.
func New() Engine { return Engine{} }

func (Engine) Name() string { return "libxml2" }

func (Engine) Load(path string) (schema.Schema, error) {
	return nil, fmt.Errorf("libxml2 requires cgo, cannot compile %s: %w", path, schema.ErrEngineUnavailable)
}
