package backend

import "fmt"

// registry is filled in by each variant's package via an init-time
// registration (see fallback/bitint/bignum's blank imports in cmd/asl2c)
// so pkg/backend itself never imports its own sub-packages, matching the
// teacher's avoidance of import cycles between pkg/schema and its
// satisfiers.
var registry = map[Kind]func() Runtime{}

// Register associates a Kind with a constructor; each variant package
// calls this from an init func.
func Register(kind Kind, ctor func() Runtime) { registry[kind] = ctor }

// New looks up and constructs the Runtime for the given --backend value.
func New(kind Kind) (Runtime, error) {
	ctor, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("backend: unknown runtime kind %q", kind)
	}

	return ctor(), nil
}
