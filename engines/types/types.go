// Package types defines the engine type identifiers.
package types

import (
	"fmt"
	"strings"
)

// Type identifies one supported scripting engine.
type Type string

const (
	Starlark Type = "starlark"
	Risor    Type = "risor"

	// Unsupported is a placeholder for unknown engine names.
	Unsupported Type = "unsupported"
)

func (t Type) String() string {
	return string(t)
}

// Parse normalizes a user-supplied engine name into a Type.
func Parse(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case string(Starlark):
		return Starlark, nil
	case string(Risor):
		return Risor, nil
	default:
		return Unsupported, fmt.Errorf("unsupported engine type: %q", name)
	}
}
