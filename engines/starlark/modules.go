package starlark

import (
	"maps"

	starlarkJSON "go.starlark.net/lib/json"
	starlarkMath "go.starlark.net/lib/math"
	starlarkTime "go.starlark.net/lib/time"
	starlarkLib "go.starlark.net/starlark"
)

// Module namespace constants used in both compilation and execution phases.
// These must be defined identically in both places so units compile and run
// against the same universe.
const (
	namespaceJSON = "json" // Provides JSON encoding/decoding functions
	namespaceMath = "math" // Provides mathematical functions and constants
	namespaceTime = "time" // Provides time-related functions
)

// standardModules returns a copy of the Starlark universe with additional
// modules, shared between the compile and execute stages.
func standardModules() starlarkLib.StringDict {
	// Clone the universe to avoid modifying the global one
	universe := maps.Clone(starlarkLib.Universe)

	universe[namespaceJSON] = starlarkJSON.Module
	universe[namespaceMath] = starlarkMath.Module
	universe[namespaceTime] = starlarkTime.Module

	return universe
}
