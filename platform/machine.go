package platform

import "context"

// RunFuncName is the reserved name of the callable every wrapped unit
// defines. The wrap stage creates it and the execute stage invokes it; user
// code never needs to know it exists.
const RunFuncName = "__run__"

// WrapOptions controls how a raw submission becomes an executable unit.
type WrapOptions struct {
	// Wrap specifies whether to enclose the code in the reserved callable.
	// When false the caller must supply an already-invocable unit.
	Wrap bool

	// StripTicks specifies whether to strip formatting-related backticks.
	StripTicks bool

	// ImplicitReturn automatically adds a return statement to the last line,
	// when wrapping.
	ImplicitReturn bool

	// IndentWidth is the indent width used when wrapping.
	IndentWidth int
}

// DefaultWrapOptions matches the interactive eval command: fenced code in,
// wrapped unit with an implicit return out.
func DefaultWrapOptions() WrapOptions {
	return WrapOptions{
		Wrap:           true,
		StripTicks:     true,
		ImplicitReturn: true,
		IndentWidth:    4,
	}
}

// Machine compiles and runs one scripting dialect. Implementations live
// under engines/.
type Machine interface {
	Name() string

	// WrapUnit joins prepared submission lines into a single source text that
	// defines (and arranges the invocation of) the reserved callable. A nil
	// line slice produces a unit whose compilation fails.
	WrapUnit(lines []string, indentWidth int) string

	// Evaluate compiles source against the environment's bindings, runs the
	// reserved callable with its print stream captured, and reports the
	// outcome. The context bounds the execute stage.
	Evaluate(ctx context.Context, source string, env *Environment) Outcome
}
