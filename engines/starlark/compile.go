package starlark

import (
	"errors"
	"strings"

	"go.starlark.net/resolve"
	starlarkLib "go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/florabot/evalengine/platform"
)

// unitFilename is the pseudo-filename reported in positions and traces.
const unitFilename = "<eval>"

// compileUnit parses and compiles the unit source into a Starlark program.
// Every name in globals is predeclared, so evaluated code can reference any
// binding the environment will supply at execution time.
func compileUnit(source string, globals starlarkLib.StringDict) (*starlarkLib.Program, error) {
	opts := &syntax.FileOptions{
		Set:             true,
		While:           true,
		TopLevelControl: true,
		GlobalReassign:  true,
		Recursion:       true,
	}

	f, err := opts.Parse(unitFilename, []byte(source), 0)
	if err != nil {
		return nil, err
	}

	return starlarkLib.FileProgram(f, globals.Has)
}

// syntaxOutcome converts a parse or resolve error into the compile-failure
// outcome, recovering the offending source line and caret column when the
// error carries a position.
func syntaxOutcome(source string, err error) platform.Outcome {
	var serr syntax.Error
	if errors.As(err, &serr) {
		return positionedSyntaxFailure(source, serr.Pos, "SyntaxError", serr.Msg)
	}

	var rerrs resolve.ErrorList
	if errors.As(err, &rerrs) && len(rerrs) > 0 {
		// Report the first resolver error; the rest are usually cascade.
		first := rerrs[0]
		return positionedSyntaxFailure(source, first.Pos, "ResolveError", first.Msg)
	}

	return platform.NewSyntaxFailure("", 0, "SyntaxError", err.Error())
}

func positionedSyntaxFailure(source string, pos syntax.Position, class, msg string) platform.Outcome {
	return platform.NewSyntaxFailure(lineAt(source, int(pos.Line)), int(pos.Col), class, msg)
}

// lineAt returns the 1-based line of src, or "" when out of range.
func lineAt(src string, line int) string {
	if line < 1 {
		return ""
	}
	lines := strings.Split(src, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}
