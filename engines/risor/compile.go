package risor

import (
	"context"
	"errors"
	"strings"

	risorLib "github.com/risor-io/risor"
	risorCompiler "github.com/risor-io/risor/compiler"
	risorErrors "github.com/risor-io/risor/errz"
	risorParser "github.com/risor-io/risor/parser"

	"github.com/florabot/evalengine/platform"
)

// compileUnit parses and compiles the unit source into bytecode. Each name
// in globalNames is declared for the compiler, in addition to the default
// Risor globals, so evaluated code can reference the environment's bindings.
func compileUnit(ctx context.Context, source string, globalNames []string) (*risorCompiler.Code, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrEmptyCode
	}

	ast, err := risorParser.Parse(ctx, source)
	if err != nil {
		return nil, err
	}

	cfg := risorLib.NewConfig()
	names := append(cfg.GlobalNames(), globalNames...)

	return risorCompiler.Compile(ast, risorCompiler.WithGlobalNames(names))
}

// syntaxOutcome converts a parse or compile error into the compile-failure
// outcome. Risor's friendly errors already embed the source position, so the
// message carries the pointer and no separate caret line is recovered.
func syntaxOutcome(err error) platform.Outcome {
	msg := err.Error()
	var friendlyErr risorErrors.FriendlyError
	if errors.As(err, &friendlyErr) {
		msg = friendlyErr.FriendlyErrorMessage()
	}
	return platform.NewSyntaxFailure("", 0, "SyntaxError", msg)
}
