// Package starlark implements the default evaluation machine on the Starlark
// runtime. The dialect is close enough to the submission grammar that wrapped
// units compile nearly verbatim.
package starlark

import (
	"log/slog"
	"strings"

	"github.com/florabot/evalengine/internal/helpers"
	"github.com/florabot/evalengine/platform"
)

// Machine compiles and runs wrapped units on the Starlark VM.
type Machine struct {
	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a new Starlark Machine.
func New(handler slog.Handler) *Machine {
	handler, logger := helpers.SetupLogger(handler, "starlark", "Machine")
	return &Machine{
		logHandler: handler,
		logger:     logger,
	}
}

func (m *Machine) String() string {
	return "starlark.Machine"
}

func (m *Machine) Name() string {
	return "starlark"
}

// WrapUnit nests the prepared lines one indent unit deep under a function
// header, producing a single block that defines the reserved callable.
func (m *Machine) WrapUnit(lines []string, indentWidth int) string {
	indent := strings.Repeat(" ", indentWidth)
	body := strings.Join(lines, "\n"+indent)
	return "def " + platform.RunFuncName + "():\n" + indent + body
}
