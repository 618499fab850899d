// Package risor implements an alternative evaluation machine on the Risor
// engine, for hosts that prefer its Go-flavored dialect.
package risor

import (
	"log/slog"
	"strings"

	"github.com/florabot/evalengine/internal/helpers"
	"github.com/florabot/evalengine/platform"
)

// Machine compiles and runs wrapped units on the Risor VM.
type Machine struct {
	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a new Risor Machine.
func New(handler slog.Handler) *Machine {
	handler, logger := helpers.SetupLogger(handler, "risor", "Machine")
	return &Machine{
		logHandler: handler,
		logger:     logger,
	}
}

func (m *Machine) String() string {
	return "risor.Machine"
}

func (m *Machine) Name() string {
	return "risor"
}

// WrapUnit encloses the prepared lines in a function declaration for the
// reserved callable and appends the invocation, so the unit's value is the
// callable's return. A nil line slice yields empty source, which the compile
// stage rejects.
func (m *Machine) WrapUnit(lines []string, indentWidth int) string {
	if len(lines) == 0 {
		return ""
	}
	indent := strings.Repeat(" ", indentWidth)
	body := strings.Join(lines, "\n"+indent)
	return "func " + platform.RunFuncName + "() {\n" + indent + body + "\n}\n" + platform.RunFuncName + "()"
}
