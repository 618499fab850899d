package risor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	risorLib "github.com/risor-io/risor"
	risorErrors "github.com/risor-io/risor/errz"
	"github.com/risor-io/risor/object"

	"github.com/florabot/evalengine/chat"
	"github.com/florabot/evalengine/platform"
)

// Evaluate compiles the unit source against the environment's bindings and
// runs it. The wrap stage arranged for the script's final expression to be
// the reserved callable's invocation, so the script value is the unit's
// return value.
func (m *Machine) Evaluate(ctx context.Context, source string, env *platform.Environment) platform.Outcome {
	logger := m.logger.WithGroup("Evaluate")

	// Simulated stdout, scoped to this single invocation.
	var stdout strings.Builder

	globals := m.buildGlobals(ctx, env, &stdout)

	names := make([]string, 0, len(globals))
	for k := range globals {
		names = append(names, k)
	}

	code, err := compileUnit(ctx, source, names)
	if err != nil {
		logger.DebugContext(ctx, "compilation failed", "error", err)
		return syntaxOutcome(err)
	}

	opts := make([]risorLib.Option, 0, len(globals))
	for k, v := range globals {
		opts = append(opts, risorLib.WithGlobal(k, v))
	}

	result, err := risorLib.EvalCode(ctx, code, opts...)
	if err != nil {
		return platform.NewRuntimeFailure(runtimeTrace(err))
	}

	logger.DebugContext(ctx, "execution complete", "result", result)
	return platform.NewSuccess(stdout.String(), newValue(result))
}

// buildGlobals converts the environment into the unit's global scope: the
// static registry first, then the invocation bindings, later entries
// overriding earlier ones.
func (m *Machine) buildGlobals(ctx context.Context, env *platform.Environment, stdout *strings.Builder) map[string]any {
	globals := make(map[string]any, len(env.Statics)+16)

	for k, v := range env.Statics {
		globals[k] = v
	}

	inv := env.Invocation

	// Host handles.
	globals["ctx"] = invocationMap(ctx, inv)
	globals["bot"] = hostMap(inv.Host)
	globals["msg"] = messageMap(*inv.Message)
	globals["channel"] = channelMap(*inv.Channel)
	globals["guild"] = guildMap(*inv.Guild)
	globals["me"] = userMap(*inv.Invoker)

	// Shortcut helpers closed over the invocation, plus the print override
	// that routes the output stream into the capture buffer.
	globals["send"] = sendBuiltin(ctx, inv)
	globals["upload"] = uploadBuiltin(ctx, inv)
	globals["dir"] = dirBuiltin()
	globals["print"] = printBuiltin(stdout)

	// Grabbers.
	globals["_g"] = grabber("_g", inv.Host.Guilds(),
		func(g chat.Guild) string { return g.ID }, guildMap)
	globals["_u"] = grabber("_u", inv.Host.Users(),
		func(u chat.User) string { return u.ID }, userMap)
	globals["_c"] = grabber("_c", inv.Host.Channels(),
		func(c chat.Channel) string { return c.ID }, channelMap)

	// Last result and last submission.
	globals["_"] = any(object.Nil)
	if env.LastResult != nil {
		globals["_"] = env.LastResult.Native()
	}
	globals["_p"] = any(object.Nil)
	if env.HasSubmission {
		globals["_p"] = env.LastSubmission
	}

	return globals
}

// runtimeTrace renders an execution error, preferring Risor's friendly
// multi-line form which includes the failing position.
func runtimeTrace(err error) string {
	var friendlyErr risorErrors.FriendlyError
	if errors.As(err, &friendlyErr) {
		return friendlyErr.FriendlyErrorMessage()
	}
	return fmt.Sprintf("Error: %s", err)
}
