package starlark

import (
	"context"
	"errors"
	"fmt"
	"strings"

	starlarkLib "go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/florabot/evalengine/chat"
	"github.com/florabot/evalengine/platform"
)

// traceDepth bounds a runtime trace to the innermost frames.
const traceDepth = 7

// Evaluate compiles the unit source against the environment's bindings, then
// invokes the reserved callable with its print stream captured into a
// per-invocation buffer.
func (m *Machine) Evaluate(ctx context.Context, source string, env *platform.Environment) platform.Outcome {
	logger := m.logger.WithGroup("Evaluate")

	// Simulated stdout, scoped to this single invocation.
	var stdout strings.Builder

	globals, err := m.buildGlobals(ctx, env)
	if err != nil {
		logger.ErrorContext(ctx, "failed to build environment bindings", "error", err)
		return platform.NewRuntimeFailure(fmt.Sprintf("environment error: %v", err))
	}

	prog, err := compileUnit(source, globals)
	if err != nil {
		logger.DebugContext(ctx, "compilation failed", "error", err)
		return syntaxOutcome(source, err)
	}

	thread := &starlarkLib.Thread{
		Name: "eval",
		Print: func(_ *starlarkLib.Thread, msg string) {
			stdout.WriteString(msg)
			stdout.WriteByte('\n')
		},
	}

	// Cancellation from the context bounds the execute stage.
	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(context.Cause(ctx).Error())
	})
	defer stop()

	// Running the program only executes the surrounding definitions; the
	// unit body runs when the reserved callable is invoked below.
	finalGlobals, err := prog.Init(thread, globals)
	if err != nil {
		return runtimeOutcome(err)
	}

	fn, ok := finalGlobals[platform.RunFuncName]
	if !ok {
		// Contract violation: the transform stage guarantees the callable
		// exists whenever wrapping is on.
		return platform.NewRuntimeFailure(
			fmt.Sprintf("internal: unit did not define %s", platform.RunFuncName))
	}

	ret, err := starlarkLib.Call(thread, fn, nil, nil)
	if err != nil {
		return runtimeOutcome(err)
	}

	logger.DebugContext(ctx, "execution complete", "result", ret)
	return platform.NewSuccess(stdout.String(), newValue(ret))
}

// buildGlobals converts the environment into the unit's global scope:
// standard modules first, then the static registry, then the invocation
// bindings, later entries overriding earlier ones.
func (m *Machine) buildGlobals(ctx context.Context, env *platform.Environment) (starlarkLib.StringDict, error) {
	globals := standardModules()

	for k, v := range env.Statics {
		converted, err := convertToStarlarkValue(v)
		if err != nil {
			return nil, fmt.Errorf("registry entry %q: %w", k, err)
		}
		globals[k] = converted
	}

	inv := env.Invocation

	// Host handles.
	globals["ctx"] = invocationStruct(ctx, inv)
	globals["bot"] = hostStruct(inv.Host)
	globals["msg"] = messageStruct(*inv.Message)
	globals["channel"] = channelStruct(*inv.Channel)
	globals["guild"] = guildStruct(*inv.Guild)
	globals["me"] = userStruct(*inv.Invoker)

	// Shortcut helpers closed over the invocation.
	globals["send"] = sendBuiltin(ctx, inv)
	globals["upload"] = uploadBuiltin(ctx, inv)
	globals["dir"] = dirBuiltin()

	// Grabbers.
	globals["_g"] = grabber("_g", inv.Host.Guilds(),
		func(g chat.Guild) string { return g.ID }, guildStruct)
	globals["_u"] = grabber("_u", inv.Host.Users(),
		func(u chat.User) string { return u.ID }, userStruct)
	globals["_c"] = grabber("_c", inv.Host.Channels(),
		func(c chat.Channel) string { return c.ID }, channelStruct)

	// Last result and last submission.
	globals["_"] = starlarkLib.Value(starlarkLib.None)
	if env.LastResult != nil {
		if native, ok := env.LastResult.Native().(starlarkLib.Value); ok {
			globals["_"] = native
		}
	}
	globals["_p"] = starlarkLib.Value(starlarkLib.None)
	if env.HasSubmission {
		globals["_p"] = starlarkLib.String(env.LastSubmission)
	}

	return globals, nil
}

// invocationStruct is the invocation-context handle: the originating message
// with its channel, guild and author, plus the reply helpers, bundled the way
// a command framework's context object is.
func invocationStruct(ctx context.Context, inv *chat.Invocation) starlarkLib.Value {
	return starlarkstruct.FromStringDict(starlarkstruct.Default, starlarkLib.StringDict{
		"message": messageStruct(*inv.Message),
		"channel": channelStruct(*inv.Channel),
		"guild":   guildStruct(*inv.Guild),
		"author":  userStruct(*inv.Invoker),
		"send":    sendBuiltin(ctx, inv),
		"upload":  uploadBuiltin(ctx, inv),
	})
}

func sendBuiltin(ctx context.Context, inv *chat.Invocation) *starlarkLib.Builtin {
	return starlarkLib.NewBuiltin("send", func(
		_ *starlarkLib.Thread,
		b *starlarkLib.Builtin,
		args starlarkLib.Tuple,
		kwargs []starlarkLib.Tuple,
	) (starlarkLib.Value, error) {
		var content string
		if err := starlarkLib.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &content); err != nil {
			return nil, err
		}
		sent, err := inv.Reply(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("send: %w", err)
		}
		return messageStruct(*sent), nil
	})
}

func uploadBuiltin(ctx context.Context, inv *chat.Invocation) *starlarkLib.Builtin {
	return starlarkLib.NewBuiltin("upload", func(
		_ *starlarkLib.Thread,
		b *starlarkLib.Builtin,
		args starlarkLib.Tuple,
		kwargs []starlarkLib.Tuple,
	) (starlarkLib.Value, error) {
		var path string
		if err := starlarkLib.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &path); err != nil {
			return nil, err
		}
		sent, err := inv.ReplyFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("upload: %w", err)
		}
		return messageStruct(*sent), nil
	})
}

// runtimeOutcome converts an execution error into the runtime-failure
// outcome, with the trace bounded to the innermost frames. Output captured
// before the failure is discarded, matching the interactive contract of
// showing only the trace.
func runtimeOutcome(err error) platform.Outcome {
	var evalErr *starlarkLib.EvalError
	if errors.As(err, &evalErr) {
		return platform.NewRuntimeFailure(formatTrace(evalErr, traceDepth))
	}
	return platform.NewRuntimeFailure(err.Error())
}

// formatTrace renders an EvalError call stack, keeping at most depth
// innermost frames.
func formatTrace(e *starlarkLib.EvalError, depth int) string {
	stack := e.CallStack
	if len(stack) > depth {
		stack = stack[len(stack)-depth:]
	}

	var b strings.Builder
	b.WriteString("Traceback (most recent call last):\n")
	for _, fr := range stack {
		fmt.Fprintf(&b, "  %s: in %s\n", fr.Pos, fr.Name)
	}
	b.WriteString("Error: ")
	b.WriteString(e.Msg)
	return b.String()
}
