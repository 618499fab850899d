package risor

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florabot/evalengine/chat/chattest"
	"github.com/florabot/evalengine/platform"
)

func newTestMachine(t *testing.T) *Machine {
	t.Helper()
	return New(slog.NewTextHandler(io.Discard, nil))
}

func runRaw(t *testing.T, m *Machine, raw string, env *platform.Environment) platform.Outcome {
	t.Helper()
	source := platform.Transform(raw, platform.DefaultWrapOptions(), m)
	return m.Evaluate(context.Background(), source, env)
}

func newTestEnv(t *testing.T, statics map[string]any) (*platform.Environment, *chattest.Replier) {
	t.Helper()
	replier := &chattest.Replier{}
	inv := chattest.NewInvocation(replier, &chattest.Reactor{})
	return platform.BuildEnvironment(platform.NewSession(), inv, statics), replier
}

func TestWrapUnit(t *testing.T) {
	t.Parallel()

	m := newTestMachine(t)

	got := m.WrapUnit([]string{"x := 1", "return x"}, 4)
	assert.Equal(t, "func __run__() {\n    x := 1\n    return x\n}\n__run__()", got)

	// An empty unit stays empty so compilation reports it as such.
	assert.Empty(t, m.WrapUnit(nil, 4))
}

func TestEvaluateSuccess(t *testing.T) {
	t.Parallel()

	m := newTestMachine(t)
	env, _ := newTestEnv(t, nil)

	outcome := runRaw(t, m, "1 + 1", env)

	require.Equal(t, platform.OutcomeSuccess, outcome.Kind)
	assert.Equal(t, "2", outcome.Repr)
	assert.Empty(t, outcome.Captured)
	assert.False(t, outcome.Value().IsNone())
}

func TestEvaluateCapturesPrint(t *testing.T) {
	t.Parallel()

	m := newTestMachine(t)
	env, _ := newTestEnv(t, nil)

	outcome := runRaw(t, m, `print("hello", 42)`, env)

	require.Equal(t, platform.OutcomeSuccess, outcome.Kind)
	assert.Equal(t, "hello 42\n", outcome.Captured)
	assert.True(t, outcome.Value().IsNone())
}

func TestEvaluateEmptySubmission(t *testing.T) {
	t.Parallel()

	m := newTestMachine(t)
	env, _ := newTestEnv(t, nil)

	outcome := runRaw(t, m, "``", env)

	require.Equal(t, platform.OutcomeSyntaxFailure, outcome.Kind)
	assert.Equal(t, "SyntaxError", outcome.Class)
	assert.Contains(t, outcome.Message, "empty")
}

func TestEvaluateSyntaxFailure(t *testing.T) {
	t.Parallel()

	m := newTestMachine(t)
	env, _ := newTestEnv(t, nil)

	outcome := runRaw(t, m, "x :=", env)

	require.Equal(t, platform.OutcomeSyntaxFailure, outcome.Kind)
	assert.Equal(t, "SyntaxError", outcome.Class)
	assert.NotEmpty(t, outcome.Message)
}

func TestEvaluateRuntimeFailure(t *testing.T) {
	t.Parallel()

	m := newTestMachine(t)
	env, _ := newTestEnv(t, nil)

	outcome := runRaw(t, m, `error("boom")`, env)

	require.Equal(t, platform.OutcomeRuntimeFailure, outcome.Kind)
	assert.Contains(t, outcome.Trace, "boom")
}

func TestEvaluateStatics(t *testing.T) {
	t.Parallel()

	m := newTestMachine(t)
	env, _ := newTestEnv(t, map[string]any{"answer": 42})

	outcome := runRaw(t, m, "answer + 0", env)

	require.Equal(t, platform.OutcomeSuccess, outcome.Kind)
	assert.Equal(t, "42", outcome.Repr)
}

func TestEvaluateHostHandles(t *testing.T) {
	t.Parallel()

	m := newTestMachine(t)
	env, _ := newTestEnv(t, nil)

	outcome := runRaw(t, m, `me["name"]`, env)
	require.Equal(t, platform.OutcomeSuccess, outcome.Kind)
	assert.Equal(t, `"dev"`, outcome.Repr)

	outcome = runRaw(t, m, `len(bot["users"])`, env)
	require.Equal(t, platform.OutcomeSuccess, outcome.Kind)
	assert.Equal(t, "2", outcome.Repr)
}

func TestEvaluateGrabbers(t *testing.T) {
	t.Parallel()

	m := newTestMachine(t)
	env, _ := newTestEnv(t, nil)

	outcome := runRaw(t, m, `_u("2")["name"]`, env)
	require.Equal(t, platform.OutcomeSuccess, outcome.Kind)
	assert.Equal(t, `"dev"`, outcome.Repr)

	outcome = runRaw(t, m, `_u("404")`, env)
	require.Equal(t, platform.OutcomeSuccess, outcome.Kind)
	assert.True(t, outcome.Value().IsNone())
}

func TestEvaluateInvocationContext(t *testing.T) {
	t.Parallel()

	m := newTestMachine(t)
	env, replier := newTestEnv(t, nil)

	outcome := runRaw(t, m, "ctx", env)
	require.Equal(t, platform.OutcomeSuccess, outcome.Kind)

	outcome = runRaw(t, m, `ctx["message"]["content"]`, env)
	require.Equal(t, platform.OutcomeSuccess, outcome.Kind)
	assert.Equal(t, `"!eval"`, outcome.Repr)

	outcome = runRaw(t, m, `ctx["author"]["name"]`, env)
	require.Equal(t, platform.OutcomeSuccess, outcome.Kind)
	assert.Equal(t, `"dev"`, outcome.Repr)

	outcome = runRaw(t, m, `ctx["send"]("from ctx")["content"]`, env)
	require.Equal(t, platform.OutcomeSuccess, outcome.Kind)
	assert.Equal(t, "from ctx", replier.LastContent())
}

func TestEvaluateSendHelper(t *testing.T) {
	t.Parallel()

	m := newTestMachine(t)
	env, replier := newTestEnv(t, nil)

	outcome := runRaw(t, m, `send("hi")["content"]`, env)

	require.Equal(t, platform.OutcomeSuccess, outcome.Kind)
	assert.Equal(t, `"hi"`, outcome.Repr)
	assert.Equal(t, "hi", replier.LastContent())
}

func TestEvaluateLastResultBinding(t *testing.T) {
	t.Parallel()

	m := newTestMachine(t)
	session := platform.NewSession()
	inv := chattest.NewInvocation(&chattest.Replier{}, &chattest.Reactor{})

	first := runRaw(t, m, "41 + 1", platform.BuildEnvironment(session, inv, nil))
	require.Equal(t, platform.OutcomeSuccess, first.Kind)
	session.RecordSubmission("41 + 1")
	session.RecordResult(first.Value())

	env := platform.BuildEnvironment(session, inv, nil)
	outcome := runRaw(t, m, "_ + 8", env)
	require.Equal(t, platform.OutcomeSuccess, outcome.Kind)
	assert.Equal(t, "50", outcome.Repr)

	outcome = runRaw(t, m, "_p", env)
	require.Equal(t, platform.OutcomeSuccess, outcome.Kind)
	assert.Equal(t, `"41 + 1"`, outcome.Repr)
}
