package bot

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florabot/evalengine/chat/chattest"
)

func newTestCommands(t *testing.T, cfg *Config) *Commands {
	t.Helper()
	cfg.applyDefaults()
	cmds, err := NewCommands(cfg, slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, err)
	return cmds
}

func TestHandleEval(t *testing.T) {
	t.Parallel()

	// The default invocation's invoker has ID "2".
	cmds := newTestCommands(t, &Config{Admins: []string{"2"}})

	replier := &chattest.Replier{}
	inv := chattest.NewInvocation(replier, &chattest.Reactor{})

	require.NoError(t, cmds.HandleEval(context.Background(), inv, "1 + 1"))
	assert.Equal(t, "```py\n2\n```", replier.LastContent())
}

func TestHandleEvalDeniesNonAdmin(t *testing.T) {
	t.Parallel()

	cmds := newTestCommands(t, &Config{Admins: []string{"somebody-else"}})

	replier := &chattest.Replier{}
	inv := chattest.NewInvocation(replier, &chattest.Reactor{})

	err := cmds.HandleEval(context.Background(), inv, "1 + 1")
	require.ErrorIs(t, err, ErrNotPrivileged)
	assert.Empty(t, replier.Sent)
}

func TestHandleRetry(t *testing.T) {
	t.Parallel()

	cmds := newTestCommands(t, &Config{Admins: []string{"2"}})

	replier := &chattest.Replier{}
	inv := chattest.NewInvocation(replier, &chattest.Reactor{})
	ctx := context.Background()

	require.NoError(t, cmds.HandleEval(ctx, inv, "3 * 3"))
	require.NoError(t, cmds.HandleRetry(ctx, inv))

	require.Len(t, replier.Sent, 2)
	assert.Equal(t, replier.Sent[0].Content, replier.Sent[1].Content)
}

func TestHandleRetryDeniesNonAdmin(t *testing.T) {
	t.Parallel()

	cmds := newTestCommands(t, &Config{})

	inv := chattest.NewInvocation(&chattest.Replier{}, &chattest.Reactor{})

	err := cmds.HandleRetry(context.Background(), inv)
	require.ErrorIs(t, err, ErrNotPrivileged)
}

func TestNewCommandsSelectsEngine(t *testing.T) {
	t.Parallel()

	cfg := &Config{Engine: "risor"}
	cfg.applyDefaults()
	cmds, err := NewCommands(cfg, slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, err)
	assert.Contains(t, cmds.Engine().String(), "risor")

	cfg = &Config{Engine: "lua"}
	_, err = NewCommands(cfg, slog.NewTextHandler(io.Discard, nil))
	require.Error(t, err)
}
