// Package bot is the thin command surface over the evaluation engine: two
// entry points, both restricted to privileged callers.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	evalengine "github.com/florabot/evalengine"
	"github.com/florabot/evalengine/chat"
	"github.com/florabot/evalengine/engines/types"
	"github.com/florabot/evalengine/internal/helpers"
	"github.com/florabot/evalengine/options"
)

// ErrNotPrivileged is returned when a non-admin invokes an eval command. The
// hosting framework decides how (or whether) to surface it.
var ErrNotPrivileged = errors.New("caller is not a bot admin")

// Commands wires the eval and retry entry points to one engine.
type Commands struct {
	engine *evalengine.Engine
	cfg    *Config

	logHandler slog.Handler
	logger     *slog.Logger
}

// NewCommands builds the command surface from a config, constructing the
// engine it fronts.
func NewCommands(cfg *Config, handler slog.Handler, opts ...options.Option) (*Commands, error) {
	handler, logger := helpers.SetupLogger(handler, "bot", "Commands")

	engineType, err := types.Parse(cfg.Engine)
	if err != nil {
		return nil, err
	}

	opts = append([]options.Option{
		options.WithLogger(handler),
		options.WithPasteBaseURL(cfg.PasteURL),
		options.WithTimeout(time.Duration(cfg.EvalTimeout)),
	}, opts...)

	var engine *evalengine.Engine
	switch engineType {
	case types.Risor:
		engine, err = evalengine.NewRisorEngine(opts...)
	default:
		engine, err = evalengine.NewStarlarkEngine(opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build engine: %w", err)
	}

	return &Commands{
		engine:     engine,
		cfg:        cfg,
		logHandler: handler,
		logger:     logger,
	}, nil
}

// Engine exposes the underlying engine, mainly for tests and host wiring.
func (c *Commands) Engine() *evalengine.Engine {
	return c.engine
}

// HandleEval executes submitted code. The free-form trailing argument of the
// chat command arrives as code.
func (c *Commands) HandleEval(ctx context.Context, inv *chat.Invocation, code string) error {
	if !c.cfg.IsAdmin(inv.Invoker.ID) {
		c.logger.WarnContext(ctx, "eval denied", "user", inv.Invoker.ID)
		return ErrNotPrivileged
	}
	return c.engine.Eval(ctx, inv, code)
}

// HandleRetry re-runs the previously evaluated code.
func (c *Commands) HandleRetry(ctx context.Context, inv *chat.Invocation) error {
	if !c.cfg.IsAdmin(inv.Invoker.ID) {
		c.logger.WarnContext(ctx, "retry denied", "user", inv.Invoker.ID)
		return ErrNotPrivileged
	}
	return c.engine.Retry(ctx, inv)
}
