// Package evalengine is an interactive code-evaluation engine for chat bots.
// It turns a submitted block of source text into an executable unit, runs it
// on an embedded scripting engine with an explicit binding set, captures its
// output, and replies with a formatted result, overflowing to a paste
// service when the output is too large.
package evalengine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/florabot/evalengine/chat"
	risorEngine "github.com/florabot/evalengine/engines/risor"
	starlarkEngine "github.com/florabot/evalengine/engines/starlark"
	"github.com/florabot/evalengine/engines/types"
	"github.com/florabot/evalengine/haste"
	"github.com/florabot/evalengine/internal/helpers"
	"github.com/florabot/evalengine/options"
	"github.com/florabot/evalengine/platform"
	"github.com/florabot/evalengine/present"
)

// Engine runs the full evaluation pipeline: transform, compile, execute,
// update session state, attach the outcome marker, and present the result.
//
// One Engine owns one Session. Evaluations are serialized through a mutex,
// so the session's last-result and last-submission slots have exactly one
// writer at a time.
type Engine struct {
	machine   platform.Machine
	session   *platform.Session
	presenter *present.Presenter
	statics   map[string]any
	wrap      platform.WrapOptions
	timeout   time.Duration

	mu sync.Mutex

	logHandler slog.Handler
	logger     *slog.Logger
}

// NewStarlarkEngine creates an engine on the Starlark machine.
func NewStarlarkEngine(opts ...options.Option) (*Engine, error) {
	return newEngine(types.Starlark, opts...)
}

// NewRisorEngine creates an engine on the Risor machine.
func NewRisorEngine(opts ...options.Option) (*Engine, error) {
	return newEngine(types.Risor, opts...)
}

func newEngine(machineType types.Type, opts ...options.Option) (*Engine, error) {
	cfg := options.DefaultConfig(machineType)

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("error applying option: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	handler, logger := helpers.SetupLogger(cfg.GetHandler(), "evalengine", "Engine")

	var machine platform.Machine
	switch machineType {
	case types.Starlark:
		machine = starlarkEngine.New(handler)
	case types.Risor:
		machine = risorEngine.New(handler)
	default:
		return nil, fmt.Errorf("unsupported machine type: %s", machineType)
	}

	paster := cfg.GetPaster()
	if paster == nil {
		paster = haste.New(cfg.GetPasteBaseURL(), handler)
	}

	return &Engine{
		machine:    machine,
		session:    platform.NewSession(),
		presenter:  present.New(paster, cfg.GetLanguage(), handler),
		statics:    cfg.GetStatics(),
		wrap:       cfg.GetWrapOptions(),
		timeout:    cfg.GetTimeout(),
		logHandler: handler,
		logger:     logger,
	}, nil
}

func (e *Engine) String() string {
	return fmt.Sprintf("evalengine.Engine{machine: %s}", e.machine.Name())
}

// Session returns the engine's evaluation session.
func (e *Engine) Session() *platform.Session {
	return e.session
}

// Eval runs a fresh top-level evaluation of raw submitted text. The raw body
// is recorded as the session's last submission before the pipeline runs, so
// a later Retry replays exactly what was submitted.
func (e *Engine) Eval(ctx context.Context, inv *chat.Invocation, raw string) error {
	e.session.RecordSubmission(raw)
	return e.run(ctx, inv, raw)
}

// Retry re-runs the previously submitted code through the full pipeline. The
// stored submission is left untouched; only a fresh Eval updates it. With no
// prior submission it replies with a notice and produces no outcome.
func (e *Engine) Retry(ctx context.Context, inv *chat.Invocation) error {
	raw, ok := e.session.LastSubmission()
	if !ok {
		_, err := inv.Reply(ctx, inv.Translator.Translate(chat.KeyEvalNoPrevious))
		return err
	}
	return e.run(ctx, inv, raw)
}

func (e *Engine) run(ctx context.Context, inv *chat.Invocation, raw string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	source := platform.Transform(raw, e.wrap, e.machine)

	logger := e.logger.With("unit", helpers.ShortID(source))
	logger.InfoContext(ctx, "evaluating submission", "machine", e.machine.Name(), "bytes", len(source))

	env := platform.BuildEnvironment(e.session, inv, e.statics)

	execCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	outcome := e.machine.Evaluate(execCtx, source, env)

	switch outcome.Kind {
	case platform.OutcomeSuccess:
		e.session.RecordResult(outcome.Value())
		e.react(ctx, inv, chat.MarkerSuccess)
	case platform.OutcomeRuntimeFailure:
		e.react(ctx, inv, chat.MarkerFailure)
	}

	return e.presenter.Present(ctx, outcome, inv)
}

// react attaches an outcome marker to the originating message. Failures
// (typically missing permission) are swallowed.
func (e *Engine) react(ctx context.Context, inv *chat.Invocation, marker chat.Marker) {
	if inv.Reactor == nil || inv.Message == nil {
		return
	}
	if err := inv.Reactor.React(ctx, inv.Message.ChannelID, inv.Message.ID, marker); err != nil {
		e.logger.DebugContext(ctx, "failed to attach outcome marker", "error", err)
	}
}
