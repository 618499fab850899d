// Package present renders evaluation outcomes into outbound chat messages,
// overflowing oversized output to a paste service.
package present

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/florabot/evalengine/chat"
	"github.com/florabot/evalengine/haste"
	"github.com/florabot/evalengine/internal/helpers"
	"github.com/florabot/evalengine/platform"
)

// MessageCeiling is the largest rendered block sent directly to the
// conversation; anything longer goes through the paste service.
const MessageCeiling = 2000

// Paster uploads overflow content and returns a shareable link.
type Paster interface {
	Upload(ctx context.Context, content string) (string, error)
}

// Presenter formats outcomes as annotated code blocks and sends them through
// the invocation's reply primitive.
type Presenter struct {
	paster   Paster
	language string
	ceiling  int

	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a Presenter that annotates code blocks with language and
// overflows through paster.
func New(paster Paster, language string, handler slog.Handler) *Presenter {
	handler, logger := helpers.SetupLogger(handler, "present", "Presenter")
	return &Presenter{
		paster:     paster,
		language:   language,
		ceiling:    MessageCeiling,
		logHandler: handler,
		logger:     logger,
	}
}

func (p *Presenter) String() string {
	return fmt.Sprintf("present.Presenter{language: %s, ceiling: %d}", p.language, p.ceiling)
}

// Present renders the outcome and sends it to the invocation's conversation.
func (p *Presenter) Present(ctx context.Context, out platform.Outcome, inv *chat.Invocation) error {
	switch out.Kind {
	case platform.OutcomeSyntaxFailure:
		_, err := inv.Reply(ctx, p.renderSyntaxFailure(out))
		return err

	case platform.OutcomeRuntimeFailure:
		_, err := inv.Reply(ctx, p.codeBlock(out.Trace))
		return err

	case platform.OutcomeSuccess:
		return p.presentSuccess(ctx, out, inv)

	default:
		return fmt.Errorf("unknown outcome kind: %d", out.Kind)
	}
}

func (p *Presenter) presentSuccess(ctx context.Context, out platform.Outcome, inv *chat.Invocation) error {
	logger := p.logger.WithGroup("presentSuccess")

	// Combine the simulated stdout with the repr of the return value.
	meat := out.Captured + out.Repr
	block := p.codeBlock(meat)

	if len(block) <= p.ceiling {
		_, err := inv.Reply(ctx, block)
		return err
	}

	// Too long for one message; hand the raw content to the paste service.
	link, err := p.paster.Upload(ctx, meat)
	switch {
	case err == nil:
		_, err = inv.Reply(ctx, inv.Translator.Translate(chat.KeyEvalLong, link))
		return err
	case errors.Is(err, haste.ErrNoKey):
		// The service accepted the upload but could not host it.
		logger.InfoContext(ctx, "output too large for paste service", "size", len(meat))
		_, err = inv.Reply(ctx, inv.Translator.Translate(chat.KeyEvalHuge))
		return err
	default:
		logger.WarnContext(ctx, "paste service unavailable", "error", err)
		_, err = inv.Reply(ctx, inv.Translator.Translate(chat.KeyEvalPastebinDown))
		return err
	}
}

// renderSyntaxFailure formats a compile failure. When the offending line was
// recovered, a caret is aligned under the reported column; otherwise the
// simpler one-line form is used.
func (p *Presenter) renderSyntaxFailure(out platform.Outcome) string {
	if out.Offending == "" {
		return p.codeBlock(fmt.Sprintf("%s: %s", out.Class, out.Message))
	}

	col := out.Col
	if col < 1 {
		col = 1
	}
	caret := strings.Repeat(" ", col-1) + "^"
	return p.codeBlock(fmt.Sprintf("%s\n%s\n%s: %s", out.Offending, caret, out.Class, out.Message))
}

func (p *Presenter) codeBlock(body string) string {
	return "```" + p.language + "\n" + body + "\n```"
}
