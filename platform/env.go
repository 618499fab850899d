package platform

import (
	"maps"

	"github.com/florabot/evalengine/chat"
)

// Environment is the binding set visible to one executing unit. It is built
// fresh per invocation and never shared; machines convert it into their
// native global scope.
type Environment struct {
	// Invocation supplies the host handles: application, originating message,
	// channel, guild and invoker, plus the reply primitives the shortcut
	// helpers close over.
	Invocation *chat.Invocation

	// LastResult is the session's last non-null produced value, bound as `_`.
	// Nil when nothing has been produced yet.
	LastResult Value

	// LastSubmission is the session's last evaluated submission body, bound
	// as `_p`. Empty until the first evaluation.
	LastSubmission string

	// HasSubmission distinguishes an empty prior submission from none.
	HasSubmission bool

	// Statics is the whitelist table of host symbols exposed to evaluated
	// code, configured once at engine start.
	Statics map[string]any
}

// BuildEnvironment snapshots the session state and bundles it with the
// invocation context and the static registry.
//
// Precedence on name collision is fixed: statics are applied first and
// per-invocation bindings override them, so the registry can never shadow a
// host handle or helper.
func BuildEnvironment(session *Session, inv *chat.Invocation, statics map[string]any) *Environment {
	sub, ok := session.LastSubmission()
	return &Environment{
		Invocation:     inv,
		LastResult:     session.LastResult(),
		LastSubmission: sub,
		HasSubmission:  ok,
		Statics:        maps.Clone(statics),
	}
}
