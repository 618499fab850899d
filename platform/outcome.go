package platform

// OutcomeKind discriminates the three terminal states of one evaluation.
type OutcomeKind int

const (
	// OutcomeSyntaxFailure means the submission did not compile.
	OutcomeSyntaxFailure OutcomeKind = iota

	// OutcomeRuntimeFailure means the unit raised during execution.
	OutcomeRuntimeFailure

	// OutcomeSuccess means the unit ran to completion.
	OutcomeSuccess
)

// Value is the machine-opaque result produced by one execution. Each engine
// wraps its native object type; the orchestrator only needs the textual
// representation and the null check.
type Value interface {
	// Repr returns the textual representation of the value, as the dialect
	// would display it.
	Repr() string

	// IsNone reports whether the value is the dialect's null.
	IsNone() bool

	// Native returns the engine-native object, for rebinding into a later
	// evaluation on the same engine.
	Native() any
}

// Outcome is the tagged result of one evaluation. Produced once per
// invocation by a Machine and consumed by the presenter.
type Outcome struct {
	Kind OutcomeKind

	// Syntax failure fields. Offending may be empty when the engine could not
	// recover the source line; Col is 1-based and 0 when unknown.
	Offending string
	Col       int
	Class     string
	Message   string

	// Runtime failure trace, bounded to the innermost frames.
	Trace string

	// Success fields.
	Captured string
	Repr     string

	value Value
}

// NewSyntaxFailure builds the compile-failure outcome.
func NewSyntaxFailure(offending string, col int, class, message string) Outcome {
	return Outcome{
		Kind:      OutcomeSyntaxFailure,
		Offending: offending,
		Col:       col,
		Class:     class,
		Message:   message,
	}
}

// NewRuntimeFailure builds the execution-failure outcome.
func NewRuntimeFailure(trace string) Outcome {
	return Outcome{Kind: OutcomeRuntimeFailure, Trace: trace}
}

// NewSuccess builds the success outcome from the captured output stream and
// the returned value.
func NewSuccess(captured string, v Value) Outcome {
	out := Outcome{Kind: OutcomeSuccess, Captured: captured}
	if v != nil {
		out.Repr = v.Repr()
		out.value = v
	}
	return out
}

// Value returns the produced value on success, or nil.
func (o Outcome) Value() Value {
	return o.value
}
