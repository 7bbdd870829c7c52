package hyperwire

import "context"

// evalScheme marks a destination whose text is a program to evaluate
// locally instead of a URL to fetch.
const evalScheme = "eval:"

// Scope is the explicit named-argument record passed to an evaluator. No
// ambient bindings exist: everything a script may touch is listed here.
type Scope struct {
	// Element is the element the script is bound to.
	Element Element

	// Event is the event that triggered evaluation, when there is one.
	Event *Event

	// Exchange is the in-flight descriptor for eval: destinations; nil
	// for inline listeners bound outside an exchange.
	Exchange *Exchange
}

// Evaluator runs script text on behalf of the engine. It backs two
// features: eval: destinations, whose return value becomes the swap content
// (a string is parsed, a Fragment is used as-is, nil swaps nothing), and
// inline on* listener attributes, whose text runs for its side effects.
//
// Arbitrary script execution is a deliberate capability the host grants by
// installing an evaluator; the engine defaults to NopEvaluator.
type Evaluator interface {
	Evaluate(ctx context.Context, script string, scope Scope) (any, error)
}

// NopEvaluator is the safe default: it refuses every script with
// ErrEvalUnsupported.
type NopEvaluator struct{}

// Evaluate implements Evaluator.
func (NopEvaluator) Evaluate(context.Context, string, Scope) (any, error) {
	return nil, ErrEvalUnsupported
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(ctx context.Context, script string, scope Scope) (any, error)

// Evaluate implements Evaluator.
func (f EvaluatorFunc) Evaluate(ctx context.Context, script string, scope Scope) (any, error) {
	return f(ctx, script, scope)
}
