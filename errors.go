package hyperwire

import "errors"

// Sentinel errors for exchange construction and execution.
var (
	// ErrInvalidSwapStyle reports a swap attribute value outside the fixed
	// enumeration. This is a configuration error: the exchange fails before
	// any network activity.
	ErrInvalidSwapStyle = errors.New("hyperwire: invalid swap style")

	// ErrEvalUnsupported is returned by NopEvaluator. Hosts that want
	// eval: destinations or inline on* listeners must install a real
	// Evaluator.
	ErrEvalUnsupported = errors.New("hyperwire: script evaluation not supported")

	// ErrExchangeCanceled reports an exchange stopped by a listener's
	// cancellation signal on a lifecycle event.
	ErrExchangeCanceled = errors.New("hyperwire: exchange canceled")

	// ErrTransport wraps a network-level failure. The exchange terminates
	// with no content and no swap; it is never retried.
	ErrTransport = errors.New("hyperwire: transport failure")
)

// IsCanceled checks if err reports a listener-canceled exchange.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrExchangeCanceled)
}
