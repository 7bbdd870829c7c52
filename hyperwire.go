package hyperwire

import (
	"context"
	"log/slog"
	"net/http"
)

// Engine drives the hypermedia exchange pipeline for one document. It holds
// the process-scoped state the pipeline needs - the installed-set and the
// body encoder registry - as explicit instance state, so tests isolate by
// constructing their own engines.
type Engine struct {
	doc       Document
	transport Transport
	eval      Evaluator
	encoders  *EncoderRegistry
	log       *slog.Logger

	// installed records which elements already have behavior bound,
	// keyed by the host's stable element identity. Membership is
	// append-only during normal operation; Uninstall is the explicit
	// teardown hook for hosts that discard elements.
	installed map[any]struct{}
}

// Option configures an Engine.
type Option func(*Engine)

// WithTransport sets the network transport. The default wraps
// http.DefaultClient.
func WithTransport(t Transport) Option {
	return func(e *Engine) { e.transport = t }
}

// WithHTTPClient sets the default transport's underlying client.
func WithHTTPClient(c *http.Client) Option {
	return func(e *Engine) { e.transport = httpTransport{client: c} }
}

// WithEvaluator sets the script evaluator used for eval: destinations and
// inline on* listeners. The default refuses to evaluate anything.
func WithEvaluator(ev Evaluator) Option {
	return func(e *Engine) { e.eval = ev }
}

// WithLogger sets the diagnostic logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithEncoders sets the body encoder registry, replacing the builtin one.
func WithEncoders(r *EncoderRegistry) Option {
	return func(e *Engine) { e.encoders = r }
}

// New creates an engine over a host document.
func New(doc Document, opts ...Option) *Engine {
	e := &Engine{
		doc:       doc,
		transport: httpTransport{client: http.DefaultClient},
		eval:      NopEvaluator{},
		log:       slog.New(discardHandler{}),
		installed: make(map[any]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.encoders == nil {
		e.encoders = NewEncoderRegistry(e.log)
	}
	return e
}

// Encoders returns the engine's body encoder registry, for registering
// additional content types.
func (e *Engine) Encoders() *EncoderRegistry {
	return e.encoders
}

// Actuate runs one full exchange for an element, as if its trigger event
// had fired: build the descriptor, announce hw:actuated and hw:will-fetch,
// fetch, swap. trigger may be nil for programmatic actuation.
//
// A configuration error (invalid swap style) is returned before any I/O.
// Listener cancellation surfaces as ErrExchangeCanceled. Transport failures
// are reported through the hw:fetch-error event and returned wrapped in
// ErrTransport; the swap is skipped entirely.
func (e *Engine) Actuate(ctx context.Context, el Element, trigger *Event) error {
	// hw:actuated fires before anything else, descriptor included, so it
	// carries the trigger as Detail rather than an Exchange.
	actuated := NewEvent(EventActuated, nil)
	actuated.Detail = trigger
	if !dispatch(el, actuated).Proceeded {
		return ErrExchangeCanceled
	}

	x, err := e.BuildExchange(el, trigger)
	if err != nil {
		return err
	}

	content, err := e.fetch(ctx, x)
	if err != nil {
		return err
	}
	e.swapContent(x, content)
	return nil
}

// discardHandler is slog's no-op handler; the engine stays silent unless a
// logger is injected.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }
