package hyperwire

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// MarkerHeader is sent on every network exchange, letting servers branch
// on partial vs. full-page requests.
const MarkerHeader = "HW-Request"

// ExchangeState is the fetch stage's position for one exchange.
type ExchangeState uint8

const (
	// StatePending precedes the will-fetch decision.
	StatePending ExchangeState = iota

	// StateAborted is terminal: a will-fetch listener canceled the
	// exchange and no request was issued.
	StateAborted

	// StateScript is terminal: the destination was an eval: scheme and
	// content came from local evaluation.
	StateScript

	// StateNetwork covers the in-flight request.
	StateNetwork

	// StateDone is terminal: the response body was fully read.
	StateDone

	// StateFailed is terminal: the transport failed and the swap is
	// skipped entirely.
	StateFailed
)

func (s ExchangeState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateAborted:
		return "aborted"
	case StateScript:
		return "script"
	case StateNetwork:
		return "network"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// State returns the exchange's fetch-stage state.
func (x *Exchange) State() ExchangeState {
	return x.state
}

// content is what the fetch stage hands the swap engine: text to parse, an
// already-detached fragment (script evaluation), or nothing at all on the
// aborted/failed paths.
type content struct {
	text string
	frag Fragment
	ok   bool
}

// fetch runs the per-exchange state machine: dispatch and settle the
// extendable will-fetch event, then either abort, evaluate an eval:
// destination locally, or perform the network exchange and record its
// outcome onto the descriptor.
func (e *Engine) fetch(ctx context.Context, x *Exchange) (content, error) {
	willFetch := NewEvent(EventWillFetch, x)
	if !dispatch(x.TriggerElement, willFetch).Proceeded || !willFetch.settle(ctx) {
		x.state = StateAborted
		return content{}, ErrExchangeCanceled
	}

	if x.Destination.Scheme == "eval" {
		x.state = StateScript
		return e.evaluateDestination(ctx, x), nil
	}

	x.state = StateNetwork
	req, err := e.buildRequest(x)
	if err != nil {
		x.state = StateFailed
		return content{}, err
	}

	resp, err := e.transport.RoundTrip(ctx, req)
	if err != nil {
		return content{}, e.failExchange(x, err)
	}
	x.Response = resp

	headersEv := NewEvent(EventDidFetchHeaders, x)
	dispatch(x.TriggerElement, headersEv)

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return content{}, e.failExchange(x, err)
	}
	x.ResponseBody = string(body)
	x.state = StateDone

	dispatch(x.TriggerElement, NewEvent(EventDidFetch, x))
	return content{text: x.ResponseBody, ok: true}, nil
}

// failExchange logs a transport failure, announces it as hw:fetch-error
// with the error attached, and terminates the exchange with no content.
// Transport errors are never retried.
func (e *Engine) failExchange(x *Exchange, err error) error {
	x.state = StateFailed
	e.log.Error("exchange transport failure",
		"method", x.Method, "url", x.Destination.String(), "err", err)
	ev := NewEvent(EventFetchError, x)
	ev.Err = err
	dispatch(x.TriggerElement, ev)
	return fmt.Errorf("%w: %v", ErrTransport, err)
}

// evaluateDestination runs an eval: destination through the evaluator with
// the exchange's fields exposed as an explicit scope, bound to the trigger
// element. Evaluation failures yield no content; the swap is skipped.
func (e *Engine) evaluateDestination(ctx context.Context, x *Exchange) content {
	result, err := e.eval.Evaluate(ctx, x.Destination.Opaque, Scope{
		Element:  x.TriggerElement,
		Event:    x.TriggeringEvent,
		Exchange: x,
	})
	if err != nil {
		e.log.Warn("eval destination failed", "err", err)
		return content{}
	}
	switch v := result.(type) {
	case nil:
		return content{}
	case Fragment:
		return content{frag: v, ok: true}
	case string:
		return content{text: v, ok: true}
	default:
		return content{text: fmt.Sprint(v), ok: true}
	}
}

// buildRequest resolves body placement by method convention: GET and
// DELETE carry the collected form data as destination query parameters and
// send no body; everything else gets an encoded body. The destination
// fragment stays client-side and is never sent.
func (e *Engine) buildRequest(x *Exchange) (*Request, error) {
	u := *x.Destination
	u.Fragment = ""
	u.RawFragment = ""

	header := http.Header{}
	header.Set(MarkerHeader, "true")

	var body []byte
	if methodHasBody(x.Method) {
		contentType, encoded, err := e.encoders.Lookup(x.BodyContentType)(x.FormData)
		if err != nil {
			return nil, fmt.Errorf("hyperwire: encoding %s body: %w", x.BodyContentType, err)
		}
		body = encoded
		header.Set("Content-Type", contentType)
	} else if len(x.FormData) > 0 {
		q := u.Query()
		for _, f := range x.FormData {
			q.Add(f.Name, f.Value)
		}
		u.RawQuery = q.Encode()
	}

	return &Request{Method: x.Method, URL: &u, Header: header, Body: body}, nil
}

// methodHasBody reports whether a method conventionally carries a body.
func methodHasBody(method string) bool {
	switch method {
	case http.MethodGet, http.MethodDelete:
		return false
	}
	return true
}
