package hyperwire

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
)

// The engine does not own a document tree. It drives one through the
// interfaces below, which a host implements over whatever node
// representation it has. lib/htmldom provides a complete in-process host
// over golang.org/x/net/html.

// Node is an opaque handle to a host document node: an element, text, or
// comment. Nodes are the operands of swap mutations.
type Node interface {
	// AsElement returns the element view of this node, or nil when the
	// node is not an element.
	AsElement() Element
}

// Attribute is one name/value pair from an element's attribute list.
type Attribute struct {
	Name  string
	Value string
}

// Element is the host's element handle. Implementations must return the
// same Key for the same underlying element across calls; the engine uses it
// as the identity token for the installed-set.
type Element interface {
	Node

	// TagName returns the lowercase tag name.
	TagName() string

	// Attr returns the value of the named attribute. The second result
	// reports presence: an empty attribute is present with value "".
	Attr(name string) (string, bool)

	// Attrs returns the attribute list in document order.
	Attrs() []Attribute

	// Key returns a stable identity token usable as a map key.
	Key() any

	// Name and Value return the element's form-control name and current
	// value ("" when it has none).
	Name() string
	Value() string

	// FormOwner returns the form this control is associated with, or nil.
	// A form element has no owner.
	FormOwner() Element

	// FormEntries returns the entries HTML form serialization would
	// produce when this element is a form; nil otherwise.
	FormEntries() []Field

	// Children returns the element's child nodes in document order.
	Children() []Node

	// QueryAll returns descendant elements matching a CSS selector, in
	// document order. The receiver itself is not included.
	QueryAll(selector string) ([]Element, error)

	// Matches reports whether the element matches a CSS selector.
	Matches(selector string) (bool, error)

	// Mutation primitives. Operands keep their given order; nodes already
	// attached elsewhere are detached first.
	ReplaceChildren(nodes []Node)
	ReplaceWith(nodes []Node)
	InsertAfter(nodes []Node)
	InsertBefore(nodes []Node)
	Prepend(nodes []Node)
	Append(nodes []Node)

	// Remove detaches the element from its parent.
	Remove()

	// On binds a listener for the named event on this element.
	On(event string, listener Listener)

	// Dispatch delivers an event to this element's listeners and, per the
	// host's bubbling semantics, its ancestors'. The result reports
	// whether the event's default action should proceed.
	Dispatch(ev *Event) DispatchResult
}

// Document is the host's document handle.
type Document interface {
	// BaseURL returns the document location, the base for resolving
	// exchange destinations.
	BaseURL() *url.URL

	// Body returns the document body element.
	Body() Element

	// Query returns the first element matching a CSS selector, or nil.
	Query(selector string) (Element, error)

	// ParseFragment parses HTML text into a detached fragment.
	ParseFragment(text string) (Fragment, error)
}

// Fragment is a detached group of nodes parsed from response content, not
// yet part of any document.
type Fragment interface {
	// Nodes returns the fragment's top-level nodes in document order.
	Nodes() []Node

	// QueryAll returns elements in the fragment matching a CSS selector,
	// in document order.
	QueryAll(selector string) ([]Element, error)
}

// Request describes one network exchange, fully resolved: absolute URL,
// uppercase method, encoded body.
type Request struct {
	Method string
	URL    *url.URL
	Header http.Header
	Body   []byte
}

// Response carries the transport's answer. Body is read to completion (and
// closed) by the fetch stage; HeadersReceived fires in between.
type Response struct {
	Status int
	Header http.Header
	Body   io.ReadCloser
}

// Transport performs the network half of an exchange. The default transport
// wraps http.DefaultClient; tests substitute recording transports.
type Transport interface {
	RoundTrip(ctx context.Context, req *Request) (*Response, error)
}

type httpTransport struct {
	client *http.Client
}

func (t httpTransport) RoundTrip(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	hr, err := http.NewRequestWithContext(ctx, req.Method, req.URL.String(), body)
	if err != nil {
		return nil, err
	}
	for k, vs := range req.Header {
		hr.Header[k] = vs
	}
	resp, err := t.client.Do(hr)
	if err != nil {
		return nil, err
	}
	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: resp.Body}, nil
}
