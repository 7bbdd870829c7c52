package hyperwire

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/a-h/templ"
)

// Test support for embedding applications: a recording transport for
// asserting on issued requests, and httptest servers that answer every
// request with a fixed partial.

// StubTransport is a Transport that records every request and replays a
// canned response. The zero value answers 200 with an empty body.
//
//	st := &hyperwire.StubTransport{Body: `<li>new</li>`}
//	engine := hyperwire.New(doc, hyperwire.WithTransport(st))
//	...
//	if len(st.Requests) != 1 { ... }
type StubTransport struct {
	Status int
	Header http.Header
	Body   string

	// Err, when set, makes every round trip fail, for exercising the
	// fetch-error path.
	Err error

	// Requests accumulates everything that was sent, in order.
	Requests []*Request
}

// RoundTrip implements Transport.
func (t *StubTransport) RoundTrip(_ context.Context, req *Request) (*Response, error) {
	t.Requests = append(t.Requests, req)
	if t.Err != nil {
		return nil, t.Err
	}
	status := t.Status
	if status == 0 {
		status = http.StatusOK
	}
	header := t.Header
	if header == nil {
		header = http.Header{}
	}
	return &Response{
		Status: status,
		Header: header,
		Body:   io.NopCloser(strings.NewReader(t.Body)),
	}, nil
}

// LastRequest returns the most recent recorded request, or nil.
func (t *StubTransport) LastRequest() *Request {
	if len(t.Requests) == 0 {
		return nil
	}
	return t.Requests[len(t.Requests)-1]
}

// ServeComponent starts an httptest server that renders a templ component
// for every request. Callers own shutdown:
//
//	srv := hyperwire.ServeComponent(counterPartial(n))
//	defer srv.Close()
func ServeComponent(c templ.Component) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := c.Render(r.Context(), w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}))
}

// ServeHTML starts an httptest server answering every request with fixed
// markup.
func ServeHTML(markup string) *httptest.Server {
	return ServeComponent(templ.Raw(markup))
}
