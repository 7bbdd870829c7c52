package hyperwire_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pthm/hyperwire"
)

func TestActuateSwapsResponse(t *testing.T) {
	doc := parseDoc(t, `<div id="counter">0</div>`+
		`<button id="inc" hw data-action="/inc" target="#counter">+1</button>`)
	st := &hyperwire.StubTransport{Body: `<span>1</span>`}
	engine := hyperwire.New(doc, hyperwire.WithTransport(st))
	engine.Install(doc.Body())

	doc.Fire(query(t, doc, "#inc"), "click")

	if len(st.Requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(st.Requests))
	}
	req := st.LastRequest()
	if req.Method != "POST" {
		t.Errorf("method = %q, want POST", req.Method)
	}
	if req.URL.Path != "/inc" {
		t.Errorf("path = %q, want /inc", req.URL.Path)
	}
	if req.Header.Get("HW-Request") != "true" {
		t.Error("marker header missing")
	}
	if got := innerHTML(t, query(t, doc, "#counter")); got != `<span>1</span>` {
		t.Errorf("target content = %q", got)
	}
}

func TestBodylessMethodsFoldFormIntoQuery(t *testing.T) {
	for _, method := range []string{"get", "delete"} {
		t.Run(method, func(t *testing.T) {
			doc := parseDoc(t, `<form id="f" hw data-action="/search" data-method="`+method+`">`+
				`<input name="q" value="cats"><input name="page" value="2"></form>`)
			st := &hyperwire.StubTransport{Body: `done`}
			engine := hyperwire.New(doc, hyperwire.WithTransport(st))
			engine.Install(doc.Body())

			doc.Fire(query(t, doc, "#f"), "submit")

			req := st.LastRequest()
			if req == nil {
				t.Fatal("no request sent")
			}
			if len(req.Body) != 0 {
				t.Errorf("body = %q, want empty", req.Body)
			}
			if req.Header.Get("Content-Type") != "" {
				t.Errorf("content type = %q, want none", req.Header.Get("Content-Type"))
			}
			q := req.URL.Query()
			if q.Get("q") != "cats" || q.Get("page") != "2" {
				t.Errorf("query = %q, want folded form fields", req.URL.RawQuery)
			}
		})
	}
}

func TestBodiedMethodEncodesForm(t *testing.T) {
	doc := parseDoc(t, `<form id="f" hw data-action="/save" data-method="post">` +
		`<input name="a" value="1"><input name="b" value="2"></form>`)
	st := &hyperwire.StubTransport{Body: `ok`}
	engine := hyperwire.New(doc, hyperwire.WithTransport(st))
	engine.Install(doc.Body())

	doc.Fire(query(t, doc, "#f"), "submit")

	req := st.LastRequest()
	if req == nil {
		t.Fatal("no request sent")
	}
	if got := req.Header.Get("Content-Type"); got != "application/x-www-form-urlencoded" {
		t.Errorf("content type = %q", got)
	}
	if got := string(req.Body); got != "a=1&b=2" {
		t.Errorf("body = %q, want a=1&b=2", got)
	}
	if req.URL.RawQuery != "" {
		t.Errorf("query = %q, want empty", req.URL.RawQuery)
	}
}

func TestWillFetchCancelPreventsRequest(t *testing.T) {
	doc := parseDoc(t, `<div id="out">old</div>`+
		`<button id="b" hw data-action="/x" target="#out">x</button>`)
	st := &hyperwire.StubTransport{Body: `new`}
	engine := hyperwire.New(doc, hyperwire.WithTransport(st))

	b := query(t, doc, "#b")
	b.On(hyperwire.EventWillFetch, func(ev *hyperwire.Event) {
		ev.Cancel()
	})

	err := engine.Actuate(context.Background(), b, nil)
	if !hyperwire.IsCanceled(err) {
		t.Fatalf("Actuate error = %v, want canceled", err)
	}
	if len(st.Requests) != 0 {
		t.Fatalf("requests = %d, want 0", len(st.Requests))
	}
	if got := innerHTML(t, query(t, doc, "#out")); got != "old" {
		t.Errorf("target mutated to %q", got)
	}
}

func TestWillFetchDeferredWorkGatesEverything(t *testing.T) {
	doc := parseDoc(t, `<div id="out">old</div>`+
		`<button id="b" hw data-action="/x" target="#out">x</button>`)
	st := &hyperwire.StubTransport{Body: `new`}
	engine := hyperwire.New(doc, hyperwire.WithTransport(st))

	b := query(t, doc, "#b")
	var laterEvents []string
	for _, name := range []string{
		hyperwire.EventDidFetchHeaders,
		hyperwire.EventDidFetch,
		hyperwire.EventWillSwap,
	} {
		b.On(name, func(ev *hyperwire.Event) {
			laterEvents = append(laterEvents, ev.Name)
		})
	}
	b.On(hyperwire.EventWillFetch, func(ev *hyperwire.Event) {
		// Deferred work that never completes on its own.
		ev.Defer(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := engine.Actuate(ctx, b, nil)
	if !hyperwire.IsCanceled(err) {
		t.Fatalf("Actuate error = %v, want canceled", err)
	}
	if len(st.Requests) != 0 {
		t.Fatalf("requests = %d, want 0", len(st.Requests))
	}
	if len(laterEvents) != 0 {
		t.Fatalf("later events fired: %v", laterEvents)
	}
	if got := innerHTML(t, query(t, doc, "#out")); got != "old" {
		t.Errorf("target mutated to %q", got)
	}
}

func TestDeferredWorkCanResolveAndProceed(t *testing.T) {
	doc := parseDoc(t, `<div id="out">old</div>`+
		`<button id="b" hw data-action="/x" target="#out">x</button>`)
	st := &hyperwire.StubTransport{Body: `new`}
	engine := hyperwire.New(doc, hyperwire.WithTransport(st))

	b := query(t, doc, "#b")
	b.On(hyperwire.EventWillFetch, func(ev *hyperwire.Event) {
		ev.Defer(func(ctx context.Context) error { return nil })
	})

	if err := engine.Actuate(context.Background(), b, nil); err != nil {
		t.Fatalf("Actuate failed: %v", err)
	}
	if got := innerHTML(t, query(t, doc, "#out")); got != "new" {
		t.Errorf("target content = %q, want new", got)
	}
}

func TestTransportFailure(t *testing.T) {
	doc := parseDoc(t, `<div id="out">old</div>`+
		`<button id="b" hw data-action="/x" target="#out">x</button>`)
	boom := errors.New("connection refused")
	st := &hyperwire.StubTransport{Err: boom}
	engine := hyperwire.New(doc, hyperwire.WithTransport(st))

	b := query(t, doc, "#b")
	var fetchErr error
	b.On(hyperwire.EventFetchError, func(ev *hyperwire.Event) {
		fetchErr = ev.Err
	})

	err := engine.Actuate(context.Background(), b, nil)
	if !errors.Is(err, hyperwire.ErrTransport) {
		t.Fatalf("Actuate error = %v, want ErrTransport", err)
	}
	if !errors.Is(fetchErr, boom) {
		t.Errorf("fetch-error payload = %v, want the transport error", fetchErr)
	}
	if got := innerHTML(t, query(t, doc, "#out")); got != "old" {
		t.Errorf("failed exchange mutated the target: %q", got)
	}
}

func TestEvalDestination(t *testing.T) {
	doc := parseDoc(t, `<div id="out">old</div>`+
		`<button id="b" hw data-action="eval:render counter" target="#out">x</button>`)
	st := &hyperwire.StubTransport{Body: `network`}

	var gotScript string
	eval := hyperwire.EvaluatorFunc(func(_ context.Context, script string, scope hyperwire.Scope) (any, error) {
		gotScript = script
		if scope.Exchange == nil || scope.Element == nil {
			t.Error("scope is missing exchange bindings")
		}
		return "<b>local</b>", nil
	})
	engine := hyperwire.New(doc,
		hyperwire.WithTransport(st),
		hyperwire.WithEvaluator(eval),
	)

	if err := engine.Actuate(context.Background(), query(t, doc, "#b"), nil); err != nil {
		t.Fatalf("Actuate failed: %v", err)
	}
	if gotScript != "render counter" {
		t.Errorf("script = %q", gotScript)
	}
	if len(st.Requests) != 0 {
		t.Error("eval destination must not hit the network")
	}
	if got := innerHTML(t, query(t, doc, "#out")); got != "<b>local</b>" {
		t.Errorf("target content = %q", got)
	}
}

func TestUnknownEnctypeFallsBackToDefault(t *testing.T) {
	doc := parseDoc(t, `<form id="f" hw data-action="/save" data-method="post" ` +
		`data-enctype="application/x-mystery"><input name="a" value="1"></form>`)
	st := &hyperwire.StubTransport{Body: `ok`}
	engine := hyperwire.New(doc, hyperwire.WithTransport(st))
	engine.Install(doc.Body())

	doc.Fire(query(t, doc, "#f"), "submit")

	req := st.LastRequest()
	if req == nil {
		t.Fatal("no request sent")
	}
	if got := req.Header.Get("Content-Type"); got != "application/x-www-form-urlencoded" {
		t.Errorf("content type = %q, want urlencoded fallback", got)
	}
	if !strings.Contains(string(req.Body), "a=1") {
		t.Errorf("body = %q", req.Body)
	}
}
