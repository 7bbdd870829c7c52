package hyperwire

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pthm/hyperwire/lib/encoding"
)

// Form is an alias for encoding.Form for convenience.
type Form = encoding.Form

// Field is an alias for encoding.Field for convenience.
type Field = encoding.Field

// TargetSelf is the target attribute literal meaning "this element itself".
const TargetSelf = "this"

// Exchange describes one interaction: a trigger, the request it resolves
// to, and where the response content goes. It is assembled once at
// actuation time and mutated only by the fetch stage, which attaches the
// outcome fields.
type Exchange struct {
	// TriggerElement is the element that was actuated.
	TriggerElement Element

	// TriggeringEvent is the event that caused actuation, or nil for
	// programmatic exchanges.
	TriggeringEvent *Event

	// Destination is the fully resolved absolute URL, fragment included.
	// Resolution against the document location happens at creation,
	// never later.
	Destination *url.URL

	// Method is the uppercase HTTP verb.
	Method string

	// BodyContentType identifies the body encoding.
	BodyContentType string

	// FormData is a read-only snapshot of form state at actuation time.
	// Later form mutations do not affect an in-flight exchange.
	FormData Form

	// Target is the element designated to receive swapped content, or
	// nil when the document has no body and no selector matched.
	Target Element

	// Style is a validated member of the swap enumeration.
	Style SwapStyle

	// Response and ResponseBody are populated only after a successful
	// fetch.
	Response     *Response
	ResponseBody string

	state ExchangeState
}

// BuildExchange assembles the descriptor for an actuated element,
// resolving each attribute through the three-spelling precedence:
// destination (action, href, src, in that order), method, body content
// type, target, swap style, and the form-data snapshot. trigger may be
// nil. An invalid swap attribute fails the whole exchange synchronously,
// before any network activity.
func (e *Engine) BuildExchange(el Element, trigger *Event) (*Exchange, error) {
	dest, err := e.resolveDestination(el)
	if err != nil {
		return nil, err
	}

	style := DefaultSwapStyle
	if raw, ok := ResolveAttr(el, "swap"); ok {
		style, err = ParseSwapStyle(raw)
		if err != nil {
			return nil, err
		}
	}

	method := defaultMethod(el)
	if raw, ok := ResolveAttr(el, "method"); ok && raw != "" {
		method = strings.ToUpper(raw)
	}

	enctype := encoding.ContentTypeURLEncoded
	if raw, ok := ResolveAttr(el, "enctype"); ok && raw != "" {
		enctype = raw
	}

	return &Exchange{
		TriggerElement:  el,
		TriggeringEvent: trigger,
		Destination:     dest,
		Method:          method,
		BodyContentType: enctype,
		FormData:        collectFormData(el),
		Target:          e.resolveTarget(el),
		Style:           style,
	}, nil
}

// resolveDestination reads action, href, src in that precedence and
// resolves the result against the document location. An absent or empty
// destination resolves to the current location.
func (e *Engine) resolveDestination(el Element) (*url.URL, error) {
	var raw string
	for _, name := range []string{"action", "href", "src"} {
		if v, ok := ResolveAttr(el, name); ok {
			raw = v
			break
		}
	}
	if strings.HasPrefix(raw, evalScheme) {
		// Script destinations must not go through URL parsing; the text
		// after the scheme is the program, verbatim.
		return &url.URL{Scheme: "eval", Opaque: raw[len(evalScheme):]}, nil
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("hyperwire: invalid destination %q: %w", raw, err)
	}
	return e.doc.BaseURL().ResolveReference(ref), nil
}

// defaultMethod is GET for links and forms, POST for everything else.
func defaultMethod(el Element) string {
	switch el.TagName() {
	case "a", "form":
		return http.MethodGet
	}
	return http.MethodPost
}

// resolveTarget resolves the target attribute to an element. The literal
// "this" means the trigger element itself; an absent attribute or a
// selector matching nothing falls back to the document body.
func (e *Engine) resolveTarget(el Element) Element {
	sel, ok := ResolveAttr(el, "target")
	if !ok || sel == "" {
		return e.doc.Body()
	}
	if sel == TargetSelf {
		return el
	}
	target, err := e.doc.Query(sel)
	if err != nil || target == nil {
		e.log.Debug("target selector unresolved, using body", "selector", sel, "err", err)
		return e.doc.Body()
	}
	return target
}

// collectFormData merges, duplicates preserved: the element's own entries
// if it is a form, the entries of the form it is associated with if it is a
// control, and its own name/value pair if it is named.
func collectFormData(el Element) Form {
	var form Form
	if el.TagName() == "form" {
		form = append(form, el.FormEntries()...)
	} else if owner := el.FormOwner(); owner != nil {
		form = append(form, owner.FormEntries()...)
	}
	if name := el.Name(); name != "" {
		form.Add(name, el.Value())
	}
	return form
}
