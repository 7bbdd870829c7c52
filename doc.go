// Package hyperwire is a declarative, attribute-driven hypermedia exchange
// engine for HTML documents. It turns ordinary elements into triggers for a
// request/response/DOM-patch cycle without page navigation, reusing HTML's
// own link and form vocabulary instead of inventing a new one.
//
// hyperwire does not own a document tree, a network stack, or a script
// runtime. Those are host capabilities, described by the small interfaces in
// this package (Document, Element, Transport, Evaluator). The engine supplies
// everything between them: attribute resolution, exchange construction, the
// lifecycle event pipeline, fetching, and swapping.
//
// # Opting in
//
// Any element carrying the hw attribute (or data-hw) becomes a hypermedia
// control:
//
//	<button hw action="/counter/increment" target="#counter">+1</button>
//
// Install scans a subtree, binds each control's trigger event, and from then
// on an actuation runs one exchange: build a descriptor, dispatch hw:will-fetch,
// perform the request, and swap the response into the target.
//
//	doc, _ := htmldom.Parse(r, baseURL)
//	engine := hyperwire.New(doc)
//	engine.Install(doc.Body())
//
// # Attributes
//
// Logical attributes (target, swap, event, method, action/href/src, enctype)
// are resolved through a three-spelling precedence: data-<name> first, then
// form<name>, then the bare name. The data- escape lets semantically apt HTML
// names (href, action, method) appear on elements where HTML forbids them
// natively, without making the document invalid.
//
// # Swapping
//
// Responses are parsed into a detached fragment and spliced into the target
// using one of six swap styles (see SwapStyle). A destination fragment of the
// form #:~:selector=<css> selects just part of the response; a bare fragment
// is treated as an ID. <template hw target="..."> nodes inside a response are
// extracted and swapped elsewhere in the document, independently of the
// primary target.
//
// # Lifecycle events
//
// Every stage of an exchange dispatches a lifecycle event on a concrete node
// (the trigger element or the swap target), carrying the Exchange as payload.
// Listeners cancel a stage by calling Event.Cancel. The hw:will-fetch event is
// additionally extendable: listeners may register deferred work via
// Event.Defer, and the engine settles all of it before deciding whether the
// request proceeds. There is no other synchronization: concurrent exchanges
// proceed independently and may complete in any order.
//
// # Request bodies
//
// Collected form data is encoded by content type through a pluggable
// registry. URL-encoded, multipart, and JSON encoders are builtin; others
// (including the msgpack encoder in lib/encoding) can be registered by the
// embedding application. Methods that conventionally carry no body (GET,
// DELETE) send the form data as query parameters instead.
//
// # Scripts
//
// A destination with the eval: scheme is not fetched; its text is handed to
// the engine's Evaluator together with the exchange's fields as an explicit
// scope. The same evaluator runs inline on* listener attributes. The default
// evaluator refuses to run anything - arbitrary script execution is a
// capability the host must provide consciously.
package hyperwire
