package hyperwire

import "context"

// EventNamespace prefixes every lifecycle event name, keeping them clear of
// the host's native event vocabulary. Inline listeners reach namespaced
// events with the doubled-separator form (on::will-fetch).
const EventNamespace = "hw:"

// Lifecycle event names, in pipeline order. All carry the Exchange as
// payload (nil for will-install and init) and are dispatched on concrete
// nodes - the trigger element or the swap target - so listeners scope
// themselves with the host's bubbling semantics.
const (
	// EventWillInstall fires on an element before its trigger is bound.
	EventWillInstall = EventNamespace + "will-install"

	// EventInit fires on an element after installation completes.
	EventInit = EventNamespace + "init"

	// EventActuated fires on the trigger element when its trigger event
	// fires, before anything else happens.
	EventActuated = EventNamespace + "actuated"

	// EventWillFetch fires on the trigger element before the request.
	// It is the one extendable event: listeners may register deferred
	// work with Event.Defer, and the engine settles all of it before
	// consulting the cancellation flag. Cancel here and no request is
	// ever issued.
	EventWillFetch = EventNamespace + "will-fetch"

	// EventDidFetchHeaders fires on the trigger element once response
	// status and headers have arrived.
	EventDidFetchHeaders = EventNamespace + "did-fetch-headers"

	// EventDidFetch fires on the trigger element after the response body
	// has been fully read.
	EventDidFetch = EventNamespace + "did-fetch"

	// EventFetchError fires on the trigger element on transport failure,
	// with the error attached to the event.
	EventFetchError = EventNamespace + "fetch-error"

	// EventWillSwap fires on the trigger element before a mutation;
	// EventWillBeSwapped fires on the target. Canceling either abandons
	// that swap without mutating.
	EventWillSwap      = EventNamespace + "will-swap"
	EventWillBeSwapped = EventNamespace + "will-be-swapped"

	// EventDidSwap fires on the trigger element after a mutation;
	// EventWasSwappedAway fires on the target.
	EventDidSwap        = EventNamespace + "did-swap"
	EventWasSwappedAway = EventNamespace + "was-swapped-away"
)

// Event is dispatched on host nodes for both lifecycle stages and native
// triggers. Lifecycle events carry the Exchange; native trigger events
// (click, submit, change) carry whatever the host put in Detail.
type Event struct {
	// Name is the event name, namespaced for lifecycle events.
	Name string

	// Target is the node the event was dispatched on.
	Target Element

	// Exchange is the descriptor payload on lifecycle events; nil on
	// native trigger events and on will-install/init.
	Exchange *Exchange

	// Err carries the transport error on fetch-error events.
	Err error

	// Detail is host- or listener-defined payload.
	Detail any

	canceled         bool
	defaultPrevented bool
	deferred         []DeferredFunc
}

// DeferredFunc is asynchronous work registered on an extendable event. The
// dispatcher runs all registered work before treating the event as settled;
// a non-nil error counts as cancellation.
type DeferredFunc func(ctx context.Context) error

// Listener handles events bound with Element.On.
type Listener func(ev *Event)

// DispatchResult is returned by Element.Dispatch. Proceeded is false when
// any listener canceled the event; it answers "may the default effect
// proceed", not "did the event fire".
type DispatchResult struct {
	Proceeded bool
}

// NewEvent creates an event carrying an exchange payload.
func NewEvent(name string, x *Exchange) *Event {
	return &Event{Name: name, Exchange: x}
}

// Cancel signals that the event's default effect must not proceed. This is
// the only cancellation mechanism in the system: there are no timeouts and
// no abort-by-caller API once an exchange has begun.
func (ev *Event) Cancel() {
	ev.canceled = true
}

// Canceled reports whether any listener canceled the event.
func (ev *Event) Canceled() bool {
	return ev.canceled
}

// PreventDefault asks the host to suppress the native default behavior of a
// trigger event (link navigation, form submission). The engine calls it on
// every trigger it handles; hosts honor it.
func (ev *Event) PreventDefault() {
	ev.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (ev *Event) DefaultPrevented() bool {
	return ev.defaultPrevented
}

// Defer registers asynchronous work to settle before the event's default
// effect is decided. Only the will-fetch event is extendable; deferred work
// registered on any other event is ignored.
func (ev *Event) Defer(fn DeferredFunc) {
	ev.deferred = append(ev.deferred, fn)
}

// settle runs the deferred work registered by listeners, in registration
// order, then reports whether the event may proceed. A deferred error or an
// expired context counts as cancellation.
func (ev *Event) settle(ctx context.Context) bool {
	for _, fn := range ev.deferred {
		if err := ctx.Err(); err != nil {
			return false
		}
		if err := fn(ctx); err != nil {
			return false
		}
	}
	return !ev.canceled
}

// dispatch sends a lifecycle event on el and reports whether it proceeded.
// A nil element counts as proceeded with no listeners run.
func dispatch(el Element, ev *Event) DispatchResult {
	if el == nil {
		return DispatchResult{Proceeded: true}
	}
	return el.Dispatch(ev)
}
