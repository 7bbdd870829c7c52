package hyperwire

import "fmt"

// SwapStyle defines how response content replaces or extends the target.
//
// The enumeration is fixed at six members, each mapping one-to-one onto a
// DOM mutation primitive. The default is SwapInner. An attribute value
// outside the enumeration is a configuration error: the exchange fails
// before any network activity (ErrInvalidSwapStyle).
type SwapStyle string

const (
	// SwapInner replaces the target's children, preserving the target
	// itself (innerHTML). This is the default swap style.
	SwapInner SwapStyle = "innerHTML"

	// SwapOuter replaces the target element itself (outerHTML).
	SwapOuter SwapStyle = "outerHTML"

	// SwapAfterEnd inserts content after the target, as next siblings.
	SwapAfterEnd SwapStyle = "afterend"

	// SwapBeforeBegin inserts content before the target, as previous
	// siblings.
	SwapBeforeBegin SwapStyle = "beforebegin"

	// SwapAfterBegin prepends content at the start of the target's
	// children. Useful for feeds that grow at the top.
	SwapAfterBegin SwapStyle = "afterbegin"

	// SwapBeforeEnd appends content at the end of the target's children.
	// Useful for adding items to lists.
	SwapBeforeEnd SwapStyle = "beforeend"
)

// DefaultSwapStyle is used when no swap attribute is present.
const DefaultSwapStyle = SwapInner

// ParseSwapStyle validates an attribute value against the enumeration.
// Invalid values fail fast rather than silently falling back.
func ParseSwapStyle(s string) (SwapStyle, error) {
	switch SwapStyle(s) {
	case SwapInner, SwapOuter, SwapAfterEnd, SwapBeforeBegin, SwapAfterBegin, SwapBeforeEnd:
		return SwapStyle(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSwapStyle, s)
}

// apply runs the mutation primitive corresponding to the style on target,
// with nodes as operands in document order.
func (s SwapStyle) apply(target Element, nodes []Node) {
	switch s {
	case SwapInner:
		target.ReplaceChildren(nodes)
	case SwapOuter:
		target.ReplaceWith(nodes)
	case SwapAfterEnd:
		target.InsertAfter(nodes)
	case SwapBeforeBegin:
		target.InsertBefore(nodes)
	case SwapAfterBegin:
		target.Prepend(nodes)
	case SwapBeforeEnd:
		target.Append(nodes)
	}
}
