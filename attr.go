package hyperwire

// AttrOptIn is the boolean-style attribute marking an element as a
// hypermedia control. Its data- spelling works everywhere the bare form
// would make a document invalid.
const AttrOptIn = "hw"

// optInSelector matches every element carrying the opt-in attribute in
// either spelling.
const optInSelector = "[" + AttrOptIn + "], [data-" + AttrOptIn + "]"

// ResolveAttr resolves a logical property from an element's attributes
// using the fixed three-spelling precedence: data-<name>, then form<name>
// (HTML's form-attribute-override convention), then the bare name. Absence
// is not an error; the second result is false when no spelling is present.
//
// The data- escape is what lets href, action, method, and enctype keep
// their HTML meanings on elements where HTML forbids them natively while
// the document stays valid.
func ResolveAttr(el Element, name string) (string, bool) {
	if v, ok := el.Attr("data-" + name); ok {
		return v, true
	}
	if v, ok := el.Attr("form" + name); ok {
		return v, true
	}
	return el.Attr(name)
}

// HasOptIn reports whether the element carries the opt-in attribute in
// either spelling.
func HasOptIn(el Element) bool {
	if _, ok := el.Attr(AttrOptIn); ok {
		return true
	}
	_, ok := el.Attr("data-" + AttrOptIn)
	return ok
}
