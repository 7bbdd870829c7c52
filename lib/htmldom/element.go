package htmldom

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pthm/hyperwire"
)

// node implements hyperwire.Node as a (document, html.Node) pair.
type node struct {
	d *Document
	n *html.Node
}

// AsElement implements hyperwire.Node.
func (nd node) AsElement() hyperwire.Element {
	if nd.n.Type != html.ElementNode {
		return nil
	}
	return element{nd}
}

// HTMLNode exposes the underlying parse-tree node, for callers that need
// to drop below the hyperwire contracts.
func (nd node) HTMLNode() *html.Node {
	return nd.n
}

// element implements hyperwire.Element.
type element struct {
	node
}

// TagName implements hyperwire.Element.
func (e element) TagName() string {
	return strings.ToLower(e.n.Data)
}

// Attr implements hyperwire.Element. The parser lowercases attribute
// names, so lookup is by lowercase name.
func (e element) Attr(name string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Attrs implements hyperwire.Element.
func (e element) Attrs() []hyperwire.Attribute {
	out := make([]hyperwire.Attribute, len(e.n.Attr))
	for i, a := range e.n.Attr {
		out[i] = hyperwire.Attribute{Name: a.Key, Value: a.Val}
	}
	return out
}

// Key implements hyperwire.Element; the parse-tree node pointer is the
// stable identity.
func (e element) Key() any {
	return e.n
}

// Name implements hyperwire.Element.
func (e element) Name() string {
	name, _ := e.Attr("name")
	return name
}

// Value implements hyperwire.Element, following HTML's per-control value
// rules.
func (e element) Value() string {
	switch e.n.DataAtom {
	case atom.Input:
		if v, ok := e.Attr("value"); ok {
			return v
		}
		switch e.inputType() {
		case "checkbox", "radio":
			return "on"
		}
		return ""
	case atom.Textarea:
		return textContent(e.n)
	case atom.Select:
		if opt := e.selectedOption(); opt != nil {
			return optionValue(opt)
		}
		return ""
	default:
		v, _ := e.Attr("value")
		return v
	}
}

func (e element) inputType() string {
	t, _ := e.Attr("type")
	return strings.ToLower(t)
}

// selectedOption returns the selected option node, defaulting to the first
// option as HTML does for single selects.
func (e element) selectedOption() *html.Node {
	var first *html.Node
	opts := collectNodes(e.n, func(n *html.Node) bool {
		return n.DataAtom == atom.Option
	})
	for _, opt := range opts {
		if first == nil {
			first = opt
		}
		if hasAttr(opt, "selected") {
			return opt
		}
	}
	return first
}

// FormOwner implements hyperwire.Element: the form attribute's referent if
// present, the nearest ancestor form otherwise.
func (e element) FormOwner() hyperwire.Element {
	if e.n.DataAtom == atom.Form {
		return nil
	}
	if id, ok := e.Attr("form"); ok && id != "" {
		n := findNode(e.d.root, func(n *html.Node) bool {
			return n.DataAtom == atom.Form && attrVal(n, "id") == id
		})
		if n == nil {
			return nil
		}
		return element{node{d: e.d, n: n}}
	}
	for p := e.n.Parent; p != nil; p = p.Parent {
		if p.DataAtom == atom.Form {
			return element{node{d: e.d, n: p}}
		}
	}
	return nil
}

// FormEntries implements hyperwire.Element: HTML form serialization for a
// form element, nil for anything else. Buttons and unchecked checkables
// are excluded, duplicates preserved, document order kept.
func (e element) FormEntries() []hyperwire.Field {
	if e.n.DataAtom != atom.Form {
		return nil
	}
	var entries []hyperwire.Field
	controls := collectNodes(e.n, func(n *html.Node) bool {
		switch n.DataAtom {
		case atom.Input, atom.Select, atom.Textarea:
			return true
		}
		return false
	})
	for _, n := range controls {
		ctl := element{node{d: e.d, n: n}}
		name := ctl.Name()
		if name == "" || hasAttr(n, "disabled") {
			continue
		}
		switch n.DataAtom {
		case atom.Input:
			switch ctl.inputType() {
			case "submit", "button", "reset", "image", "file":
				continue
			case "checkbox", "radio":
				if !hasAttr(n, "checked") {
					continue
				}
			}
			entries = append(entries, hyperwire.Field{Name: name, Value: ctl.Value()})
		case atom.Textarea:
			entries = append(entries, hyperwire.Field{Name: name, Value: textContent(n)})
		case atom.Select:
			if hasAttr(n, "multiple") {
				for _, opt := range collectNodes(n, func(o *html.Node) bool {
					return o.DataAtom == atom.Option && hasAttr(o, "selected")
				}) {
					entries = append(entries, hyperwire.Field{Name: name, Value: optionValue(opt)})
				}
			} else if opt := ctl.selectedOption(); opt != nil {
				entries = append(entries, hyperwire.Field{Name: name, Value: optionValue(opt)})
			}
		}
	}
	return entries
}

// Children implements hyperwire.Element.
func (e element) Children() []hyperwire.Node {
	var out []hyperwire.Node
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, node{d: e.d, n: c})
	}
	return out
}

// QueryAll implements hyperwire.Element.
func (e element) QueryAll(selector string) ([]hyperwire.Element, error) {
	group, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, err
	}
	matched := collectNodes(e.n, func(n *html.Node) bool {
		return n.Type == html.ElementNode && group.Match(n)
	})
	out := make([]hyperwire.Element, len(matched))
	for i, n := range matched {
		out[i] = element{node{d: e.d, n: n}}
	}
	return out, nil
}

// Matches implements hyperwire.Element.
func (e element) Matches(selector string) (bool, error) {
	group, err := cascadia.ParseGroup(selector)
	if err != nil {
		return false, err
	}
	return group.Match(e.n), nil
}

// ReplaceChildren implements hyperwire.Element.
func (e element) ReplaceChildren(nodes []hyperwire.Node) {
	for e.n.FirstChild != nil {
		e.n.RemoveChild(e.n.FirstChild)
	}
	e.Append(nodes)
}

// ReplaceWith implements hyperwire.Element.
func (e element) ReplaceWith(nodes []hyperwire.Node) {
	e.InsertBefore(nodes)
	e.Remove()
}

// InsertAfter implements hyperwire.Element; operands keep their relative
// order as next siblings of the target.
func (e element) InsertAfter(nodes []hyperwire.Node) {
	parent := e.n.Parent
	if parent == nil {
		return
	}
	ref := e.n.NextSibling
	for _, hn := range rawNodes(nodes) {
		detach(hn)
		if ref == nil {
			parent.AppendChild(hn)
		} else {
			parent.InsertBefore(hn, ref)
		}
	}
}

// InsertBefore implements hyperwire.Element.
func (e element) InsertBefore(nodes []hyperwire.Node) {
	parent := e.n.Parent
	if parent == nil {
		return
	}
	for _, hn := range rawNodes(nodes) {
		detach(hn)
		parent.InsertBefore(hn, e.n)
	}
}

// Prepend implements hyperwire.Element.
func (e element) Prepend(nodes []hyperwire.Node) {
	ref := e.n.FirstChild
	for _, hn := range rawNodes(nodes) {
		detach(hn)
		if ref == nil {
			e.n.AppendChild(hn)
		} else {
			e.n.InsertBefore(hn, ref)
		}
	}
}

// Append implements hyperwire.Element.
func (e element) Append(nodes []hyperwire.Node) {
	for _, hn := range rawNodes(nodes) {
		detach(hn)
		e.n.AppendChild(hn)
	}
}

// Remove implements hyperwire.Element.
func (e element) Remove() {
	detach(e.n)
}

// On implements hyperwire.Element.
func (e element) On(event string, listener hyperwire.Listener) {
	m := e.d.listeners[e.n]
	if m == nil {
		m = make(map[string][]hyperwire.Listener)
		e.d.listeners[e.n] = m
	}
	m[event] = append(m[event], listener)
}

// Dispatch implements hyperwire.Element: run the element's own listeners,
// then bubble through ancestors. Cancellation does not stop propagation;
// the result reflects the final flag.
func (e element) Dispatch(ev *hyperwire.Event) hyperwire.DispatchResult {
	if ev.Target == nil {
		ev.Target = e
	}
	for n := e.n; n != nil; n = n.Parent {
		for _, l := range e.d.listeners[n][ev.Name] {
			l(ev)
		}
	}
	return hyperwire.DispatchResult{Proceeded: !ev.Canceled()}
}

// rawNodes unwraps hyperwire nodes into parse-tree nodes, dropping any
// that came from a different host.
func rawNodes(nodes []hyperwire.Node) []*html.Node {
	out := make([]*html.Node, 0, len(nodes))
	for _, n := range nodes {
		if hn, ok := n.(interface{ HTMLNode() *html.Node }); ok {
			out = append(out, hn.HTMLNode())
		}
	}
	return out
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func hasAttr(n *html.Node, name string) bool {
	for _, a := range n.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}

func attrVal(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func optionValue(opt *html.Node) string {
	if v := attrVal(opt, "value"); v != "" || hasAttr(opt, "value") {
		return v
	}
	return strings.TrimSpace(textContent(opt))
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
