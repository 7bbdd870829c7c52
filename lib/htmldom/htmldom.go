// Package htmldom is an in-process implementation of hyperwire's host DOM
// contracts over golang.org/x/net/html, with cascadia CSS selectors and a
// listener side table providing ancestor-walk event bubbling.
//
// It exists so the engine can run headlessly - tests, server-side
// prerendering, crawlers - without a browser. Parse a document, hand it to
// hyperwire.New, and drive it by dispatching events:
//
//	doc, _ := htmldom.ParseString(page, baseURL)
//	engine := hyperwire.New(doc)
//	engine.Install(doc.Body())
//	btn, _ := doc.Query("#inc")
//	doc.Fire(btn, "click")
package htmldom

import (
	"errors"
	"io"
	"net/url"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pthm/hyperwire"
)

// Document implements hyperwire.Document over a parsed HTML tree.
type Document struct {
	root *html.Node
	base *url.URL

	// listeners is the per-node side table backing On and Dispatch.
	// Entries for removed nodes persist until the node is garbage; the
	// engine's Uninstall covers its own installed-set separately.
	listeners map[*html.Node]map[string][]hyperwire.Listener
}

// Parse reads a full HTML document. base becomes the document location;
// nil defaults to http://localhost/.
func Parse(r io.Reader, base *url.URL) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	if base == nil {
		base = &url.URL{Scheme: "http", Host: "localhost", Path: "/"}
	}
	return &Document{
		root:      root,
		base:      base,
		listeners: make(map[*html.Node]map[string][]hyperwire.Listener),
	}, nil
}

// ParseString parses a document from a string.
func ParseString(s string, base *url.URL) (*Document, error) {
	return Parse(strings.NewReader(s), base)
}

// BaseURL implements hyperwire.Document.
func (d *Document) BaseURL() *url.URL {
	return d.base
}

// Body implements hyperwire.Document.
func (d *Document) Body() hyperwire.Element {
	n := findNode(d.root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Body
	})
	if n == nil {
		return nil
	}
	return element{node{d: d, n: n}}
}

// Query implements hyperwire.Document: first match in document order, nil
// when nothing matches.
func (d *Document) Query(selector string) (hyperwire.Element, error) {
	group, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, err
	}
	n := findNode(d.root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && group.Match(n)
	})
	if n == nil {
		return nil, nil
	}
	return element{node{d: d, n: n}}, nil
}

// ParseFragment implements hyperwire.Document. The parsed nodes live under
// a detached container so they can be queried and removed before any swap
// attaches them.
func (d *Document) ParseFragment(text string) (hyperwire.Fragment, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(text), ctx)
	if err != nil {
		return nil, err
	}
	container := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return fragment{d: d, container: container}, nil
}

// Fire dispatches a native event on an element, the way a host delivers a
// click or change. It returns the dispatched event so callers can inspect
// DefaultPrevented.
func (d *Document) Fire(el hyperwire.Element, event string) *hyperwire.Event {
	ev := &hyperwire.Event{Name: event}
	if el != nil {
		el.Dispatch(ev)
	}
	return ev
}

// HTML renders the whole document back to markup.
func (d *Document) HTML() (string, error) {
	var sb strings.Builder
	if err := html.Render(&sb, d.root); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// OuterHTML renders a node back to markup. The node must belong to this
// package's host.
func OuterHTML(n hyperwire.Node) (string, error) {
	hn, ok := n.(interface{ HTMLNode() *html.Node })
	if !ok {
		return "", errors.New("htmldom: node belongs to a different host")
	}
	var sb strings.Builder
	if err := html.Render(&sb, hn.HTMLNode()); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// InnerHTML renders an element's children back to markup.
func InnerHTML(el hyperwire.Element) (string, error) {
	var sb strings.Builder
	for _, c := range el.Children() {
		s, err := OuterHTML(c)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}

// findNode walks a subtree in document order, returning the first node the
// predicate accepts.
func findNode(root *html.Node, pred func(*html.Node) bool) *html.Node {
	if pred(root) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if n := findNode(c, pred); n != nil {
			return n
		}
	}
	return nil
}

// collectNodes walks a subtree in document order, excluding root itself.
func collectNodes(root *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n != root && pred(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// fragment implements hyperwire.Fragment over a detached container node.
type fragment struct {
	d         *Document
	container *html.Node
}

// Nodes implements hyperwire.Fragment.
func (f fragment) Nodes() []hyperwire.Node {
	var out []hyperwire.Node
	for c := f.container.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, node{d: f.d, n: c})
	}
	return out
}

// QueryAll implements hyperwire.Fragment.
func (f fragment) QueryAll(selector string) ([]hyperwire.Element, error) {
	group, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, err
	}
	matched := collectNodes(f.container, func(n *html.Node) bool {
		return n.Type == html.ElementNode && group.Match(n)
	})
	out := make([]hyperwire.Element, len(matched))
	for i, n := range matched {
		out[i] = element{node{d: f.d, n: n}}
	}
	return out, nil
}
