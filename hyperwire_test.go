package hyperwire_test

import (
	"net/url"
	"testing"

	"github.com/pthm/hyperwire"
	"github.com/pthm/hyperwire/lib/htmldom"
)

// Shared fixtures for the engine tests: documents parse against a fixed
// location so destination resolution is deterministic.

var testBase = &url.URL{Scheme: "http", Host: "example.test", Path: "/"}

func parseDoc(t *testing.T, markup string) *htmldom.Document {
	t.Helper()
	doc, err := htmldom.ParseString(markup, testBase)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	return doc
}

func query(t *testing.T, doc *htmldom.Document, selector string) hyperwire.Element {
	t.Helper()
	el, err := doc.Query(selector)
	if err != nil {
		t.Fatalf("Query(%q) failed: %v", selector, err)
	}
	if el == nil {
		t.Fatalf("Query(%q) matched nothing", selector)
	}
	return el
}

func innerHTML(t *testing.T, el hyperwire.Element) string {
	t.Helper()
	s, err := htmldom.InnerHTML(el)
	if err != nil {
		t.Fatalf("InnerHTML failed: %v", err)
	}
	return s
}

func outerHTML(t *testing.T, el hyperwire.Element) string {
	t.Helper()
	s, err := htmldom.OuterHTML(el)
	if err != nil {
		t.Fatalf("OuterHTML failed: %v", err)
	}
	return s
}
