package hyperwire_test

import (
	"testing"

	"github.com/pthm/hyperwire"
)

func TestResolveAttrPrecedence(t *testing.T) {
	tests := []struct {
		name    string
		markup  string
		want    string
		present bool
	}{
		{
			"data- form beats all three",
			`<div id="x" data-target="#a" formtarget="#b" target="#c"></div>`,
			"#a", true,
		},
		{
			"data- form beats bare",
			`<div id="x" data-target="#a" target="#c"></div>`,
			"#a", true,
		},
		{
			"form prefix beats bare",
			`<div id="x" formtarget="#b" target="#c"></div>`,
			"#b", true,
		},
		{
			"bare form alone",
			`<div id="x" target="#c"></div>`,
			"#c", true,
		},
		{
			"absent is not an error",
			`<div id="x"></div>`,
			"", false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, tt.markup)
			el := query(t, doc, "#x")

			got, ok := hyperwire.ResolveAttr(el, "target")
			if ok != tt.present {
				t.Fatalf("ResolveAttr() present = %v, want %v", ok, tt.present)
			}
			if got != tt.want {
				t.Errorf("ResolveAttr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasOptIn(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   bool
	}{
		{"bare attribute", `<div id="x" hw></div>`, true},
		{"data- spelling", `<div id="x" data-hw></div>`, true},
		{"no attribute", `<div id="x"></div>`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, tt.markup)
			if got := hyperwire.HasOptIn(query(t, doc, "#x")); got != tt.want {
				t.Errorf("HasOptIn() = %v, want %v", got, tt.want)
			}
		})
	}
}
