package hyperwire

import (
	"context"
	"strings"
)

// Install scans a subtree for elements carrying the opt-in attribute,
// including root itself, and makes each one a live hypermedia control:
// announce hw:will-install, bind the trigger event, wire any inline on*
// listeners, announce hw:init. Installation is idempotent; re-scanning an
// already-installed element is a no-op. The swap engine calls Install on
// inserted content, so nested controls come live on their own.
func (e *Engine) Install(root Element) {
	if root == nil {
		return
	}
	if HasOptIn(root) {
		e.installElement(root)
	}
	descendants, err := root.QueryAll(optInSelector)
	if err != nil {
		e.log.Error("install scan failed", "err", err)
		return
	}
	for _, el := range descendants {
		e.installElement(el)
	}
}

// Uninstall drops an element from the installed-set. Hosts that discard
// elements permanently call this so the set does not grow past page
// lifetime; hosts without detachment notification may skip it and accept
// the growth.
func (e *Engine) Uninstall(el Element) {
	delete(e.installed, el.Key())
}

func (e *Engine) installElement(el Element) {
	key := el.Key()
	if _, seen := e.installed[key]; seen {
		return
	}
	e.installed[key] = struct{}{}

	if !dispatch(el, NewEvent(EventWillInstall, nil)).Proceeded {
		// A canceled install is not retried; the element stays marked.
		return
	}

	trigger := defaultTrigger(el)
	if raw, ok := ResolveAttr(el, "event"); ok && raw != "" {
		trigger = raw
	}
	el.On(trigger, func(ev *Event) {
		ev.PreventDefault()
		if err := e.Actuate(context.Background(), el, ev); err != nil && !IsCanceled(err) {
			// A failed exchange must not take the page down with it.
			e.log.Error("exchange failed", "trigger", trigger, "err", err)
		}
	})

	e.bindInlineListeners(el)
	dispatch(el, NewEvent(EventInit, nil))
}

// defaultTrigger picks the type-appropriate trigger event: submission for
// forms, change for selects, textareas, and non-button inputs, click for
// everything else.
func defaultTrigger(el Element) string {
	switch el.TagName() {
	case "form":
		return "submit"
	case "select", "textarea":
		return "change"
	case "input":
		t, _ := el.Attr("type")
		switch strings.ToLower(t) {
		case "button", "submit", "reset", "image":
			return "click"
		}
		return "change"
	}
	return "click"
}

// bindInlineListeners wires ad hoc listeners declared as on* attributes
// whose names HTML does not predefine. The text after the on prefix and an
// optional separator (: or -) names the event, so synthetic names work too;
// a doubled separator binds the library-namespaced form:
//
//	onclear="..."          listens for "clear"
//	on:item-saved="..."    listens for "item-saved"
//	on::did-swap="..."     listens for "hw:did-swap"
//
// The attribute's text runs through the engine's evaluator as a script
// body, with the triggering event and the element as the explicit scope.
func (e *Engine) bindInlineListeners(el Element) {
	for _, attr := range el.Attrs() {
		name := inlineEventName(attr.Name)
		if name == "" {
			continue
		}
		script := attr.Value
		el.On(name, func(ev *Event) {
			_, err := e.eval.Evaluate(context.Background(), script, Scope{
				Element: el,
				Event:   ev,
			})
			if err != nil {
				e.log.Warn("inline listener failed", "event", name, "err", err)
			}
		})
	}
}

// inlineEventName maps an attribute name to the event it listens for, or
// "" when the attribute is not an inline listener (including every
// natively defined handler attribute, which stays the host's business).
func inlineEventName(attr string) string {
	if nativeHandlers[attr] {
		return ""
	}
	rest, ok := strings.CutPrefix(attr, "on")
	if !ok || rest == "" {
		return ""
	}
	if sep := rest[0]; sep == ':' || sep == '-' {
		rest = rest[1:]
		if rest == "" {
			return ""
		}
		if rest[0] == sep {
			return EventNamespace + rest[1:]
		}
	}
	return rest
}

// nativeHandlers is the fixed set of handler attribute names HTML itself
// defines. These never become inline listeners.
var nativeHandlers = map[string]bool{
	"onabort": true, "onafterprint": true, "onauxclick": true,
	"onbeforeinput": true, "onbeforeprint": true, "onbeforeunload": true,
	"onblur": true, "oncancel": true, "oncanplay": true,
	"oncanplaythrough": true, "onchange": true, "onclick": true,
	"onclose": true, "oncontextmenu": true, "oncopy": true,
	"oncuechange": true, "oncut": true, "ondblclick": true, "ondrag": true,
	"ondragend": true, "ondragenter": true, "ondragleave": true,
	"ondragover": true, "ondragstart": true, "ondrop": true,
	"ondurationchange": true, "onemptied": true, "onended": true,
	"onerror": true, "onfocus": true, "onformdata": true,
	"onhashchange": true, "oninput": true, "oninvalid": true,
	"onkeydown": true, "onkeypress": true, "onkeyup": true,
	"onlanguagechange": true, "onload": true, "onloadeddata": true,
	"onloadedmetadata": true, "onloadstart": true, "onmessage": true,
	"onmessageerror": true, "onmousedown": true, "onmouseenter": true,
	"onmouseleave": true, "onmousemove": true, "onmouseout": true,
	"onmouseover": true, "onmouseup": true, "onoffline": true,
	"ononline": true, "onpagehide": true, "onpageshow": true,
	"onpaste": true, "onpause": true, "onplay": true, "onplaying": true,
	"onpopstate": true, "onprogress": true, "onratechange": true,
	"onrejectionhandled": true, "onreset": true, "onresize": true,
	"onscroll": true, "onsecuritypolicyviolation": true, "onseeked": true,
	"onseeking": true, "onselect": true, "onslotchange": true,
	"onstalled": true, "onstorage": true, "onsubmit": true,
	"onsuspend": true, "ontimeupdate": true, "ontoggle": true,
	"onunhandledrejection": true, "onunload": true, "onvolumechange": true,
	"onwaiting": true, "onwheel": true,
}
