package hyperwire

import "strings"

// SelectorFragmentPrefix marks a destination fragment as an explicit CSS
// selector rather than a bare ID: /page#:~:selector=.item selects every
// .item element from the response content.
const SelectorFragmentPrefix = ":~:selector="

// elsewhereSelector matches response template nodes declaring secondary
// swaps.
const elsewhereSelector = "template[" + AttrOptIn + "], template[data-" + AttrOptIn + "]"

// swapContent interprets fetched content and performs the primary swap and
// any elsewhere swaps the response declares. No content means no mutation:
// the aborted, failed, and canceled paths all land here.
func (e *Engine) swapContent(x *Exchange, c content) {
	if !c.ok {
		return
	}

	frag := c.frag
	if frag == nil {
		parsed, err := e.doc.ParseFragment(c.text)
		if err != nil {
			e.log.Error("response content failed to parse", "err", err)
			return
		}
		frag = parsed
	}

	// Elsewhere templates are carved out before the primary target is
	// touched, so they never appear in the primary content.
	e.swapElsewhere(x, frag)

	nodes := e.selectContent(x, frag)
	e.applySwap(x, x.Target, x.Style, nodes)
}

// selectContent resolves the primary operand set. A destination fragment
// identifier selects nodes out of the parsed content - as a CSS selector
// with the :~:selector= prefix, as an ID otherwise. No fragment means the
// content's own children. A selector matching nothing is not an error; the
// swap proceeds with an empty operand set.
func (e *Engine) selectContent(x *Exchange, frag Fragment) []Node {
	ident := x.Destination.Fragment
	if ident == "" {
		return frag.Nodes()
	}

	sel, explicit := strings.CutPrefix(ident, SelectorFragmentPrefix)
	if !explicit {
		sel = "#" + ident
	}
	matched, err := frag.QueryAll(sel)
	if err != nil {
		e.log.Warn("fragment selector invalid", "selector", sel, "err", err)
		return nil
	}
	if len(matched) == 0 {
		e.log.Debug("fragment selector matched nothing", "selector", sel)
	}
	nodes := make([]Node, len(matched))
	for i, m := range matched {
		nodes[i] = m
	}
	return nodes
}

// swapElsewhere processes each elsewhere template in the content as an
// independent nested swap against its own resolved target, then removes it
// from the fragment. A template with no resolvable target or an invalid
// swap style is logged and skipped; one bad directive must not sink the
// rest.
func (e *Engine) swapElsewhere(x *Exchange, frag Fragment) {
	templates, err := frag.QueryAll(elsewhereSelector)
	if err != nil {
		e.log.Warn("elsewhere scan failed", "err", err)
		return
	}
	for _, tmpl := range templates {
		sel, ok := ResolveAttr(tmpl, "target")
		if !ok || sel == "" {
			e.log.Warn("elsewhere template has no target, skipping")
			tmpl.Remove()
			continue
		}
		target, err := e.doc.Query(sel)
		if err != nil || target == nil {
			e.log.Warn("elsewhere target matched nothing, skipping", "selector", sel, "err", err)
			tmpl.Remove()
			continue
		}
		style := DefaultSwapStyle
		if raw, ok := ResolveAttr(tmpl, "swap"); ok {
			style, err = ParseSwapStyle(raw)
			if err != nil {
				e.log.Warn("elsewhere template swap style invalid, skipping",
					"selector", sel, "err", err)
				tmpl.Remove()
				continue
			}
		}
		nodes := tmpl.Children()
		tmpl.Remove()
		e.applySwap(x, target, style, nodes)
	}
}

// applySwap runs the mutation protocol for one swap, primary or elsewhere:
// announce hw:will-swap on the trigger and hw:will-be-swapped on the
// target, mutate unless either was canceled, re-install behavior on the
// inserted nodes, then announce hw:did-swap and hw:was-swapped-away. A
// canceled swap dispatches neither post-mutation event.
func (e *Engine) applySwap(x *Exchange, target Element, style SwapStyle, nodes []Node) {
	if target == nil {
		return
	}
	if !dispatch(x.TriggerElement, NewEvent(EventWillSwap, x)).Proceeded {
		return
	}
	if !dispatch(target, NewEvent(EventWillBeSwapped, x)).Proceeded {
		return
	}

	style.apply(target, nodes)

	// Nested hypermedia controls in the inserted content become live
	// without a separate Install call.
	for _, n := range nodes {
		if el := n.AsElement(); el != nil {
			e.Install(el)
		}
	}

	dispatch(x.TriggerElement, NewEvent(EventDidSwap, x))
	dispatch(target, NewEvent(EventWasSwappedAway, x))
}
