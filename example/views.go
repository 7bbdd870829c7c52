package main

import (
	"fmt"

	"github.com/a-h/templ"
)

// Page is the full document served at /. The increment button opts in with
// the hw attribute; the engine reads its action, target, and swap from the
// same markup a plain form submission would use.
func Page(count int64) templ.Component {
	return templ.Raw(fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>hyperwire counter</title></head>
<body>
	<div id="toast"></div>
	%s
	<button id="inc" hw action="/increment" method="post" target="#counter" swap="outerHTML">Increment</button>
</body>
</html>`, counterMarkup(count)))
}

// CounterPartial is the response to POST /increment: the replacement
// counter plus an elsewhere template that drops a toast next to it.
func CounterPartial(count int64) templ.Component {
	return templ.Raw(fmt.Sprintf(`%s
<template hw target="#toast" swap="innerHTML">
	<p class="toast">saved count %d</p>
</template>`, counterMarkup(count), count))
}

func counterMarkup(count int64) string {
	return fmt.Sprintf(`<div id="counter">Count: %d</div>`, count)
}
