package site

import (
	g "maragu.dev/gomponents"
)

func form(children ...g.Node) g.Node {
	return g.El("form", children...)
}

func label(children ...g.Node) g.Node {
	return g.El("label", children...)
}

// postButton is a one-button form; the no-JavaScript stand-in for a click
// handler.
func postButton(action, class, text string) g.Node {
	return form(g.Attr("method", "post"), g.Attr("action", action), g.Attr("class", "inline-form"),
		g.El("button", g.Attr("type", "submit"), g.Attr("class", class), g.Text(text)),
	)
}
