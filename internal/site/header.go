package site

import (
	"sync"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

type navLink struct {
	Anchor string
	Label  string
}

var navLinks = []navLink{
	{AnchorHome, "Inicio"},
	{AnchorFeatures, "Nosotros"},
	{AnchorProducts, "Productos"},
	{AnchorContact, "Contacto"},
}

// Header renders the navigation bar and owns the collapsible menu state.
type Header struct {
	mu   sync.Mutex
	open bool
}

// NewHeader returns a header with the menu closed.
func NewHeader() *Header {
	return &Header{}
}

// ToggleMenu opens a closed menu and closes an open one.
func (h *Header) ToggleMenu() {
	h.mu.Lock()
	h.open = !h.open
	h.mu.Unlock()
}

// MenuOpen reports the menu state.
func (h *Header) MenuOpen() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.open
}

// Render draws the navbar. Without JavaScript the toggle is a form post.
func (h *Header) Render() g.Node {
	open := h.MenuOpen()
	expanded, menuClass := "false", "collapse navbar-collapse"
	if open {
		expanded, menuClass = "true", "collapse navbar-collapse show"
	}

	return html.Nav(
		html.Class("navbar navbar-expand-lg bg-wood fixed-top"),
		html.Div(
			html.Class("container"),
			html.A(html.Class("navbar-brand"), html.Href("#"+AnchorHome),
				html.I(html.Class("fas fa-tree me-2")),
				g.Text("Maderas Premium"),
			),
			form(
				g.Attr("method", "post"), g.Attr("action", "/menu"), html.Class("navbar-toggle-form"),
				html.Button(
					g.Attr("type", "submit"), html.Class("navbar-toggler"),
					g.Attr("aria-controls", "navbarNav"),
					g.Attr("aria-expanded", expanded),
					g.Attr("aria-label", "Alternar navegación"),
					html.Span(html.Class("navbar-toggler-icon")),
				),
			),
			html.Div(
				html.ID("navbarNav"),
				html.Class(menuClass),
				html.Ul(
					html.Class("navbar-nav ms-auto"),
					g.Group(g.Map(navLinks, func(l navLink) g.Node {
						return html.Li(html.Class("nav-item"),
							html.A(html.Class("nav-link"), html.Href("#"+l.Anchor), g.Text(l.Label)))
					})),
					html.Li(html.Class("nav-item ms-lg-3"),
						html.A(html.Class("btn btn-outline-light"), html.Href("#"+AnchorContact), g.Text("Solicitar Cotización")),
					),
				),
			),
		),
	)
}
