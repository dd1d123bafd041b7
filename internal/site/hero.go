package site

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

// Hero is the banner at the top of the page with two calls to action.
type Hero struct {
	nav Navigator
}

// NewHero binds the hero's scroll actions to nav.
func NewHero(nav Navigator) *Hero {
	return &Hero{nav: nav}
}

// ScrollToProducts brings the catalog into view.
func (h *Hero) ScrollToProducts() {
	h.nav.ScrollTo(AnchorProducts)
}

// ScrollToContact brings the contact form into view.
func (h *Hero) ScrollToContact() {
	h.nav.ScrollTo(AnchorContact)
}

func (h *Hero) Render() g.Node {
	return html.Section(
		html.ID(AnchorHome),
		html.Class("hero-section"),
		html.Div(
			html.Class("container hero-content text-center"),
			html.H1(html.Class("display-3 fw-bold"), g.Text("Madera de Calidad Premium")),
			html.P(html.Class("lead"),
				g.Text("Abastecimiento sostenible, calidad excepcional y servicio personalizado para todos tus proyectos de construcción y carpintería"),
			),
			html.Div(
				html.Class("hero-actions"),
				postButton("/scroll/products", "btn btn-wood btn-lg", "Ver Productos"),
				postButton("/scroll/contact", "btn btn-outline-light btn-lg", "Obtener Cotización"),
			),
		),
	)
}
