package site

import (
	"strconv"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/vesaa/maderas/internal/catalog"
)

// Features renders the fixed list of feature cards.
type Features struct {
	items []catalog.Feature
}

func NewFeatures() *Features {
	return &Features{items: catalog.Features()}
}

// Items returns the cards in display order.
func (f *Features) Items() []catalog.Feature {
	out := make([]catalog.Feature, len(f.items))
	copy(out, f.items)
	return out
}

func (f *Features) Render() g.Node {
	return html.Section(
		html.ID(AnchorFeatures),
		html.Class("py-5 bg-light"),
		html.Div(
			html.Class("container"),
			html.H2(html.Class("section-title text-center"), g.Text("¿Por Qué Elegirnos?")),
			html.Div(
				html.Class("row g-4"),
				g.Group(g.Map(f.items, func(ft catalog.Feature) g.Node {
					return html.Div(
						html.Class("col-md-6 col-lg-3"),
						g.Attr("data-feature-id", strconv.Itoa(ft.ID)),
						html.Div(
							html.Class("feature-card text-center"),
							html.I(html.Class(ft.Icon+" feature-icon")),
							html.H3(html.Class("h5"), g.Text(ft.Title)),
							html.P(html.Class("text-muted"), g.Text(ft.Description)),
						),
					)
				})),
			),
		),
	)
}
