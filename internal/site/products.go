package site

import (
	"log/slog"
	"strconv"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/vesaa/maderas/internal/catalog"
)

// Products renders the catalog and offers a quote action per product.
type Products struct {
	nav   Navigator
	log   *slog.Logger
	items []catalog.Product
}

func NewProducts(nav Navigator, log *slog.Logger) *Products {
	return &Products{nav: nav, log: log, items: catalog.Products()}
}

// Items returns the catalog in display order.
func (p *Products) Items() []catalog.Product {
	out := make([]catalog.Product, len(p.items))
	copy(out, p.items)
	return out
}

// GetQuote scrolls to the contact form. The product id does not pre-fill
// the form; it is only logged.
func (p *Products) GetQuote(productID int) {
	if p.log != nil {
		p.log.Debug("quote requested", slog.Int("product_id", productID))
	}
	p.nav.ScrollTo(AnchorContact)
}

func (p *Products) Render() g.Node {
	return html.Section(
		html.ID(AnchorProducts),
		html.Class("py-5"),
		html.Div(
			html.Class("container"),
			html.H2(html.Class("section-title text-center"), g.Text("Nuestros Productos")),
			html.Div(
				html.Class("row g-4"),
				g.Group(g.Map(p.items, renderProduct)),
			),
		),
	)
}

func renderProduct(pr catalog.Product) g.Node {
	id := strconv.Itoa(pr.ID)
	return html.Div(
		html.Class("col-md-6 col-lg-3"),
		g.Attr("data-product-id", id),
		html.Div(
			html.Class("product-card card h-100"),
			html.Div(html.Class("product-swatch"), g.Attr("style", "background-color: "+pr.Image)),
			html.Div(
				html.Class("card-body"),
				html.Span(html.Class("badge bg-wood"), g.Text(pr.Type)),
				html.H3(html.Class("h5 card-title"), g.Text(pr.Name)),
				html.P(html.Class("card-text text-muted"), g.Text(pr.Description)),
				html.P(html.Class("price"), g.Text(pr.Price)),
				postButton("/quote/"+id, "btn btn-wood w-100", "Solicitar Cotización"),
			),
		),
	)
}
