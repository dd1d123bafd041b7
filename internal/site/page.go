package site

import (
	"io"
	"log/slog"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/components"
	"maragu.dev/gomponents/html"
)

// Page is the root component: Header, Hero, Features, Products and Contact
// in that vertical order, sharing one Viewport.
type Page struct {
	Viewport *Viewport
	Header   *Header
	Hero     *Hero
	Features *Features
	Products *Products
	Contact  *Contact
}

// NewPage mounts a fresh page whose contact form submits through gw.
func NewPage(gw Gateway, log *slog.Logger, opts ...ContactOption) *Page {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	vp := NewViewport(AnchorHome, AnchorFeatures, AnchorProducts, AnchorContact)
	opts = append([]ContactOption{WithLogger(log)}, opts...)
	return &Page{
		Viewport: vp,
		Header:   NewHeader(),
		Hero:     NewHero(vp),
		Features: NewFeatures(),
		Products: NewProducts(vp, log),
		Contact:  NewContact(gw, opts...),
	}
}

// Render builds the full HTML document. While the contact form is in a
// transient state the page asks the browser to refresh itself so the
// transition shows up without JavaScript.
func (p *Page) Render(errs ValidationErrors) g.Node {
	s := p.Contact.Snapshot()
	transient := s.IsSubmitting || s.SubmitSucceeded

	return components.HTML5(components.HTML5Props{
		Title:       "Maderas Premium | Madera de calidad",
		Description: "Proveedor de madera sostenible: roble, cedro, nogal y pino.",
		Language:    "es",
		Head: []g.Node{
			html.Link(html.Rel("stylesheet"), html.Href("/static/site.css")),
			g.If(transient, html.Meta(g.Attr("http-equiv", "refresh"), g.Attr("content", "1"))),
		},
		Body: []g.Node{
			p.Header.Render(),
			html.Main(
				p.Hero.Render(),
				p.Features.Render(),
				p.Products.Render(),
				p.Contact.Render(errs),
			),
			html.Footer(html.Class("footer text-center py-4"),
				g.Text("© Maderas Premium · Madera sostenible para tus proyectos"),
			),
		},
	})
}

// WriteHTML renders the document to w.
func (p *Page) WriteHTML(w io.Writer, errs ValidationErrors) error {
	return p.Render(errs).Render(w)
}

// Close unmounts the page.
func (p *Page) Close() {
	p.Contact.Close()
}

// Wait blocks until the page's in-flight submissions settle.
func (p *Page) Wait() {
	p.Contact.Wait()
}
