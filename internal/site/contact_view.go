package site

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/vesaa/maderas/internal/catalog"
)

// Render draws the contact section. errs carries field flags from a
// rejected Submit and may be nil.
func (c *Contact) Render(errs ValidationErrors) g.Node {
	s := c.Snapshot()

	return html.Section(
		html.ID(AnchorContact),
		html.Class("py-5 bg-light"),
		html.Div(
			html.Class("container"),
			html.H2(html.Class("section-title text-center"), g.Text("Contáctanos")),
			html.Div(
				html.Class("row justify-content-center"),
				html.Div(
					html.Class("col-lg-8"),
					g.If(s.SubmitSucceeded,
						html.Div(html.Class("alert alert-success"), g.Attr("role", "status"),
							g.Text("¡Gracias! Tu mensaje ha sido enviado. Te contactaremos pronto."),
						),
					),
					g.If(s.SubmitError != "",
						html.Div(html.Class("alert alert-danger"), g.Attr("role", "alert"), g.Text(s.SubmitError)),
					),
					contactForm(s, errs),
				),
			),
		),
	)
}

func contactForm(s ContactFormState, errs ValidationErrors) g.Node {
	return form(
		g.Attr("method", "post"), g.Attr("action", "/contact"), g.Attr("novalidate", ""),
		html.Class("contact-form"),
		html.Div(html.Class("row g-3"),
			textField("name", "Nombre *", "text", s.Name, errs),
			textField("email", "Email *", "email", s.Email, errs),
			textField("phone", "Teléfono", "tel", s.Phone, errs),
			woodTypeField(s.WoodType),
			html.Div(html.Class("col-12"),
				label(g.Attr("for", "message"), html.Class("form-label"), g.Text("Mensaje *")),
				g.El("textarea",
					html.ID("message"), html.Name("message"), g.Attr("rows", "5"),
					inputClass("message", errs),
					g.Text(s.Message),
				),
				fieldError("message", errs),
			),
			html.Div(html.Class("col-12 text-center"),
				g.El("button", g.Attr("type", "submit"), html.Class("btn btn-wood btn-lg"),
					g.If(s.IsSubmitting, g.Attr("disabled", "")),
					g.If(s.IsSubmitting, g.Text("Enviando...")),
					g.If(!s.IsSubmitting, g.Text("Enviar Mensaje")),
				),
			),
		),
	)
}

func textField(name, text, typ, value string, errs ValidationErrors) g.Node {
	return html.Div(html.Class("col-md-6"),
		label(g.Attr("for", name), html.Class("form-label"), g.Text(text)),
		html.Input(
			html.ID(name), html.Name(name), g.Attr("type", typ), html.Value(value),
			inputClass(name, errs),
		),
		fieldError(name, errs),
	)
}

func woodTypeField(selected string) g.Node {
	options := append([]string{""}, catalog.WoodTypes()...)
	return html.Div(html.Class("col-md-6"),
		label(g.Attr("for", "woodType"), html.Class("form-label"), g.Text("Tipo de Madera")),
		html.Select(html.ID("woodType"), html.Name("woodType"), html.Class("form-select"),
			g.Group(g.Map(options, func(o string) g.Node {
				text := o
				if o == "" {
					text = "Selecciona un tipo"
				}
				return html.Option(html.Value(o), g.If(o == selected, g.Attr("selected", "")), g.Text(text))
			})),
		),
	)
}

func inputClass(field string, errs ValidationErrors) g.Node {
	if errs.Has(field) {
		return html.Class("form-control is-invalid")
	}
	return html.Class("form-control")
}

func fieldError(field string, errs ValidationErrors) g.Node {
	msg, ok := errs[field]
	if !ok {
		return nil
	}
	return html.Div(html.Class("invalid-feedback"), g.Text(msg))
}
