package server

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/components"
	"maragu.dev/gomponents/html"

	"github.com/vesaa/maderas/webui"
)

// RegisterStaticFiles mounts the embedded stylesheet and images under
// /static and answers every unmatched route with a 404 page.
func RegisterStaticFiles(r *gin.Engine) {
	staticFS, err := fs.Sub(webui.FS, "static")
	if err != nil {
		panic("embed: static sub-fs failed: " + err.Error())
	}
	r.StaticFS("/static", http.FS(staticFS))

	r.NoRoute(func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Status(http.StatusNotFound)
		_ = notFoundPage().Render(c.Writer)
	})
}

func notFoundPage() g.Node {
	return components.HTML5(components.HTML5Props{
		Title:    "Página no encontrada | Maderas Premium",
		Language: "es",
		Head: []g.Node{
			html.Link(html.Rel("stylesheet"), html.Href("/static/site.css")),
		},
		Body: []g.Node{
			html.Main(html.Class("container py-5 text-center"),
				html.H1(g.Text("404")),
				html.P(g.Text("La página que buscas no existe.")),
				html.A(html.Href("/"), html.Class("btn btn-wood"), g.Text("Volver al inicio")),
			),
		},
	})
}
