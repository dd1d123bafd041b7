package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vesaa/maderas/internal/site"
)

type siteHandlers struct {
	visitors *Visitors
	metrics  *Metrics
	log      *slog.Logger
}

// RegisterSiteRoutes wires the landing page and its form actions. Every
// POST mutates the visitor's page and redirects back with 303, so the
// browser's reload never repeats an action.
//
//	GET  /                 render the page
//	POST /menu             toggle the mobile menu
//	POST /scroll/products  hero "Ver Productos"
//	POST /scroll/contact   hero "Contactar"
//	POST /quote/:id        product "Solicitar Cotización"
//	POST /contact          submit the contact form
func RegisterSiteRoutes(r *gin.Engine, v *Visitors, m *Metrics, log *slog.Logger) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	h := &siteHandlers{visitors: v, metrics: m, log: log}

	r.GET("/", h.index)
	r.POST("/menu", h.toggleMenu)
	r.POST("/scroll/products", h.scrollProducts)
	r.POST("/scroll/contact", h.scrollContact)
	r.POST("/quote/:id", h.quote)
	r.POST("/contact", h.submitContact)
}

func (h *siteHandlers) page(c *gin.Context) (*site.Page, bool) {
	p, err := h.visitors.Page(c)
	if errors.Is(err, ErrVisitorLimit) {
		h.log.Warn("visitor limit reached", slog.Int("visitors", h.visitors.Count()))
		c.Header("Retry-After", "60")
		c.String(http.StatusServiceUnavailable, "service busy, try again later")
		return nil, false
	}
	if err != nil {
		h.log.Error("mounting visitor page", slog.Any("error", err))
		c.String(http.StatusInternalServerError, "internal error")
		return nil, false
	}
	return p, true
}

// index renders the visitor's page, or a blank unmounted one for a visitor
// who has not acted yet.
func (h *siteHandlers) index(c *gin.Context) {
	p, mounted, err := h.visitors.Lookup(c)
	if err != nil {
		h.log.Error("looking up visitor page", slog.Any("error", err))
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	if !mounted {
		p = h.visitors.Preview()
		defer p.Close()
	}
	h.metrics.pageView()
	h.render(c, http.StatusOK, p, nil)
}

func (h *siteHandlers) toggleMenu(c *gin.Context) {
	p, ok := h.page(c)
	if !ok {
		return
	}
	p.Header.ToggleMenu()
	h.metrics.action("menu")
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *siteHandlers) scrollProducts(c *gin.Context) {
	p, ok := h.page(c)
	if !ok {
		return
	}
	p.Hero.ScrollToProducts()
	h.metrics.action("scroll_products")
	h.redirect(c, p)
}

func (h *siteHandlers) scrollContact(c *gin.Context) {
	p, ok := h.page(c)
	if !ok {
		return
	}
	p.Hero.ScrollToContact()
	h.metrics.action("scroll_contact")
	h.redirect(c, p)
}

func (h *siteHandlers) quote(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid product id")
		return
	}
	p, ok := h.page(c)
	if !ok {
		return
	}
	p.Products.GetQuote(id)
	h.metrics.action("quote")
	h.redirect(c, p)
}

func (h *siteHandlers) submitContact(c *gin.Context) {
	var fields site.ContactFields
	if err := c.ShouldBind(&fields); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}
	p, ok := h.page(c)
	if !ok {
		return
	}
	err := p.Contact.SubmitFields(c.Request.Context(), fields)
	var verrs site.ValidationErrors
	switch {
	case err == nil:
		h.metrics.submission(outcomeStarted)
		c.Redirect(http.StatusSeeOther, "/#"+site.AnchorContact)
	case errors.As(err, &verrs):
		h.metrics.submission(outcomeRejected)
		h.render(c, http.StatusUnprocessableEntity, p, verrs)
	case errors.Is(err, site.ErrSubmissionInProgress):
		h.metrics.submission(outcomeBusy)
		h.render(c, http.StatusConflict, p, nil)
	default:
		h.log.Error("contact submit", slog.Any("error", err))
		c.String(http.StatusInternalServerError, "internal error")
	}
}

// redirect sends the browser back to the page, at the anchor the last
// action scrolled to when there was one.
func (h *siteHandlers) redirect(c *gin.Context, p *site.Page) {
	loc := "/"
	if anchor, ok := p.Viewport.TakeTarget(); ok {
		loc = "/#" + anchor
	}
	c.Redirect(http.StatusSeeOther, loc)
}

func (h *siteHandlers) render(c *gin.Context, status int, p *site.Page, errs site.ValidationErrors) {
	c.Header("Cache-Control", "no-store")
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := p.WriteHTML(c.Writer, errs); err != nil {
		h.log.Warn("writing page", slog.Any("error", err))
	}
}
