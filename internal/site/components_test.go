package site

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
)

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(&b))
	return b.String()
}

func TestHeader_ToggleMenuIsItsOwnInverse(t *testing.T) {
	h := NewHeader()
	assert.False(t, h.MenuOpen())

	h.ToggleMenu()
	assert.True(t, h.MenuOpen())

	h.ToggleMenu()
	assert.False(t, h.MenuOpen())
}

func TestHeader_RenderReflectsMenuState(t *testing.T) {
	h := NewHeader()
	closed := render(t, h.Render())
	assert.Contains(t, closed, `aria-expanded="false"`)
	assert.NotContains(t, closed, "navbar-collapse show")

	h.ToggleMenu()
	open := render(t, h.Render())
	assert.Contains(t, open, `aria-expanded="true"`)
	assert.Contains(t, open, "navbar-collapse show")
	for _, l := range navLinks {
		assert.Contains(t, open, `href="#`+l.Anchor+`"`)
	}
}

func TestHero_ScrollActions(t *testing.T) {
	nav := &recordingNavigator{}
	h := NewHero(nav)

	h.ScrollToProducts()
	h.ScrollToContact()

	assert.Equal(t, []string{AnchorProducts, AnchorContact}, nav.calls())
}

func TestHero_MissingAnchorIsSilent(t *testing.T) {
	vp := NewViewport(AnchorHome)
	h := NewHero(vp)

	h.ScrollToProducts()
	_, ok := vp.TakeTarget()
	assert.False(t, ok)
}

func TestViewport_TakeTargetClears(t *testing.T) {
	vp := NewViewport(AnchorProducts, AnchorContact)
	assert.True(t, vp.HasAnchor(AnchorContact))
	assert.False(t, vp.HasAnchor("pricing"))

	vp.ScrollTo(AnchorProducts)
	vp.ScrollTo("pricing")
	target, ok := vp.TakeTarget()
	require.True(t, ok)
	assert.Equal(t, AnchorProducts, target, "unknown anchors do not replace the target")

	_, ok = vp.TakeTarget()
	assert.False(t, ok)
}

func TestFeatures_ItemsInOrder(t *testing.T) {
	f := NewFeatures()
	items := f.Items()
	require.Len(t, items, 4)
	for i, it := range items {
		assert.Equal(t, i+1, it.ID)
	}

	html := render(t, f.Render())
	assert.Equal(t, 4, strings.Count(html, "data-feature-id="))
	assert.Less(t, strings.Index(html, "Abastecimiento Sostenible"), strings.Index(html, "Entrega Rápida"))
}

func TestProducts_GetQuoteScrollsToContact(t *testing.T) {
	nav := &recordingNavigator{}
	p := NewProducts(nav, nil)

	p.GetQuote(3)
	p.GetQuote(999)

	assert.Equal(t, []string{AnchorContact, AnchorContact}, nav.calls())
}

func TestProducts_Render(t *testing.T) {
	p := NewProducts(&recordingNavigator{}, nil)
	require.Len(t, p.Items(), 4)

	html := render(t, p.Render())
	assert.Equal(t, 4, strings.Count(html, "data-product-id="))
	for _, pr := range p.Items() {
		assert.Contains(t, html, pr.Image)
		assert.Contains(t, html, pr.Price)
	}
	assert.Contains(t, html, `action="/quote/1"`)
	assert.Contains(t, html, `action="/quote/4"`)
}

func TestContact_RenderStates(t *testing.T) {
	gw := newGate()
	c, sched := newTestContact(gw)
	events := watch(t, c)

	idle := render(t, c.Render(nil))
	assert.Contains(t, idle, "Enviar Mensaje")
	assert.NotContains(t, idle, "alert-success")

	c.SetFields(ContactFields{Email: "bad"})
	err := c.Submit(t.Context())
	verrs, ok := err.(ValidationErrors)
	require.True(t, ok)
	invalid := render(t, c.Render(verrs))
	assert.Contains(t, invalid, "is-invalid")
	assert.Contains(t, invalid, "Introduce un email válido")
	assert.Contains(t, invalid, `value="bad"`)

	c.SetFields(validFields)
	require.NoError(t, c.Submit(t.Context()))
	<-gw.got
	submitting := render(t, c.Render(nil))
	assert.Contains(t, submitting, "Enviando...")
	assert.Contains(t, submitting, "disabled")

	gw.release <- nil
	waitStatus(t, events, StatusSucceeded)
	assert.Contains(t, render(t, c.Render(nil)), "alert-success")
	sched.fireAll()
	c.Wait()
}

func TestPage_ComposesSectionsInOrder(t *testing.T) {
	p := NewPage(newGate(), nil, WithScheduler(&manualScheduler{}))
	defer p.Close()

	html := render(t, p.Render(nil))
	order := []string{`<nav`, `id="home"`, `id="features"`, `id="products"`, `id="contact"`}
	last := -1
	for _, marker := range order {
		idx := strings.Index(html, marker)
		require.NotEqual(t, -1, idx, marker)
		assert.Greater(t, idx, last, marker)
		last = idx
	}
	assert.Contains(t, html, `lang="es"`)
	assert.NotContains(t, html, `http-equiv="refresh"`)
}

func TestPage_ActionsShareViewport(t *testing.T) {
	p := NewPage(newGate(), nil)
	defer p.Close()

	p.Products.GetQuote(2)
	target, ok := p.Viewport.TakeTarget()
	require.True(t, ok)
	assert.Equal(t, AnchorContact, target)

	p.Hero.ScrollToProducts()
	target, _ = p.Viewport.TakeTarget()
	assert.Equal(t, AnchorProducts, target)
}

func TestPage_RefreshesWhileSubmitting(t *testing.T) {
	gw := newGate()
	p := NewPage(gw, nil, WithScheduler(&manualScheduler{}))
	p.Contact.SetFields(validFields)
	require.NoError(t, p.Contact.Submit(t.Context()))
	<-gw.got

	assert.Contains(t, render(t, p.Render(nil)), `http-equiv="refresh"`)

	gw.release <- nil
	p.Close()
	p.Wait()
}
