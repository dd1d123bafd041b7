package site

import "sync"

// Anchor ids rendered on the page.
const (
	AnchorHome     = "home"
	AnchorFeatures = "features"
	AnchorProducts = "products"
	AnchorContact  = "contact"
)

// Navigator scrolls the rendered page to a named anchor. Scrolling is best
// effort: an unknown anchor is ignored.
type Navigator interface {
	ScrollTo(anchor string)
}

// Viewport is the Navigator for a server-rendered page. It knows which
// anchors the page renders and remembers the last scroll request so the
// HTTP layer can turn it into a URL fragment.
type Viewport struct {
	mu      sync.Mutex
	anchors map[string]struct{}
	target  string
}

// NewViewport creates a viewport over the given anchors.
func NewViewport(anchors ...string) *Viewport {
	v := &Viewport{anchors: make(map[string]struct{}, len(anchors))}
	for _, a := range anchors {
		v.anchors[a] = struct{}{}
	}
	return v
}

// ScrollTo records anchor as the pending scroll target if the page has it.
func (v *Viewport) ScrollTo(anchor string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.anchors[anchor]; !ok {
		return
	}
	v.target = anchor
}

// HasAnchor reports whether the page renders anchor.
func (v *Viewport) HasAnchor(anchor string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.anchors[anchor]
	return ok
}

// TakeTarget returns and clears the pending scroll target.
func (v *Viewport) TakeTarget() (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	t := v.target
	v.target = ""
	return t, t != ""
}
