package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/patrickmn/go-cache"

	"github.com/vesaa/maderas/internal/site"
)

const (
	sessionName = "maderas_session"
	visitorKey  = "visitor_id"
)

// PageFactory mounts a new page for a first-time visitor.
type PageFactory func() *site.Page

// Visitors keeps one mounted page per browser session. A page is mounted on
// the visitor's first action, not on a plain GET, and is evicted and
// unmounted once it goes untouched for the session TTL.
type Visitors struct {
	sessions sessions.Store
	pages    *cache.Cache
	newPage  PageFactory
	onMount  func(*site.Page)
	maxPages int
	log      *slog.Logger
}

// VisitorsOptions configures NewVisitors.
type VisitorsOptions struct {
	Secret   string
	TTL      time.Duration
	Secure   bool
	NewPage  PageFactory
	// OnMount, if set, runs once for every newly mounted page.
	OnMount  func(*site.Page)
	// MaxPages caps mounted pages; zero means no limit.
	MaxPages int
	Log      *slog.Logger
}

// NewVisitors creates the page registry and its cookie store.
func NewVisitors(opts VisitorsOptions) (*Visitors, error) {
	if opts.Secret == "" {
		return nil, fmt.Errorf("session secret must not be empty")
	}
	if opts.NewPage == nil {
		return nil, fmt.Errorf("page factory must not be nil")
	}
	if opts.TTL <= 0 {
		opts.TTL = 30 * time.Minute
	}
	if opts.Log == nil {
		opts.Log = slog.New(slog.DiscardHandler)
	}

	store := sessions.NewCookieStore([]byte(opts.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(opts.TTL.Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	pages := cache.New(opts.TTL, opts.TTL/2)
	pages.OnEvicted(func(id string, v any) {
		if p, ok := v.(*site.Page); ok {
			p.Close()
		}
		opts.Log.Debug("visitor page unmounted", slog.String("visitor", id))
	})

	return &Visitors{
		sessions: store,
		pages:    pages,
		newPage:  opts.NewPage,
		onMount:  opts.OnMount,
		maxPages: opts.MaxPages,
		log:      opts.Log,
	}, nil
}

// ErrVisitorLimit is returned by Page when MaxPages pages are mounted.
var ErrVisitorLimit = errors.New("visitor limit reached")

func (v *Visitors) session(c *gin.Context) *sessions.Session {
	sess, err := v.sessions.Get(c.Request, sessionName)
	if err != nil {
		// gorilla hands back a new session alongside decode errors
		v.log.Debug("discarding unreadable session", slog.Any("error", err))
	}
	if sess == nil {
		sess = sessions.NewSession(v.sessions, sessionName)
	}
	return sess
}

// Lookup returns the caller's mounted page, if any. A hit refreshes both the
// page's TTL and the cookie's MaxAge.
func (v *Visitors) Lookup(c *gin.Context) (*site.Page, bool, error) {
	sess := v.session(c)
	id, ok := sess.Values[visitorKey].(string)
	if !ok || id == "" {
		return nil, false, nil
	}
	p, found := v.pages.Get(id)
	if !found {
		return nil, false, nil
	}
	v.pages.SetDefault(id, p)
	if err := sess.Save(c.Request, c.Writer); err != nil {
		return nil, false, fmt.Errorf("saving session: %w", err)
	}
	return p.(*site.Page), true, nil
}

// Page returns the caller's page, mounting a fresh one (and setting the
// session cookie) when the visitor is new or their page has expired.
func (v *Visitors) Page(c *gin.Context) (*site.Page, error) {
	if p, ok, err := v.Lookup(c); err != nil || ok {
		return p, err
	}
	if v.maxPages > 0 && v.pages.ItemCount() >= v.maxPages {
		return nil, ErrVisitorLimit
	}

	id := uuid.NewString()
	page := v.newPage()
	if v.onMount != nil {
		v.onMount(page)
	}
	v.pages.SetDefault(id, page)

	sess := v.session(c)
	sess.Values[visitorKey] = id
	if err := sess.Save(c.Request, c.Writer); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	v.log.Debug("visitor page mounted", slog.String("visitor", id))
	return page, nil
}

// Preview returns an unmounted blank page for a visitor who has not acted
// yet. The caller closes it after rendering.
func (v *Visitors) Preview() *site.Page {
	return v.newPage()
}

// Count returns the number of mounted pages.
func (v *Visitors) Count() int {
	return v.pages.ItemCount()
}

// Close unmounts every page and waits for their in-flight submissions.
func (v *Visitors) Close() {
	items := v.pages.Items()
	v.pages.Flush()
	for _, it := range items {
		p, ok := it.Object.(*site.Page)
		if !ok {
			continue
		}
		p.Close()
		p.Wait()
	}
}
