// Package session bridges user-driven edit events to document store
// mutations. It owns the active-document selection, applies the debouncing
// policy to keystroke streams, and drives the frontend's list, editor, and
// preview surfaces after every mutation or selection change.
package session

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kittclouds/notebook/pkg/notebook"
)

// Frontend is the abstract widget surface the controller drives. Frontends
// (browser DOM, terminal UI) implement this; the controller never touches
// widgets directly.
//
// The controller holds its internal lock while driving these surfaces, so
// implementations must return promptly and must not call back into the
// controller. A frontend that forwards into an event loop has to guarantee
// that loop stays free to drain while controller methods run.
type Frontend interface {
	// ShowDocument loads a document's title and content into the edit surface.
	ShowDocument(doc *notebook.Document)
	// ShowPreview replaces the rendered preview.
	ShowPreview(rendered string)
	// ShowList re-renders the document list, highlighting activeID.
	ShowList(docs []*notebook.Document, activeID string)
	// ClearEditor empties the edit surface back to its placeholder state.
	ClearEditor()
	// ShowDeletePrompt surfaces the delete confirmation for doc.
	ShowDeletePrompt(doc *notebook.Document)
	// HideDeletePrompt dismisses the delete confirmation.
	HideDeletePrompt()
}

// Renderer is the capability boundary to the markdown conversion pipeline.
type Renderer interface {
	Render(markdown string) string
}

// Config holds the debounce quiet periods.
type Config struct {
	TitleDelay   time.Duration
	ContentDelay time.Duration
	SearchDelay  time.Duration
}

// DefaultConfig returns the production quiet periods.
func DefaultConfig() Config {
	return Config{
		TitleDelay:   300 * time.Millisecond,
		ContentDelay: 150 * time.Millisecond,
		SearchDelay:  200 * time.Millisecond,
	}
}

// Controller mediates all user-driven mutation requests.
type Controller struct {
	mu       sync.Mutex
	store    *notebook.Store
	adapter  *notebook.Adapter
	renderer Renderer
	frontend Frontend
	log      *zap.Logger

	activeID      string
	pendingDelete *notebook.Document

	titleDeb   *Debouncer
	contentDeb *Debouncer
	searchDeb  *Debouncer
}

// NewController creates a controller. The adapter is the same one backing the
// store; the controller uses it to persist the active-document id.
func NewController(store *notebook.Store, adapter *notebook.Adapter, renderer Renderer, frontend Frontend, cfg Config, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	def := DefaultConfig()
	if cfg.TitleDelay == 0 {
		cfg.TitleDelay = def.TitleDelay
	}
	if cfg.ContentDelay == 0 {
		cfg.ContentDelay = def.ContentDelay
	}
	if cfg.SearchDelay == 0 {
		cfg.SearchDelay = def.SearchDelay
	}

	return &Controller{
		store:      store,
		adapter:    adapter,
		renderer:   renderer,
		frontend:   frontend,
		log:        log,
		titleDeb:   NewDebouncer(cfg.TitleDelay),
		contentDeb: NewDebouncer(cfg.ContentDelay),
		searchDeb:  NewDebouncer(cfg.SearchDelay),
	}
}

// Start loads or seeds the initial collection and selects the starting
// document.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id := c.store.Bootstrap(); id != "" {
		c.selectLocked(id)
		return
	}
	c.frontend.ShowList(c.store.All(), "")
}

// Select makes the document with the given id active, persists the
// selection, and refreshes the edit surface, preview, and list. An unknown
// id is a tolerant no-op.
func (c *Controller) Select(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectLocked(id)
}

func (c *Controller) selectLocked(id string) {
	doc := c.store.Get(id)
	if doc == nil {
		c.log.Debug("select: unknown document", zap.String("id", id))
		return
	}

	c.activeID = id
	c.adapter.SaveActiveID(id)
	c.frontend.ShowDocument(doc)
	c.frontend.ShowPreview(c.renderer.Render(doc.Content))
	c.frontend.ShowList(c.store.All(), c.activeID)
}

// CreateDocument creates a fresh untitled document and selects it.
func (c *Controller) CreateDocument() *notebook.Document {
	doc := c.store.Create("", "")

	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectLocked(doc.ID)
	return doc
}

// ActiveID returns the currently active document id, or "".
func (c *Controller) ActiveID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeID
}

// TitleChanged handles a title keystroke. The store write is debounced; only
// the most recent value within the quiet window is committed. Without an
// active document the commit is a no-op.
func (c *Controller) TitleChanged(text string) {
	c.titleDeb.Trigger(func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if c.activeID == "" {
			c.log.Debug("title edit with no active document")
			return
		}
		c.store.Update(c.activeID, notebook.Patch{Title: &text})
		c.frontend.ShowList(c.store.All(), c.activeID)
	})
}

// ContentChanged handles a content keystroke. The preview refreshes
// immediately with the latest value; the store write is debounced. The
// visible preview never lags behind typing even though the durable write
// does.
func (c *Controller) ContentChanged(text string) {
	c.mu.Lock()
	c.frontend.ShowPreview(c.renderer.Render(text))
	c.mu.Unlock()

	c.contentDeb.Trigger(func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if c.activeID == "" {
			c.log.Debug("content edit with no active document")
			return
		}
		c.store.Update(c.activeID, notebook.Patch{Content: &text})
	})
}

// SearchChanged handles a search keystroke. Debounced; an empty or
// whitespace-only query re-renders the full collection.
func (c *Controller) SearchChanged(query string) {
	c.searchDeb.Trigger(func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		q := strings.TrimSpace(query)
		if q == "" {
			c.frontend.ShowList(c.store.All(), c.activeID)
			return
		}
		c.frontend.ShowList(c.store.Search(q), c.activeID)
	})
}

// Close stops all pending debounce timers. In-flight commits are not
// interrupted.
func (c *Controller) Close() {
	c.titleDeb.Stop()
	c.contentDeb.Stop()
	c.searchDeb.Stop()
}
