package session

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/notebook/internal/store"
	"github.com/kittclouds/notebook/pkg/notebook"
)

const testPlaceholder = "<placeholder>"

// fakeRenderer tags its input so tests can tell rendered output apart from
// raw markdown.
type fakeRenderer struct{}

func (fakeRenderer) Render(markdown string) string {
	if strings.TrimSpace(markdown) == "" {
		return testPlaceholder
	}
	return "rendered:" + markdown
}

// fakeFrontend records every surface the controller drives. Callbacks arrive
// from debounce timer goroutines, so it locks.
type fakeFrontend struct {
	mu        sync.Mutex
	shown     []*notebook.Document
	previews  []string
	lists     [][]*notebook.Document
	listIDs   []string
	cleared   int
	prompted  []*notebook.Document
	dismissed int
}

func (f *fakeFrontend) ShowDocument(doc *notebook.Document) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shown = append(f.shown, doc)
}

func (f *fakeFrontend) ShowPreview(rendered string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.previews = append(f.previews, rendered)
}

func (f *fakeFrontend) ShowList(docs []*notebook.Document, activeID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, docs)
	f.listIDs = append(f.listIDs, activeID)
}

func (f *fakeFrontend) ClearEditor() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared++
}

func (f *fakeFrontend) ShowDeletePrompt(doc *notebook.Document) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompted = append(f.prompted, doc)
}

func (f *fakeFrontend) HideDeletePrompt() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dismissed++
}

func (f *fakeFrontend) lastPreview() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.previews) == 0 {
		return ""
	}
	return f.previews[len(f.previews)-1]
}

func (f *fakeFrontend) lastList() []*notebook.Document {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.lists) == 0 {
		return nil
	}
	return f.lists[len(f.lists)-1]
}

func (f *fakeFrontend) previewCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.previews)
}

// countingKV counts writes per key on top of an in-memory medium.
type countingKV struct {
	mem   *store.MemKV
	mu    sync.Mutex
	saves map[string]int
}

func newCountingKV() *countingKV {
	return &countingKV{mem: store.NewMemKV(), saves: make(map[string]int)}
}

func (c *countingKV) GetString(key string) (string, error) {
	return c.mem.GetString(key)
}

func (c *countingKV) SetString(key, value string) error {
	c.mu.Lock()
	c.saves[key]++
	c.mu.Unlock()
	return c.mem.SetString(key, value)
}

func (c *countingKV) writes(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saves[key]
}

// quiet window short enough to keep tests fast, long enough to coalesce a
// burst of simulated keystrokes.
func testConfig() Config {
	return Config{
		TitleDelay:   30 * time.Millisecond,
		ContentDelay: 30 * time.Millisecond,
		SearchDelay:  30 * time.Millisecond,
	}
}

func settle() { time.Sleep(120 * time.Millisecond) }

func newTestController(t *testing.T) (*Controller, *notebook.Store, *fakeFrontend, *countingKV) {
	t.Helper()
	kv := newCountingKV()
	adapter := notebook.NewAdapter(kv, nil)
	st := notebook.NewStore(adapter, nil)
	fe := &fakeFrontend{}
	c := NewController(st, adapter, fakeRenderer{}, fe, testConfig(), nil)
	t.Cleanup(c.Close)
	return c, st, fe, kv
}

func TestSelect_LoadsDocumentAndPersistsActiveID(t *testing.T) {
	c, st, fe, kv := newTestController(t)
	st.Create("older", "alpha")
	doc := st.Create("newer", "beta")

	c.Select(doc.ID)

	require.Len(t, fe.shown, 1)
	assert.Equal(t, doc.ID, fe.shown[0].ID)
	assert.Equal(t, "rendered:beta", fe.lastPreview())
	assert.Equal(t, doc.ID, fe.listIDs[len(fe.listIDs)-1])

	saved, err := kv.GetString("notebook_active_file")
	require.NoError(t, err)
	assert.Equal(t, doc.ID, saved)
	assert.Equal(t, doc.ID, c.ActiveID())
}

func TestSelect_UnknownIDIsNoOp(t *testing.T) {
	c, st, fe, _ := newTestController(t)
	doc := st.Create("only", "")
	c.Select(doc.ID)

	shownBefore := len(fe.shown)
	c.Select("vanished")

	assert.Equal(t, doc.ID, c.ActiveID(), "active selection must not change")
	assert.Len(t, fe.shown, shownBefore)
}

func TestEditBeforeSelection_CommitsNothing(t *testing.T) {
	c, st, fe, kv := newTestController(t)
	st.Create("doc", "original")
	baseline := kv.writes("notebook_files")

	c.ContentChanged("typed into the void")
	settle()

	assert.Equal(t, baseline, kv.writes("notebook_files"))
	assert.Equal(t, "original", st.All()[0].Content)
	// The preview still follows the keystroke.
	assert.Equal(t, "rendered:typed into the void", fe.lastPreview())
}

func TestContentChanged_DebouncesWriteButNotPreview(t *testing.T) {
	c, st, fe, kv := newTestController(t)
	doc := st.Create("doc", "")
	c.Select(doc.ID)
	baseline := kv.writes("notebook_files")
	previewsBefore := fe.previewCount()

	for _, keystroke := range []string{"H", "He", "Hel"} {
		c.ContentChanged(keystroke)
		time.Sleep(5 * time.Millisecond)
	}
	settle()

	assert.Equal(t, baseline+1, kv.writes("notebook_files"), "exactly one persisted update")
	assert.Equal(t, "Hel", st.Get(doc.ID).Content)
	// One immediate preview per keystroke.
	assert.Equal(t, previewsBefore+3, fe.previewCount())
	assert.Equal(t, "rendered:Hel", fe.lastPreview())
}

func TestTitleChanged_DebouncedAndRefreshesList(t *testing.T) {
	c, st, _, kv := newTestController(t)
	doc := st.Create("draft", "")
	c.Select(doc.ID)
	baseline := kv.writes("notebook_files")

	c.TitleChanged("P")
	c.TitleChanged("Pl")
	c.TitleChanged("Plan")
	settle()

	assert.Equal(t, baseline+1, kv.writes("notebook_files"))
	assert.Equal(t, "Plan", st.Get(doc.ID).Title)
}

func TestSearchChanged_FiltersAndRestores(t *testing.T) {
	c, st, fe, _ := newTestController(t)
	st.Create("Plan", "buy milk")
	st.Create("Notes", "PLAN ahead")

	c.SearchChanged("plan")
	settle()

	matches := fe.lastList()
	require.Len(t, matches, 2)

	c.SearchChanged("milk")
	settle()
	matches = fe.lastList()
	require.Len(t, matches, 1)
	assert.Equal(t, "Plan", matches[0].Title)

	// Whitespace-only query restores the full collection.
	c.SearchChanged("   ")
	settle()
	assert.Len(t, fe.lastList(), 2)
}

func TestDeleteWorkflow_LastRequestWins(t *testing.T) {
	c, st, fe, _ := newTestController(t)
	a := st.Create("A", "")
	b := st.Create("B", "")

	c.RequestDelete(a.ID)
	c.RequestDelete(b.ID)
	c.ConfirmDelete()

	assert.Nil(t, st.Get(b.ID), "B should be deleted")
	assert.NotNil(t, st.Get(a.ID), "A must survive")
	require.Len(t, fe.prompted, 2)
	assert.GreaterOrEqual(t, fe.dismissed, 1)
}

func TestCancelDelete_LeavesStoreIntact(t *testing.T) {
	c, st, fe, _ := newTestController(t)
	doc := st.Create("keep me", "")

	c.RequestDelete(doc.ID)
	c.CancelDelete()

	assert.NotNil(t, st.Get(doc.ID))
	assert.Equal(t, 1, fe.dismissed)

	// Confirm after cancel must not delete anything.
	c.ConfirmDelete()
	assert.NotNil(t, st.Get(doc.ID))
}

func TestConfirmDelete_ReassignsActiveToFirstRemaining(t *testing.T) {
	c, st, _, kv := newTestController(t)
	st.Create("oldest", "")
	middle := st.Create("middle", "")
	newest := st.Create("newest", "")

	c.Select(newest.ID)
	c.RequestDelete(newest.ID)
	c.ConfirmDelete()

	// First remaining in collection order becomes active.
	assert.Equal(t, middle.ID, c.ActiveID())
	saved, _ := kv.GetString("notebook_active_file")
	assert.Equal(t, middle.ID, saved)
}

func TestConfirmDelete_LastDocumentClearsEditor(t *testing.T) {
	c, st, fe, kv := newTestController(t)
	doc := st.Create("only", "text")
	c.Select(doc.ID)

	c.RequestDelete(doc.ID)
	c.ConfirmDelete()

	assert.Equal(t, "", c.ActiveID())
	assert.Equal(t, 1, fe.cleared)
	assert.Equal(t, testPlaceholder, fe.lastPreview())

	saved, _ := kv.GetString("notebook_active_file")
	assert.Equal(t, "", saved)
}

func TestConfirmDelete_NonActiveKeepsSelection(t *testing.T) {
	c, st, _, _ := newTestController(t)
	victim := st.Create("victim", "")
	active := st.Create("active", "")
	c.Select(active.ID)

	c.RequestDelete(victim.ID)
	c.ConfirmDelete()

	assert.Equal(t, active.ID, c.ActiveID())
	assert.Nil(t, st.Get(victim.ID))
}

func TestStart_SeedsAndSelectsWelcome(t *testing.T) {
	c, st, fe, _ := newTestController(t)

	c.Start()

	require.Equal(t, 1, st.Len())
	assert.Equal(t, st.All()[0].ID, c.ActiveID())
	require.Len(t, fe.shown, 1)
	assert.Equal(t, "Welcome to The Notebook", fe.shown[0].Title)
}

func TestCreateDocument_SelectsNewDocument(t *testing.T) {
	c, st, fe, _ := newTestController(t)

	doc := c.CreateDocument()

	assert.Equal(t, "Untitled", doc.Title)
	assert.Equal(t, doc.ID, c.ActiveID())
	require.NotEmpty(t, fe.shown)
	assert.Equal(t, doc.ID, fe.shown[len(fe.shown)-1].ID)
	assert.Equal(t, 1, st.Len())
}
