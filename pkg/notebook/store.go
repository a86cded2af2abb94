package notebook

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Store holds the document collection in presentation order: most recently
// created first; updates do not reorder. Every mutation persists the whole
// collection through the Adapter before returning.
//
// Thread-safe; debounce timers commit from their own goroutines.
type Store struct {
	mu      sync.RWMutex
	adapter *Adapter
	docs    []*Document
	log     *zap.Logger
}

// Patch carries partial document fields for Update. Nil fields are left
// untouched.
type Patch struct {
	Title   *string
	Content *string
}

// NewStore creates a store hydrated from the adapter's persisted collection.
func NewStore(adapter *Adapter, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		adapter: adapter,
		docs:    adapter.LoadDocuments(),
		log:     log,
	}
}

// Create allocates a new document at the front of the collection and
// persists. An empty title defaults to "Untitled".
func (s *Store) Create(title, content string) *Document {
	if title == "" {
		title = "Untitled"
	}
	now := time.Now().UnixMilli()
	doc := &Document{
		ID:        NewID(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append([]*Document{doc}, s.docs...)
	s.adapter.SaveDocuments(s.docs)

	return doc
}

// Get returns the document with the given id, or nil.
func (s *Store) Get(id string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.find(id)
}

// Update merges patch into the document with the given id, refreshes
// UpdatedAt, and persists. An unknown id is a tolerant no-op: edits can race
// a deletion and losing that write is the intended outcome.
func (s *Store) Update(id string, patch Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.find(id)
	if doc == nil {
		s.log.Debug("update: unknown document", zap.String("id", id))
		return
	}

	if patch.Title != nil {
		doc.Title = *patch.Title
	}
	if patch.Content != nil {
		doc.Content = *patch.Content
	}
	doc.UpdatedAt = time.Now().UnixMilli()

	s.adapter.SaveDocuments(s.docs)
}

// Delete removes the document with the given id if present and persists
// regardless, making the operation idempotent.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.docs[:0]
	for _, doc := range s.docs {
		if doc.ID != id {
			kept = append(kept, doc)
		}
	}
	s.docs = kept

	s.adapter.SaveDocuments(s.docs)
}

// Search returns documents whose title or content contains query,
// case-insensitively, in collection order. Callers route empty queries to
// All instead.
func (s *Store) Search(query string) []*Document {
	q := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []*Document
	for _, doc := range s.docs {
		if strings.Contains(strings.ToLower(doc.Title), q) ||
			strings.Contains(strings.ToLower(doc.Content), q) {
			matches = append(matches, doc)
		}
	}
	return matches
}

// All returns the collection in presentation order.
func (s *Store) All() []*Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// Len returns the number of documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func (s *Store) find(id string) *Document {
	for _, doc := range s.docs {
		if doc.ID == id {
			return doc
		}
	}
	return nil
}
