package notebook

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/kittclouds/notebook/internal/store"
)

// Persisted state layout: two entries in the key-value medium.
const (
	filesKey  = "notebook_files"       // JSON array of Document records
	activeKey = "notebook_active_file" // active document id, or ""
)

// Adapter wraps a KV medium with load/save of the document collection and
// the active-document id.
//
// Failure policy: a read that errors or yields malformed JSON logs a warning
// and falls back to an empty value; a write that errors logs a warning and
// leaves the in-memory state authoritative. Nothing is retried and nothing
// is surfaced to the user.
type Adapter struct {
	kv  store.KV
	log *zap.Logger
}

// NewAdapter creates a persistence adapter over kv.
func NewAdapter(kv store.KV, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{kv: kv, log: log}
}

// SaveDocuments persists the whole collection.
func (a *Adapter) SaveDocuments(docs []*Document) {
	data, err := json.Marshal(docs)
	if err != nil {
		a.log.Warn("persist: encode documents failed", zap.Error(err))
		return
	}
	if err := a.kv.SetString(filesKey, string(data)); err != nil {
		a.log.Warn("persist: save documents failed", zap.Error(err))
	}
}

// LoadDocuments returns the persisted collection, or an empty collection when
// nothing was stored or the stored value cannot be read.
func (a *Adapter) LoadDocuments() []*Document {
	data, err := a.kv.GetString(filesKey)
	if err != nil {
		a.log.Warn("persist: load documents failed", zap.Error(err))
		return nil
	}
	if data == "" {
		return nil
	}

	var docs []*Document
	if err := json.Unmarshal([]byte(data), &docs); err != nil {
		a.log.Warn("persist: stored documents are malformed", zap.Error(err))
		return nil
	}
	return docs
}

// SaveActiveID persists the active document id ("" when none is active).
func (a *Adapter) SaveActiveID(id string) {
	if err := a.kv.SetString(activeKey, id); err != nil {
		a.log.Warn("persist: save active id failed", zap.Error(err))
	}
}

// LoadActiveID returns the persisted active document id, or "".
func (a *Adapter) LoadActiveID() string {
	id, err := a.kv.GetString(activeKey)
	if err != nil {
		a.log.Warn("persist: load active id failed", zap.Error(err))
		return ""
	}
	return id
}
