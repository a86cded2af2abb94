// Package store provides the durable string-keyed persistence medium for the
// notebook. The notebook only ever persists two entries (the document
// collection and the active-document id), so the medium is a flat key-value
// contract rather than a schema per record type.
package store

// KV is the interface for a durable string-keyed store.
//
// GetString returns the empty string (and no error) for a key that was never
// written; callers treat "missing" and "empty" the same way.
type KV interface {
	GetString(key string) (string, error)
	SetString(key, value string) error
}
