// Package notebook owns the in-memory document collection and its
// synchronization with the durable key-value medium. Every mutation writes
// the whole collection through before returning; there is no batching.
package notebook

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

// Document represents a single user note.
// Timestamps are milliseconds since the Unix epoch, matching the persisted
// JSON layout.
type Document struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// DisplayTitle returns the title for list surfaces, falling back to
// "Untitled" when empty.
func (d *Document) DisplayTitle() string {
	if d.Title == "" {
		return "Untitled"
	}
	return d.Title
}

// NewID creates a new document identifier: a base36 millisecond timestamp
// followed by a random suffix. Uniqueness rests on the width of the suffix,
// not on collision checks.
func NewID() string {
	b := make([]byte, 6)
	rand.Read(b)
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + hex.EncodeToString(b)
}

// FormatDate renders a millisecond timestamp for list rows, e.g. "Jan 2, 2006".
func FormatDate(ms int64) string {
	return time.UnixMilli(ms).Format("Jan 2, 2006")
}
