package session

import "go.uber.org/zap"

// Deletion workflow: destructive actions pass through an explicit
// confirmation step. At most one document is pending deletion at a time; a
// second request while one is pending simply replaces the target.

// RequestDelete records doc as the pending deletion target and surfaces the
// confirmation prompt. An unknown id is a tolerant no-op.
func (c *Controller) RequestDelete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc := c.store.Get(id)
	if doc == nil {
		c.log.Debug("delete request for unknown document", zap.String("id", id))
		return
	}

	// Last request wins.
	c.pendingDelete = doc
	c.frontend.ShowDeletePrompt(doc)
}

// CancelDelete clears the pending target without mutating the store. A
// dismiss signal (escape, clicking outside the prompt) maps here too.
func (c *Controller) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pendingDelete = nil
	c.frontend.HideDeletePrompt()
}

// ConfirmDelete deletes the pending target. If it was the active document,
// the first remaining document becomes active; with none remaining the
// selection clears and the edit surface returns to its placeholder state.
func (c *Controller) ConfirmDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pendingDelete == nil {
		c.frontend.HideDeletePrompt()
		return
	}

	doc := c.pendingDelete
	c.pendingDelete = nil
	c.store.Delete(doc.ID)

	if doc.ID == c.activeID {
		if remaining := c.store.All(); len(remaining) > 0 {
			c.selectLocked(remaining[0].ID)
		} else {
			c.activeID = ""
			c.adapter.SaveActiveID("")
			c.frontend.ClearEditor()
			c.frontend.ShowPreview(c.renderer.Render(""))
		}
	}

	c.frontend.ShowList(c.store.All(), c.activeID)
	c.frontend.HideDeletePrompt()
}
