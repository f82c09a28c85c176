// Package editmode tracks whether the product form describes a new record or
// an existing one, together with the draft the form currently holds.
package editmode

import (
	"sync"

	"github.com/rogerio-castellano/inventory-manager/internal/models"
)

// Controller owns EditMode and the pending fields. It never talks to the
// remote store.
type Controller struct {
	mu      sync.Mutex
	mode    models.EditMode
	pending models.Fields
}

// New returns a controller in Create mode with a default draft.
func New() *Controller {
	return &Controller{}
}

// BeginEdit targets p and copies its editable attributes into the draft.
// It can be called from any state; the latest call wins.
func (c *Controller) BeginEdit(p models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mode = models.EditMode{Active: true, TargetID: p.ID}
	c.pending = p.Editable()
}

// Reset returns to Create mode and clears the draft.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mode = models.EditMode{}
	c.pending = models.Fields{}
}

// SetPending replaces the draft without touching the mode.
func (c *Controller) SetPending(f models.Fields) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = f
}

// State returns copies of the current mode and draft.
func (c *Controller) State() (models.EditMode, models.Fields) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.mode, c.pending
}

// Targets reports whether the controller is editing the product with the given id.
func (c *Controller) Targets(id models.ProductID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.mode.Active && c.mode.TargetID == id
}
