package modifier

import (
	"fmt"

	"github.com/google/uuid"
)

// Catalog is a caller-owned, ordered collection of templates that persists
// across simulation runs. Runs receive deep copies via Templates.
// It is not safe for concurrent use; the caller must serialise access.
type Catalog struct {
	entries []Template
}

// NewCatalog creates an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Add normalizes and validates t, assigns a random id when t.ID is empty, and
// appends it to the catalog.
//
// Postcondition: On error the catalog is unchanged; on success the stored
// template is returned.
func (c *Catalog) Add(t Template) (Template, error) {
	n := t.Normalize()
	if err := n.Validate(); err != nil {
		return Template{}, fmt.Errorf("invalid modifier: %w", err)
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if _, exists := c.Get(n.ID); exists {
		return Template{}, fmt.Errorf("modifier %q already in catalog", n.ID)
	}
	c.entries = append(c.entries, n)
	return n.Clone(), nil
}

// Remove deletes the template with id. It reports whether anything was removed.
func (c *Catalog) Remove(id string) bool {
	for i, t := range c.entries {
		if t.ID == id {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns a copy of the template with id, or (Template{}, false) if absent.
func (c *Catalog) Get(id string) (Template, bool) {
	for _, t := range c.entries {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return Template{}, false
}

// Templates returns deep copies of all templates in insertion order.
func (c *Catalog) Templates() []Template {
	out := make([]Template, len(c.entries))
	for i, t := range c.entries {
		out[i] = t.Clone()
	}
	return out
}

// Len returns the number of templates in the catalog.
func (c *Catalog) Len() int { return len(c.entries) }
