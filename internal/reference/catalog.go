// Package reference holds the environmental-impact catalog shown in the
// reference view.
package reference

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Veraticus/sortbin/internal/common"
	"github.com/Veraticus/sortbin/internal/model"
	"github.com/Veraticus/sortbin/internal/service"
)

// MsgLoadFailed is shown when the catalog cannot be fetched.
const MsgLoadFailed = "Failed to load environmental data"

// Request identifies one catalog fetch.
type Request struct {
	Seq uint64
}

// Catalog is the view-scoped copy of the reference catalog plus the
// selected card. It is safe for concurrent use.
type Catalog struct {
	err       error
	materials []model.ReferenceMaterial
	selected  model.EntryID
	seq       uint64
	mu        sync.Mutex
	loaded    bool
	loading   bool
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Materials returns the catalog in service order.
func (c *Catalog) Materials() []model.ReferenceMaterial {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]model.ReferenceMaterial, len(c.materials))
	copy(out, c.materials)
	return out
}

// Err returns the error to display, if any.
func (c *Catalog) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Loaded reports whether a fetch has succeeded.
func (c *Catalog) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Loading reports whether a fetch is outstanding.
func (c *Catalog) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Begin starts a fetch, superseding any outstanding one.
func (c *Catalog) Begin() Request {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.loading = true
	return Request{Seq: c.seq}
}

// Complete records the outcome of req and reports whether it was current.
func (c *Catalog) Complete(req Request, materials []model.ReferenceMaterial, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if req.Seq != c.seq {
		return false
	}
	c.loading = false

	if err != nil {
		c.err = common.NewUserError(MsgLoadFailed, err)
		common.LogError(err, "Reference catalog fetch failed", nil)
		return true
	}

	c.materials = materials
	c.loaded = true
	c.err = nil
	if c.selected != "" && c.indexLocked(c.selected) < 0 {
		c.selected = ""
	}
	return true
}

// Load fetches the catalog synchronously.
func (c *Catalog) Load(ctx context.Context, source service.ReferenceSource) error {
	req := c.Begin()
	materials, err := source.FetchReferenceCatalog(ctx)
	c.Complete(req, materials, err)
	if err != nil {
		return fmt.Errorf("failed to fetch reference catalog: %w", err)
	}
	return nil
}

// Toggle selects the card with id, or clears the selection when it is
// already selected. It returns the selected material, if any.
func (c *Catalog) Toggle(id model.EntryID) (model.ReferenceMaterial, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selected == id {
		c.selected = ""
		return model.ReferenceMaterial{}, false
	}
	i := c.indexLocked(id)
	if i < 0 {
		return model.ReferenceMaterial{}, false
	}
	c.selected = id
	return c.materials[i], true
}

// Selected returns the selected material, if any.
func (c *Catalog) Selected() (model.ReferenceMaterial, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selected == "" {
		return model.ReferenceMaterial{}, false
	}
	i := c.indexLocked(c.selected)
	if i < 0 {
		return model.ReferenceMaterial{}, false
	}
	return c.materials[i], true
}

// Find looks a material up by name, ignoring case.
func (c *Catalog) Find(material string) (model.ReferenceMaterial, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, m := range c.materials {
		if strings.EqualFold(m.Material, strings.TrimSpace(material)) {
			return m, true
		}
	}
	return model.ReferenceMaterial{}, false
}

func (c *Catalog) indexLocked(id model.EntryID) int {
	for i, m := range c.materials {
		if m.ID == id {
			return i
		}
	}
	return -1
}
