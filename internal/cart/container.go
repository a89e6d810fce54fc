package cart

import (
	"encoding/json"
	"sync"

	"frylyle/internal/storage"
)

// Options tunes container construction.
type Options struct {
	// Seed is adopted when no valid persisted cart exists. The original
	// client seeded demo items here; production leaves it empty.
	Seed []LineItem
}

// Container is the per-device cart. Handlers on different goroutines
// share it, so mutations are mutex-guarded; every mutation is mirrored
// through the bridge fire-and-forget.
type Container struct {
	mu     sync.Mutex
	items  []LineItem
	bridge *storage.Bridge
}

// New restores the cart from the bridge. A stored value that parses is
// adopted verbatim, with no repair pass; anything else falls back to
// opts.Seed.
func New(bridge *storage.Bridge, opts Options) *Container {
	c := &Container{bridge: bridge}
	if raw, ok := bridge.Read(storage.KeyCart); ok {
		var items []LineItem
		if err := json.Unmarshal([]byte(raw), &items); err == nil {
			c.items = items
			return c
		}
	}
	c.items = append([]LineItem(nil), opts.Seed...)
	return c
}

// Add merges item into the cart: an existing id gets quantity+1, a new id
// is appended with quantity 1. Always succeeds.
func (c *Container) Add(item LineItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = merged(c.items, item)
	c.persist()
}

// Remove deletes the entry with that id; no-op when absent.
func (c *Container) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = without(c.items, id)
	c.persist()
}

// SetQuantity replaces an item's quantity. Zero or less removes the item.
// No-op when the id is absent.
func (c *Container) SetQuantity(id string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = withQuantity(c.items, id, quantity)
	c.persist()
}

// Clear empties the cart and persists the empty list.
func (c *Container) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = []LineItem{}
	c.persist()
}

// Items returns a copy of the line items in insertion order.
func (c *Container) Items() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]LineItem(nil), c.items...)
}

// Total is recomputed on every call, never cached.
func (c *Container) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return sum(c.items)
}

// persist is called with the lock held.
func (c *Container) persist() {
	b, err := json.Marshal(c.items)
	if err != nil {
		return
	}
	c.bridge.Write(storage.KeyCart, string(b))
}
