// Package cart owns the line items a customer intends to order. State
// transitions are pure functions over an item list; the Container applies
// them and mirrors the result through the key-value bridge.
package cart

// LineItem is one purchasable entry, keyed by ID. The JSON tags are the
// persisted wire form under the "cart" key.
type LineItem struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	Image      string  `json:"image,omitempty"`
	Restaurant string  `json:"restaurant"`
}

// merged returns items with item added: an existing id gets quantity+1
// (the input's own quantity is ignored), a new id is appended with
// quantity 1. Insertion order is preserved.
func merged(items []LineItem, item LineItem) []LineItem {
	for i := range items {
		if items[i].ID == item.ID {
			out := append([]LineItem(nil), items...)
			out[i].Quantity++
			return out
		}
	}
	item.Quantity = 1
	return append(append([]LineItem(nil), items...), item)
}

// without returns items with the given id removed. Absent ids are a no-op.
func without(items []LineItem, id string) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

// withQuantity replaces the quantity of the given id. Zero or negative
// quantities remove the item; absent ids are a no-op.
func withQuantity(items []LineItem, id string, quantity int) []LineItem {
	if quantity <= 0 {
		return without(items, id)
	}
	out := append([]LineItem(nil), items...)
	for i := range out {
		if out[i].ID == id {
			out[i].Quantity = quantity
			break
		}
	}
	return out
}

// sum is price*quantity over all items.
func sum(items []LineItem) float64 {
	var t float64
	for _, it := range items {
		t += it.Price * float64(it.Quantity)
	}
	return t
}
