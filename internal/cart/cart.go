package cart

import (
	"encoding/base64"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is one cart line. Items are keyed by (product, color, size) so
// two variants of the same product stay separate lines while adding
// the same variant twice only bumps the quantity.
type Item struct {
	Key       string
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Name      string
	Price     decimal.Decimal
	Image     string
	Color     string
	Size      string
	Quantity  int
}

// itemKey derives the line key from the (product, color, size) triple.
// The key travels as a URL path parameter, and color values are often
// hex codes like "#000000", so the triple is base64url-encoded to keep
// the route surface free of characters that need escaping.
func itemKey(productID uuid.UUID, color, size string) string {
	triple := strings.Join([]string{productID.String(), color, size}, "|")
	return base64.RawURLEncoding.EncodeToString([]byte(triple))
}

// Cart holds one session's line items. It is never persisted; the
// session ending discards it.
type Cart struct {
	mu    sync.Mutex
	items []Item
}

func New() *Cart { return &Cart{} }

// AddItem inserts the item with quantity one, or increments the
// quantity when the same (product, color, size) is already present.
func (c *Cart) AddItem(item Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := itemKey(item.ProductID, item.Color, item.Size)
	for i := range c.items {
		if c.items[i].Key == key {
			c.items[i].Quantity++
			return
		}
	}
	item.Key = key
	item.Quantity = 1
	c.items = append(c.items, item)
}

// RemoveItem deletes the line with the given key; no-op when absent.
func (c *Cart) RemoveItem(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(key)
}

// UpdateQuantity overwrites the quantity for key. A quantity of zero
// or less removes the line.
func (c *Cart) UpdateQuantity(key string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.remove(key)
		return
	}
	for i := range c.items {
		if c.items[i].Key == key {
			c.items[i].Quantity = quantity
			return
		}
	}
}

func (c *Cart) remove(key string) {
	for i := range c.items {
		if c.items[i].Key == key {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// TotalCount is the sum of line quantities, recomputed on every call.
func (c *Cart) TotalCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, it := range c.items {
		total += it.Quantity
	}
	return total
}

// TotalPrice is the sum of unit price times quantity, recomputed on
// every call.
func (c *Cart) TotalPrice() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
