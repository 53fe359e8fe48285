package cart

import (
	"context"
	"log"
)

// Item is a single product-quantity pairing in a session cart. The
// display fields are snapshotted from the watch at add time; the price
// is never re-fetched afterwards.
type Item struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Brand        string  `json:"brand"`
	Price        float64 `json:"price"`
	ImageURL     string  `json:"imageUrl,omitempty"`
	Condition    string  `json:"condition,omitempty"`
	SerialNumber string  `json:"serialNumber,omitempty"`
	Quantity     int     `json:"quantity"`
}

// Session holds the cart for one UI session. It is the source of truth
// while the session is active; the server mirror (internal/mirror) is
// the source of truth across sessions. The two are eventually
// consistent, not transactionally linked: a failed store write leaves
// the in-memory state as mutated, which matches the behavior the client
// application always had. Session is not safe for concurrent use.
type Session struct {
	key   string
	items []Item
	store Store
}

// Open rehydrates a session cart from the store. A missing, corrupt or
// unparseable payload is logged and treated as an empty cart.
func Open(ctx context.Context, store Store, key string) *Session {
	s := &Session{key: key, store: store}

	items, err := store.Load(ctx, key)
	if err != nil {
		log.Printf("[CART] [WARN] rehydrate failed for %s, starting empty: %v", key, err)
		return s
	}
	s.items = items
	return s
}

// AddItem increments the quantity of an existing item with the same ID,
// or appends the product with quantity 1.
func (s *Session) AddItem(ctx context.Context, product Item) {
	for i := range s.items {
		if s.items[i].ID == product.ID {
			s.items[i].Quantity++
			s.persist(ctx)
			return
		}
	}

	product.Quantity = 1
	s.items = append(s.items, product)
	s.persist(ctx)
}

// RemoveItem drops every item matching id.
func (s *Session) RemoveItem(ctx context.Context, id string) {
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.persist(ctx)
}

// UpdateQuantity sets the item's quantity to max(0, quantity). An update
// to zero removes the item; the cart never holds a zero-quantity entry.
func (s *Session) UpdateQuantity(ctx context.Context, id string, quantity int) {
	if quantity < 0 {
		quantity = 0
	}

	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID == id {
			if quantity == 0 {
				continue
			}
			item.Quantity = quantity
		}
		kept = append(kept, item)
	}
	s.items = kept
	s.persist(ctx)
}

// Clear empties the cart.
func (s *Session) Clear(ctx context.Context) {
	s.items = nil
	s.persist(ctx)
}

// Items returns a copy of the current item list.
func (s *Session) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Session) TotalItems() int {
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

func (s *Session) TotalPrice() float64 {
	total := 0.0
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

func (s *Session) Contains(id string) bool {
	return s.Quantity(id) > 0
}

func (s *Session) Quantity(id string) int {
	for _, item := range s.items {
		if item.ID == id {
			return item.Quantity
		}
	}
	return 0
}

// persist writes the full item list after every state change. Failures
// are logged and do not roll back the in-memory mutation.
func (s *Session) persist(ctx context.Context) {
	if err := s.store.Save(ctx, s.key, s.items); err != nil {
		log.Printf("[CART] [ERROR] persist failed for %s: %v", s.key, err)
	}
}
