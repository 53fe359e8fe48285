// Package mirror keeps the durable per-user cart documents in sync with
// add-to-cart actions. It is the cross-session source of truth for a
// user's cart; the session cart (internal/cart) is a separate code path
// and the two are eventually consistent, not transactionally linked.
package mirror

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"timevault/internal/models"
)

// Snapshot carries the display fields copied onto a cart entry when it
// is first inserted. Prices are frozen at add time.
type Snapshot struct {
	Title    string
	Brand    string
	Price    float64
	ImageURL string
}

// Collection is the subset of document-store operations the mirror
// needs: per-user listing, partial update, delete, and an atomic
// increment-or-insert.
type Collection interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.CartEntry, error)

	// IncrementOrInsert exists because the naive contract (query for
	// the (userId, watchId) pair, then either update quantity+1 or
	// insert fresh) is a read-then-write race: two concurrent adds from
	// different tabs can both miss and insert duplicates, or both read
	// quantity n and write n+1. Implementations on stores with a
	// conditional-upsert primitive close that race; implementations
	// without one inherit it.
	IncrementOrInsert(ctx context.Context, userID, watchID primitive.ObjectID, snap Snapshot, now time.Time) error

	SetQuantity(ctx context.Context, entryID primitive.ObjectID, quantity int, now time.Time) error
	DeleteByID(ctx context.Context, entryID primitive.ObjectID) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

// Service exposes the cart-mirror operations consumed by the handlers.
type Service struct {
	entries Collection
}

func NewService(entries Collection) *Service {
	return &Service{entries: entries}
}

// Add applies find-or-increment semantics for (userID, watchID): an
// existing entry gains quantity 1, otherwise a fresh entry with
// quantity 1 and the snapshotted display fields is created. At most one
// entry per pair ever exists.
func (s *Service) Add(ctx context.Context, userID, watchID primitive.ObjectID, snap Snapshot) error {
	return s.entries.IncrementOrInsert(ctx, userID, watchID, snap, time.Now())
}

// Entries lists the user's cart documents.
func (s *Service) Entries(ctx context.Context, userID primitive.ObjectID) ([]models.CartEntry, error) {
	return s.entries.FindByUser(ctx, userID)
}

// SetQuantity updates an entry's quantity. Zero or negative removes the
// entry; a cart document never persists with quantity below 1.
func (s *Service) SetQuantity(ctx context.Context, entryID primitive.ObjectID, quantity int) error {
	if quantity <= 0 {
		return s.entries.DeleteByID(ctx, entryID)
	}
	return s.entries.SetQuantity(ctx, entryID, quantity, time.Now())
}

// Remove deletes one entry.
func (s *Service) Remove(ctx context.Context, entryID primitive.ObjectID) error {
	return s.entries.DeleteByID(ctx, entryID)
}

// Clear deletes every entry of the user and reports how many went.
func (s *Service) Clear(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.entries.DeleteByUser(ctx, userID)
}

// Total computes the checkout amount from the given entries.
func Total(entries []models.CartEntry) float64 {
	total := 0.0
	for _, entry := range entries {
		total += entry.Price * float64(entry.Quantity)
	}
	return total
}

// Merge folds a session cart into the user's durable cart, one
// increment-or-insert per unit. Server-authoritative: existing mirror
// quantities are added to, never overwritten.
func (s *Service) Merge(ctx context.Context, userID primitive.ObjectID, items []MergeItem) error {
	now := time.Now()
	for _, item := range items {
		for i := 0; i < item.Quantity; i++ {
			if err := s.entries.IncrementOrInsert(ctx, userID, item.WatchID, item.Snapshot, now); err != nil {
				return err
			}
		}
	}
	return nil
}

type MergeItem struct {
	WatchID  primitive.ObjectID
	Quantity int
	Snapshot Snapshot
}
