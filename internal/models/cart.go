package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartEntry is the server-persisted cart mirror: one document per
// (userId, watchId) pair, enforced by a unique index. Display fields are
// snapshotted from the watch at add time and never re-fetched.
type CartEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	WatchID   primitive.ObjectID `bson:"watchId" json:"watchId"`
	Title     string             `bson:"title" json:"title"`
	Brand     string             `bson:"brand" json:"brand"`
	Price     float64            `bson:"price" json:"price"`
	ImageURL  string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	AddedAt   time.Time          `bson:"addedAt" json:"addedAt"`
	UpdatedAt time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
