package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WishlistItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   primitive.ObjectID `bson:"userId" json:"userId"`
	WatchID  primitive.ObjectID `bson:"watchId" json:"watchId"`
	Title    string             `bson:"title" json:"title"`
	Brand    string             `bson:"brand,omitempty" json:"brand,omitempty"`
	Price    float64            `bson:"price" json:"price"`
	ImageURL string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	AddedAt  time.Time          `bson:"addedAt" json:"addedAt"`
}
