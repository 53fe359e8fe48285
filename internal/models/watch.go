package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Watch struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title        string              `bson:"title" json:"title"`
	Brand        string              `bson:"brand" json:"brand"`
	Category     string              `bson:"category,omitempty" json:"category,omitempty"`
	Gender       string              `bson:"gender,omitempty" json:"gender,omitempty"`
	Price        float64             `bson:"price" json:"price"`
	SerialNumber string              `bson:"serialNumber,omitempty" json:"serialNumber,omitempty"`
	Condition    string              `bson:"condition,omitempty" json:"condition,omitempty"`
	ImageURL     ImageRef            `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	SellerID     *primitive.ObjectID `bson:"sellerId,omitempty" json:"sellerId,omitempty"`
	Description  string              `bson:"description,omitempty" json:"description,omitempty"`
	IsSold       bool                `bson:"isSold" json:"isSold"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
}
