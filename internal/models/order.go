package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
)

// OrderItem represents a single watch entry within an order.
type OrderItem struct {
	WatchID  primitive.ObjectID `bson:"watchId" json:"watchId"`
	Title    string             `bson:"title" json:"title"`
	Brand    string             `bson:"brand,omitempty" json:"brand,omitempty"`
	Price    float64            `bson:"price" json:"price"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

// Order defines the persisted order document. Items and amount are
// immutable after creation; only status moves, strictly forward
// (Processing -> Shipped -> Delivered), and only by an admin.
type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber    string             `bson:"orderNumber" json:"orderNumber"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	Items          []OrderItem        `bson:"items" json:"items"`
	Amount         float64            `bson:"amount" json:"amount"`
	Status         string             `bson:"status" json:"status"`
	TrackingNumber string             `bson:"trackingNumber" json:"trackingNumber"`
	Courier        string             `bson:"courier" json:"courier"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// Transaction is the payment receipt written alongside an Order at
// checkout. Never mutated after insert.
type Transaction struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	OrderNumber  string             `bson:"orderNumber" json:"orderNumber"`
	Items        []OrderItem        `bson:"items" json:"items"`
	Amount       float64            `bson:"amount" json:"amount"`
	Status       string             `bson:"status" json:"status"`
	Method       string             `bson:"method" json:"method"`
	CaptureID    string             `bson:"captureId,omitempty" json:"captureId,omitempty"`
	ReconcileKey string             `bson:"reconcileKey,omitempty" json:"reconcileKey,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
