package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"timevault/internal/models"
)

// OrderStore persists the transaction/order pair written at checkout.
// Split from the handler so the post-capture sequence can be exercised
// without a running database.
type OrderStore interface {
	InsertTransaction(ctx context.Context, txn models.Transaction) error
	InsertOrder(ctx context.Context, order models.Order) error
}

type mongoOrderStore struct {
	db *mongo.Database
}

func NewOrderStore(db *mongo.Database) OrderStore {
	return &mongoOrderStore{db: db}
}

func (s *mongoOrderStore) InsertTransaction(ctx context.Context, txn models.Transaction) error {
	_, err := s.db.Collection("transactions").InsertOne(ctx, txn)
	return err
}

func (s *mongoOrderStore) InsertOrder(ctx context.Context, order models.Order) error {
	_, err := s.db.Collection("orders").InsertOne(ctx, order)
	return err
}
