package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureWatchIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("watches").Indexes()

	serialIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "serialNumber", Value: 1}},
		Options: options.Index().
			SetName("serialNumber_unique").
			SetUnique(true).
			SetPartialFilterExpression(bson.M{
				"serialNumber": bson.M{
					"$exists": true,
				},
			}),
	}

	log.Println("EnsureWatchIndexes: creating serialNumber_unique index")
	_, err := indexes.CreateOne(ctx, serialIndex)
	if err != nil {
		log.Println("EnsureWatchIndexes: serialNumber index error:", err)
		return err
	}
	return nil
}

// EnsureCartIndexes backs the find-or-increment contract: at most one cart
// document per (userId, watchId) pair. The unique index turns the
// query-before-insert convention into a hard guarantee.
func EnsureCartIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("carts").Indexes()

	userWatchIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "watchId", Value: 1},
		},
		Options: options.Index().
			SetName("userId_watchId_unique").
			SetUnique(true),
	}

	log.Println("EnsureCartIndexes: creating userId_watchId_unique index")
	_, err := indexes.CreateOne(ctx, userWatchIndex)
	if err != nil {
		log.Println("EnsureCartIndexes: userId_watchId index error:", err)
		return err
	}
	return nil
}

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetName("userId_index"),
		},
		{
			Keys:    bson.D{{Key: "orderNumber", Value: 1}},
			Options: options.Index().SetName("orderNumber_unique").SetUnique(true),
		},
	}

	log.Println("EnsureOrderIndexes: creating order indexes")
	_, err := indexes.CreateMany(ctx, models)
	if err != nil {
		log.Println("EnsureOrderIndexes: order index error:", err)
		return err
	}
	return nil
}

func EnsureSerialIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("serial_registry").Indexes()

	serialIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "serialNumber", Value: 1}},
		Options: options.Index().
			SetName("serialNumber_unique").
			SetUnique(true),
	}

	log.Println("EnsureSerialIndexes: creating serialNumber_unique index")
	_, err := indexes.CreateOne(ctx, serialIndex)
	if err != nil {
		log.Println("EnsureSerialIndexes: serialNumber index error:", err)
		return err
	}
	return nil
}

func EnsureWishlistIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("wishlist").Indexes()

	userWatchIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "watchId", Value: 1},
		},
		Options: options.Index().
			SetName("userId_watchId_unique").
			SetUnique(true),
	}

	log.Println("EnsureWishlistIndexes: creating userId_watchId_unique index")
	_, err := indexes.CreateOne(ctx, userWatchIndex)
	if err != nil {
		log.Println("EnsureWishlistIndexes: userId_watchId index error:", err)
		return err
	}
	return nil
}

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureUserIndexes: creating email_unique index")
	_, err := indexes.CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureUserIndexes: email index error:", err)
		return err
	}
	return nil
}
