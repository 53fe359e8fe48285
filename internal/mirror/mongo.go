package mirror

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"timevault/internal/models"
)

// MongoCollection implements Collection on the carts collection.
// IncrementOrInsert maps to a conditional upsert ($inc + $setOnInsert),
// backed by the unique (userId, watchId) index, so concurrent adds for
// the same pair cannot duplicate entries or lose increments.
type MongoCollection struct {
	coll *mongo.Collection
}

func NewMongoCollection(db *mongo.Database) *MongoCollection {
	return &MongoCollection{coll: db.Collection("carts")}
}

func (m *MongoCollection) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.CartEntry, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "addedAt", Value: 1}})

	cursor, err := m.coll.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := make([]models.CartEntry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (m *MongoCollection) IncrementOrInsert(ctx context.Context, userID, watchID primitive.ObjectID, snap Snapshot, now time.Time) error {
	filter := bson.M{"userId": userID, "watchId": watchID}
	update := bson.M{
		"$inc": bson.M{"quantity": 1},
		"$set": bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{
			"userId":   userID,
			"watchId":  watchID,
			"title":    snap.Title,
			"brand":    snap.Brand,
			"price":    snap.Price,
			"imageUrl": snap.ImageURL,
			"addedAt":  now,
		},
	}

	_, err := m.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (m *MongoCollection) SetQuantity(ctx context.Context, entryID primitive.ObjectID, quantity int, now time.Time) error {
	_, err := m.coll.UpdateByID(ctx, entryID, bson.M{
		"$set": bson.M{"quantity": quantity, "updatedAt": now},
	})
	return err
}

func (m *MongoCollection) DeleteByID(ctx context.Context, entryID primitive.ObjectID) error {
	_, err := m.coll.DeleteOne(ctx, bson.M{"_id": entryID})
	return err
}

func (m *MongoCollection) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := m.coll.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
