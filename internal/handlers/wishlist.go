package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"timevault/internal/models"
)

type wishlistRequest struct {
	WatchID string `json:"watchId" binding:"required"`
}

// GET /user/wishlist
func GetWishlist(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /user/wishlist"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		findOptions := options.Find().SetSort(bson.D{{Key: "addedAt", Value: -1}})

		cursor, err := db.Collection("wishlist").Find(ctx, bson.M{"userId": userID}, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		items := make([]models.WishlistItem, 0)
		if err := cursor.All(ctx, &items); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, items)
	}
}

/*
POST /user/wishlist
Idempotent add: the unique (userId, watchId) index makes a second add a
no-op instead of a duplicate.
*/
func AddToWishlist(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /user/wishlist"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		var req wishlistRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		watchID, err := primitive.ObjectIDFromHex(req.WatchID)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid watchId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var raw bson.M
		err = db.Collection("watches").FindOne(ctx, bson.M{"_id": watchID}).Decode(&raw)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusBadRequest, route, "watch not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		watch, err := normalizeWatchDocument(raw)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		filter := bson.M{"userId": userID, "watchId": watchID}
		update := bson.M{
			"$setOnInsert": bson.M{
				"userId":   userID,
				"watchId":  watchID,
				"title":    watch.Title,
				"brand":    watch.Brand,
				"price":    watch.Price,
				"imageUrl": string(watch.ImageURL),
				"addedAt":  time.Now(),
			},
		}

		if _, err := db.Collection("wishlist").UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] watch %s wishlisted by user %s", route, watchID.Hex(), userID.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "added to wishlist"})
	}
}

// DELETE /user/wishlist/:watchId
func RemoveFromWishlist(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /user/wishlist/:watchId"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		watchID, err := primitive.ObjectIDFromHex(c.Param("watchId"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid watchId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("wishlist").DeleteOne(ctx, bson.M{"userId": userID, "watchId": watchID})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.DeletedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "not in wishlist")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "removed from wishlist"})
	}
}
