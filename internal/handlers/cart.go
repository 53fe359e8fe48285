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

	"timevault/internal/mirror"
)

type addCartRequest struct {
	WatchID string `json:"watchId" binding:"required"`
}

type updateCartRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GET /user/cart
func GetCart(svc *mirror.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /user/cart"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		entries, err := svc.Entries(ctx, userID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items": entries,
			"total": mirror.Total(entries),
		})
	}
}

/*
POST /user/cart
Find-or-increment: an existing (user, watch) entry gains quantity 1,
otherwise a fresh entry is created with the watch's display fields
snapshotted at add time.
*/
func AddToCart(db *mongo.Database, svc *mirror.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /user/cart"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		var req addCartRequest
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
		err = db.Collection("watches").FindOne(ctx, bson.M{
			"_id":    watchID,
			"isSold": bson.M{"$ne": true},
		}).Decode(&raw)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusBadRequest, route, "watch not available")
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

		snap := mirror.Snapshot{
			Title:    watch.Title,
			Brand:    watch.Brand,
			Price:    watch.Price,
			ImageURL: string(watch.ImageURL),
		}
		if err := svc.Add(ctx, userID, watchID, snap); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] added watch %s for user %s", route, watchID.Hex(), userID.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "added to cart"})
	}
}

// PUT /user/cart/:id — quantity 0 removes the entry
func UpdateCartEntry(svc *mirror.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /user/cart/:id"
		defer handlePanic(c, route)

		if _, ok := userIDFromContext(c); !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		entryID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req updateCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := svc.SetQuantity(ctx, entryID, *req.Quantity); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "cart updated"})
	}
}

// DELETE /user/cart/:id
func RemoveCartEntry(svc *mirror.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /user/cart/:id"
		defer handlePanic(c, route)

		if _, ok := userIDFromContext(c); !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		entryID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := svc.Remove(ctx, entryID); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "removed from cart"})
	}
}

// DELETE /user/cart
func ClearCart(svc *mirror.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /user/cart"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		deleted, err := svc.Clear(ctx, userID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "cart cleared", "deleted": deleted})
	}
}

/*
POST /user/cart/merge
Folds the caller's session cart into the durable cart. Server
authoritative: mirror quantities are incremented, never overwritten.
The session cart should be cleared by the client on success.
*/
func MergeSessionCart(svc *mirror.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /user/cart/merge"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		var req struct {
			Items []struct {
				WatchID  string  `json:"watchId" binding:"required"`
				Quantity int     `json:"quantity" binding:"required,min=1"`
				Title    string  `json:"title"`
				Brand    string  `json:"brand"`
				Price    float64 `json:"price"`
				ImageURL string  `json:"imageUrl"`
			} `json:"items" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		items := make([]mirror.MergeItem, 0, len(req.Items))
		for _, item := range req.Items {
			watchID, err := primitive.ObjectIDFromHex(item.WatchID)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid watchId")
				return
			}
			items = append(items, mirror.MergeItem{
				WatchID:  watchID,
				Quantity: item.Quantity,
				Snapshot: mirror.Snapshot{
					Title:    item.Title,
					Brand:    item.Brand,
					Price:    item.Price,
					ImageURL: item.ImageURL,
				},
			})
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		if err := svc.Merge(ctx, userID, items); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		entries, err := svc.Entries(ctx, userID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] merged %d items for user %s", route, len(items), userID.Hex())
		c.JSON(http.StatusOK, gin.H{"items": entries, "total": mirror.Total(entries)})
	}
}
