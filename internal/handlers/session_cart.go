package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"timevault/internal/cart"
)

// The session cart serves browsing before login. It lives in the cart
// store (Redis) under the caller's session id and is merged into the
// durable cart via POST /user/cart/merge after authentication.

const sessionHeader = "X-Session-ID"

func sessionKey(c *gin.Context) (string, bool) {
	key := strings.TrimSpace(c.GetHeader(sessionHeader))
	return key, key != ""
}

type sessionCartResponse struct {
	Items      []cart.Item `json:"items"`
	TotalItems int         `json:"totalItems"`
	TotalPrice float64     `json:"totalPrice"`
}

func sessionResponse(s *cart.Session) sessionCartResponse {
	return sessionCartResponse{
		Items:      s.Items(),
		TotalItems: s.TotalItems(),
		TotalPrice: s.TotalPrice(),
	}
}

// GET /cart
func GetSessionCart(store cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /cart"
		defer handlePanic(c, route)

		key, ok := sessionKey(c)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "X-Session-ID header is required")
			return
		}

		s := cart.Open(c.Request.Context(), store, key)
		c.JSON(http.StatusOK, sessionResponse(s))
	}
}

// POST /cart/items — snapshots the watch's display fields at add time
func AddSessionCartItem(db *mongo.Database, store cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart/items"
		defer handlePanic(c, route)

		key, ok := sessionKey(c)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "X-Session-ID header is required")
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

		var raw bson.M
		err = db.Collection("watches").FindOne(c.Request.Context(), bson.M{
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

		s := cart.Open(c.Request.Context(), store, key)
		s.AddItem(c.Request.Context(), cart.Item{
			ID:           watch.ID.Hex(),
			Title:        watch.Title,
			Brand:        watch.Brand,
			Price:        watch.Price,
			ImageURL:     string(watch.ImageURL),
			Condition:    watch.Condition,
			SerialNumber: watch.SerialNumber,
		})

		c.JSON(http.StatusOK, sessionResponse(s))
	}
}

// PUT /cart/items/:id — quantity 0 removes the item
func UpdateSessionCartItem(store cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /cart/items/:id"
		defer handlePanic(c, route)

		key, ok := sessionKey(c)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "X-Session-ID header is required")
			return
		}

		var req updateCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		s := cart.Open(c.Request.Context(), store, key)
		s.UpdateQuantity(c.Request.Context(), c.Param("id"), *req.Quantity)

		c.JSON(http.StatusOK, sessionResponse(s))
	}
}

// DELETE /cart/items/:id
func RemoveSessionCartItem(store cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /cart/items/:id"
		defer handlePanic(c, route)

		key, ok := sessionKey(c)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "X-Session-ID header is required")
			return
		}

		s := cart.Open(c.Request.Context(), store, key)
		s.RemoveItem(c.Request.Context(), c.Param("id"))

		c.JSON(http.StatusOK, sessionResponse(s))
	}
}

// DELETE /cart
func ClearSessionCart(store cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /cart"
		defer handlePanic(c, route)

		key, ok := sessionKey(c)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "X-Session-ID header is required")
			return
		}

		s := cart.Open(c.Request.Context(), store, key)
		s.Clear(c.Request.Context())

		c.JSON(http.StatusOK, sessionResponse(s))
	}
}
