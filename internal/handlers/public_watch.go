package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
GET /watches
- brand / category / gender / search filters are optional
- pagination applies when page or limit is given; missing values fall
  back to the storefront defaults
*/
func GetWatches(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /watches"
		defer handlePanic(c, route)

		log.Printf(
			"[%s] hit page=%s limit=%s brand=%s category=%s gender=%s search=%s",
			route,
			c.Query("page"),
			c.Query("limit"),
			c.Query("brand"),
			c.Query("category"),
			c.Query("gender"),
			c.Query("search"),
		)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		filter := bson.M{
			"isSold": bson.M{"$ne": true},
		}

		if brand := strings.TrimSpace(c.Query("brand")); brand != "" {
			filter["brand"] = brand
		}

		if category := strings.TrimSpace(c.Query("category")); category != "" {
			filter["category"] = category
		}

		if gender := strings.TrimSpace(c.Query("gender")); gender != "" {
			filter["gender"] = gender
		}

		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["title"] = bson.M{"$regex": search, "$options": "i"}
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		pageStr := c.Query("page")
		limitStr := c.Query("limit")

		if pageStr != "" || limitStr != "" {
			page, limit, err := parseCatalogPage(pageStr, limitStr)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
				return
			}

			findOptions.
				SetSkip((page - 1) * limit).
				SetLimit(limit)
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("watches").Find(ctx, filter, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		watches, err := decodeWatches(ctx, cursor)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		log.Printf("[%s] returning %d watches", route, len(watches))
		c.JSON(http.StatusOK, watches)
	}
}

// GET /watches/:id
func GetWatch(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /watches/:id"
		defer handlePanic(c, route)

		watchID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var raw bson.M
		if err := db.Collection("watches").FindOne(ctx, bson.M{"_id": watchID}).Decode(&raw); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "watch not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		watch, err := normalizeWatchDocument(raw)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, watch)
	}
}
