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

	"timevault/internal/models"
)

/* =======================
   REQUEST MODELS
======================= */

type WatchCreateRequest struct {
	Title        string  `json:"title" binding:"required"`
	Brand        string  `json:"brand" binding:"required"`
	Category     string  `json:"category"`
	Gender       string  `json:"gender"`
	Price        float64 `json:"price" binding:"required"`
	SerialNumber string  `json:"serialNumber"`
	Condition    string  `json:"condition"`
	ImageURL     string  `json:"imageUrl"`
	Description  string  `json:"description"`
}

type WatchUpdateRequest struct {
	Title        *string  `json:"title"`
	Brand        *string  `json:"brand"`
	Category     *string  `json:"category"`
	Gender       *string  `json:"gender"`
	Price        *float64 `json:"price"`
	SerialNumber *string  `json:"serialNumber"`
	Condition    *string  `json:"condition"`
	ImageURL     *string  `json:"imageUrl"`
	Description  *string  `json:"description"`
	IsSold       *bool    `json:"isSold"`
}

// GET /admin/api/watches — includes sold watches, unlike the storefront
func GetAllWatches(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/watches"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("watches").Find(ctx, bson.M{}, findOptions)
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

		c.JSON(http.StatusOK, watches)
	}
}

// POST /admin/api/watches
func CreateWatch(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/watches"
		defer handlePanic(c, route)

		var req WatchCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if req.Price <= 0 {
			respondWithError(c, http.StatusBadRequest, route, "price must be greater than 0")
			return
		}

		watch := models.Watch{
			Title:        strings.TrimSpace(req.Title),
			Brand:        strings.TrimSpace(req.Brand),
			Category:     strings.TrimSpace(req.Category),
			Gender:       strings.TrimSpace(req.Gender),
			Price:        req.Price,
			SerialNumber: strings.TrimSpace(req.SerialNumber),
			Condition:    strings.TrimSpace(req.Condition),
			ImageURL:     models.ImageRef(strings.TrimSpace(req.ImageURL)),
			Description:  strings.TrimSpace(req.Description),
			CreatedAt:    time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("watches").InsertOne(ctx, watch)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				respondWithError(c, http.StatusConflict, route, "serial number already listed")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		id, _ := res.InsertedID.(primitive.ObjectID)
		log.Printf("[%s] watch created: %s", route, id.Hex())
		c.JSON(http.StatusCreated, gin.H{"id": id.Hex(), "message": "watch created"})
	}
}

// PUT /admin/api/watches/:id — only fields present in the body change
func UpdateWatch(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/watches/:id"
		defer handlePanic(c, route)

		watchID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req WatchUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		set := bson.M{}
		if req.Title != nil {
			set["title"] = strings.TrimSpace(*req.Title)
		}
		if req.Brand != nil {
			set["brand"] = strings.TrimSpace(*req.Brand)
		}
		if req.Category != nil {
			set["category"] = strings.TrimSpace(*req.Category)
		}
		if req.Gender != nil {
			set["gender"] = strings.TrimSpace(*req.Gender)
		}
		if req.Price != nil {
			if *req.Price <= 0 {
				respondWithError(c, http.StatusBadRequest, route, "price must be greater than 0")
				return
			}
			set["price"] = *req.Price
		}
		if req.SerialNumber != nil {
			set["serialNumber"] = strings.TrimSpace(*req.SerialNumber)
		}
		if req.Condition != nil {
			set["condition"] = strings.TrimSpace(*req.Condition)
		}
		if req.ImageURL != nil {
			set["imageUrl"] = strings.TrimSpace(*req.ImageURL)
		}
		if req.Description != nil {
			set["description"] = strings.TrimSpace(*req.Description)
		}
		if req.IsSold != nil {
			set["isSold"] = *req.IsSold
		}

		if len(set) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "no fields to update")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("watches").UpdateByID(ctx, watchID, bson.M{"$set": set})
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				respondWithError(c, http.StatusConflict, route, "serial number already listed")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "watch not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "watch updated"})
	}
}

// DELETE /admin/api/watches/:id — hard delete, including the stored image
func DeleteWatch(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/watches/:id"
		defer handlePanic(c, route)

		watchID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var raw bson.M
		err = db.Collection("watches").FindOne(ctx, bson.M{"_id": watchID}).Decode(&raw)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "watch not found")
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

		if _, err := db.Collection("watches").DeleteOne(ctx, bson.M{"_id": watchID}); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if err := safeDeleteUpload(string(watch.ImageURL)); err != nil {
			log.Printf("[%s] image cleanup failed for %s: %v", route, watchID.Hex(), err)
		}

		log.Printf("[%s] watch deleted: %s", route, watchID.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "watch deleted"})
	}
}
