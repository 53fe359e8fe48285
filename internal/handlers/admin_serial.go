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

type serialCreateRequest struct {
	SerialNumber string `json:"serialNumber" binding:"required"`
	Brand        string `json:"brand" binding:"required"`
	Model        string `json:"model" binding:"required"`
	Verified     *bool  `json:"verified"`
}

// GET /admin/api/serials
func GetSerialRecords(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/serials"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("serial_registry").Find(ctx, bson.M{}, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		records := make([]models.SerialRecord, 0)
		if err := cursor.All(ctx, &records); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, records)
	}
}

/*
POST /admin/api/serials
The registry is append-only: records are created here and only ever
read afterwards. The serial number is stored exactly as entered apart
from whitespace trimming, since lookups are case-sensitive.
*/
func CreateSerialRecord(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/serials"
		defer handlePanic(c, route)

		var req serialCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		serial := normalizeSerialInput(req.SerialNumber)
		if serial == "" {
			respondWithError(c, http.StatusBadRequest, route, "serialNumber is required")
			return
		}

		verified := true
		if req.Verified != nil {
			verified = *req.Verified
		}

		record := models.SerialRecord{
			SerialNumber: serial,
			Brand:        strings.TrimSpace(req.Brand),
			Model:        strings.TrimSpace(req.Model),
			Verified:     verified,
			CreatedAt:    time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("serial_registry").InsertOne(ctx, record)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				respondWithError(c, http.StatusConflict, route, "serial number already registered")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		id, _ := res.InsertedID.(primitive.ObjectID)
		log.Printf("[%s] serial record created: %s", route, id.Hex())
		c.JSON(http.StatusCreated, gin.H{"id": id.Hex(), "message": "serial record created"})
	}
}
