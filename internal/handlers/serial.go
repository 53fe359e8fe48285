package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"timevault/internal/models"
)

// normalizeSerialInput trims surrounding whitespace and nothing else.
// Lookups are exact-match and case-sensitive.
func normalizeSerialInput(raw string) string {
	return strings.TrimSpace(raw)
}

/*
GET /serials/:serialNumber
- registered serial -> {valid:true, brand, model}
- anything else     -> {valid:false}, still HTTP 200
*/
func LookupSerial(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /serials/:serialNumber"
		defer handlePanic(c, route)

		serial := normalizeSerialInput(c.Param("serialNumber"))
		if serial == "" {
			respondWithError(c, http.StatusBadRequest, route, "serial number is required")
			return
		}

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var record models.SerialRecord
		err := db.Collection("serial_registry").FindOne(ctx, bson.M{
			"serialNumber": serial,
		}).Decode(&record)

		if err == mongo.ErrNoDocuments {
			log.Printf("[%s] no match for serial", route)
			c.JSON(http.StatusOK, gin.H{"valid": false})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if !record.Verified {
			c.JSON(http.StatusOK, gin.H{"valid": false})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"valid": true,
			"brand": record.Brand,
			"model": record.Model,
		})
	}
}
