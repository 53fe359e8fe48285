package handlers

import (
	"context"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
GET /admin/api/orders/stream
Live dashboard feed: every insert/update/delete on the orders
collection is pushed to the admin as a server-sent event. Backed by a
Mongo change stream; the stream is torn down when the client
disconnects, so an admin closing the tab releases the cursor.
*/
func StreamOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders/stream"
		defer handlePanic(c, route)

		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		streamOptions := options.ChangeStream().SetFullDocument(options.UpdateLookup)

		stream, err := db.Collection("orders").Watch(ctx, mongo.Pipeline{}, streamOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "change stream unavailable")
			return
		}
		defer stream.Close(ctx)

		log.Printf("[%s] admin stream opened", route)

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")

		c.Stream(func(w io.Writer) bool {
			if !stream.Next(ctx) {
				if err := stream.Err(); err != nil && ctx.Err() == nil {
					log.Printf("[%s] stream error: %v", route, err)
				}
				return false
			}

			var event bson.M
			if err := stream.Decode(&event); err != nil {
				log.Printf("[%s] decode error: %v", route, err)
				return true
			}

			payload := gin.H{
				"operation": event["operationType"],
			}
			if doc, ok := event["fullDocument"]; ok {
				payload["order"] = doc
			}
			if key, ok := event["documentKey"]; ok {
				payload["key"] = key
			}

			c.SSEvent("order", payload)
			return true
		})

		log.Printf("[%s] admin stream closed", route)
	}
}
