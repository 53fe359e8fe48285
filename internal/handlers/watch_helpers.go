package handlers

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"timevault/internal/models"
)

// normalizeWatchDocument absorbs the shape drift of legacy listings so
// the rest of the service only ever sees one Watch layout. Older
// documents stored the image under "image" or "images" and the serial
// under "serial"; everything funnels into imageUrl / serialNumber here.
func normalizeWatchDocument(raw bson.M) (models.Watch, error) {
	if _, ok := raw["imageUrl"]; !ok {
		if val, ok := raw["image"]; ok {
			raw["imageUrl"] = val
		} else if val, ok := raw["images"]; ok {
			raw["imageUrl"] = val
		}
	}

	if _, ok := raw["serialNumber"]; !ok {
		if val, ok := raw["serial"]; ok {
			raw["serialNumber"] = val
		}
	}

	if val, ok := raw["isSold"]; ok {
		switch typed := val.(type) {
		case string:
			raw["isSold"] = typed == "true"
		case bool:
			// already bool, keep as is
		default:
			raw["isSold"] = false
		}
	} else {
		raw["isSold"] = false
	}

	data, err := bson.Marshal(raw)
	if err != nil {
		return models.Watch{}, err
	}

	var w models.Watch
	if err := bson.Unmarshal(data, &w); err != nil {
		return models.Watch{}, err
	}

	w.Brand = strings.TrimSpace(w.Brand)
	w.Title = strings.TrimSpace(w.Title)

	return w, nil
}

func decodeWatches(ctx context.Context, cursor *mongo.Cursor) ([]models.Watch, error) {
	watches := make([]models.Watch, 0)

	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, err
		}

		watch, err := normalizeWatchDocument(raw)
		if err != nil {
			return nil, err
		}

		watches = append(watches, watch)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return watches, nil
}
