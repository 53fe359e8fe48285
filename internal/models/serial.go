package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SerialRecord maps a watch serial number to its registered brand and
// model. The registry is append-only in practice: records are created by
// admins and looked up by the authenticity check, never updated.
type SerialRecord struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SerialNumber string             `bson:"serialNumber" json:"serialNumber"`
	Brand        string             `bson:"brand" json:"brand"`
	Model        string             `bson:"model" json:"model"`
	Verified     bool               `bson:"verified" json:"verified"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
