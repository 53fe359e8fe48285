package models

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// ImageRef normalizes the watch image field at the decode boundary.
// Legacy documents stored the image as a plain string, an array of
// strings, or not at all; every read collapses those shapes into a
// single URL so no caller needs a fallback chain.
type ImageRef string

// UnmarshalBSONValue accepts string, array and null BSON types. An array
// decodes to its first non-empty element.
func (r *ImageRef) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null:
		*r = ""
		return nil
	case bsontype.String:
		var value string
		if err := bson.UnmarshalValue(t, data, &value); err != nil {
			return err
		}
		*r = ImageRef(strings.TrimSpace(value))
		return nil
	case bsontype.Array:
		var values []string
		if err := bson.UnmarshalValue(t, data, &values); err != nil {
			return err
		}
		for _, value := range values {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				*r = ImageRef(trimmed)
				return nil
			}
		}
		*r = ""
		return nil
	default:
		return fmt.Errorf("cannot decode %s into ImageRef", t)
	}
}

// MarshalBSONValue always writes a plain string, keeping new writes
// consistent even when legacy documents used an array.
func (r ImageRef) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(string(r))
}
