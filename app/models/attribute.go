package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attribute is one axis of variation (e.g. "Color") with an enumerated set
// of values. The attribute catalog is managed by another service; this one
// only reads it.
type Attribute struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Code      string             `bson:"code" json:"code"`
	Type      string             `bson:"type" json:"type"` // text | color | size | number | select
	Values    []AttributeValue   `bson:"values" json:"values"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// AttributeValue ids are unique within their owning attribute only, not
// globally.
type AttributeValue struct {
	ID    primitive.ObjectID     `bson:"id" json:"id"`
	Label string                 `bson:"label" json:"label"`
	Value string                 `bson:"value,omitempty" json:"value,omitempty"`
	Meta  map[string]interface{} `bson:"meta,omitempty" json:"meta,omitempty"`
}

// ValueByID returns the value record with the given id, if present.
func (a Attribute) ValueByID(id primitive.ObjectID) (AttributeValue, bool) {
	for _, v := range a.Values {
		if v.ID == id {
			return v, true
		}
	}
	return AttributeValue{}, false
}
