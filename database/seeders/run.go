// Package seeders provides a sample attribute catalog for local
// development. In production the catalog is owned by another service.
package seeders

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/modacart/catalog/app/models"
)

// Run inserts the sample attributes unless the collection already has
// documents. Returns how many were inserted.
func Run(ctx context.Context, db *mongo.Database) (int, error) {
	col := db.Collection("attributes")

	existing, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("seeders: count attributes: %w", err)
	}
	if existing > 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	attrs := []interface{}{
		models.Attribute{
			ID:   primitive.NewObjectID(),
			Name: "Color",
			Code: "color",
			Type: "color",
			Values: []models.AttributeValue{
				{ID: primitive.NewObjectID(), Label: "Red", Value: "#e53935"},
				{ID: primitive.NewObjectID(), Label: "Blue", Value: "#1e88e5"},
				{ID: primitive.NewObjectID(), Label: "Black", Value: "#212121"},
			},
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		models.Attribute{
			ID:   primitive.NewObjectID(),
			Name: "Size",
			Code: "size",
			Type: "size",
			Values: []models.AttributeValue{
				{ID: primitive.NewObjectID(), Label: "Small", Value: "S"},
				{ID: primitive.NewObjectID(), Label: "Medium", Value: "M"},
				{ID: primitive.NewObjectID(), Label: "Large", Value: "L"},
			},
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	res, err := col.InsertMany(ctx, attrs)
	if err != nil {
		return 0, fmt.Errorf("seeders: insert attributes: %w", err)
	}
	return len(res.InsertedIDs), nil
}
