package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/modacart/catalog/app/models"
	"github.com/modacart/catalog/config"
	"github.com/modacart/catalog/pkg/apierr"
	"github.com/modacart/catalog/pkg/cache"
	"github.com/modacart/catalog/pkg/metrics"
)

// AttributeRepository reads the attribute catalog. The catalog is owned by
// another service, so everything here is read-only. Lookups go through a
// per-id Redis cache with a short TTL; the catalog can change between
// requests, so nothing ever depends on a hit.
type AttributeRepository struct {
	col *mongo.Collection
	ttl time.Duration
}

func NewAttributeRepository(db *mongo.Database) *AttributeRepository {
	return &AttributeRepository{
		col: db.Collection("attributes"),
		ttl: config.AttributeCacheTTL(),
	}
}

func attrCacheKey(id primitive.ObjectID) string { return "attr:" + id.Hex() }

// FindByIDs batch-fetches attributes by id. Ids missing from the catalog
// are simply absent from the result, not errors. Cache misses are fetched
// in a single $in query.
func (r *AttributeRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Attribute, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	out := make([]models.Attribute, 0, len(ids))
	var misses []primitive.ObjectID
	for _, id := range ids {
		var a models.Attribute
		if cache.Get(ctx, attrCacheKey(id), &a) {
			metrics.AttributeCacheHits.Inc()
			out = append(out, a)
			continue
		}
		metrics.AttributeCacheMisses.Inc()
		misses = append(misses, id)
	}

	if len(misses) == 0 {
		return out, nil
	}

	defer metrics.ObserveStoreOp("find", time.Now())

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": misses}})
	if err != nil {
		return nil, fmt.Errorf("attributes: find by ids: %w", err)
	}

	var fetched []models.Attribute
	if err := cur.All(ctx, &fetched); err != nil {
		return nil, fmt.Errorf("attributes: decode: %w", err)
	}

	for _, a := range fetched {
		_ = cache.Set(ctx, attrCacheKey(a.ID), a, r.ttl)
	}

	return append(out, fetched...), nil
}

// FindByID returns one attribute or a not-found error.
func (r *AttributeRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Attribute, error) {
	attrs, err := r.FindByIDs(ctx, []primitive.ObjectID{id})
	if err != nil {
		return nil, apierr.Internal("attribute lookup failed", err)
	}
	if len(attrs) == 0 {
		return nil, apierr.NotFound("attribute")
	}
	return &attrs[0], nil
}

// List returns a page of active attributes sorted by name.
func (r *AttributeRepository) List(ctx context.Context, skip, limit int64) ([]models.Attribute, int64, error) {
	f := bson.M{"isActive": true}

	total, err := r.col.CountDocuments(ctx, f)
	if err != nil {
		return nil, 0, apierr.Internal("attribute count failed", err)
	}

	defer metrics.ObserveStoreOp("find", time.Now())

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, f, opts)
	if err != nil {
		return nil, 0, apierr.Internal("attribute list failed", err)
	}

	var attrs []models.Attribute
	if err := cur.All(ctx, &attrs); err != nil {
		return nil, 0, apierr.Internal("attribute decode failed", err)
	}

	return attrs, total, nil
}

// Invalidate drops cached entries for the given ids, for use after the
// owning service signals a catalog change.
func (r *AttributeRepository) Invalidate(ctx context.Context, ids ...primitive.ObjectID) error {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = attrCacheKey(id)
	}
	return cache.Del(ctx, keys...)
}
