package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/modacart/catalog/app/models"
	"github.com/modacart/catalog/pkg/apierr"
	"github.com/modacart/catalog/pkg/filter"
	"github.com/modacart/catalog/pkg/metrics"
)

// ProductRepository persists products. Atomicity is per document: a single
// insert/replace/delete either fully happens or not at all, which is what
// the service layer's validate-then-write sequence relies on. Concurrent
// updates of the same product race at last-write-wins granularity.
type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection("products")}
}

// EnsureIndexes creates the unique slug index that backs conflict
// detection. Called at boot and from the indexes CLI command.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	})
	if err != nil {
		return fmt.Errorf("products: ensure indexes: %w", err)
	}
	return nil
}

// Create inserts the product through a single atomic write. A duplicate
// unique field (slug) comes back as a conflict, distinct from validation.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	defer metrics.ObserveStoreOp("insert", time.Now())

	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apierr.Conflict("a product with this slug already exists", err)
		}
		return apierr.Internal("failed to create product", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

// FindByID loads one product or reports not-found.
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	defer metrics.ObserveStoreOp("find", time.Now())

	var p models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apierr.NotFound("product")
	}
	if err != nil {
		return nil, apierr.Internal("failed to load product", err)
	}
	return &p, nil
}

// Save overwrites the stored document with p in one atomic replace.
func (r *ProductRepository) Save(ctx context.Context, p *models.Product) error {
	defer metrics.ObserveStoreOp("update", time.Now())

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apierr.Conflict("a product with this slug already exists", err)
		}
		return apierr.Internal("failed to save product", err)
	}
	if res.MatchedCount == 0 {
		return apierr.NotFound("product")
	}
	return nil
}

// DeleteMany removes all matching documents in one multi-key operation and
// returns how many were actually deleted.
func (r *ProductRepository) DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	defer metrics.ObserveStoreOp("delete", time.Now())

	res, err := r.col.DeleteMany(ctx, filter.In{Field: "_id", Values: ids}.BSON())
	if err != nil {
		return 0, apierr.Internal("failed to delete products", err)
	}
	return res.DeletedCount, nil
}

// Count evaluates the compiled predicate tree.
func (r *ProductRepository) Count(ctx context.Context, f filter.Node) (int64, error) {
	defer metrics.ObserveStoreOp("count", time.Now())

	total, err := r.col.CountDocuments(ctx, f.BSON())
	if err != nil {
		return 0, apierr.Internal("failed to count products", err)
	}
	return total, nil
}

// QueryPage runs one filtered, sorted, paginated query. Sort keys use a
// leading '-' for descending order.
func (r *ProductRepository) QueryPage(ctx context.Context, f filter.Node, sort string, skip, limit int64) ([]models.Product, error) {
	defer metrics.ObserveStoreOp("find", time.Now())

	opts := options.Find().
		SetSort(sortSpec(sort)).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, f.BSON(), opts)
	if err != nil {
		return nil, apierr.Internal("failed to list products", err)
	}

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, apierr.Internal("failed to decode products", err)
	}
	return products, nil
}

func sortSpec(sort string) bson.D {
	dir := 1
	key := sort
	if strings.HasPrefix(sort, "-") {
		dir = -1
		key = sort[1:]
	}
	if key == "" {
		key = "createdAt"
		dir = -1
	}
	return bson.D{{Key: key, Value: dir}}
}
