package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/modacart/catalog/app/models"
	"github.com/modacart/catalog/pkg/apierr"
	"github.com/modacart/catalog/pkg/filter"
	"github.com/modacart/catalog/pkg/response"
	"github.com/modacart/catalog/pkg/validate"
)

// ProductStore is the document-store contract the service persists through.
// A single Create/Save/DeleteMany call is atomic at document granularity;
// there is no multi-document transaction. Create and Save surface duplicate
// unique fields as apierr conflicts, FindByID surfaces absence as not-found.
type ProductStore interface {
	Count(ctx context.Context, f filter.Node) (int64, error)
	QueryPage(ctx context.Context, f filter.Node, sort string, skip, limit int64) ([]models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Save(ctx context.Context, p *models.Product) error
	DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error)
}

// ProductService owns the validate-then-write sequence for products.
// Validation is fully separated from persistence: a request that fails
// mid-validation performs no partial writes.
type ProductService struct {
	store   ProductStore
	catalog AttributeCatalog
	now     func() time.Time
}

func NewProductService(store ProductStore, catalog AttributeCatalog) *ProductService {
	return &ProductService{store: store, catalog: catalog, now: time.Now}
}

// Create validates, resolves the main attribute, recomputes aggregates,
// and persists in one insert. Duplicate slugs come back as conflicts,
// distinct from validation failures.
func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	now := s.now().UTC()

	p := &models.Product{
		Title:       input.Title,
		Description: input.Description,
		Brand:       input.Brand,
		ImageURL:    input.ImageURL,
		Price:       input.Price,
		SalePrice:   input.SalePrice,
		OfferStart:  input.OfferStart,
		OfferEnd:    input.OfferEnd,
		Currency:    input.Currency,
		Stock:       input.Stock,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}
	if input.Category != nil {
		cat, _ := primitive.ObjectIDFromHex(*input.Category) // shape checked at bind
		p.Category = &cat
	}

	slugSource := input.Slug
	if slugSource == "" {
		slugSource = input.Title
	}
	p.Slug = Slugify(slugSource)
	if p.Slug == "" {
		return nil, apierr.Validation("slug", "cannot be derived from the given input")
	}

	if len(input.Variants) > 0 {
		variants, err := ValidateVariants(ctx, input.Variants, s.catalog)
		if err != nil {
			return nil, err
		}

		main, err := ResolveMainAttribute(DistinctAttributeIDs(variants), input.MainAttributeID, variants)
		if err != nil {
			return nil, err
		}

		p.Variants = variants
		p.MainAttributeID = &main
	}

	if err := RecomputeAggregates(p); err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetResolved loads a product and expands its attribute/value references
// for display.
func (s *ProductService) GetResolved(ctx context.Context, id string) (*ResolvedProduct, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	p, err := s.store.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	return ProjectProduct(ctx, p, s.catalog, s.now())
}

// ListOptions describes the admin list query.
type ListOptions struct {
	Page     int
	Limit    int
	Search      string
	Category    string
	Brand       string
	IsActive    *bool
	HasVariants *bool
	MinPrice    *float64
	MaxPrice    *float64
	Sort        string
}

// listSortKeys whitelists sortable fields; a leading '-' flips direction.
var listSortKeys = map[string]struct{}{
	"createdAt":  {},
	"title":      {},
	"totalStock": {},
	"price":      {},
}

// BuildProductFilter translates list options into a backend-neutral
// predicate tree. The price range matches either the product's own price
// (simple) or any variant's price (variant-bearing) — the OR lives here,
// in testable logic, not in hand-built store queries.
func BuildProductFilter(o ListOptions) filter.Node {
	var conds filter.And

	if o.Search != "" {
		conds = append(conds, filter.Or{
			filter.Regex{Field: "title", Pattern: o.Search},
			filter.Regex{Field: "description", Pattern: o.Search},
		})
	}
	if o.Category != "" && validate.IsObjectID(o.Category) {
		cat, _ := primitive.ObjectIDFromHex(o.Category)
		conds = append(conds, filter.Eq{Field: "category", Value: cat})
	}
	if o.Brand != "" {
		conds = append(conds, filter.Eq{Field: "brand", Value: o.Brand})
	}
	if o.IsActive != nil {
		conds = append(conds, filter.Eq{Field: "isActive", Value: *o.IsActive})
	}
	if o.HasVariants != nil {
		// Presence of a first element distinguishes variant-bearing from
		// simple products without scanning the array.
		conds = append(conds, filter.Exists{Field: "variants.0", Value: *o.HasVariants})
	}
	if o.MinPrice != nil || o.MaxPrice != nil {
		conds = append(conds, filter.Or{
			filter.Range{Field: "price", Min: o.MinPrice, Max: o.MaxPrice},
			filter.Range{Field: "variants.price", Min: o.MinPrice, Max: o.MaxPrice},
		})
	}

	return conds
}

// List returns one page of products plus pagination metadata.
func (s *ProductService) List(ctx context.Context, o ListOptions) ([]models.Product, response.Pagination, error) {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Limit < 1 {
		o.Limit = 20
	}
	if o.Limit > 100 {
		o.Limit = 100
	}

	sort := "-createdAt"
	if key := o.Sort; key != "" {
		trimmed := key
		if trimmed[0] == '-' {
			trimmed = trimmed[1:]
		}
		if _, ok := listSortKeys[trimmed]; ok {
			sort = key
		}
	}

	f := BuildProductFilter(o)

	total, err := s.store.Count(ctx, f)
	if err != nil {
		return nil, response.Pagination{}, err
	}

	skip := int64(o.Page-1) * int64(o.Limit)
	items, err := s.store.QueryPage(ctx, f, sort, skip, int64(o.Limit))
	if err != nil {
		return nil, response.Pagination{}, err
	}

	pages := total / int64(o.Limit)
	if total%int64(o.Limit) != 0 {
		pages++
	}

	return items, response.Pagination{
		Page:       o.Page,
		Limit:      o.Limit,
		Total:      total,
		TotalPages: pages,
	}, nil
}

// Update applies a sparse patch: only fields present in the request body
// change, explicit null clears nullable fields, and a supplied variants
// list replaces the stored set wholesale. Every write re-runs the full
// validator and resolver — including updates that do not touch variants —
// then the aggregate recompute, before a single save.
func (s *ProductService) Update(ctx context.Context, id string, input UpdateProductInput) (*models.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	p, err := s.store.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	titleChanged := false
	slugExplicit := false

	if input.Has("title") {
		if input.Title == nil {
			return nil, apierr.Validation("title", "cannot be null")
		}
		titleChanged = *input.Title != p.Title
		p.Title = *input.Title
	}
	if input.Has("slug") {
		if input.Slug == nil {
			return nil, apierr.Validation("slug", "cannot be null")
		}
		slug := Slugify(*input.Slug)
		if slug == "" {
			return nil, apierr.Validation("slug", "cannot be derived from the given input")
		}
		p.Slug = slug
		slugExplicit = true
	}
	if input.Has("description") {
		p.Description = strOrEmpty(input.Description)
	}
	if input.Has("brand") {
		p.Brand = strOrEmpty(input.Brand)
	}
	if input.Has("imageUrl") {
		p.ImageURL = strOrEmpty(input.ImageURL)
	}
	if input.Has("category") {
		if input.Category == nil {
			p.Category = nil
		} else {
			cat, _ := primitive.ObjectIDFromHex(*input.Category) // shape checked at bind
			p.Category = &cat
		}
	}
	if input.Has("currency") {
		if input.Currency == nil {
			return nil, apierr.Validation("currency", "cannot be null")
		}
		p.Currency = *input.Currency
	}
	if input.Has("price") {
		p.Price = input.Price
	}
	if input.Has("salePrice") {
		p.SalePrice = input.SalePrice
	}
	if input.Has("offerStart") {
		p.OfferStart = input.OfferStart
	}
	if input.Has("offerEnd") {
		p.OfferEnd = input.OfferEnd
	}
	if input.Has("stock") {
		p.Stock = input.Stock
	}
	if input.Has("isActive") {
		if input.IsActive == nil {
			return nil, apierr.Validation("isActive", "cannot be null")
		}
		p.IsActive = *input.IsActive
	}

	if input.Has("variants") {
		if len(input.Variants) == 0 {
			// Explicit null or empty list turns the product simple;
			// the aggregate step then requires direct price and stock.
			p.Variants = nil
			p.MainAttributeID = nil
		} else {
			variants, err := ValidateVariants(ctx, input.Variants, s.catalog)
			if err != nil {
				return nil, err
			}
			p.Variants = variants
		}
	} else if p.HasVariants() {
		// Stored variants are re-checked against the catalog on every
		// write, not just on creation.
		if err := CheckCatalogReferences(ctx, p.Variants, s.catalog); err != nil {
			return nil, err
		}
	}

	if p.HasVariants() {
		supplied := input.MainAttributeID
		if !input.Has("mainAttributeId") && p.MainAttributeID != nil {
			hex := p.MainAttributeID.Hex()
			supplied = &hex
		}

		main, err := ResolveMainAttribute(DistinctAttributeIDs(p.Variants), supplied, p.Variants)
		if err != nil {
			return nil, err
		}
		p.MainAttributeID = &main
	} else {
		p.MainAttributeID = nil
	}

	if titleChanged && !slugExplicit {
		p.Slug = Slugify(p.Title)
	}

	if err := RecomputeAggregates(p); err != nil {
		return nil, err
	}

	p.UpdatedAt = s.now().UTC()

	if err := s.store.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteResult reports how many deletions were requested versus performed.
type DeleteResult struct {
	Requested int   `json:"requested"`
	Deleted   int64 `json:"deleted"`
}

// Delete removes products by id list. Malformed ids are filtered out up
// front rather than failing the whole batch; all well-formed ids go to the
// store in one multi-key delete.
func (s *ProductService) Delete(ctx context.Context, ids []string) (DeleteResult, error) {
	res := DeleteResult{Requested: len(ids)}

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if !validate.IsObjectID(id) {
			continue
		}
		oid, _ := primitive.ObjectIDFromHex(id)
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return res, nil
	}

	deleted, err := s.store.DeleteMany(ctx, oids)
	if err != nil {
		return res, err
	}
	res.Deleted = deleted
	return res, nil
}

func parseID(id string) (primitive.ObjectID, error) {
	if !validate.IsObjectID(id) {
		return primitive.NilObjectID, apierr.Validation("id", "must be a valid 24-character identifier")
	}
	oid, _ := primitive.ObjectIDFromHex(id)
	return oid, nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
