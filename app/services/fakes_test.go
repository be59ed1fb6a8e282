package services_test

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/modacart/catalog/app/models"
	"github.com/modacart/catalog/pkg/apierr"
	"github.com/modacart/catalog/pkg/filter"
)

// fakeCatalog answers FindByIDs from an in-memory attribute set, returning
// only matching records like the real repository.
type fakeCatalog struct {
	attrs map[primitive.ObjectID]models.Attribute
	err   error
	calls int
}

func newFakeCatalog(attrs ...models.Attribute) *fakeCatalog {
	m := make(map[primitive.ObjectID]models.Attribute, len(attrs))
	for _, a := range attrs {
		m[a.ID] = a
	}
	return &fakeCatalog{attrs: m}
}

func (f *fakeCatalog) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Attribute, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Attribute
	for _, id := range ids {
		if a, ok := f.attrs[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

// fakeStore is an in-memory ProductStore with the same conflict and
// not-found semantics as the Mongo-backed repository.
type fakeStore struct {
	products map[primitive.ObjectID]models.Product
	saveErr  error
	lastSort string
}

func newFakeStore() *fakeStore {
	return &fakeStore{products: make(map[primitive.ObjectID]models.Product)}
}

func (f *fakeStore) Create(_ context.Context, p *models.Product) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	for _, existing := range f.products {
		if existing.Slug == p.Slug {
			return apierr.Conflict("a product with this slug already exists", nil)
		}
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	f.products[p.ID] = *p
	return nil
}

func (f *fakeStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, apierr.NotFound("product")
	}
	clone := p
	return &clone, nil
}

func (f *fakeStore) Save(_ context.Context, p *models.Product) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	for id, existing := range f.products {
		if id != p.ID && existing.Slug == p.Slug {
			return apierr.Conflict("a product with this slug already exists", nil)
		}
	}
	if _, ok := f.products[p.ID]; !ok {
		return apierr.NotFound("product")
	}
	f.products[p.ID] = *p
	return nil
}

func (f *fakeStore) DeleteMany(_ context.Context, ids []primitive.ObjectID) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := f.products[id]; ok {
			delete(f.products, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) Count(_ context.Context, _ filter.Node) (int64, error) {
	return int64(len(f.products)), nil
}

func (f *fakeStore) QueryPage(_ context.Context, _ filter.Node, sort string, skip, limit int64) ([]models.Product, error) {
	f.lastSort = sort
	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	if skip >= int64(len(out)) {
		return nil, nil
	}
	out = out[skip:]
	if limit < int64(len(out)) {
		out = out[:limit]
	}
	return out, nil
}

// makeAttr builds a catalog attribute with n enumerated values.
func makeAttr(name, code string, n int) models.Attribute {
	a := models.Attribute{
		ID:       primitive.NewObjectID(),
		Name:     name,
		Code:     code,
		Type:     "select",
		IsActive: true,
	}
	for i := 0; i < n; i++ {
		a.Values = append(a.Values, models.AttributeValue{
			ID:    primitive.NewObjectID(),
			Label: name + "-" + string(rune('A'+i)),
		})
	}
	return a
}

func iptr(i int) *int { return &i }

func fptr(f float64) *float64 { return &f }

func sptr(s string) *string { return &s }

func bptr(b bool) *bool { return &b }
