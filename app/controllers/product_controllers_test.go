package controllers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/modacart/catalog/app/controllers"
	"github.com/modacart/catalog/app/models"
	"github.com/modacart/catalog/app/services"
	"github.com/modacart/catalog/pkg/apierr"
	"github.com/modacart/catalog/pkg/filter"
	"github.com/modacart/catalog/pkg/router"
)

// The controller tests run real requests through the router against the
// real service, swapping only the store and catalog for in-memory fakes.

type memCatalog struct {
	attrs map[primitive.ObjectID]models.Attribute
}

func (m *memCatalog) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Attribute, error) {
	var out []models.Attribute
	for _, id := range ids {
		if a, ok := m.attrs[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

type memStore struct {
	products map[primitive.ObjectID]models.Product
}

func (m *memStore) Create(_ context.Context, p *models.Product) error {
	for _, existing := range m.products {
		if existing.Slug == p.Slug {
			return apierr.Conflict("a product with this slug already exists", nil)
		}
	}
	p.ID = primitive.NewObjectID()
	m.products[p.ID] = *p
	return nil
}

func (m *memStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, apierr.NotFound("product")
	}
	clone := p
	return &clone, nil
}

func (m *memStore) Save(_ context.Context, p *models.Product) error {
	if _, ok := m.products[p.ID]; !ok {
		return apierr.NotFound("product")
	}
	m.products[p.ID] = *p
	return nil
}

func (m *memStore) DeleteMany(_ context.Context, ids []primitive.ObjectID) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := m.products[id]; ok {
			delete(m.products, id)
			n++
		}
	}
	return n, nil
}

func (m *memStore) Count(_ context.Context, _ filter.Node) (int64, error) {
	return int64(len(m.products)), nil
}

func (m *memStore) QueryPage(_ context.Context, _ filter.Node, _ string, skip, limit int64) ([]models.Product, error) {
	out := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
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

func newTestRouter(attrs ...models.Attribute) (*router.Router, *memStore) {
	store := &memStore{products: make(map[primitive.ObjectID]models.Product)}
	cat := &memCatalog{attrs: make(map[primitive.ObjectID]models.Attribute)}
	for _, a := range attrs {
		cat.attrs[a.ID] = a
	}

	pc := controllers.NewProductController(services.NewProductService(store, cat))

	r := router.New()
	api := r.Group("/api")
	api.Post("/products", "products.create", pc.Create)
	api.Get("/products", "products.list", pc.List)
	api.Get("/products/{id}", "products.show", pc.Show)
	api.Patch("/products/{id}", "products.update", pc.Update)
	api.Delete("/products", "products.delete", pc.Delete)
	return r, store
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	}
	return rec, out
}

func TestCreateProductEndpoint(t *testing.T) {
	r, store := newTestRouter()

	rec, body := doJSON(t, r.Handler(), http.MethodPost, "/api/products",
		`{"title": "Crew Socks", "currency": "USD", "price": 9.5, "stock": 30}`)

	require.Equal(t, http.StatusCreated, rec.Code, "body: %v", body)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "crew-socks", data["slug"])
	assert.Equal(t, 30.0, data["totalStock"])
	assert.Len(t, store.products, 1)
}

func TestCreateProductValidationStatus(t *testing.T) {
	r, _ := newTestRouter()

	rec, body := doJSON(t, r.Handler(), http.MethodPost, "/api/products",
		`{"currency": "USD"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := body["errors"].(map[string]interface{})
	assert.Contains(t, errs, "title")
}

func TestCreateProductMalformedBody(t *testing.T) {
	r, _ := newTestRouter()

	rec, _ := doJSON(t, r.Handler(), http.MethodPost, "/api/products", `{"title": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateProductConflictStatus(t *testing.T) {
	r, _ := newTestRouter()
	payload := `{"title": "Crew Socks", "currency": "USD", "price": 9.5, "stock": 30}`

	rec, _ := doJSON(t, r.Handler(), http.MethodPost, "/api/products", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = doJSON(t, r.Handler(), http.MethodPost, "/api/products", payload)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestShowProductEndpoint(t *testing.T) {
	size := models.Attribute{
		ID: primitive.NewObjectID(), Name: "Size", Code: "size", Type: "select", IsActive: true,
		Values: []models.AttributeValue{{ID: primitive.NewObjectID(), Label: "M"}},
	}
	r, _ := newTestRouter(size)

	payload := fmt.Sprintf(`{
		"title": "Tee", "currency": "USD",
		"variants": [{"sku": "T-M", "price": 20, "salePrice": 15, "stock": 4, "values": [
			{"attributeId": %q, "attributesValueId": %q, "stock": 4}
		]}]
	}`, size.ID.Hex(), size.Values[0].ID.Hex())

	rec, body := doJSON(t, r.Handler(), http.MethodPost, "/api/products", payload)
	require.Equal(t, http.StatusCreated, rec.Code, "body: %v", body)
	id := body["data"].(map[string]interface{})["id"].(string)

	rec, body = doJSON(t, r.Handler(), http.MethodGet, "/api/products/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)

	data := body["data"].(map[string]interface{})
	variants := data["variants"].([]interface{})
	require.Len(t, variants, 1)
	v := variants[0].(map[string]interface{})
	assert.Equal(t, 15.0, v["effectivePrice"])
	assert.Equal(t, 25.0, v["discountPercent"])

	pairs := v["values"].([]interface{})
	attr := pairs[0].(map[string]interface{})["attribute"].(map[string]interface{})
	assert.Equal(t, "Size", attr["name"])
}

func TestShowProductNotFound(t *testing.T) {
	r, _ := newTestRouter()

	rec, _ := doJSON(t, r.Handler(), http.MethodGet,
		"/api/products/"+primitive.NewObjectID().Hex(), "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateProductEndpoint(t *testing.T) {
	r, _ := newTestRouter()

	rec, body := doJSON(t, r.Handler(), http.MethodPost, "/api/products",
		`{"title": "Mug", "currency": "USD", "price": 12, "salePrice": 10, "stock": 2}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := body["data"].(map[string]interface{})["id"].(string)

	rec, body = doJSON(t, r.Handler(), http.MethodPatch, "/api/products/"+id,
		`{"price": 14, "salePrice": null}`)

	require.Equal(t, http.StatusOK, rec.Code, "body: %v", body)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, 14.0, data["price"])
	_, hasSale := data["salePrice"]
	assert.False(t, hasSale, "cleared salePrice must not serialize")
}

func TestUpdateProductCurrencyShape(t *testing.T) {
	r, _ := newTestRouter()

	rec, body := doJSON(t, r.Handler(), http.MethodPost, "/api/products",
		`{"title": "Mug", "currency": "USD", "price": 12, "stock": 2}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := body["data"].(map[string]interface{})["id"].(string)

	rec, body = doJSON(t, r.Handler(), http.MethodPatch, "/api/products/"+id,
		`{"currency": "US"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := body["errors"].(map[string]interface{})
	assert.Contains(t, errs, "currency")

	rec, body = doJSON(t, r.Handler(), http.MethodPatch, "/api/products/"+id,
		`{"currency": "EUR"}`)

	require.Equal(t, http.StatusOK, rec.Code, "body: %v", body)
	assert.Equal(t, "EUR", body["data"].(map[string]interface{})["currency"])
}

func TestDeleteProductsEndpoint(t *testing.T) {
	r, store := newTestRouter()

	rec, body := doJSON(t, r.Handler(), http.MethodPost, "/api/products",
		`{"title": "Mug", "currency": "USD", "price": 12, "stock": 2}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := body["data"].(map[string]interface{})["id"].(string)

	rec, body = doJSON(t, r.Handler(), http.MethodDelete, "/api/products",
		fmt.Sprintf(`{"ids": [%q, "garbage"]}`, id))

	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, 2.0, data["requested"])
	assert.Equal(t, 1.0, data["deleted"])
	assert.Empty(t, store.products)
}

func TestDeleteProductsEmptyBody(t *testing.T) {
	r, _ := newTestRouter()

	rec, _ := doJSON(t, r.Handler(), http.MethodDelete, "/api/products", `{"ids": []}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListProductsEndpoint(t *testing.T) {
	r, _ := newTestRouter()

	for i := 0; i < 3; i++ {
		rec, _ := doJSON(t, r.Handler(), http.MethodPost, "/api/products",
			fmt.Sprintf(`{"title": "P%d", "currency": "USD", "price": 1, "stock": 1}`, i))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, body := doJSON(t, r.Handler(), http.MethodGet, "/api/products?page=1&limit=2", "")

	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	assert.Len(t, items, 2)
	meta := data["pagination"].(map[string]interface{})
	assert.Equal(t, 3.0, meta["total"])
	assert.Equal(t, 2.0, meta["totalPages"])
}
