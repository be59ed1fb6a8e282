package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/modacart/catalog/app/services"
	"github.com/modacart/catalog/pkg/apierr"
	"github.com/modacart/catalog/pkg/bind"
	"github.com/modacart/catalog/pkg/logger"
	"github.com/modacart/catalog/pkg/response"
)

// ProductController translates HTTP requests into product operations and
// domain outcomes into status codes. No domain rules live here.
type ProductController struct {
	service *services.ProductService
}

func NewProductController(service *services.ProductService) *ProductController {
	return &ProductController{service: service}
}

// Create handles POST /api/products.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateProductInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	p, err := c.service.Create(r.Context(), input)
	if err != nil {
		c.fail(w, r, "create product", err)
		return
	}

	logger.WithCtx(r.Context()).Info("product created", "id", p.ID.Hex(), "slug", p.Slug)
	response.Created(w, p)
}

// Show handles GET /api/products/{id}, returning the resolved projection.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	p, err := c.service.GetResolved(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.fail(w, r, "get product", err)
		return
	}
	response.Success(w, p)
}

// List handles GET /api/products with pagination and filters.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := services.ListOptions{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Brand:    q.Get("brand"),
		Sort:     q.Get("sort"),
	}
	opts.Page, _ = strconv.Atoi(q.Get("page"))
	opts.Limit, _ = strconv.Atoi(q.Get("limit"))

	if v := q.Get("isActive"); v != "" {
		active := v == "true" || v == "1"
		opts.IsActive = &active
	}
	if v := q.Get("hasVariants"); v != "" {
		has := v == "true" || v == "1"
		opts.HasVariants = &has
	}
	if v := q.Get("minPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			opts.MinPrice = &f
		}
	}
	if v := q.Get("maxPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			opts.MaxPrice = &f
		}
	}

	items, pagination, err := c.service.List(r.Context(), opts)
	if err != nil {
		c.fail(w, r, "list products", err)
		return
	}
	response.Paginated(w, items, pagination)
}

// Update handles PATCH /api/products/{id} with sparse-patch semantics.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	var input services.UpdateProductInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	p, err := c.service.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		c.fail(w, r, "update product", err)
		return
	}

	logger.WithCtx(r.Context()).Info("product updated", "id", p.ID.Hex())
	response.Success(w, p)
}

// Delete handles DELETE /api/products with a body of ids to remove.
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDs []string `json:"ids"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	if len(body.IDs) == 0 {
		response.ValidationError(w, map[string]string{"ids": "The ids field is required."})
		return
	}

	res, err := c.service.Delete(r.Context(), body.IDs)
	if err != nil {
		c.fail(w, r, "delete products", err)
		return
	}

	logger.WithCtx(r.Context()).Info("products deleted",
		"requested", res.Requested, "deleted", res.Deleted)
	response.Success(w, res)
}

// fail logs unexpected errors with context and maps every outcome onto the
// error taxonomy. Expected failures (validation, not-found, conflict) pass
// through without noise.
func (c *ProductController) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if apierr.IsKind(err, apierr.KindInternal) {
		logger.WithCtx(r.Context()).Error(op+" failed", "error", err)
	}
	response.ApiErr(w, err)
}
