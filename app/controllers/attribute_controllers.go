package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/modacart/catalog/app/repositories"
	"github.com/modacart/catalog/pkg/apierr"
	"github.com/modacart/catalog/pkg/logger"
	"github.com/modacart/catalog/pkg/response"
	"github.com/modacart/catalog/pkg/validate"
)

// AttributeController exposes the attribute catalog read-only; the catalog
// itself is managed by another service.
type AttributeController struct {
	repo *repositories.AttributeRepository
}

func NewAttributeController(repo *repositories.AttributeRepository) *AttributeController {
	return &AttributeController{repo: repo}
}

// List handles GET /api/attributes.
func (c *AttributeController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	attrs, total, err := c.repo.List(r.Context(), int64(page-1)*int64(limit), int64(limit))
	if err != nil {
		logger.WithCtx(r.Context()).Error("list attributes failed", "error", err)
		response.ApiErr(w, err)
		return
	}

	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}

	response.Paginated(w, attrs, response.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: pages,
	})
}

// Show handles GET /api/attributes/{id}.
func (c *AttributeController) Show(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validate.IsObjectID(id) {
		response.ValidationError(w, map[string]string{"id": "must be a valid 24-character identifier"})
		return
	}

	oid, _ := primitive.ObjectIDFromHex(id)
	attr, err := c.repo.FindByID(r.Context(), oid)
	if err != nil {
		if apierr.IsKind(err, apierr.KindInternal) {
			logger.WithCtx(r.Context()).Error("get attribute failed", "error", err)
		}
		response.ApiErr(w, err)
		return
	}
	response.Success(w, attr)
}
