package routes

import (
	"github.com/modacart/catalog/app/controllers"
	"github.com/modacart/catalog/pkg/metrics"
	"github.com/modacart/catalog/pkg/router"
)

// RegisterAPI mounts every route. Middleware is wired by the server boot,
// not here.
func RegisterAPI(r *router.Router, pc *controllers.ProductController, ac *controllers.AttributeController) {
	r.Get("/healthz", "healthz", controllers.Healthz)
	r.Get("/metrics", "metrics", metrics.Handler())

	api := r.Group("/api")

	api.Post("/products", "products.create", pc.Create)
	api.Get("/products", "products.list", pc.List)
	api.Get("/products/{id}", "products.show", pc.Show)
	api.Patch("/products/{id}", "products.update", pc.Update)
	api.Delete("/products", "products.delete", pc.Delete)

	api.Get("/attributes", "attributes.list", ac.List)
	api.Get("/attributes/{id}", "attributes.show", ac.Show)
}
