package controllers

import (
	"net/http"

	"github.com/modacart/catalog/pkg/database"
	"github.com/modacart/catalog/pkg/response"
)

// Healthz reports liveness, including a store ping so orchestrators notice
// a dead Mongo connection.
func Healthz(w http.ResponseWriter, r *http.Request) {
	if err := database.Ping(r.Context()); err != nil {
		response.Error(w, http.StatusServiceUnavailable, "store unreachable")
		return
	}
	response.Success(w, map[string]string{"status": "ok"})
}
