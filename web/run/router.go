package webapp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func router(webapp *WebApp) http.Handler {
	r := chi.NewRouter()

	r.Get("/", webapp.startPage())
	r.Get("/api/search", webapp.apiSearch())
	r.Get("/api/file", webapp.apiFile())
	r.Get("/api/stats", webapp.apiStats())

	r.NotFound(webapp.notFoundHandler())

	return r
}
