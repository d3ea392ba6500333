package webapp

import (
	"errors"
	"log"
	"net/http"

	"github.com/pmarin/filedex/app"
	"github.com/pmarin/filedex/models"
)

type searchResponse struct {
	Query   string                `json:"query"`
	Count   int                   `json:"count"`
	Results []models.ScoredResult `json:"results"`
}

type fileResponse struct {
	File models.FileRecord `json:"file"`
	Tags []string          `json:"tags"`
}

func (webapp *WebApp) apiSearch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		query := q.Get("q")
		if query == "" {
			webapp.renderJSONError(w, http.StatusBadRequest, "missing query parameter q")
			return
		}

		filter := &app.FileFilter{
			Ext:     q.Get("ext"),
			Tag:     q.Get("tag"),
			MinSize: parseInt64(q.Get("min_size")),
			MaxSize: parseInt64(q.Get("max_size")),
			After:   q.Get("after"),
			Before:  q.Get("before"),
		}
		threshold := parseFloat(q.Get("threshold"))
		limit := int(parseInt64(q.Get("limit")))

		results, err := webapp.Searcher.Search(query, filter, threshold, limit)
		if err != nil {
			log.Printf("Search failed: %v", err)
			webapp.renderJSONError(w, http.StatusInternalServerError, "search failed")
			return
		}
		if results == nil {
			results = []models.ScoredResult{}
		}

		webapp.renderJSON(w, searchResponse{
			Query:   query,
			Count:   len(results),
			Results: results,
		})
	}
}

func (webapp *WebApp) apiFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Query().Get("path")
		if path == "" {
			webapp.renderJSONError(w, http.StatusBadRequest, "missing query parameter path")
			return
		}

		rec, err := webapp.Store.GetByPath(path)
		if errors.Is(err, app.ErrNotIndexed) {
			webapp.renderJSONError(w, http.StatusNotFound, "file not indexed")
			return
		}
		if err != nil {
			log.Printf("Lookup failed: %v", err)
			webapp.renderJSONError(w, http.StatusInternalServerError, "lookup failed")
			return
		}

		tags, err := webapp.Store.TagsFor(path)
		if err != nil {
			log.Printf("Tag lookup failed: %v", err)
			webapp.renderJSONError(w, http.StatusInternalServerError, "lookup failed")
			return
		}
		if tags == nil {
			tags = []string{}
		}

		webapp.renderJSON(w, fileResponse{File: rec, Tags: tags})
	}
}
