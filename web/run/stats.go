package webapp

import (
	"log"
	"net/http"
)

func (webapp *WebApp) apiStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := webapp.Searcher.Stats()
		if err != nil {
			log.Printf("Unable to get stats: %v", err)
			webapp.renderJSONError(w, http.StatusInternalServerError, "stats failed")
			return
		}
		webapp.renderJSON(w, stats)
	}
}
