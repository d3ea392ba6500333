package webapp

import (
	"log"
	"net/http"

	"github.com/pmarin/filedex/app"
)

func (webapp *WebApp) startPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")

		data := map[string]any{
			"Title": "Start",
			"Query": query,
			"Ext":   r.URL.Query().Get("ext"),
			"Tag":   r.URL.Query().Get("tag"),
		}

		if len(query) > 0 {
			filter := &app.FileFilter{
				Ext: r.URL.Query().Get("ext"),
				Tag: r.URL.Query().Get("tag"),
			}
			results, err := webapp.Searcher.Search(query, filter, 0, 0)
			if err != nil {
				log.Printf("Search failed: %v", err)
				http.Error(w, "search failed", http.StatusInternalServerError)
				return
			}
			data["Results"] = results
		}

		if err := webapp.templates.ExecuteTemplate(w, "startpage.html", data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
