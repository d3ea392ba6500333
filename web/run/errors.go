package webapp

import (
	"encoding/json"
	"log"
	"net/http"
)

type apiError struct {
	Error string `json:"error"`
}

func (webapp *WebApp) renderJSONError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(apiError{Error: message}); err != nil {
		log.Printf("Error encoding error response: %v", err)
	}
}

func (webapp *WebApp) renderJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func (webapp *WebApp) notFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		webapp.renderJSONError(w, http.StatusNotFound, "not found")
	}
}
