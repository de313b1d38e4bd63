package handler

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/wordsearchgame-go/internal/web/templates/pages"
)

func render(w http.ResponseWriter, r *http.Request, status int, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, "failed to render", http.StatusInternalServerError)
	}
}

func renderError(w http.ResponseWriter, r *http.Request, status int, title, message string) {
	render(w, r, status, pages.Error(title, message))
}

// NotFound renders the 404 page
func NotFound(w http.ResponseWriter, r *http.Request) {
	renderError(w, r, http.StatusNotFound, "Not Found", "Page not found")
}
