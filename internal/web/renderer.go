// Package web is the presentation layer: it renders the board and login
// pages from embedded templates. Pure rendering, no business logic.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/jsquie/eighty-six/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer draws the board pages.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// BoardPage is the data for the board view.
type BoardPage struct {
	Items       []model.Item
	Sort        model.SortField
	SortFields  []model.SortField
	User        model.User
	SignedIn    bool
	AuthEnabled bool
	// Flash is the single user-visible message for whatever failed this
	// cycle; the board still renders around it.
	Flash string
}

// LoginPage is the data for the login view.
type LoginPage struct {
	Error string
	// OAuthURL, when set, is the provider redirect link.
	OAuthURL string
}

// Board renders the board page.
func (r *Renderer) Board(w http.ResponseWriter, data BoardPage) {
	r.render(w, "board.html", data)
}

// Login renders the login page.
func (r *Renderer) Login(w http.ResponseWriter, data LoginPage) {
	r.render(w, "login.html", data)
}

// render executes a template into a buffer first, so a template failure
// produces a clean 500 rather than a half-written page.
func (r *Renderer) render(w http.ResponseWriter, name string, data interface{}) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("[Renderer] Failed to render %s: %v", name, err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
