package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"sheetpivot/app"
	"sheetpivot/internal"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed templates/*.html
var embeddedFiles embed.FS

// App serves browsable HTML views of stored tables
type App struct {
	router    *chi.Mux
	service   *app.TableService
	templates *template.Template
	log       *internal.Logger
}

// NewApp creates the UI application
func NewApp(service *app.TableService) (*App, error) {
	templates, err := template.New("").ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		service:   service,
		templates: templates,
		log:       internal.DefaultLogger.Named("ui"),
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a, nil
}

// Router returns the HTTP handler for the UI routes
func (a *App) Router() http.Handler {
	return a.router
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/tables/{id}", a.handleTable)
	a.router.Get("/tables/{id}/markdown", a.handleMarkdown)
}

func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		a.log.Error("template %s: %v", templateName, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}
