package ui

import (
	"fmt"
	"net/http"

	"sheetpivot/internal/errors"
	"sheetpivot/internal/render"

	"github.com/go-chi/chi/v5"
)

const indexLimit = 100

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	tables, err := a.service.List(r.Context(), indexLimit, 0)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.renderTemplate(w, "index.html", map[string]any{"Tables": tables})
}

func (a *App) handleTable(w http.ResponseWriter, r *http.Request) {
	snapshot, err := a.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, err)
		return
	}
	title := fmt.Sprintf("%s / %s", snapshot.Source, snapshot.Sheet)
	if snapshot.Filter != nil {
		title = fmt.Sprintf("%s (%s = %s)", title, snapshot.Filter.Column, snapshot.Filter.Keyword)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(render.HTML(title, snapshot.Table))
}

func (a *App) handleMarkdown(w http.ResponseWriter, r *http.Request) {
	snapshot, err := a.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	fmt.Fprint(w, render.Markdown(snapshot.Table))
}

func (a *App) fail(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(errors.GetCode(err))
	if status >= http.StatusInternalServerError {
		a.log.Error("%v", err)
	}
	http.Error(w, err.Error(), status)
}
