package handlers

import (
	"bytes"
	"net/http"

	"github.com/MrSnakeDoc/startpage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/startpage/internal/logger"
)

const maxFormBytes = 1 << 20

// Page renders the start page from the current document.
func Page(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := d.Renderer.Page(r.Context(), &buf, d.Store.Snapshot()); err != nil {
			d.Logger.Error("failed to render page", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		writeHTML(w, buf.Bytes(), d.Logger)
	}
}

// EditorPage renders the configuration form, with an optional ?notice= message.
func EditorPage(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := d.Renderer.Editor(&buf, d.Store.Snapshot(), r.URL.Query().Get("notice")); err != nil {
			d.Logger.Error("failed to render editor", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		writeHTML(w, buf.Bytes(), d.Logger)
	}
}

// EditorSubmit applies one editor form post and redirects (post/redirect/get).
func EditorSubmit(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		if err := r.ParseForm(); err != nil {
			redirectNotice(w, r, "Invalid form: "+err.Error())
			return
		}

		next, err := d.Editor.Submit(r.Context(), r.PostForm)
		if err != nil {
			d.Logger.Warn("editor submission rejected", logger.Error(err))
			redirectNotice(w, r, err.Error())
			return
		}
		http.Redirect(w, r, next, http.StatusSeeOther)
	}
}

func writeHTML(w http.ResponseWriter, body []byte, log logger.Logger) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(body); err != nil {
		log.Debug("failed to write response", logger.Error(err))
	}
}
