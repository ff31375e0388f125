package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/MrSnakeDoc/startpage/internal/editor"
	"github.com/MrSnakeDoc/startpage/internal/logger"
)

func writeJSON(w http.ResponseWriter, status int, v any, log logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug("failed to write response", logger.Error(err))
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// redirectNotice sends the browser back to the editor with a message to display.
func redirectNotice(w http.ResponseWriter, r *http.Request, notice string) {
	target := editor.PathEditor
	if notice != "" {
		target += "?" + url.Values{"notice": {notice}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
