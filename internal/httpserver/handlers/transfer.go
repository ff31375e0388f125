package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/MrSnakeDoc/startpage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/startpage/internal/logger"
	"github.com/MrSnakeDoc/startpage/internal/transfer"
	"github.com/MrSnakeDoc/startpage/internal/utils"
)

// NoticeImported is shown on the editor after a successful import.
const NoticeImported = "Config imported"

const maxImportBytes = 1 << 20

// Export downloads the current document as page-config.json.
func Export(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := transfer.Export(d.Store.Snapshot())
		if err != nil {
			d.Logger.Error("export failed", logger.Error(err))
			redirectNotice(w, r, "Export failed: "+err.Error())
			return
		}

		w.Header().Set("Content-Type", transfer.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", transfer.ExportFileName))
		w.Header().Set("Cache-Control", "no-store")
		if _, err := w.Write(data); err != nil {
			d.Logger.Debug("failed to write export", logger.Error(err))
		}
	}
}

// Import replaces the document with an uploaded file (multipart field "file").
// Any failure leaves the document untouched and is reported on the editor.
func Import(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes+4096)

		file, _, err := r.FormFile("file")
		if err != nil {
			redirectNotice(w, r, "Invalid config file: "+err.Error())
			return
		}
		defer utils.Close(file)

		data, err := io.ReadAll(io.LimitReader(file, maxImportBytes))
		if err != nil {
			redirectNotice(w, r, "Invalid config file: "+err.Error())
			return
		}

		doc, err := transfer.Import(data)
		if err != nil {
			d.Logger.Warn("import rejected", logger.Error(err))
			redirectNotice(w, r, "Invalid config file: "+err.Error())
			return
		}

		if err := d.Store.Replace(r.Context(), doc); err != nil {
			d.Logger.Error("failed to store imported configuration", logger.Error(err))
			redirectNotice(w, r, "Import failed: "+err.Error())
			return
		}

		d.Logger.Info("configuration imported", logger.Int("categories", len(doc.Categories)))
		redirectNotice(w, r, NoticeImported)
	}
}
