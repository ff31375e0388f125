package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/startpage/internal/domain"
	"github.com/MrSnakeDoc/startpage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/startpage/internal/logger"
)

type weatherResponse struct {
	Display string `json:"display"`
}

// Config returns the current document.
func Config(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Store.Snapshot(), d.Logger)
	}
}

// Actions applies one JSON-encoded domain.Action and returns the resulting document.
// With ?save=true the document is persisted as well.
func Actions(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var action domain.Action
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&action); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid action: " + err.Error()}, d.Logger)
			return
		}

		save, _ := strconv.ParseBool(r.URL.Query().Get("save"))

		var err error
		if save {
			err = d.Store.Commit(r.Context(), action)
		} else {
			err = d.Store.Dispatch(action)
		}
		if err != nil {
			writeJSON(w, actionStatus(err), errorResponse{Error: err.Error()}, d.Logger)
			return
		}

		d.Logger.Debug("api action applied",
			logger.String("kind", string(action.Kind)),
			logger.Bool("saved", save))
		writeJSON(w, http.StatusOK, d.Store.Snapshot(), d.Logger)
	}
}

func actionStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrIndexOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnknownAction):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Weather returns the weather slot text for the current coordinates.
func Weather(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc := d.Store.Snapshot()
		writeJSON(w, http.StatusOK, weatherResponse{
			Display: d.Weather.Display(r.Context(), doc.WeatherLat, doc.WeatherLon),
		}, d.Logger)
	}
}
