package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gracefm/logger"
	"gracefm/model"
	"gracefm/repository"
)

// GetUserHandler returns the identity's aggregate record. An identity never
// written before gets the exact zero-valued default shape, and so does a
// store read failure: reads on this path degrade to defaults rather than
// surfacing errors to the client.
func (h *APIHandler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	identity := mux.Vars(r)["identity"]

	user, err := h.aggregates.Get(r.Context(), identity)
	if err != nil {
		logger.Error("aggregate read failed", logger.String("identity", identity), logger.ErrorField(err))
		user = model.NewUserAggregate()
	}

	writeJSON(w, http.StatusOK, user)
}

// SyncUserHandler upserts the identity's streak, bookmarks and last-visit
// date. Listening stats are never touched by this path.
func (h *APIHandler) SyncUserHandler(w http.ResponseWriter, r *http.Request) {
	identity := mux.Vars(r)["identity"]

	var payload model.SyncPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Streak < 0 {
		writeError(w, http.StatusBadRequest, "streak must be non-negative")
		return
	}
	if payload.Bookmarks == nil {
		payload.Bookmarks = []model.SermonID{}
	}

	if err := h.aggregates.SyncProfile(r.Context(), identity, payload); err != nil {
		logger.Error("profile sync failed", logger.String("identity", identity), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to store profile")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListenUserHandler appends one listening event to the identity's history
// and grows the running total, creating the record if needed.
func (h *APIHandler) ListenUserHandler(w http.ResponseWriter, r *http.Request) {
	identity := mux.Vars(r)["identity"]

	var payload model.ListenPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.DurationSeconds <= 0 {
		writeError(w, http.StatusBadRequest, "durationSeconds must be positive")
		return
	}

	event := model.ListeningEvent{
		ID:          uuid.New().String(),
		SermonID:    payload.SermonID,
		SermonTitle: payload.SermonTitle,
		AlbumTitle:  payload.AlbumTitle,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Duration:    payload.DurationSeconds,
	}

	if err := h.aggregates.AppendListening(r.Context(), identity, event); err != nil {
		logger.Error("listening report failed", logger.String("identity", identity), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to store listening event")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// WrappedUserHandler computes the wrapped summary from the full history on
// every call. Absent identities and read failures both yield the zero-valued
// summary, never an error.
func (h *APIHandler) WrappedUserHandler(w http.ResponseWriter, r *http.Request) {
	identity := mux.Vars(r)["identity"]

	user, err := h.aggregates.Get(r.Context(), identity)
	if err != nil {
		logger.Error("aggregate read failed", logger.String("identity", identity), logger.ErrorField(err))
		user = model.NewUserAggregate()
	}

	writeJSON(w, http.StatusOK, repository.ComputeWrapped(user))
}
