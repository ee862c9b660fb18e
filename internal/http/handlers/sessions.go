package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type sessionResponse struct {
	SessionID  string `json:"session_id"`
	Doctor     string `json:"doctor"`
	Date       string `json:"date"`
	EditingRow int    `json:"editing_row"`
}

// CreateSession opens a new interaction session.
// POST /api/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	if h.sessions == nil {
		writeError(w, http.StatusServiceUnavailable, "sessions disabled")
		return
	}
	s := h.sessions.New()
	writeJSON(w, http.StatusCreated, sessionResponse{SessionID: s.ID(), EditingRow: s.EditingRow()})
}

// GetSession reads a session's current state.
// GET /api/sessions/{sessionID}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(chi.URLParam(r, "sessionID"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown or expired session")
		return
	}
	doctor, date := s.Selection()
	writeJSON(w, http.StatusOK, sessionResponse{
		SessionID:  s.ID(),
		Doctor:     doctor,
		Date:       date,
		EditingRow: s.EditingRow(),
	})
}

type updateSessionRequest struct {
	Doctor     *string `json:"doctor"`
	Date       *string `json:"date"`
	EditingRow *int    `json:"editing_row"`
}

// UpdateSession updates the selection or editing row of a session.
// PUT /api/sessions/{sessionID}
func (h *Handler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(chi.URLParam(r, "sessionID"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown or expired session")
		return
	}

	var req updateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	doctor, date := s.Selection()
	if req.Doctor != nil {
		doctor = *req.Doctor
	}
	if req.Date != nil {
		date = *req.Date
	}
	s.SetSelection(doctor, date)
	if req.EditingRow != nil {
		s.SetEditingRow(*req.EditingRow)
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		SessionID:  s.ID(),
		Doctor:     doctor,
		Date:       date,
		EditingRow: s.EditingRow(),
	})
}
