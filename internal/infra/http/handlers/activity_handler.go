package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gabrielmpr/crmfunil/internal/usecase"
)

type ActivityHandler struct {
	UC *usecase.ActivityUseCase
}

func NewActivityHandler(uc *usecase.ActivityUseCase) *ActivityHandler {
	return &ActivityHandler{UC: uc}
}

func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	activities, err := h.UC.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateActivityInput
	if err := decodeBody(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
		return
	}

	activity, err := h.UC.Create(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, activity)
}

func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateActivityInput
	if err := decodeBody(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
		return
	}

	activity, err := h.UC.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activity)
}

func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Upcoming lista contatos agendados a vencer. ?hours=N controla a janela
// (default 24h).
func (h *ActivityHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	hours := 24
	if v := r.URL.Query().Get("hours"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{"hours must be a positive integer"})
			return
		}
		hours = n
	}

	activities, err := h.UC.Upcoming(r.Context(), time.Now(), time.Duration(hours)*time.Hour)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

type sendRemindersRequest struct {
	To    string `json:"to"`
	Hours int    `json:"hours,omitempty"`
}

type sendRemindersResponse struct {
	Sent int `json:"sent"`
}

func (h *ActivityHandler) SendReminders(w http.ResponseWriter, r *http.Request) {
	var req sendRemindersRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
		return
	}
	if req.To == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{"to is required"})
		return
	}
	hours := req.Hours
	if hours <= 0 {
		hours = 24
	}

	sent, err := h.UC.SendReminders(r.Context(), req.To, time.Now(), time.Duration(hours)*time.Hour)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sendRemindersResponse{Sent: sent})
}
