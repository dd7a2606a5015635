package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gabrielmpr/crmfunil/internal/usecase"
)

type MetricsHandler struct {
	UC *usecase.MetricsUseCase
}

func NewMetricsHandler(uc *usecase.MetricsUseCase) *MetricsHandler {
	return &MetricsHandler{UC: uc}
}

func (h *MetricsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.UC.Summary(r.Context(), time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type stageTotalResponse struct {
	StageID string  `json:"stageId"`
	Total   float64 `json:"total"`
}

func (h *MetricsHandler) StageTotal(w http.ResponseWriter, r *http.Request) {
	stageID := chi.URLParam(r, "stageId")
	total, err := h.UC.StageTotal(r.Context(), stageID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stageTotalResponse{StageID: stageID, Total: total})
}
