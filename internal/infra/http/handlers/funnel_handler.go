package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gabrielmpr/crmfunil/internal/entity"
	"github.com/gabrielmpr/crmfunil/internal/infra/database"
	"github.com/gabrielmpr/crmfunil/internal/usecase"
)

type FunnelHandler struct {
	Repo     *database.FunnelRepository
	CreateUC *usecase.CreateFunnelUseCase
	StagesUC *usecase.FunnelStagesUseCase
}

func NewFunnelHandler(repo *database.FunnelRepository, createUC *usecase.CreateFunnelUseCase, stagesUC *usecase.FunnelStagesUseCase) *FunnelHandler {
	return &FunnelHandler{Repo: repo, CreateUC: createUC, StagesUC: stagesUC}
}

func (h *FunnelHandler) List(w http.ResponseWriter, r *http.Request) {
	funnels, err := h.Repo.GetAll(r.Context())
	if err != nil {
		writeError(w, &usecase.StorageError{Op: "load funnels", Err: err})
		return
	}
	writeJSON(w, http.StatusOK, funnels)
}

func (h *FunnelHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	funnel, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			writeError(w, usecase.NotFoundError{Entity: "funnel", ID: id})
			return
		}
		writeError(w, &usecase.StorageError{Op: "load funnel", Err: err})
		return
	}
	writeJSON(w, http.StatusOK, funnel)
}

func (h *FunnelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateFunnelInput
	if err := decodeBody(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
		return
	}

	funnel, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, funnel)
}

// Delete remove o funil. Leads que apontavam para ele ficam órfãos de
// propósito: exclusão de funil não cascateia para leads.
func (h *FunnelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, &usecase.StorageError{Op: "delete funnel", Err: err})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addStageRequest struct {
	Name string `json:"name"`
}

func (h *FunnelHandler) AddStage(w http.ResponseWriter, r *http.Request) {
	var req addStageRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
		return
	}

	funnel, err := h.StagesUC.AddStage(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, funnel)
}

func (h *FunnelHandler) RemoveStage(w http.ResponseWriter, r *http.Request) {
	funnel, err := h.StagesUC.RemoveStage(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "stageId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, funnel)
}
