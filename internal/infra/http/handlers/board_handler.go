package handlers

import (
	"fmt"
	"net/http"

	"github.com/gabrielmpr/crmfunil/internal/infra/http/middleware"
	"github.com/gabrielmpr/crmfunil/internal/usecase"
)

// BoardHandler expõe os comandos do kanban. O fluxo de arrasto entre estágios
// é em duas fases: POST /board/move registra a intenção (PendingReason),
// POST /board/move/confirm commita com o motivo, ou /cancel descarta.
type BoardHandler struct {
	Board *usecase.BoardController
}

func NewBoardHandler(board *usecase.BoardController) *BoardHandler {
	return &BoardHandler{Board: board}
}

func (h *BoardHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var input usecase.ReorderInput
	if err := decodeBody(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
		return
	}

	if err := h.Board.Reorder(r.Context(), input); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BoardHandler) RequestMove(w http.ResponseWriter, r *http.Request) {
	var input usecase.MoveRequestInput
	if err := decodeBody(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
		return
	}

	move, err := h.Board.RequestMove(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, move)
}

type confirmMoveRequest struct {
	Reason string `json:"reason"`
}

type confirmMoveResponse struct {
	Message string `json:"message"`
	Lead    any    `json:"lead"`
}

func (h *BoardHandler) ConfirmMove(w http.ResponseWriter, r *http.Request) {
	var req confirmMoveRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
		return
	}

	lead, err := h.Board.ConfirmMove(r.Context(), req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordStageChange()

	// Mensagem de confirmação no formato do toast original.
	var stageName string
	if n := len(lead.StageHistory); n > 0 {
		stageName = lead.StageHistory[n-1].ToStage
	}
	writeJSON(w, http.StatusOK, confirmMoveResponse{
		Message: fmt.Sprintf("%s movido para %s", lead.Name, stageName),
		Lead:    lead,
	})
}

func (h *BoardHandler) CancelMove(w http.ResponseWriter, r *http.Request) {
	h.Board.CancelMove()
	middleware.RecordMoveCancelled()
	w.WriteHeader(http.StatusNoContent)
}

func (h *BoardHandler) PendingMove(w http.ResponseWriter, r *http.Request) {
	move := h.Board.Pending()
	if move == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{"no move pending"})
		return
	}
	writeJSON(w, http.StatusOK, move)
}

func (h *BoardHandler) UpdateLead(w http.ResponseWriter, r *http.Request) {
	leadID := r.URL.Query().Get("leadId")
	if leadID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{"leadId is required"})
		return
	}

	var input usecase.UpdateLeadInput
	if err := decodeBody(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
		return
	}

	lead, err := h.Board.UpdateLead(r.Context(), leadID, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}
