package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gabrielmpr/crmfunil/internal/infra/http/middleware"
	"github.com/gabrielmpr/crmfunil/internal/usecase"
)

type errorResponse struct {
	Error string `json:"error"`
}

// decodeBody faz o parse estrito do corpo da requisição: campo desconhecido é
// rejeitado, não descartado. Um PUT de lead carregando "stageId" tem que
// falhar com 400, nunca parecer aceito enquanto o campo é ignorado.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %v", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError converte a taxonomia de erros do core em status HTTP. Nenhum erro
// do core escapa sem virar resposta: nada aqui derruba a aplicação.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case usecase.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
	case usecase.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, errorResponse{err.Error()})
	case usecase.IsConflict(err):
		writeJSON(w, http.StatusConflict, errorResponse{err.Error()})
	case usecase.IsStorage(err):
		middleware.RecordStorageError()
		log.Printf("❌ erro de persistência: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{"persistence failure, no changes were saved"})
	default:
		log.Printf("❌ erro inesperado: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{"internal error"})
	}
}
