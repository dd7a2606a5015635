package handlers

import (
	"net/http"
	"sort"

	"github.com/gabrielmpr/crmfunil/internal/entity"
	"github.com/gabrielmpr/crmfunil/internal/infra/database"
	"github.com/gabrielmpr/crmfunil/internal/usecase"
)

type LogHandler struct {
	Repo *database.LogRepository
}

func NewLogHandler(repo *database.LogRepository) *LogHandler {
	return &LogHandler{Repo: repo}
}

// List devolve o ledger do mais recente para o mais antigo. ?module=leads
// filtra por módulo.
func (h *LogHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		logs []entity.LogEntry
		err  error
	)
	if module := r.URL.Query().Get("module"); module != "" {
		logs, err = h.Repo.GetByModule(ctx, module)
	} else {
		logs, err = h.Repo.GetAll(ctx)
	}
	if err != nil {
		writeError(w, &usecase.StorageError{Op: "load logs", Err: err})
		return
	}

	sort.Slice(logs, func(i, j int) bool {
		return logs[i].Timestamp.After(logs[j].Timestamp)
	})
	writeJSON(w, http.StatusOK, logs)
}
