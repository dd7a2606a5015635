package database

import (
	"context"

	"github.com/gabrielmpr/crmfunil/internal/entity"
	"github.com/gabrielmpr/crmfunil/internal/infra/storage"
)

// LogRepository guarda o ledger de auditoria. Só existem duas operações:
// anexar e ler. Entradas nunca são editadas.
type LogRepository struct {
	KV storage.KV
}

func NewLogRepository(kv storage.KV) *LogRepository {
	return &LogRepository{KV: kv}
}

func (r *LogRepository) GetAll(ctx context.Context) ([]entity.LogEntry, error) {
	return storage.LoadCollection[entity.LogEntry](ctx, r.KV, LogsKey)
}

func (r *LogRepository) Append(ctx context.Context, e *entity.LogEntry) error {
	logs, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	logs = append(logs, *e)
	return storage.StoreCollection(ctx, r.KV, LogsKey, logs)
}

func (r *LogRepository) GetByModule(ctx context.Context, module string) ([]entity.LogEntry, error) {
	logs, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.LogEntry, 0)
	for _, l := range logs {
		if l.Module == module {
			out = append(out, l)
		}
	}
	return out, nil
}
