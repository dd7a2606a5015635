package database

import (
	"context"

	"github.com/gabrielmpr/crmfunil/internal/entity"
	"github.com/gabrielmpr/crmfunil/internal/infra/storage"
)

type LeadRepository struct {
	KV storage.KV
}

func NewLeadRepository(kv storage.KV) *LeadRepository {
	return &LeadRepository{KV: kv}
}

func (r *LeadRepository) GetAll(ctx context.Context) ([]entity.Lead, error) {
	return storage.LoadCollection[entity.Lead](ctx, r.KV, LeadsKey)
}

func (r *LeadRepository) GetByFunnel(ctx context.Context, funnelID string) ([]entity.Lead, error) {
	leads, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Lead, 0)
	for _, l := range leads {
		if l.FunnelID == funnelID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	leads, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range leads {
		if leads[i].ID == id {
			return &leads[i], nil
		}
	}
	return nil, entity.ErrNotFound
}

// Leads novos entram no fim do array: a posição no array é a ordem do lead
// dentro do seu estágio no board.
func (r *LeadRepository) Create(ctx context.Context, l *entity.Lead) error {
	leads, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	leads = append(leads, *l)
	return storage.StoreCollection(ctx, r.KV, LeadsKey, leads)
}

func (r *LeadRepository) Save(ctx context.Context, l *entity.Lead) error {
	leads, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	for i := range leads {
		if leads[i].ID == l.ID {
			leads[i] = *l
			return storage.StoreCollection(ctx, r.KV, LeadsKey, leads)
		}
	}
	return entity.ErrNotFound
}

// ReplaceAll sobrescreve a coleção inteira. Usado pelo board para persistir
// reordenações dentro de um estágio.
func (r *LeadRepository) ReplaceAll(ctx context.Context, leads []entity.Lead) error {
	return storage.StoreCollection(ctx, r.KV, LeadsKey, leads)
}

// Delete é idempotente: id inexistente não é erro.
func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	leads, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	kept := leads[:0]
	for _, l := range leads {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	return storage.StoreCollection(ctx, r.KV, LeadsKey, kept)
}

// AnyInStage responde se algum lead ainda referencia o estágio. Usado pela
// política de remoção de estágios.
func (r *LeadRepository) AnyInStage(ctx context.Context, stageID string) (bool, error) {
	leads, err := r.GetAll(ctx)
	if err != nil {
		return false, err
	}
	for _, l := range leads {
		if l.StageID == stageID {
			return true, nil
		}
	}
	return false, nil
}
