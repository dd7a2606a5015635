package database

import (
	"context"

	"github.com/gabrielmpr/crmfunil/internal/entity"
	"github.com/gabrielmpr/crmfunil/internal/infra/storage"
)

type FunnelRepository struct {
	KV storage.KV
}

func NewFunnelRepository(kv storage.KV) *FunnelRepository {
	return &FunnelRepository{KV: kv}
}

func (r *FunnelRepository) GetAll(ctx context.Context) ([]entity.Funnel, error) {
	return storage.LoadCollection[entity.Funnel](ctx, r.KV, FunnelsKey)
}

func (r *FunnelRepository) FindByID(ctx context.Context, id string) (*entity.Funnel, error) {
	funnels, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range funnels {
		if funnels[i].ID == id {
			return &funnels[i], nil
		}
	}
	return nil, entity.ErrNotFound
}

func (r *FunnelRepository) Create(ctx context.Context, f *entity.Funnel) error {
	funnels, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	funnels = append(funnels, *f)
	return storage.StoreCollection(ctx, r.KV, FunnelsKey, funnels)
}

func (r *FunnelRepository) Save(ctx context.Context, f *entity.Funnel) error {
	funnels, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	for i := range funnels {
		if funnels[i].ID == f.ID {
			funnels[i] = *f
			return storage.StoreCollection(ctx, r.KV, FunnelsKey, funnels)
		}
	}
	return entity.ErrNotFound
}

// Delete é idempotente: id inexistente não é erro.
func (r *FunnelRepository) Delete(ctx context.Context, id string) error {
	funnels, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	kept := funnels[:0]
	for _, f := range funnels {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	return storage.StoreCollection(ctx, r.KV, FunnelsKey, kept)
}

// EnsureDefault semeia o funil padrão do CRM na primeira execução.
func (r *FunnelRepository) EnsureDefault(ctx context.Context) error {
	funnels, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(funnels) > 0 {
		return nil
	}
	def := entity.NewFunnel("Funil Padrão", []string{
		"Leads", "Primeiro Contato", "Proposta", "Negociação", "Fechado",
	})
	return r.Create(ctx, def)
}
