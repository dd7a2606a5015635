package database

import (
	"context"

	"github.com/gabrielmpr/crmfunil/internal/entity"
	"github.com/gabrielmpr/crmfunil/internal/infra/storage"
)

type ActivityRepository struct {
	KV storage.KV
}

func NewActivityRepository(kv storage.KV) *ActivityRepository {
	return &ActivityRepository{KV: kv}
}

func (r *ActivityRepository) GetAll(ctx context.Context) ([]entity.Activity, error) {
	return storage.LoadCollection[entity.Activity](ctx, r.KV, ActivitiesKey)
}

func (r *ActivityRepository) FindByID(ctx context.Context, id string) (*entity.Activity, error) {
	activities, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range activities {
		if activities[i].ID == id {
			return &activities[i], nil
		}
	}
	return nil, entity.ErrNotFound
}

func (r *ActivityRepository) Create(ctx context.Context, a *entity.Activity) error {
	activities, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	activities = append(activities, *a)
	return storage.StoreCollection(ctx, r.KV, ActivitiesKey, activities)
}

func (r *ActivityRepository) Save(ctx context.Context, a *entity.Activity) error {
	activities, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	for i := range activities {
		if activities[i].ID == a.ID {
			activities[i] = *a
			return storage.StoreCollection(ctx, r.KV, ActivitiesKey, activities)
		}
	}
	return entity.ErrNotFound
}

// Delete aqui NÃO é idempotente: a exclusão de atividade inexistente é erro
// no fluxo original ("Atividade não encontrada").
func (r *ActivityRepository) Delete(ctx context.Context, id string) error {
	activities, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	for i := range activities {
		if activities[i].ID == id {
			activities = append(activities[:i], activities[i+1:]...)
			return storage.StoreCollection(ctx, r.KV, ActivitiesKey, activities)
		}
	}
	return entity.ErrNotFound
}
