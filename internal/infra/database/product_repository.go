package database

import (
	"context"

	"github.com/gabrielmpr/crmfunil/internal/entity"
	"github.com/gabrielmpr/crmfunil/internal/infra/storage"
)

type ProductRepository struct {
	KV storage.KV
}

func NewProductRepository(kv storage.KV) *ProductRepository {
	return &ProductRepository{KV: kv}
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	return storage.LoadCollection[entity.Product](ctx, r.KV, ProductsKey)
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	products, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, entity.ErrNotFound
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	products, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	products = append(products, *p)
	return storage.StoreCollection(ctx, r.KV, ProductsKey, products)
}

func (r *ProductRepository) Save(ctx context.Context, p *entity.Product) error {
	products, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == p.ID {
			products[i] = *p
			return storage.StoreCollection(ctx, r.KV, ProductsKey, products)
		}
	}
	return entity.ErrNotFound
}

// Delete é idempotente: id inexistente não é erro.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	products, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	kept := products[:0]
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	return storage.StoreCollection(ctx, r.KV, ProductsKey, kept)
}
