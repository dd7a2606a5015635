package usecase

import (
	"context"
	"errors"

	"github.com/gabrielmpr/crmfunil/internal/entity"
)

// ProductUseCase cobre o catálogo. Leads copiam nome e preço na criação,
// então editar um produto aqui nunca reescreve leads existentes.
type ProductUseCase struct {
	ProductRepo ProductRepositoryInterface
	Logs        LogRepositoryInterface
}

func NewProductUseCase(products ProductRepositoryInterface, logs LogRepositoryInterface) *ProductUseCase {
	return &ProductUseCase{ProductRepo: products, Logs: logs}
}

func (uc *ProductUseCase) Create(ctx context.Context, input CreateProductInput) (*entity.Product, error) {
	if err := firstError(ValidateCreateProductInput(input)); err != nil {
		return nil, err
	}

	product := entity.NewProduct(input.Name, input.Price, input.Description, input.Features)
	if err := uc.ProductRepo.Create(ctx, product); err != nil {
		return nil, &StorageError{Op: "create product", Err: err}
	}

	appendLog(ctx, uc.Logs, "Produto criado", "Novo produto: "+product.Name, ModuleProducts)
	return product, nil
}

func (uc *ProductUseCase) Update(ctx context.Context, id string, input UpdateProductInput) (*entity.Product, error) {
	product, err := uc.ProductRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, NotFoundError{"product", id}
		}
		return nil, &StorageError{Op: "load product", Err: err}
	}

	if input.Name != nil {
		if isBlank(*input.Name) {
			return nil, ValidationError{"name", "is required"}
		}
		product.Name = *input.Name
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, ValidationError{"price", "must not be negative"}
		}
		product.Price = *input.Price
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Features != nil {
		product.Features = input.Features
	}

	if err := uc.ProductRepo.Save(ctx, product); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, NotFoundError{"product", id}
		}
		return nil, &StorageError{Op: "save product", Err: err}
	}

	appendLog(ctx, uc.Logs, "Produto atualizado", "Produto "+product.Name+" foi atualizado", ModuleProducts)
	return product, nil
}

// Delete é idempotente.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.ProductRepo.Delete(ctx, id); err != nil {
		return &StorageError{Op: "delete product", Err: err}
	}

	appendLog(ctx, uc.Logs, "Produto excluído", "Produto "+id+" foi removido", ModuleProducts)
	return nil
}
