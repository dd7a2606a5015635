package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gabrielmpr/crmfunil/internal/entity"
	"github.com/gabrielmpr/crmfunil/internal/infra/queue"
)

// UpdateLeadUseCase altera campos fora de estágio (nome, telefone, observação,
// produto). Nunca toca em StageID nem em StageHistory.
type UpdateLeadUseCase struct {
	LeadRepo    LeadRepositoryInterface
	ProductRepo ProductRepositoryInterface
	Logs        LogRepositoryInterface
}

func NewUpdateLeadUseCase(leads LeadRepositoryInterface, products ProductRepositoryInterface, logs LogRepositoryInterface) *UpdateLeadUseCase {
	return &UpdateLeadUseCase{LeadRepo: leads, ProductRepo: products, Logs: logs}
}

func (uc *UpdateLeadUseCase) Execute(ctx context.Context, leadID string, input UpdateLeadInput) (*entity.Lead, error) {
	lead, err := uc.LeadRepo.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, NotFoundError{"lead", leadID}
		}
		return nil, &StorageError{Op: "load lead", Err: err}
	}

	if input.Name != nil {
		if isBlank(*input.Name) {
			return nil, ValidationError{"name", "is required"}
		}
		lead.Name = *input.Name
	}
	if input.Phone != nil {
		if !isBlank(*input.Phone) && !isValidPhoneNumber(*input.Phone) {
			return nil, ValidationError{"phone", "must be a valid phone number"}
		}
		lead.Phone = *input.Phone
	}
	if input.Observation != nil {
		lead.Observation = *input.Observation
	}
	if input.ProductID != nil {
		product, err := uc.ProductRepo.FindByID(ctx, *input.ProductID)
		if err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				return nil, NotFoundError{"product", *input.ProductID}
			}
			return nil, &StorageError{Op: "load product", Err: err}
		}
		lead.SetProduct(product)
	}

	if err := uc.LeadRepo.Save(ctx, lead); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, NotFoundError{"lead", leadID}
		}
		return nil, &StorageError{Op: "save lead", Err: err}
	}

	appendLog(ctx, uc.Logs, "Lead atualizado", "Lead "+lead.Name+" foi atualizado", ModuleLeads)
	return lead, nil
}

type DeleteLeadUseCase struct {
	LeadRepo LeadRepositoryInterface
	Events   EventProducerInterface
	Logs     LogRepositoryInterface
}

func NewDeleteLeadUseCase(leads LeadRepositoryInterface, events EventProducerInterface, logs LogRepositoryInterface) *DeleteLeadUseCase {
	return &DeleteLeadUseCase{LeadRepo: leads, Events: events, Logs: logs}
}

// Execute é idempotente: excluir um lead que já não existe não é erro.
func (uc *DeleteLeadUseCase) Execute(ctx context.Context, leadID string) error {
	if err := uc.LeadRepo.Delete(ctx, leadID); err != nil {
		return &StorageError{Op: "delete lead", Err: err}
	}

	appendLog(ctx, uc.Logs, "Lead excluído", "Lead "+leadID+" foi removido", ModuleLeads)

	if uc.Events != nil {
		err := uc.Events.PublishLeadEvent(ctx, queue.LeadEventPayload{
			Event:      queue.EventLeadDeleted,
			LeadID:     leadID,
			OccurredAt: time.Now(),
		})
		if err != nil {
			log.Printf("⚠️ evento lead.deleted não publicado: %v", err)
		}
	}
	return nil
}
