package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gabrielmpr/crmfunil/internal/entity"
	"github.com/gabrielmpr/crmfunil/internal/infra/queue"
)

type CreateLeadUseCase struct {
	LeadRepo    LeadRepositoryInterface
	FunnelRepo  FunnelRepositoryInterface
	ProductRepo ProductRepositoryInterface
	Events      EventProducerInterface
	Logs        LogRepositoryInterface
}

func NewCreateLeadUseCase(
	leads LeadRepositoryInterface,
	funnels FunnelRepositoryInterface,
	products ProductRepositoryInterface,
	events EventProducerInterface,
	logs LogRepositoryInterface,
) *CreateLeadUseCase {
	return &CreateLeadUseCase{
		LeadRepo:    leads,
		FunnelRepo:  funnels,
		ProductRepo: products,
		Events:      events,
		Logs:        logs,
	}
}

func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	if err := firstError(ValidateCreateLeadInput(input)); err != nil {
		return nil, err
	}

	product, err := uc.ProductRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, NotFoundError{"product", input.ProductID}
		}
		return nil, &StorageError{Op: "load product", Err: err}
	}

	funnel, err := uc.FunnelRepo.FindByID(ctx, input.FunnelID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, NotFoundError{"funnel", input.FunnelID}
		}
		return nil, &StorageError{Op: "load funnel", Err: err}
	}

	// Estágio vazio = entrada do funil. Estágio preenchido tem que pertencer
	// ao funil informado, leads nunca apontam para estágio de outro funil.
	stageID := input.StageID
	if stageID == "" {
		stageID = funnel.FirstStage().ID
	} else if _, ok := funnel.StageByID(stageID); !ok {
		return nil, ValidationError{"stageId", "does not belong to funnel"}
	}

	lead := entity.NewLead(input.Name, input.Phone, product, funnel.ID, stageID)
	if err := uc.LeadRepo.Create(ctx, lead); err != nil {
		return nil, &StorageError{Op: "create lead", Err: err}
	}

	appendLog(ctx, uc.Logs, "Lead criado", "Novo lead: "+lead.Name, ModuleLeads)
	uc.publish(ctx, lead)

	return lead, nil
}

func (uc *CreateLeadUseCase) publish(ctx context.Context, lead *entity.Lead) {
	if uc.Events == nil {
		return
	}
	err := uc.Events.PublishLeadEvent(ctx, queue.LeadEventPayload{
		Event:      queue.EventLeadCreated,
		LeadID:     lead.ID,
		LeadName:   lead.Name,
		FunnelID:   lead.FunnelID,
		OccurredAt: time.Now(),
	})
	if err != nil {
		// Broker fora do ar nunca derruba a ação do usuário.
		log.Printf("⚠️ evento lead.created não publicado: %v", err)
	}
}
