package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gabrielmpr/crmfunil/internal/entity"
	"github.com/gabrielmpr/crmfunil/internal/infra/queue"
)

// ChangeStageUseCase é a única porta de entrada para transição de estágio.
// Toda troca bem sucedida anexa exatamente um StageChange ao histórico do
// lead; mover para o estágio atual é no-op e não gera entrada vazia.
type ChangeStageUseCase struct {
	LeadRepo   LeadRepositoryInterface
	FunnelRepo FunnelRepositoryInterface
	Events     EventProducerInterface
	Logs       LogRepositoryInterface
}

func NewChangeStageUseCase(
	leads LeadRepositoryInterface,
	funnels FunnelRepositoryInterface,
	events EventProducerInterface,
	logs LogRepositoryInterface,
) *ChangeStageUseCase {
	return &ChangeStageUseCase{LeadRepo: leads, FunnelRepo: funnels, Events: events, Logs: logs}
}

func (uc *ChangeStageUseCase) Execute(ctx context.Context, input ChangeStageInput) (*entity.Lead, error) {
	if isBlank(input.Reason) {
		return nil, ValidationError{"reason", "is required"}
	}

	lead, err := uc.LeadRepo.FindByID(ctx, input.LeadID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, NotFoundError{"lead", input.LeadID}
		}
		return nil, &StorageError{Op: "load lead", Err: err}
	}

	// No-op: já está lá. Sem entrada de histórico.
	if lead.StageID == input.ToStageID {
		return lead, nil
	}

	funnel, err := uc.FunnelRepo.FindByID(ctx, lead.FunnelID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, NotFoundError{"funnel", lead.FunnelID}
		}
		return nil, &StorageError{Op: "load funnel", Err: err}
	}

	toStage, ok := funnel.StageByID(input.ToStageID)
	if !ok {
		return nil, ValidationError{"toStageId", "does not belong to funnel"}
	}
	// fromStage sempre resolve enquanto a política de remoção de estágios
	// bloquear estágios ocupados; o zero value cobre dado legado.
	fromStage, _ := funnel.StageByID(lead.StageID)

	prev := *lead
	lead.MoveTo(fromStage, toStage, input.Reason, time.Now())

	// Persistência do lead e escrita do ledger andam juntas: se o log falhar,
	// a compensação devolve o lead ao estágio anterior.
	tx := NewTransaction()
	tx.AddOperation("persist lead move", func(ctx context.Context) error {
		return uc.LeadRepo.Save(ctx, lead)
	})
	tx.AddCompensation("restore lead", func(ctx context.Context) error {
		return uc.LeadRepo.Save(ctx, &prev)
	})
	tx.AddOperation("append audit log", func(ctx context.Context) error {
		if uc.Logs == nil {
			return nil
		}
		entry := entity.NewLogEntry(
			"Lead movido",
			lead.Name+": "+fromStage.Name+" → "+toStage.Name+" ("+input.Reason+")",
			systemUser, ModuleLeads, "",
		)
		return uc.Logs.Append(ctx, entry)
	})

	if err := tx.Execute(ctx); err != nil {
		*lead = prev
		return nil, &StorageError{Op: "change stage", Err: err}
	}

	uc.publish(ctx, lead, fromStage.Name, toStage.Name, input.Reason)
	return lead, nil
}

func (uc *ChangeStageUseCase) publish(ctx context.Context, lead *entity.Lead, from, to, reason string) {
	if uc.Events == nil {
		return
	}
	err := uc.Events.PublishLeadEvent(ctx, queue.LeadEventPayload{
		Event:      queue.EventLeadStageChanged,
		LeadID:     lead.ID,
		LeadName:   lead.Name,
		FunnelID:   lead.FunnelID,
		FromStage:  from,
		ToStage:    to,
		Reason:     reason,
		OccurredAt: time.Now(),
	})
	if err != nil {
		log.Printf("⚠️ evento lead.stage_changed não publicado: %v", err)
	}
}
