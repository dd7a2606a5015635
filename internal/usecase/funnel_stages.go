package usecase

import (
	"context"
	"errors"

	"github.com/gabrielmpr/crmfunil/internal/entity"
)

// FunnelStagesUseCase gerencia a lista de estágios de um funil existente.
// Estágios só entram no fim e nunca são reordenados depois de criados.
type FunnelStagesUseCase struct {
	FunnelRepo FunnelRepositoryInterface
	LeadRepo   LeadRepositoryInterface
	Logs       LogRepositoryInterface
}

func NewFunnelStagesUseCase(funnels FunnelRepositoryInterface, leads LeadRepositoryInterface, logs LogRepositoryInterface) *FunnelStagesUseCase {
	return &FunnelStagesUseCase{FunnelRepo: funnels, LeadRepo: leads, Logs: logs}
}

func (uc *FunnelStagesUseCase) AddStage(ctx context.Context, funnelID, name string) (*entity.Funnel, error) {
	if isBlank(name) {
		return nil, ValidationError{"name", "is required"}
	}

	funnel, err := uc.FunnelRepo.FindByID(ctx, funnelID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, NotFoundError{"funnel", funnelID}
		}
		return nil, &StorageError{Op: "load funnel", Err: err}
	}

	stage := funnel.AppendStage(name)
	if err := uc.FunnelRepo.Save(ctx, funnel); err != nil {
		return nil, &StorageError{Op: "save funnel", Err: err}
	}

	appendLog(ctx, uc.Logs, "Estágio adicionado", "Estágio "+stage.Name+" no funil "+funnel.Name, ModuleFunnels)
	return funnel, nil
}

// RemoveStage aplica duas políticas de bloqueio: um funil nunca fica sem
// estágios, e um estágio que ainda tem leads não pode ser removido.
func (uc *FunnelStagesUseCase) RemoveStage(ctx context.Context, funnelID, stageID string) (*entity.Funnel, error) {
	funnel, err := uc.FunnelRepo.FindByID(ctx, funnelID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, NotFoundError{"funnel", funnelID}
		}
		return nil, &StorageError{Op: "load funnel", Err: err}
	}

	if _, ok := funnel.StageByID(stageID); !ok {
		return nil, ValidationError{"stageId", "does not belong to funnel"}
	}
	if len(funnel.Stages) <= 1 {
		return nil, ConflictError{"funnel must keep at least one stage"}
	}

	occupied, err := uc.LeadRepo.AnyInStage(ctx, stageID)
	if err != nil {
		return nil, &StorageError{Op: "check stage leads", Err: err}
	}
	if occupied {
		return nil, ConflictError{"stage still has leads; move them before removing it"}
	}

	funnel.RemoveStage(stageID)
	if err := uc.FunnelRepo.Save(ctx, funnel); err != nil {
		return nil, &StorageError{Op: "save funnel", Err: err}
	}

	appendLog(ctx, uc.Logs, "Estágio removido", "Funil "+funnel.Name, ModuleFunnels)
	return funnel, nil
}
