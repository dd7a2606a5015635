package usecase

import (
	"context"

	"github.com/gabrielmpr/crmfunil/internal/entity"
)

type CreateFunnelUseCase struct {
	FunnelRepo FunnelRepositoryInterface
	Logs       LogRepositoryInterface
}

func NewCreateFunnelUseCase(repo FunnelRepositoryInterface, logs LogRepositoryInterface) *CreateFunnelUseCase {
	return &CreateFunnelUseCase{FunnelRepo: repo, Logs: logs}
}

func (uc *CreateFunnelUseCase) Execute(ctx context.Context, input CreateFunnelInput) (*entity.Funnel, error) {
	if err := firstError(ValidateCreateFunnelInput(input)); err != nil {
		return nil, err
	}

	funnel := entity.NewFunnel(input.Name, input.Stages)
	if err := uc.FunnelRepo.Create(ctx, funnel); err != nil {
		return nil, &StorageError{Op: "create funnel", Err: err}
	}

	appendLog(ctx, uc.Logs, "Funil criado", "Novo funil: "+funnel.Name, ModuleFunnels)
	return funnel, nil
}
