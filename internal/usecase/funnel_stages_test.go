package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielmpr/crmfunil/internal/usecase"
)

func TestCreateFunnelValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.createFunnel.Execute(ctx, usecase.CreateFunnelInput{Name: "  "})
	require.Error(t, err)
	assert.True(t, usecase.IsValidation(err))

	_, err = env.createFunnel.Execute(ctx, usecase.CreateFunnelInput{
		Name:   "Vendas",
		Stages: []string{"Novo", ""},
	})
	require.Error(t, err)
	assert.True(t, usecase.IsValidation(err))
}

func TestCreateFunnelAssignsOrderedStages(t *testing.T) {
	env := newTestEnv(t)

	funnel, err := env.createFunnel.Execute(context.Background(), usecase.CreateFunnelInput{
		Name:   "Vendas",
		Stages: []string{"Novo", "Proposta", "Fechado"},
	})
	require.NoError(t, err)
	require.Len(t, funnel.Stages, 3)
	for i, stage := range funnel.Stages {
		assert.NotEmpty(t, stage.ID)
		assert.Equal(t, i+1, stage.Order)
	}
}

func TestAddStageAppendsAtEnd(t *testing.T) {
	env := newTestEnv(t)
	funnel, _, _ := env.seedVendas(t)
	ctx := context.Background()

	updated, err := env.stages.AddStage(ctx, funnel.ID, "Pós-venda")
	require.NoError(t, err)
	require.Len(t, updated.Stages, 3)
	assert.Equal(t, "Pós-venda", updated.Stages[2].Name)
	assert.Equal(t, 3, updated.Stages[2].Order)

	_, err = env.stages.AddStage(ctx, funnel.ID, "   ")
	require.Error(t, err)
	assert.True(t, usecase.IsValidation(err))
}

func TestRemoveStage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	funnel, err := env.createFunnel.Execute(ctx, usecase.CreateFunnelInput{
		Name:   "Vendas",
		Stages: []string{"Novo", "Proposta"},
	})
	require.NoError(t, err)

	updated, err := env.stages.RemoveStage(ctx, funnel.ID, funnel.Stages[1].ID)
	require.NoError(t, err)
	require.Len(t, updated.Stages, 1)
	assert.Equal(t, "Novo", updated.Stages[0].Name)

	// Todo funil mantém pelo menos um estágio.
	_, err = env.stages.RemoveStage(ctx, funnel.ID, funnel.Stages[0].ID)
	require.Error(t, err)
	assert.True(t, usecase.IsConflict(err))

	stored, err := env.funnels.FindByID(ctx, funnel.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Stages, 1)
}

func TestRemoveStageWithLeadsRejected(t *testing.T) {
	env := newTestEnv(t)
	funnel, _, _ := env.seedVendas(t)
	ctx := context.Background()

	// Ana está em Novo: remover o estágio deixaria o lead órfão.
	_, err := env.stages.RemoveStage(ctx, funnel.ID, funnel.Stages[0].ID)
	require.Error(t, err)
	assert.True(t, usecase.IsConflict(err))

	// Fechado está vazio, pode sair.
	updated, err := env.stages.RemoveStage(ctx, funnel.ID, funnel.Stages[1].ID)
	require.NoError(t, err)
	assert.Len(t, updated.Stages, 1)
}

func TestRemoveUnknownStage(t *testing.T) {
	env := newTestEnv(t)
	funnel, _, _ := env.seedVendas(t)

	_, err := env.stages.RemoveStage(context.Background(), funnel.ID, "nao-existe")
	require.Error(t, err)
	assert.True(t, usecase.IsValidation(err))
}
