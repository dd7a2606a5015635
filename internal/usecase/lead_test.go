package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielmpr/crmfunil/internal/usecase"
)

func TestCreateLeadDefaultsToFirstStage(t *testing.T) {
	env := newTestEnv(t)
	funnel, product, _ := env.seedVendas(t)

	lead, err := env.createLead.Execute(context.Background(), usecase.CreateLeadInput{
		Name:      "Bruno",
		Phone:     "(11) 98888-7777",
		ProductID: product.ID,
		FunnelID:  funnel.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, funnel.Stages[0].ID, lead.StageID)
	assert.Equal(t, product.Name, lead.ProductName)
	assert.Equal(t, product.Price, lead.ProductPrice)
	assert.Empty(t, lead.StageHistory)
	assert.False(t, lead.CreatedAt.IsZero())
}

func TestCreateLeadValidation(t *testing.T) {
	env := newTestEnv(t)
	funnel, product, _ := env.seedVendas(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input usecase.CreateLeadInput
	}{
		{"nome em branco", usecase.CreateLeadInput{Name: " ", ProductID: product.ID, FunnelID: funnel.ID}},
		{"produto em branco", usecase.CreateLeadInput{Name: "Bruno", FunnelID: funnel.ID}},
		{"funil em branco", usecase.CreateLeadInput{Name: "Bruno", ProductID: product.ID}},
		{"telefone curto", usecase.CreateLeadInput{Name: "Bruno", Phone: "9999", ProductID: product.ID, FunnelID: funnel.ID}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.createLead.Execute(ctx, tc.input)
			require.Error(t, err)
			assert.True(t, usecase.IsValidation(err))
		})
	}
}

func TestCreateLeadUnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	funnel, _, _ := env.seedVendas(t)

	_, err := env.createLead.Execute(context.Background(), usecase.CreateLeadInput{
		Name:      "Bruno",
		ProductID: "nao-existe",
		FunnelID:  funnel.ID,
	})
	require.Error(t, err)
	assert.True(t, usecase.IsNotFound(err))
}

func TestCreateLeadStageMustBelongToFunnel(t *testing.T) {
	env := newTestEnv(t)
	funnel, product, _ := env.seedVendas(t)
	ctx := context.Background()

	other, err := env.createFunnel.Execute(ctx, usecase.CreateFunnelInput{
		Name:   "Parcerias",
		Stages: []string{"Contato"},
	})
	require.NoError(t, err)

	_, err = env.createLead.Execute(ctx, usecase.CreateLeadInput{
		Name:      "Bruno",
		ProductID: product.ID,
		FunnelID:  funnel.ID,
		StageID:   other.Stages[0].ID,
	})
	require.Error(t, err)
	assert.True(t, usecase.IsValidation(err))
}

func TestUpdateLeadMergesOnlyGivenFields(t *testing.T) {
	env := newTestEnv(t)
	_, _, lead := env.seedVendas(t)
	ctx := context.Background()

	obs := "ligou pedindo desconto"
	updated, err := env.updateLead.Execute(ctx, lead.ID, usecase.UpdateLeadInput{
		Observation: &obs,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", updated.Name)
	assert.Equal(t, obs, updated.Observation)
	assert.Equal(t, lead.StageID, updated.StageID)
	assert.Empty(t, updated.StageHistory)

	blank := "  "
	_, err = env.updateLead.Execute(ctx, lead.ID, usecase.UpdateLeadInput{Name: &blank})
	require.Error(t, err)
	assert.True(t, usecase.IsValidation(err))
}

func TestUpdateLeadResnapshotsProduct(t *testing.T) {
	env := newTestEnv(t)
	_, _, lead := env.seedVendas(t)
	ctx := context.Background()

	premium := entityProductForTest(t, env, "Plano Enterprise", 500)

	updated, err := env.updateLead.Execute(ctx, lead.ID, usecase.UpdateLeadInput{
		ProductID: &premium.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Plano Enterprise", updated.ProductName)
	assert.Equal(t, float64(500), updated.ProductPrice)
}

func TestDeleteLeadIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	_, _, lead := env.seedVendas(t)
	ctx := context.Background()

	require.NoError(t, env.deleteLead.Execute(ctx, lead.ID))
	require.NoError(t, env.deleteLead.Execute(ctx, lead.ID))
	require.NoError(t, env.deleteLead.Execute(ctx, "nunca-existiu"))

	_, err := env.leads.FindByID(ctx, lead.ID)
	require.Error(t, err)
}
