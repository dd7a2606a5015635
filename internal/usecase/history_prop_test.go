package usecase_test

import (
	"context"
	"testing"

	"pgregory.net/rapid"

	"github.com/gabrielmpr/crmfunil/internal/entity"
	"github.com/gabrielmpr/crmfunil/internal/usecase"
)

// Propriedade: para qualquer sequência de comandos de troca de estágio, o
// histórico só cresce, cresce exatamente um por troca efetiva, nunca tem
// entrada com motivo em branco, e o lead sempre aponta para um estágio do
// próprio funil.
func TestStageHistoryAppendOnlyProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		env := newTestEnv(rt)
		ctx := context.Background()

		numStages := rapid.IntRange(2, 5).Draw(rt, "numStages")
		stageNames := make([]string, numStages)
		for i := range stageNames {
			stageNames[i] = "Estágio " + string(rune('A'+i))
		}

		funnel, err := env.createFunnel.Execute(ctx, usecase.CreateFunnelInput{
			Name:   "Vendas",
			Stages: stageNames,
		})
		if err != nil {
			rt.Fatalf("criar funil: %v", err)
		}

		product := entity.NewProduct("Plano", 100, "", nil)
		if err := env.products.Create(ctx, product); err != nil {
			rt.Fatalf("criar produto: %v", err)
		}

		lead, err := env.createLead.Execute(ctx, usecase.CreateLeadInput{
			Name:      "Ana",
			ProductID: product.ID,
			FunnelID:  funnel.ID,
		})
		if err != nil {
			rt.Fatalf("criar lead: %v", err)
		}

		stageIDs := make(map[string]bool, numStages)
		for _, s := range funnel.Stages {
			stageIDs[s.ID] = true
		}

		moves := rapid.IntRange(0, 15).Draw(rt, "moves")
		expectedLen := 0
		var snapshot []entity.StageChange

		for i := 0; i < moves; i++ {
			target := funnel.Stages[rapid.IntRange(0, numStages-1).Draw(rt, "target")]
			blank := rapid.Bool().Draw(rt, "blankReason")

			reason := rapid.StringMatching(`[a-zà-ú ]{1,20}[a-zà-ú]`).Draw(rt, "reason")
			if blank {
				reason = "   "
			}

			current, err := env.leads.FindByID(ctx, lead.ID)
			if err != nil {
				rt.Fatalf("carregar lead: %v", err)
			}
			wasSameStage := current.StageID == target.ID

			moved, err := env.changeStage.Execute(ctx, usecase.ChangeStageInput{
				LeadID:    lead.ID,
				ToStageID: target.ID,
				Reason:    reason,
			})

			switch {
			case blank:
				if err == nil || !usecase.IsValidation(err) {
					rt.Fatalf("motivo em branco deveria falhar validação, erro: %v", err)
				}
			case wasSameStage:
				if err != nil {
					rt.Fatalf("no-op não deveria falhar: %v", err)
				}
			default:
				if err != nil {
					rt.Fatalf("troca válida falhou: %v", err)
				}
				expectedLen++
				entry := moved.StageHistory[len(moved.StageHistory)-1]
				if entry.ToStage != target.Name {
					rt.Fatalf("snapshot do destino: esperava %q, veio %q", target.Name, entry.ToStage)
				}
			}

			stored, err := env.leads.FindByID(ctx, lead.ID)
			if err != nil {
				rt.Fatalf("recarregar lead: %v", err)
			}
			if len(stored.StageHistory) != expectedLen {
				rt.Fatalf("histórico com %d entradas, esperava %d", len(stored.StageHistory), expectedLen)
			}
			if !stageIDs[stored.StageID] {
				rt.Fatalf("lead apontando para estágio fora do funil: %s", stored.StageID)
			}

			// Prefixo imutável: nenhuma troca reescreve entradas anteriores.
			for j, prev := range snapshot {
				got := stored.StageHistory[j]
				if got != prev {
					rt.Fatalf("entrada %d reescrita: %+v != %+v", j, got, prev)
				}
			}
			for _, e := range stored.StageHistory {
				if e.Reason == "" || e.Reason == "   " {
					rt.Fatalf("entrada com motivo em branco persistida")
				}
			}
			snapshot = append([]entity.StageChange(nil), stored.StageHistory...)
		}
	})
}
