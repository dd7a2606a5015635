package usecase

import (
	"context"
	"time"

	"github.com/gabrielmpr/crmfunil/internal/entity"
)

// MetricsUseCase calcula agregados de leitura sobre o snapshot atual de
// leads. Nada aqui é persistido nem cacheado.
type MetricsUseCase struct {
	LeadRepo   LeadRepositoryInterface
	FunnelRepo FunnelRepositoryInterface
}

func NewMetricsUseCase(leads LeadRepositoryInterface, funnels FunnelRepositoryInterface) *MetricsUseCase {
	return &MetricsUseCase{LeadRepo: leads, FunnelRepo: funnels}
}

type DashboardSummary struct {
	TotalLeads       int     `json:"totalLeads"`
	ClosedLeads      int     `json:"closedLeads"`
	ConversionRate   float64 `json:"conversionRate"`
	Revenue          float64 `json:"revenue"`
	LeadsThisMonth   int     `json:"leadsThisMonth"`
	LeadGrowthPct    float64 `json:"leadGrowthPct"`
	RevenueThisMonth float64 `json:"revenueThisMonth"`
	RevenueGrowthPct float64 `json:"revenueGrowthPct"`
}

// StageTotal soma productPrice dos leads atualmente no estágio. Estágio
// vazio soma zero.
func (uc *MetricsUseCase) StageTotal(ctx context.Context, stageID string) (float64, error) {
	leads, err := uc.LeadRepo.GetAll(ctx)
	if err != nil {
		return 0, &StorageError{Op: "load leads", Err: err}
	}

	var total float64
	for _, l := range leads {
		if l.StageID == stageID {
			total += l.ProductPrice
		}
	}
	return total, nil
}

// ConversionRate = leads fechados / total. Zero leads → 0, nunca NaN.
func (uc *MetricsUseCase) ConversionRate(ctx context.Context) (float64, error) {
	leads, closed, err := uc.loadWithClosed(ctx)
	if err != nil {
		return 0, err
	}
	if len(leads) == 0 {
		return 0, nil
	}

	count := 0
	for _, l := range leads {
		if closed[l.ID] {
			count++
		}
	}
	return float64(count) / float64(len(leads)), nil
}

// Revenue soma productPrice dos leads no estágio terminal do seu funil.
func (uc *MetricsUseCase) Revenue(ctx context.Context) (float64, error) {
	leads, closed, err := uc.loadWithClosed(ctx)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, l := range leads {
		if closed[l.ID] {
			total += l.ProductPrice
		}
	}
	return total, nil
}

// Summary monta as métricas do dashboard para o instante now. O mês corrente
// é [início deste mês, now); o anterior, o mês-calendário cheio antes dele.
func (uc *MetricsUseCase) Summary(ctx context.Context, now time.Time) (*DashboardSummary, error) {
	leads, closed, err := uc.loadWithClosed(ctx)
	if err != nil {
		return nil, err
	}

	s := &DashboardSummary{TotalLeads: len(leads)}

	for _, l := range leads {
		if closed[l.ID] {
			s.ClosedLeads++
			s.Revenue += l.ProductPrice
		}
	}
	if s.TotalLeads > 0 {
		s.ConversionRate = float64(s.ClosedLeads) / float64(s.TotalLeads)
	}

	thisStart := startOfMonth(now)
	lastStart := startOfMonth(thisStart.AddDate(0, 0, -1))

	var leadsPrev int
	var revenuePrev float64
	for _, l := range leads {
		if inWindow(l.CreatedAt, thisStart, now) {
			s.LeadsThisMonth++
		} else if inWindow(l.CreatedAt, lastStart, thisStart) {
			leadsPrev++
		}

		if closed[l.ID] {
			at := closedAt(l)
			if inWindow(at, thisStart, now) {
				s.RevenueThisMonth += l.ProductPrice
			} else if inWindow(at, lastStart, thisStart) {
				revenuePrev += l.ProductPrice
			}
		}
	}

	s.LeadGrowthPct = growthPct(float64(s.LeadsThisMonth), float64(leadsPrev))
	s.RevenueGrowthPct = growthPct(s.RevenueThisMonth, revenuePrev)

	return s, nil
}

func (uc *MetricsUseCase) loadWithClosed(ctx context.Context) ([]entity.Lead, map[string]bool, error) {
	leads, err := uc.LeadRepo.GetAll(ctx)
	if err != nil {
		return nil, nil, &StorageError{Op: "load leads", Err: err}
	}
	funnels, err := uc.FunnelRepo.GetAll(ctx)
	if err != nil {
		return nil, nil, &StorageError{Op: "load funnels", Err: err}
	}

	// Fechado = sentado no último estágio do funil dele.
	terminal := make(map[string]bool, len(funnels))
	for _, f := range funnels {
		if len(f.Stages) > 0 {
			terminal[f.LastStage().ID] = true
		}
	}

	closed := make(map[string]bool, len(leads))
	for _, l := range leads {
		if terminal[l.StageID] {
			closed[l.ID] = true
		}
	}
	return leads, closed, nil
}

// growthPct adota a convenção normativa dos limites: denominador zero com
// período atual não-zero vale +100%; ambos zero vale 0%.
func growthPct(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return (current - previous) / previous * 100
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func inWindow(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

// closedAt aproxima o momento do fechamento pela última transição registrada;
// lead criado direto no estágio terminal usa o createdAt.
func closedAt(l entity.Lead) time.Time {
	if n := len(l.StageHistory); n > 0 {
		return l.StageHistory[n-1].Date
	}
	return l.CreatedAt
}
