package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/gabrielmpr/crmfunil/internal/entity"
)

// PendingMove é um arrasto entre estágios esperando o motivo do usuário.
// Nada foi aplicado ainda: o lead continua no estágio de origem até o confirm.
type PendingMove struct {
	LeadID        string `json:"leadId"`
	LeadName      string `json:"leadName"`
	FunnelID      string `json:"funnelId"`
	FromStageID   string `json:"fromStageId"`
	FromStageName string `json:"fromStageName"`
	ToStageID     string `json:"toStageId"`
	ToStageName   string `json:"toStageName"`
}

// BoardController orquestra o kanban do funil: reordenação dentro do estágio,
// e o ciclo Idle → PendingReason → Idle das movimentações entre estágios.
// Comandos explícitos no lugar de callbacks encadeados: Reorder, RequestMove,
// ConfirmMove, CancelMove, UpdateLead.
type BoardController struct {
	Leads       LeadRepositoryInterface
	Funnels     FunnelRepositoryInterface
	ChangeStage *ChangeStageUseCase
	UpdateUC    *UpdateLeadUseCase

	mu      sync.Mutex
	pending *PendingMove
}

func NewBoardController(
	leads LeadRepositoryInterface,
	funnels FunnelRepositoryInterface,
	changeStage *ChangeStageUseCase,
	updateUC *UpdateLeadUseCase,
) *BoardController {
	return &BoardController{
		Leads:       leads,
		Funnels:     funnels,
		ChangeStage: changeStage,
		UpdateUC:    updateUC,
	}
}

// Reorder reposiciona um lead dentro do seu próprio estágio. Puro rearranjo:
// sem motivo, sem entrada de histórico. O índice de destino é clampado.
func (b *BoardController) Reorder(ctx context.Context, input ReorderInput) error {
	funnel, err := b.Funnels.FindByID(ctx, input.FunnelID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return NotFoundError{"funnel", input.FunnelID}
		}
		return &StorageError{Op: "load funnel", Err: err}
	}
	if _, ok := funnel.StageByID(input.StageID); !ok {
		return ValidationError{"stageId", "does not belong to funnel"}
	}

	leads, err := b.Leads.GetAll(ctx)
	if err != nil {
		return &StorageError{Op: "load leads", Err: err}
	}

	// A ordem dos leads dentro de um estágio é a ordem deles no array da
	// coleção. Reordenar = permutar os slots ocupados pelo estágio.
	var slots []int
	for i := range leads {
		if leads[i].FunnelID == input.FunnelID && leads[i].StageID == input.StageID {
			slots = append(slots, i)
		}
	}

	pos := -1
	for j, idx := range slots {
		if leads[idx].ID == input.LeadID {
			pos = j
			break
		}
	}
	if pos == -1 {
		for i := range leads {
			if leads[i].ID == input.LeadID {
				return ValidationError{"leadId", "lead is not in the given stage"}
			}
		}
		return NotFoundError{"lead", input.LeadID}
	}

	members := make([]entity.Lead, len(slots))
	for j, idx := range slots {
		members[j] = leads[idx]
	}

	moved := members[pos]
	members = append(members[:pos], members[pos+1:]...)

	to := input.ToIndex
	if to < 0 {
		to = 0
	}
	if to > len(members) {
		to = len(members)
	}
	members = append(members[:to], append([]entity.Lead{moved}, members[to:]...)...)

	for j, idx := range slots {
		leads[idx] = members[j]
	}

	if err := b.Leads.ReplaceAll(ctx, leads); err != nil {
		return &StorageError{Op: "persist reorder", Err: err}
	}
	return nil
}

// RequestMove registra a intenção de mover entre estágios e entra em
// PendingReason. Um novo request substitui o pendente anterior.
func (b *BoardController) RequestMove(ctx context.Context, input MoveRequestInput) (*PendingMove, error) {
	lead, err := b.Leads.FindByID(ctx, input.LeadID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, NotFoundError{"lead", input.LeadID}
		}
		return nil, &StorageError{Op: "load lead", Err: err}
	}

	funnel, err := b.Funnels.FindByID(ctx, lead.FunnelID)
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
	if lead.StageID == input.ToStageID {
		return nil, ValidationError{"toStageId", "lead is already in this stage; use reorder"}
	}
	fromStage, _ := funnel.StageByID(lead.StageID)

	move := &PendingMove{
		LeadID:        lead.ID,
		LeadName:      lead.Name,
		FunnelID:      funnel.ID,
		FromStageID:   fromStage.ID,
		FromStageName: fromStage.Name,
		ToStageID:     toStage.ID,
		ToStageName:   toStage.Name,
	}

	b.mu.Lock()
	b.pending = move
	b.mu.Unlock()

	cp := *move
	return &cp, nil
}

// ConfirmMove commita o movimento pendente. Motivo em branco mantém o estado
// PendingReason (o usuário pode tentar de novo); falha de persistência desfaz
// tudo e volta para Idle.
func (b *BoardController) ConfirmMove(ctx context.Context, reason string) (*entity.Lead, error) {
	b.mu.Lock()
	move := b.pending
	b.mu.Unlock()

	if move == nil {
		return nil, ConflictError{"no move pending"}
	}
	if isBlank(reason) {
		return nil, ValidationError{"reason", "is required"}
	}

	lead, err := b.ChangeStage.Execute(ctx, ChangeStageInput{
		LeadID:    move.LeadID,
		ToStageID: move.ToStageID,
		Reason:    reason,
	})

	b.mu.Lock()
	if b.pending == move {
		b.pending = nil
	}
	b.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return lead, nil
}

// CancelMove descarta o movimento pendente sem deixar rastro: nem histórico,
// nem log, nem evento. Sempre seguro.
func (b *BoardController) CancelMove() {
	b.mu.Lock()
	b.pending = nil
	b.mu.Unlock()
}

// Pending expõe o movimento aguardando motivo, se houver.
func (b *BoardController) Pending() *PendingMove {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pending == nil {
		return nil
	}
	cp := *b.pending
	return &cp
}

// UpdateLead edita campos do card direto no board.
func (b *BoardController) UpdateLead(ctx context.Context, leadID string, input UpdateLeadInput) (*entity.Lead, error) {
	return b.UpdateUC.Execute(ctx, leadID, input)
}
