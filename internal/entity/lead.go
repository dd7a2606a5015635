package entity

import (
	"time"

	"github.com/google/uuid"
)

// StageChange é um registro imutável de auditoria. Os nomes dos estágios são
// snapshots do momento da troca: renomear um estágio depois não reescreve o histórico.
type StageChange struct {
	FromStage string    `json:"fromStage"`
	ToStage   string    `json:"toStage"`
	Reason    string    `json:"reason"`
	Date      time.Time `json:"date"`
}

type Lead struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Phone        string        `json:"phone,omitempty"`
	ProductID    string        `json:"productId"`
	ProductName  string        `json:"productName"`
	ProductPrice float64       `json:"productPrice"`
	FunnelID     string        `json:"funnelId"`
	StageID      string        `json:"stageId"`
	CreatedAt    time.Time     `json:"createdAt"`
	Observation  string        `json:"observation,omitempty"`
	StageHistory []StageChange `json:"stageHistory"`
}

func NewLead(name, phone string, product *Product, funnelID, stageID string) *Lead {
	return &Lead{
		ID:           uuid.New().String(),
		Name:         name,
		Phone:        phone,
		ProductID:    product.ID,
		ProductName:  product.Name,
		ProductPrice: product.Price,
		FunnelID:     funnelID,
		StageID:      stageID,
		CreatedAt:    time.Now(),
		StageHistory: []StageChange{},
	}
}

// MoveTo aplica uma transição de estágio: seta o novo StageID e anexa exatamente
// um StageChange. Nunca edita nem remove entradas anteriores.
func (l *Lead) MoveTo(from, to Stage, reason string, at time.Time) {
	l.StageID = to.ID
	l.StageHistory = append(l.StageHistory, StageChange{
		FromStage: from.Name,
		ToStage:   to.Name,
		Reason:    reason,
		Date:      at,
	})
}

// SetProduct re-snapshota nome e preço. Edições futuras do produto não
// propagam para leads já criados.
func (l *Lead) SetProduct(p *Product) {
	l.ProductID = p.ID
	l.ProductName = p.Name
	l.ProductPrice = p.Price
}
