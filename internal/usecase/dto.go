package usecase

type CreateFunnelInput struct {
	Name   string   `json:"name"`
	Stages []string `json:"stages"`
}

type CreateLeadInput struct {
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	ProductID string `json:"productId"`
	FunnelID  string `json:"funnelId"`
	StageID   string `json:"stageId,omitempty"` // vazio = primeiro estágio do funil
}

// UpdateLeadInput enumera exatamente os campos mutáveis fora de transição de
// estágio. Ponteiro nil = campo não tocado. StageID nunca passa por aqui.
type UpdateLeadInput struct {
	Name        *string `json:"name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Observation *string `json:"observation,omitempty"`
	ProductID   *string `json:"productId,omitempty"`
}

type ChangeStageInput struct {
	LeadID    string `json:"leadId"`
	ToStageID string `json:"toStageId"`
	Reason    string `json:"reason"`
}

type ReorderInput struct {
	FunnelID string `json:"funnelId"`
	StageID  string `json:"stageId"`
	LeadID   string `json:"leadId"`
	ToIndex  int    `json:"toIndex"`
}

type MoveRequestInput struct {
	LeadID    string `json:"leadId"`
	ToStageID string `json:"toStageId"`
}

type CreateProductInput struct {
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Description string   `json:"description,omitempty"`
	Features    []string `json:"features,omitempty"`
}

type UpdateProductInput struct {
	Name        *string  `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Description *string  `json:"description,omitempty"`
	Features    []string `json:"features,omitempty"`
}

type CreateActivityInput struct {
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	CreatedBy   string  `json:"createdBy,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"` // RFC3339
	RelatedType string  `json:"relatedType,omitempty"`
	RelatedID   string  `json:"relatedId,omitempty"`
	RelatedName string  `json:"relatedName,omitempty"`
}

type UpdateActivityInput struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
}
