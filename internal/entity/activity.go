package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActivityCall    = "call"
	ActivityMeeting = "meeting"
	ActivityEmail   = "email"
	ActivityTask    = "task"
	ActivityNote    = "note"
)

const (
	ActivityPending   = "pending"
	ActivityCompleted = "completed"
	ActivityCancelled = "cancelled"
)

// RelatedRecord aponta para o registro ao qual a atividade se refere (lead, client, deal).
type RelatedRecord struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Activity struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      string         `json:"status"`
	DueDate     *time.Time     `json:"dueDate,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	CreatedBy   string         `json:"createdBy"`
	RelatedTo   *RelatedRecord `json:"relatedTo,omitempty"`
}

func NewActivity(actType, title, description, createdBy string, dueDate *time.Time, related *RelatedRecord) *Activity {
	return &Activity{
		ID:          uuid.New().String(),
		Type:        actType,
		Title:       title,
		Description: description,
		Status:      ActivityPending,
		DueDate:     dueDate,
		CreatedAt:   time.Now(),
		CreatedBy:   createdBy,
		RelatedTo:   related,
	}
}

func ValidActivityType(t string) bool {
	switch t {
	case ActivityCall, ActivityMeeting, ActivityEmail, ActivityTask, ActivityNote:
		return true
	}
	return false
}

func ValidActivityStatus(s string) bool {
	switch s {
	case ActivityPending, ActivityCompleted, ActivityCancelled:
		return true
	}
	return false
}
