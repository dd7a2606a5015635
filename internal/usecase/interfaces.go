package usecase

import (
	"context"
	"time"

	"github.com/gabrielmpr/crmfunil/internal/entity"
	"github.com/gabrielmpr/crmfunil/internal/infra/queue"
)

type FunnelRepositoryInterface interface {
	GetAll(ctx context.Context) ([]entity.Funnel, error)
	FindByID(ctx context.Context, id string) (*entity.Funnel, error)
	Create(ctx context.Context, f *entity.Funnel) error
	Save(ctx context.Context, f *entity.Funnel) error
	Delete(ctx context.Context, id string) error
}

type LeadRepositoryInterface interface {
	GetAll(ctx context.Context) ([]entity.Lead, error)
	GetByFunnel(ctx context.Context, funnelID string) ([]entity.Lead, error)
	FindByID(ctx context.Context, id string) (*entity.Lead, error)
	Create(ctx context.Context, l *entity.Lead) error
	Save(ctx context.Context, l *entity.Lead) error
	ReplaceAll(ctx context.Context, leads []entity.Lead) error
	Delete(ctx context.Context, id string) error
	AnyInStage(ctx context.Context, stageID string) (bool, error)
}

type ProductRepositoryInterface interface {
	GetAll(ctx context.Context) ([]entity.Product, error)
	FindByID(ctx context.Context, id string) (*entity.Product, error)
	Create(ctx context.Context, p *entity.Product) error
	Save(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
}

type ActivityRepositoryInterface interface {
	GetAll(ctx context.Context) ([]entity.Activity, error)
	FindByID(ctx context.Context, id string) (*entity.Activity, error)
	Create(ctx context.Context, a *entity.Activity) error
	Save(ctx context.Context, a *entity.Activity) error
	Delete(ctx context.Context, id string) error
}

type LogRepositoryInterface interface {
	GetAll(ctx context.Context) ([]entity.LogEntry, error)
	Append(ctx context.Context, e *entity.LogEntry) error
	GetByModule(ctx context.Context, module string) ([]entity.LogEntry, error)
}

type EventProducerInterface interface {
	PublishLeadEvent(ctx context.Context, payload queue.LeadEventPayload) error
}

type ReminderMailer interface {
	SendActivityReminder(to, title, description string, due time.Time) error
}
