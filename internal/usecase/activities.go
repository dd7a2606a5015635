package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/gabrielmpr/crmfunil/internal/entity"
)

type ActivityUseCase struct {
	ActivityRepo ActivityRepositoryInterface
	Logs         LogRepositoryInterface
	Mailer       ReminderMailer
}

func NewActivityUseCase(activities ActivityRepositoryInterface, logs LogRepositoryInterface, mailer ReminderMailer) *ActivityUseCase {
	return &ActivityUseCase{ActivityRepo: activities, Logs: logs, Mailer: mailer}
}

func (uc *ActivityUseCase) Create(ctx context.Context, input CreateActivityInput) (*entity.Activity, error) {
	if isBlank(input.Title) {
		return nil, ValidationError{"title", "is required"}
	}
	if !entity.ValidActivityType(input.Type) {
		return nil, ValidationError{"type", "must be call, meeting, email, task or note"}
	}

	var due *time.Time
	if input.DueDate != nil {
		t, err := time.Parse(time.RFC3339, *input.DueDate)
		if err != nil {
			return nil, ValidationError{"dueDate", "must be RFC3339"}
		}
		due = &t
	}

	var related *entity.RelatedRecord
	if input.RelatedID != "" {
		related = &entity.RelatedRecord{
			Type: input.RelatedType,
			ID:   input.RelatedID,
			Name: input.RelatedName,
		}
	}

	createdBy := input.CreatedBy
	if createdBy == "" {
		createdBy = systemUser
	}

	activity := entity.NewActivity(input.Type, input.Title, input.Description, createdBy, due, related)
	if err := uc.ActivityRepo.Create(ctx, activity); err != nil {
		return nil, &StorageError{Op: "create activity", Err: err}
	}

	appendLog(ctx, uc.Logs, "Atividade criada", "Nova atividade: "+activity.Title, ModuleActivities)
	return activity, nil
}

func (uc *ActivityUseCase) Update(ctx context.Context, id string, input UpdateActivityInput) (*entity.Activity, error) {
	activity, err := uc.ActivityRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, NotFoundError{"activity", id}
		}
		return nil, &StorageError{Op: "load activity", Err: err}
	}

	if input.Title != nil {
		if isBlank(*input.Title) {
			return nil, ValidationError{"title", "is required"}
		}
		activity.Title = *input.Title
	}
	if input.Description != nil {
		activity.Description = *input.Description
	}
	if input.Status != nil {
		if !entity.ValidActivityStatus(*input.Status) {
			return nil, ValidationError{"status", "must be pending, completed or cancelled"}
		}
		activity.Status = *input.Status
	}
	if input.DueDate != nil {
		t, err := time.Parse(time.RFC3339, *input.DueDate)
		if err != nil {
			return nil, ValidationError{"dueDate", "must be RFC3339"}
		}
		activity.DueDate = &t
	}

	if err := uc.ActivityRepo.Save(ctx, activity); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, NotFoundError{"activity", id}
		}
		return nil, &StorageError{Op: "save activity", Err: err}
	}

	appendLog(ctx, uc.Logs, "Atividade atualizada", "Atividade "+id+" foi atualizada", ModuleActivities)
	return activity, nil
}

func (uc *ActivityUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.ActivityRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return NotFoundError{"activity", id}
		}
		return &StorageError{Op: "delete activity", Err: err}
	}

	appendLog(ctx, uc.Logs, "Atividade excluída", "Atividade "+id+" foi removida", ModuleActivities)
	return nil
}

func (uc *ActivityUseCase) List(ctx context.Context) ([]entity.Activity, error) {
	activities, err := uc.ActivityRepo.GetAll(ctx)
	if err != nil {
		return nil, &StorageError{Op: "load activities", Err: err}
	}
	return activities, nil
}

// Upcoming lista atividades pendentes com vencimento em [now, now+within),
// ordenadas pelo vencimento.
func (uc *ActivityUseCase) Upcoming(ctx context.Context, now time.Time, within time.Duration) ([]entity.Activity, error) {
	activities, err := uc.ActivityRepo.GetAll(ctx)
	if err != nil {
		return nil, &StorageError{Op: "load activities", Err: err}
	}

	limit := now.Add(within)
	out := make([]entity.Activity, 0)
	for _, a := range activities {
		if a.Status != entity.ActivityPending || a.DueDate == nil {
			continue
		}
		if !a.DueDate.Before(now) && a.DueDate.Before(limit) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DueDate.Before(*out[j].DueDate)
	})
	return out, nil
}

// SendReminders envia um e-mail por atividade a vencer. Falha de envio não
// interrompe as demais; retorna quantos saíram.
func (uc *ActivityUseCase) SendReminders(ctx context.Context, to string, now time.Time, within time.Duration) (int, error) {
	if uc.Mailer == nil {
		return 0, ConflictError{"mail sender not configured"}
	}

	upcoming, err := uc.Upcoming(ctx, now, within)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, a := range upcoming {
		if err := uc.Mailer.SendActivityReminder(to, a.Title, a.Description, *a.DueDate); err != nil {
			log.Printf("⚠️ lembrete não enviado para atividade %s: %v", a.ID, err)
			continue
		}
		sent++
	}

	if sent > 0 {
		appendLog(ctx, uc.Logs, "Lembretes enviados", "Foram enviados "+strconv.Itoa(sent)+" lembretes", ModuleActivities)
	}
	return sent, nil
}
