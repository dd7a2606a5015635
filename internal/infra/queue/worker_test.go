package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielmpr/crmfunil/internal/entity"
)

type capturingLogWriter struct {
	entries []*entity.LogEntry
}

func (c *capturingLogWriter) Append(ctx context.Context, e *entity.LogEntry) error {
	c.entries = append(c.entries, e)
	return nil
}

func TestProcessMessageStageChanged(t *testing.T) {
	logs := &capturingLogWriter{}
	w := &AuditWorker{Logs: logs}
	occurred := time.Date(2026, time.March, 10, 14, 30, 0, 0, time.UTC)

	err := w.processMessage(context.Background(), LeadEventPayload{
		Event:      EventLeadStageChanged,
		LeadID:     "l1",
		LeadName:   "Ana",
		FromStage:  "Novo",
		ToStage:    "Fechado",
		Reason:     "Contrato assinado",
		OccurredAt: occurred,
	})
	require.NoError(t, err)

	require.Len(t, logs.entries, 1)
	entry := logs.entries[0]
	assert.Equal(t, "Lead movido", entry.Action)
	assert.Equal(t, "Ana: Novo → Fechado (Contrato assinado)", entry.Details)
	assert.Equal(t, "worker", entry.User)
	assert.Equal(t, "events", entry.Module)
	assert.Equal(t, occurred, entry.Timestamp)
}

func TestProcessMessageCreatedAndDeleted(t *testing.T) {
	logs := &capturingLogWriter{}
	w := &AuditWorker{Logs: logs}
	ctx := context.Background()

	require.NoError(t, w.processMessage(ctx, LeadEventPayload{
		Event:    EventLeadCreated,
		LeadID:   "l1",
		LeadName: "Ana",
	}))
	require.NoError(t, w.processMessage(ctx, LeadEventPayload{
		Event:  EventLeadDeleted,
		LeadID: "l1",
	}))

	require.Len(t, logs.entries, 2)
	assert.Equal(t, "Lead criado", logs.entries[0].Action)
	assert.Equal(t, "Lead excluído", logs.entries[1].Action)
}

func TestProcessMessageUnknownEventStillLogged(t *testing.T) {
	logs := &capturingLogWriter{}
	w := &AuditWorker{Logs: logs}

	require.NoError(t, w.processMessage(context.Background(), LeadEventPayload{
		Event:  "lead.telepathy",
		LeadID: "l1",
	}))
	require.Len(t, logs.entries, 1)
	assert.Equal(t, "lead.telepathy", logs.entries[0].Action)
}
