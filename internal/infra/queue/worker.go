package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/gabrielmpr/crmfunil/internal/entity"
)

// LogWriter é o pedaço do repositório de logs que o worker precisa.
type LogWriter interface {
	Append(ctx context.Context, e *entity.LogEntry) error
}

// AuditWorker consome os eventos de lead e materializa cada um como uma
// entrada no ledger de auditoria. Desacopla a escrita do log do caminho da
// requisição: publicar é rápido, persistir o log fica para cá.
type AuditWorker struct {
	Channel *amqp.Channel
	Logs    LogWriter
}

func NewAuditWorker(ch *amqp.Channel, logs LogWriter) *AuditWorker {
	return &AuditWorker{Channel: ch, Logs: logs}
}

func (w *AuditWorker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual é mais seguro)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadEventPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem podre (malformada). Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			if err := w.processMessage(context.Background(), payload); err != nil {
				log.Printf("❌ [WORKER] Erro ao gravar auditoria: %s", err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Audit worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}

func (w *AuditWorker) processMessage(ctx context.Context, payload LeadEventPayload) error {
	var action, details string

	switch payload.Event {
	case EventLeadCreated:
		action = "Lead criado"
		details = fmt.Sprintf("Novo lead: %s", payload.LeadName)
	case EventLeadStageChanged:
		action = "Lead movido"
		details = fmt.Sprintf("%s: %s → %s (%s)", payload.LeadName, payload.FromStage, payload.ToStage, payload.Reason)
	case EventLeadDeleted:
		action = "Lead excluído"
		details = fmt.Sprintf("Lead %s foi removido", payload.LeadID)
	default:
		// Evento desconhecido: registra mesmo assim para não perder rastro.
		action = payload.Event
		details = fmt.Sprintf("Lead %s", payload.LeadID)
	}

	// Módulo "events" separa o rastro assíncrono do ledger síncrono dos usecases.
	entry := entity.NewLogEntry(action, details, "worker", "events", "")
	entry.Timestamp = payload.OccurredAt
	return w.Logs.Append(ctx, entry)
}
