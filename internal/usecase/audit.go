package usecase

import (
	"context"
	"log"

	"github.com/gabrielmpr/crmfunil/internal/entity"
)

const (
	ModuleFunnels    = "funnels"
	ModuleLeads      = "leads"
	ModuleProducts   = "products"
	ModuleActivities = "activities"
)

const systemUser = "system"

// appendLog registra a ação no ledger de auditoria. Best-effort nos fluxos em
// que a escrita do log não participa da transação: falha aqui não derruba a
// operação do usuário, só vira warning.
func appendLog(ctx context.Context, logs LogRepositoryInterface, action, details, module string) {
	if logs == nil {
		return
	}
	entry := entity.NewLogEntry(action, details, systemUser, module, "")
	if err := logs.Append(ctx, entry); err != nil {
		log.Printf("⚠️ audit log append failed (%s): %v", action, err)
	}
}
