package entity

import (
	"time"

	"github.com/google/uuid"
)

// LogEntry é uma linha do ledger de auditoria do sistema. Append-only:
// entradas nunca são editadas nem removidas.
type LogEntry struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
	Module    string    `json:"module"`
	IPAddress string    `json:"ipAddress,omitempty"`
}

func NewLogEntry(action, details, user, module, ip string) *LogEntry {
	return &LogEntry{
		ID:        uuid.New().String(),
		Action:    action,
		Details:   details,
		Timestamp: time.Now(),
		User:      user,
		Module:    module,
		IPAddress: ip,
	}
}
