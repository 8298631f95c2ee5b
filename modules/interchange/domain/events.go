package domain

import (
	"github.com/google/uuid"
)

// ImportCompletedEvent is published on the event bus after an import run
// finishes, regardless of how many rows failed.
type ImportCompletedEvent struct {
	TenantID uuid.UUID
	Report   *Report
}

// ExportCompletedEvent is published after a workbook export is assembled.
type ExportCompletedEvent struct {
	TenantID uuid.UUID
	Bytes    int
}
