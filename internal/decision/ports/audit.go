package ports

import (
	"context"

	"bankapi/pkg/platform/audit"
)

// AuditPort receives one event per completed evaluation.
type AuditPort interface {
	Emit(ctx context.Context, event audit.Event) error
}
