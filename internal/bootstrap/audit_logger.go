package bootstrap

import "context"

// AuditLog is a process lifecycle event, separate from the domain audit
// trail stored in the database.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
