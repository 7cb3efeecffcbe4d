// internal/audit/logger.go
package audit

import (
	"context"
	"net/http"
)

// Entry describes one operator action.
type Entry struct {
	Action     string
	Subject    string
	EntityType string
	EntityID   string
	Context    map[string]any
}

// Logger defines the interface for auditing admin operations
type Logger interface {
	// LogAdminAction records entry. req may be nil for actions taken outside
	// an HTTP request, such as CLI commands.
	LogAdminAction(ctx context.Context, entry Entry, req *http.Request) error
}

// NoOpLogger is a logger that does nothing
type NoOpLogger struct{}

// LogAdminAction implements Logger.LogAdminAction
func (l *NoOpLogger) LogAdminAction(ctx context.Context, entry Entry, req *http.Request) error {
	return nil
}
