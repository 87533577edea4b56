// Package audit writes an append-only trail of account and task mutations.
// Entries are persisted off the request path; a failed write is logged and
// dropped, never surfaced to the caller.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/pmikheev/tasktracker/internal/metrics"
	"github.com/pmikheev/tasktracker/internal/models"
	repo "github.com/pmikheev/tasktracker/internal/repository"
	"github.com/pmikheev/tasktracker/internal/worker"
)

const writeTimeout = 5 * time.Second

type Recorder struct {
	logs repo.AuditLogs
	wp   *worker.Pool
}

func NewRecorder(logs repo.AuditLogs, wp *worker.Pool) *Recorder {
	return &Recorder{logs: logs, wp: wp}
}

// Record submits an audit entry for asynchronous persistence. A nil
// Recorder is a no-op, which keeps services wireable without a store.
func (r *Recorder) Record(entityType string, entityID int64, action string, details map[string]any) {
	if r == nil {
		return
	}
	entry := models.AuditLog{
		EntityType: entityType,
		EntityID:   &entityID,
		Action:     action,
		Details:    details,
	}
	r.wp.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := r.logs.Create(ctx, entry); err != nil {
			slog.Error("audit write", "action", action, "err", err)
		}
		metrics.AuditQueueDepth.Set(float64(r.wp.Depth()))
	})
	metrics.AuditQueueDepth.Set(float64(r.wp.Depth()))
}
