// internal/app/system/workers/auditretention.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/studyhub/internal/app/store/audit"
	"github.com/dalemusser/studyhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// AuditRetention periodically deletes audit events older than the
// retention window.
type AuditRetention struct {
	events    *audit.Store
	log       *zap.Logger
	interval  time.Duration
	retention time.Duration
	stopCh    chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// NewAuditRetention creates a retention worker. interval is how often a
// sweep runs; retention is how long events are kept.
func NewAuditRetention(events *audit.Store, logger *zap.Logger, interval, retention time.Duration) *AuditRetention {
	return &AuditRetention{
		events:    events,
		log:       logger,
		interval:  interval,
		retention: retention,
		stopCh:    make(chan struct{}),
	}
}

// Start runs one sweep immediately and then one per interval until Stop.
func (w *AuditRetention) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("audit retention worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("retention", w.retention))
}

// Stop signals the worker to stop and waits for it to finish. Safe to call
// more than once.
func (w *AuditRetention) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		w.log.Info("audit retention worker stopped")
	})
}

func (w *AuditRetention) run() {
	defer w.wg.Done()

	w.Sweep()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Sweep()
		}
	}
}

// Sweep deletes expired events once and reports how many were removed.
func (w *AuditRetention) Sweep() int64 {
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Long())
	defer cancel()

	cutoff := time.Now().UTC().Add(-w.retention)
	count, err := w.events.DeleteBefore(ctx, cutoff)
	if err != nil {
		w.log.Error("failed to prune audit events", zap.Error(err))
		return 0
	}
	if count > 0 {
		w.log.Info("pruned audit events", zap.Int64("count", count), zap.Time("cutoff", cutoff))
	}
	return count
}
