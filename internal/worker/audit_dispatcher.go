package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/yellowjack/loyaltybot/internal/adapter/logchannel"
	"github.com/yellowjack/loyaltybot/internal/domain/model"
)

// AuditDispatcher fans audit records out to the log channel from a bounded
// queue. Publishing happens off the request path, so a slow or rate-limited
// channel never stalls a ledger mutation.
type AuditDispatcher struct {
	publisher logchannel.Client
	workers   int
	logger    *slog.Logger

	jobs   chan model.AuditRecord
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewAuditDispatcher constructs the audit worker pool.
func NewAuditDispatcher(publisher logchannel.Client, queueSize, workers int, logger *slog.Logger) *AuditDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &AuditDispatcher{
		publisher: publisher,
		workers:   workers,
		logger:    logger,
		jobs:      make(chan model.AuditRecord, queueSize),
	}
}

// Enqueue queues a record for publishing. When the queue is full the record
// is dropped with a warning rather than blocking the caller; the ledger
// mutation itself has already been persisted.
func (d *AuditDispatcher) Enqueue(record model.AuditRecord) bool {
	select {
	case d.jobs <- record:
		return true
	default:
		d.logger.Warn("audit queue full, dropping record",
			slog.String("actor", record.Actor),
			slog.String("target", record.Target),
			slog.Int64("amount", record.Amount),
		)
		return false
	}
}

// Start launches the worker pool.
func (d *AuditDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Stop drains in-flight work and waits for all workers to finish.
func (d *AuditDispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *AuditDispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case record := <-d.jobs:
			d.handleRecord(ctx, record)
		}
	}
}

func (d *AuditDispatcher) handleRecord(ctx context.Context, record model.AuditRecord) {
	err := d.publisher.Publish(ctx, record)
	if err == nil {
		return
	}

	switch e := err.(type) {
	case logchannel.TooManyRequestsError:
		d.logger.Warn("log channel rate limited", slog.Duration("retry_after", e.RetryAfter))
		select {
		case <-ctx.Done():
		case <-time.After(e.RetryAfter):
			if err := d.publisher.Publish(ctx, record); err != nil {
				d.logger.Error("audit publish retry failed", slog.String("target", record.Target), slog.String("error", err.Error()))
			}
		}
	default:
		d.logger.Error("audit publish failed", slog.String("target", record.Target), slog.String("error", err.Error()))
	}
}
