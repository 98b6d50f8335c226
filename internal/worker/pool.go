package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"softday/wellness-api/internal/infrastructure/metrics"
	"softday/wellness-api/internal/infrastructure/queue"
)

// Analyzer runs one background analysis task.
type Analyzer interface {
	Analyze(ctx context.Context, userID uint, conversationPublicID string) error
}

// Pool manages multiple background analysis workers.
type Pool struct {
	workers     []*Worker
	queue       queue.TaskQueue
	analyzer    Analyzer
	workerCount int
	taskTimeout time.Duration
	log         zerolog.Logger
	wg          sync.WaitGroup
}

// Config contains worker pool configuration.
type Config struct {
	WorkerCount int
	TaskTimeout time.Duration
}

// NewPool creates a new worker pool.
func NewPool(
	taskQueue queue.TaskQueue,
	analyzer Analyzer,
	cfg Config,
	log zerolog.Logger,
) *Pool {
	return &Pool{
		queue:       taskQueue,
		analyzer:    analyzer,
		workerCount: cfg.WorkerCount,
		taskTimeout: cfg.TaskTimeout,
		log:         log.With().Str("component", "worker-pool").Logger(),
	}
}

// Start initializes and starts all workers.
func (p *Pool) Start(ctx context.Context) error {
	p.log.Info().Int("worker_count", p.workerCount).Msg("starting worker pool")

	p.workers = make([]*Worker, p.workerCount)
	for i := 0; i < p.workerCount; i++ {
		worker := NewWorker(i+1, p.queue, p.analyzer, p.taskTimeout, p.log)
		p.workers[i] = worker

		p.wg.Add(1)
		go func(w *Worker) {
			defer p.wg.Done()
			w.Start(ctx)
		}(worker)
	}

	p.log.Info().Msg("worker pool started")

	return nil
}

// Stop gracefully shuts down all workers.
func (p *Pool) Stop() {
	p.log.Info().Msg("stopping worker pool")

	for _, worker := range p.workers {
		worker.Stop()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.log.Info().Msg("all workers stopped gracefully")
	case <-time.After(30 * time.Second):
		p.log.Warn().Msg("worker pool shutdown timed out")
	}
}

// Schedule enqueues an analysis task without blocking the caller. A full
// queue drops the task with a log line; the next conversation turn will
// cover the same history.
func (p *Pool) Schedule(userID uint, conversationPublicID string) {
	task := &queue.Task{UserID: userID, ConversationPublicID: conversationPublicID}
	if err := p.queue.Enqueue(task); err != nil {
		p.log.Warn().Err(err).Uint("user_id", userID).
			Str("conversation_id", conversationPublicID).
			Msg("analysis task dropped")
		metrics.RecordAnalysisTask("dropped")
		return
	}
	metrics.SetQueueDepth(p.queue.Depth())
}
