package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"softday/wellness-api/internal/infrastructure/metrics"
	"softday/wellness-api/internal/infrastructure/queue"
)

// Worker processes analysis tasks from the queue.
type Worker struct {
	id          int
	queue       queue.TaskQueue
	analyzer    Analyzer
	taskTimeout time.Duration
	log         zerolog.Logger
	stopChan    chan struct{}
}

// NewWorker creates a new background worker.
func NewWorker(
	id int,
	taskQueue queue.TaskQueue,
	analyzer Analyzer,
	taskTimeout time.Duration,
	log zerolog.Logger,
) *Worker {
	return &Worker{
		id:          id,
		queue:       taskQueue,
		analyzer:    analyzer,
		taskTimeout: taskTimeout,
		log:         log.With().Int("worker_id", id).Str("component", "worker").Logger(),
		stopChan:    make(chan struct{}),
	}
}

// Start begins processing tasks from the queue.
func (w *Worker) Start(ctx context.Context) {
	w.log.Info().Msg("worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("worker stopped by context")
			return
		case <-w.stopChan:
			w.log.Info().Msg("worker stopped")
			return
		case task := <-w.queue.Tasks():
			if task == nil {
				continue
			}
			w.processTask(ctx, task)
		}
	}
}

// Stop gracefully stops the worker.
func (w *Worker) Stop() {
	close(w.stopChan)
}

func (w *Worker) processTask(ctx context.Context, task *queue.Task) {
	metrics.SetQueueDepth(w.queue.Depth())

	w.log.Info().
		Uint("user_id", task.UserID).
		Str("conversation_id", task.ConversationPublicID).
		Dur("queued_for", time.Since(task.QueuedAt)).
		Msg("processing analysis task")

	taskCtx, cancel := context.WithTimeout(ctx, w.taskTimeout)
	defer cancel()

	if err := w.analyzer.Analyze(taskCtx, task.UserID, task.ConversationPublicID); err != nil {
		w.log.Error().Err(err).
			Uint("user_id", task.UserID).
			Str("conversation_id", task.ConversationPublicID).
			Msg("analysis task failed")
		metrics.RecordAnalysisTask("failed")
		return
	}

	metrics.RecordAnalysisTask("completed")
	w.log.Info().Uint("user_id", task.UserID).Msg("analysis task completed")
}
