// Package queue carries background analysis tasks from the request path to
// the worker pool.
package queue

import (
	"errors"
	"time"
)

// ErrQueueFull reports that the queue rejected a task because its buffer is
// at capacity. Callers drop the task and log; analysis is eventually
// consistent, so a dropped task is recovered by the next conversation turn.
var ErrQueueFull = errors.New("task queue is full")

// Task is one unit of background analysis work.
type Task struct {
	UserID               uint
	ConversationPublicID string
	QueuedAt             time.Time
}

// TaskQueue defines the queue operations used by the producer and workers.
type TaskQueue interface {
	// Enqueue adds a task without blocking. Returns ErrQueueFull when the
	// buffer is at capacity.
	Enqueue(task *Task) error

	// Tasks exposes the receive side for workers.
	Tasks() <-chan *Task

	// Depth returns the number of tasks waiting in the buffer.
	Depth() int
}

// MemoryQueue is a bounded in-process channel queue. Tasks do not survive a
// restart, which is acceptable for profile analysis.
type MemoryQueue struct {
	tasks chan *Task
}

// NewMemoryQueue creates a queue with the given buffer size.
func NewMemoryQueue(size int) *MemoryQueue {
	if size < 1 {
		size = 1
	}
	return &MemoryQueue{tasks: make(chan *Task, size)}
}

func (q *MemoryQueue) Enqueue(task *Task) error {
	task.QueuedAt = time.Now()
	select {
	case q.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

func (q *MemoryQueue) Tasks() <-chan *Task {
	return q.tasks
}

func (q *MemoryQueue) Depth() int {
	return len(q.tasks)
}

var _ TaskQueue = (*MemoryQueue)(nil)
