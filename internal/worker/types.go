package worker

import (
	"time"
)

type TaskStatus int

const (
	TaskPending TaskStatus = iota
	TaskProcessing
	TaskCompleted
	TaskFailed
)

func (s TaskStatus) String() string {
	switch s {
	case TaskPending:
		return "pending"
	case TaskProcessing:
		return "processing"
	case TaskCompleted:
		return "completed"
	case TaskFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Task is one seed identifier waiting to be crawled.
type Task struct {
	ID      string
	Seed    string
	Status  TaskStatus
	Created time.Time
}

type Result struct {
	Task  Task
	Data  any
	Error error
	Time  time.Duration
}

type Stats struct {
	Total       int
	Completed   int
	Failed      int
	SuccessRate float64
	AvgTime     time.Duration
	StartTime   time.Time
	ETA         time.Time
}

func NewTask(id, seed string) Task {
	return Task{
		ID:      id,
		Seed:    seed,
		Status:  TaskPending,
		Created: time.Now(),
	}
}
