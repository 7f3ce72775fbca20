package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"
)

// ProcessFunc handles one task. Panics are recovered and reported as errors.
type ProcessFunc func(ctx context.Context, task Task) (any, error)

type WorkerPool struct {
	workers    int
	taskQueue  chan Task
	resultChan chan Result
	wg         sync.WaitGroup
	taskGenWg  sync.WaitGroup
	statsMu    sync.Mutex
	stats      *Stats
	ctx        context.Context
	cancel     context.CancelFunc
	logger     *slog.Logger
	monitor    time.Duration
}

func NewPool(ctx context.Context, workers int, logger *slog.Logger) *WorkerPool {
	ctx, cancel := context.WithCancel(ctx)

	return &WorkerPool{
		workers:    workers,
		taskQueue:  make(chan Task, 1000),
		resultChan: make(chan Result, 1000),
		stats:      &Stats{StartTime: time.Now()},
		ctx:        ctx,
		cancel:     cancel,
		logger:     logger,
		monitor:    5 * time.Second,
	}
}

// Process starts the workers on seeds and returns the result channel, which
// is closed by Stop once every task has been handled.
func (wp *WorkerPool) Process(seeds []string, processFunc ProcessFunc) <-chan Result {
	wp.statsMu.Lock()
	wp.stats.Total = len(seeds)
	wp.statsMu.Unlock()

	// Start workers
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go func() { wp.worker(processFunc) }()
	}

	// Start task generator
	wp.taskGenWg.Add(1)
	go func() {
		defer wp.taskGenWg.Done()
		wp.generateTasks(seeds)
	}()

	go wp.monitorStats()

	return wp.resultChan
}

func (wp *WorkerPool) generateTasks(seeds []string) {
	defer close(wp.taskQueue)

	wp.logger.Debug("task generator started", "seeds", len(seeds))

	sent := 0
	for i, seed := range seeds {
		task := NewTask(strconv.Itoa(i+1), seed)
		select {
		case wp.taskQueue <- task:
			sent++
		case <-wp.ctx.Done():
			wp.logger.Debug("task generator cancelled", "sent", sent, "total", len(seeds))
			return
		}
	}

	wp.logger.Debug("task generator completed", "sent", sent)
}

func (wp *WorkerPool) worker(processFunc ProcessFunc) {
	defer wp.wg.Done()

	for {
		select {
		case task, ok := <-wp.taskQueue:
			if !ok {
				return
			}

			start := time.Now()
			task.Status = TaskProcessing

			// Handle panics in processFunc
			data, err := func() (data any, err error) {
				defer func() {
					if r := recover(); r != nil {
						err = fmt.Errorf("panic in processFunc: %v", r)
					}
				}()
				return processFunc(wp.ctx, task)
			}()

			if err != nil {
				task.Status = TaskFailed
			} else {
				task.Status = TaskCompleted
			}

			result := Result{
				Task:  task,
				Data:  data,
				Error: err,
				Time:  time.Since(start),
			}

			wp.updateStats(result)

			select {
			case wp.resultChan <- result:
				if result.Error != nil {
					wp.logger.Debug("task failed", "task", task.ID, "seed", task.Seed, "error", result.Error)
				}
			case <-wp.ctx.Done():
				return
			}

		case <-wp.ctx.Done():
			return
		}
	}
}

func (wp *WorkerPool) updateStats(result Result) {
	wp.statsMu.Lock()
	defer wp.statsMu.Unlock()

	done := wp.stats.Completed + wp.stats.Failed
	wp.stats.AvgTime = (wp.stats.AvgTime*time.Duration(done) + result.Time) / time.Duration(done+1)

	if result.Error != nil {
		wp.stats.Failed++
	} else {
		wp.stats.Completed++
	}

	done++
	wp.stats.SuccessRate = float64(wp.stats.Completed) / float64(done) * 100

	elapsed := time.Since(wp.stats.StartTime)
	avgTimePerTask := elapsed / time.Duration(done)
	remainingTasks := wp.stats.Total - done
	wp.stats.ETA = time.Now().Add(avgTimePerTask * time.Duration(remainingTasks))
}

// Stats returns a snapshot of the pool's counters.
func (wp *WorkerPool) Stats() Stats {
	wp.statsMu.Lock()
	defer wp.statsMu.Unlock()
	return *wp.stats
}

func (wp *WorkerPool) monitorStats() {
	ticker := time.NewTicker(wp.monitor)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			wp.logStats()
		case <-wp.ctx.Done():
			return
		}
	}
}

func (wp *WorkerPool) logStats() {
	stats := wp.Stats()
	done := stats.Completed + stats.Failed
	progress := 0.0
	if stats.Total > 0 {
		progress = float64(done) / float64(stats.Total) * 100
	}

	wp.logger.Info("progress",
		"done", done,
		"total", stats.Total,
		"percent", fmt.Sprintf("%.1f", progress),
		"success_rate", fmt.Sprintf("%.1f", stats.SuccessRate),
		"avg", stats.AvgTime.Round(time.Millisecond),
		"eta", stats.ETA.Format("15:04:05"),
	)
}

// Stop waits for every queued task to finish, closes the result channel and
// releases the pool's context. Results must be drained concurrently.
func (wp *WorkerPool) Stop() {
	// Wait for task generator to finish sending all tasks
	wp.taskGenWg.Wait()

	// Task generator already closed wp.taskQueue
	// Now wait for workers to finish processing all tasks
	wp.wg.Wait()

	// Close the result channel after all workers are done
	close(wp.resultChan)
	wp.cancel()

	stats := wp.Stats()
	wp.logger.Debug("pool finished",
		"total", stats.Total,
		"completed", stats.Completed,
		"failed", stats.Failed,
		"elapsed", time.Since(stats.StartTime).Round(time.Second),
	)
}
