package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/storage"
)

// JobHandler is a function that processes a job
type JobHandler func(ctx context.Context, job *storage.Job) error

// Worker processes jobs from the queue
type Worker struct {
	jobRepo  *storage.JobRepository
	handlers map[string]JobHandler
	interval time.Duration
	stop     chan struct{}
	wg       sync.WaitGroup
	mu       sync.RWMutex
}

// NewWorker creates a new worker
func NewWorker(jobRepo *storage.JobRepository) *Worker {
	return &Worker{
		jobRepo:  jobRepo,
		handlers: make(map[string]JobHandler),
		interval: 1 * time.Second,
		stop:     make(chan struct{}),
	}
}

// RegisterHandler registers a handler for a job type
func (w *Worker) RegisterHandler(jobType string, handler JobHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers[jobType] = handler
}

// SetInterval sets the polling interval
func (w *Worker) SetInterval(interval time.Duration) {
	w.interval = interval
}

// Start begins processing jobs
func (w *Worker) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.run(ctx)
	log.Info().Msg("worker started")
}

// Stop gracefully stops the worker
func (w *Worker) Stop() {
	close(w.stop)
	w.wg.Wait()
	log.Info().Msg("worker stopped")
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case <-ticker.C:
			w.processNextJob(ctx)
		}
	}
}

func (w *Worker) processNextJob(ctx context.Context) {
	job, err := w.jobRepo.GetNextQueued(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get next job")
		return
	}
	if job == nil {
		return // no jobs to process
	}

	w.mu.RLock()
	handler, ok := w.handlers[job.Type]
	w.mu.RUnlock()

	if !ok {
		log.Error().Str("type", job.Type).Msg("no handler for job type")
		_ = w.jobRepo.Fail(ctx, job.ID, "no handler registered for job type: "+job.Type)
		return
	}

	if err := w.jobRepo.Start(ctx, job.ID); err != nil {
		log.Error().Str("job", job.ID).Err(err).Msg("failed to start job")
		return
	}

	log.Info().Str("job", job.ID).Str("type", job.Type).Str("url", job.URL).Msg("processing job")

	if err := handler(ctx, job); err != nil {
		w.handleJobFailure(ctx, job, err)
		return
	}

	log.Info().Str("job", job.ID).Msg("job completed")
}

func (w *Worker) handleJobFailure(ctx context.Context, job *storage.Job, jobErr error) {
	const maxRetries = 3

	log.Warn().Str("job", job.ID).Err(jobErr).Msg("job failed")

	if job.RetryCount < maxRetries {
		if err := w.jobRepo.Retry(ctx, job.ID); err != nil {
			log.Error().Str("job", job.ID).Err(err).Msg("failed to requeue job")
			return
		}
		log.Info().Str("job", job.ID).
			Int("attempt", job.RetryCount+1).Int("max", maxRetries).
			Msg("job queued for retry")
		return
	}

	if err := w.jobRepo.Fail(ctx, job.ID, jobErr.Error()); err != nil {
		log.Error().Str("job", job.ID).Err(err).Msg("failed to mark job failed")
	}
}
