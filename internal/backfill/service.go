// Package backfill queues and executes batch assembly jobs.
package backfill

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fortuna/rinkside/pkg/metrics"
)

const (
	historyLimit = 10
	pollInterval = 3 * time.Second

	// maxRangeGames bounds range jobs so a typo'd id range cannot queue
	// millions of fetches.
	maxRangeGames = 5000
)

// Service coordinates job queueing, execution, and status reporting. A single
// worker loop claims queued jobs in order; within a job the runner fans out.
type Service struct {
	store  *Store
	runner *Runner

	mu        sync.Mutex
	reporters []Reporter

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *log.Logger
}

// NewService constructs a Service. Call Start to launch the worker.
func NewService(runner *Runner, logger *log.Logger) *Service {
	ctx, cancel := context.WithCancel(context.Background())

	if logger == nil {
		logger = log.New(log.Writer(), "[backfill] ", log.LstdFlags)
	}

	return &Service{
		store:  NewStore(),
		runner: runner,
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
}

// AddReporter registers a progress listener. Safe to call while running.
func (s *Service) AddReporter(r Reporter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reporters = append(s.reporters, r)
}

// Start launches the background worker loop.
func (s *Service) Start() {
	s.wg.Add(1)
	go s.worker()
}

// Shutdown stops the worker and waits for the in-flight job to yield.
func (s *Service) Shutdown(ctx context.Context) error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.wg.Wait()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Enqueue creates a new job from the provided request.
func (s *Service) Enqueue(req Request) (*Job, error) {
	jobType, ok := req.DeriveType()
	if !ok {
		return nil, fmt.Errorf("request needs game_ids or a valid start/end game id range")
	}

	job := &Job{
		ID:        uuid.NewString(),
		Type:      jobType,
		Status:    JobStatusQueued,
		Message:   "queued",
		CreatedAt: time.Now(),
	}

	switch jobType {
	case JobTypeGames:
		job.GameIDs = append([]int64(nil), req.GameIDs...)
		job.ProgressTotal = len(job.GameIDs)
	case JobTypeRange:
		if n := req.EndGameID - req.StartGameID + 1; n > maxRangeGames {
			return nil, fmt.Errorf("range spans %d games, limit is %d", n, maxRangeGames)
		}
		job.StartGameID = req.StartGameID
		job.EndGameID = req.EndGameID
		job.ProgressTotal = int(req.EndGameID - req.StartGameID + 1)
	}

	s.store.Create(job)
	s.logger.Printf("queued job %s (%s, %d games)", job.ID, job.Type, job.ProgressTotal)
	return job.Copy(), nil
}

// GetStatus returns the currently running job plus recent history.
func (s *Service) GetStatus() *StatusSummary {
	return &StatusSummary{
		ActiveJob: s.store.Active(),
		History:   s.store.Recent(historyLimit),
	}
}

// GetJob returns one job by id, or nil when unknown.
func (s *Service) GetJob(id string) *Job {
	return s.store.Get(id)
}

func (s *Service) worker() {
	defer s.wg.Done()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		job := s.store.ClaimNext()
		if job == nil {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				continue
			}
		}

		s.executeJob(job)

		if s.ctx.Err() != nil {
			return
		}
	}
}

func (s *Service) executeJob(job *Job) {
	s.logger.Printf("job %s started", job.ID)
	metrics.BackfillJobStarted()
	defer metrics.BackfillJobFinished()

	report := func(p Progress) {
		s.store.Update(job.ID, func(j *Job) {
			j.ProgressCurrent = p.Current
			if p.Total > 0 {
				j.ProgressTotal = p.Total
			}
			j.Message = p.Message
			if p.Error != "" {
				j.LastError = p.Error
			}
		})
		s.broadcast(p)
	}
	markFailed := func(gameID int64, err error) {
		s.store.Update(job.ID, func(j *Job) {
			j.FailedGames = append(j.FailedGames, gameID)
		})
		s.logger.Printf("job %s: game %d failed: %v", job.ID, gameID, err)
	}

	err := s.runner.Run(s.ctx, job, report, markFailed)

	now := time.Now()
	var final Progress
	s.store.Update(job.ID, func(j *Job) {
		j.CompletedAt = &now
		switch {
		case err != nil:
			j.Status = JobStatusCancelled
			j.Message = "cancelled"
		case j.ProgressTotal > 0 && len(j.FailedGames) == j.ProgressTotal:
			j.Status = JobStatusFailed
			j.Message = "all games failed"
		case len(j.FailedGames) > 0:
			j.Status = JobStatusCompleted
			j.Message = fmt.Sprintf("completed with %d failed games", len(j.FailedGames))
		default:
			j.Status = JobStatusCompleted
			j.Message = "completed"
		}
		final = Progress{
			JobID: j.ID, Status: j.Status, Message: j.Message,
			Current: j.ProgressCurrent, Total: j.ProgressTotal,
		}
	})
	s.broadcast(final)
	s.logger.Printf("job %s finished: %s", job.ID, final.Message)
}

func (s *Service) broadcast(p Progress) {
	s.mu.Lock()
	reporters := append([]Reporter(nil), s.reporters...)
	s.mu.Unlock()
	for _, r := range reporters {
		r.Report(p)
	}
}
