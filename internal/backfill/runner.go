package backfill

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/fortuna/rinkside/internal/ingest/nhl"
	"github.com/fortuna/rinkside/internal/pbp"
	"github.com/fortuna/rinkside/internal/publisher"
)

const defaultRunnerConcurrency = 4

// GameSink persists one assembled game.
type GameSink interface {
	ReplaceGame(ctx context.Context, gameID int64, table *pbp.Table) error
}

// Announcer publishes game-completed notifications.
type Announcer interface {
	PublishGameCompleted(ctx context.Context, payload publisher.GameCompleted) error
}

// Runner executes backfill jobs against the NHL ingester with a bounded
// worker pool. Each game is isolated: fetch, persistence or publish failures
// mark the game failed and the job continues.
type Runner struct {
	ingester    *nhl.Ingester
	sink        GameSink
	announcer   Announcer
	concurrency int
}

// RunnerOption adjusts runner construction.
type RunnerOption func(*Runner)

// WithSink enables persistence of assembled games.
func WithSink(sink GameSink) RunnerOption {
	return func(r *Runner) { r.sink = sink }
}

// WithAnnouncer enables completion announcements.
func WithAnnouncer(a Announcer) RunnerOption {
	return func(r *Runner) { r.announcer = a }
}

// WithConcurrency caps in-flight games per job.
func WithConcurrency(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// NewRunner constructs a runner over the ingester.
func NewRunner(ingester *nhl.Ingester, opts ...RunnerOption) *Runner {
	r := &Runner{ingester: ingester, concurrency: defaultRunnerConcurrency}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes the job's games and reports progress. The returned error is
// non-nil only when the context was cancelled; per-game failures are recorded
// on the job and reported, never fatal to the batch.
func (r *Runner) Run(ctx context.Context, job *Job, report func(p Progress), markFailed func(gameID int64, err error)) error {
	games := job.gameList()
	total := len(games)

	report(Progress{
		JobID: job.ID, Status: JobStatusRunning,
		Message: fmt.Sprintf("processing %d games", total), Total: total,
	})

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		done int
	)
	sem := make(chan struct{}, r.concurrency)

	for _, gameID := range games {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(gameID int64) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			if ctx.Err() != nil {
				return
			}

			err := r.processGame(ctx, job.ID, gameID)

			mu.Lock()
			done++
			current := done
			mu.Unlock()

			p := Progress{
				JobID: job.ID, Status: JobStatusRunning, GameID: gameID,
				Current: current, Total: total,
			}
			if err != nil {
				markFailed(gameID, err)
				p.Message = fmt.Sprintf("game %d failed", gameID)
				p.Error = err.Error()
			} else {
				p.Message = fmt.Sprintf("game %d complete", gameID)
			}
			report(p)
		}(gameID)
	}
	wg.Wait()

	return ctx.Err()
}

func (r *Runner) processGame(ctx context.Context, jobID string, gameID int64) error {
	table, err := r.ingester.BuildGame(ctx, gameID)
	if err != nil {
		return err
	}

	if r.sink != nil {
		if err := r.sink.ReplaceGame(ctx, gameID, table); err != nil {
			return fmt.Errorf("persist game %d: %w", gameID, err)
		}
	}

	if r.announcer != nil {
		payload := publisher.GameCompleted{GameID: gameID, Events: table.Len(), JobID: jobID}
		if table.Len() > 0 {
			payload.HomeTeam = table.Rows[0].HomeTeam
			payload.AwayTeam = table.Rows[0].AwayTeam
		}
		if err := r.announcer.PublishGameCompleted(ctx, payload); err != nil {
			// Publishing is advisory; the table is already stored.
			log.Printf("[backfill] announce game %d: %v", gameID, err)
		}
	}
	return nil
}
