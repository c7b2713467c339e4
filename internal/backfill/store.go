package backfill

import (
	"sync"
	"time"
)

// Store keeps jobs in memory. Jobs are operational state, not data of
// record: a restart losing queued jobs is acceptable, the assembled tables
// themselves live in Postgres.
type Store struct {
	mu    sync.Mutex
	jobs  map[string]*Job
	order []string // insertion order, oldest first
}

// NewStore creates an empty job store.
func NewStore() *Store {
	return &Store{jobs: make(map[string]*Job)}
}

// Create registers a new job.
func (s *Store) Create(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
	s.order = append(s.order, job.ID)
}

// Get returns a copy of the job, or nil when unknown.
func (s *Store) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id].Copy()
}

// ClaimNext transitions the oldest queued job to running and returns a copy,
// or nil when nothing is queued.
func (s *Store) ClaimNext() *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.order {
		job := s.jobs[id]
		if job.Status != JobStatusQueued {
			continue
		}
		now := time.Now()
		job.Status = JobStatusRunning
		job.StartedAt = &now
		job.Message = "running"
		return job.Copy()
	}
	return nil
}

// Update applies fn to the stored job under the lock.
func (s *Store) Update(id string, fn func(job *Job)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[id]; ok {
		fn(job)
	}
}

// Active returns a copy of the currently running job, or nil.
func (s *Store) Active() *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.order {
		if s.jobs[id].Status == JobStatusRunning {
			return s.jobs[id].Copy()
		}
	}
	return nil
}

// Recent returns copies of the most recently created jobs, newest first.
func (s *Store) Recent(limit int) []*Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Job
	for i := len(s.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.jobs[s.order[i]].Copy())
	}
	return out
}
