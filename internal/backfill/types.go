package backfill

import "time"

// JobType enumerates the supported backfill job variants.
type JobType string

const (
	// JobTypeGames processes an explicit list of game ids.
	JobTypeGames JobType = "games"
	// JobTypeRange processes every id in a contiguous game-id range.
	JobTypeRange JobType = "range"
)

// JobStatus represents the lifecycle state for a job.
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// Request is an incoming backfill invocation.
type Request struct {
	GameIDs     []int64 `json:"game_ids,omitempty"`
	StartGameID int64   `json:"start_game_id,omitempty"`
	EndGameID   int64   `json:"end_game_id,omitempty"`
}

// DeriveType infers the job type based on populated fields. An explicit game
// list wins over a range.
func (r Request) DeriveType() (JobType, bool) {
	if len(r.GameIDs) > 0 {
		return JobTypeGames, true
	}
	if r.StartGameID > 0 && r.EndGameID >= r.StartGameID {
		return JobTypeRange, true
	}
	return "", false
}

// Job is one unit of backfill work and its progress.
type Job struct {
	ID          string    `json:"job_id"`
	Type        JobType   `json:"job_type"`
	GameIDs     []int64   `json:"game_ids,omitempty"`
	StartGameID int64     `json:"start_game_id,omitempty"`
	EndGameID   int64     `json:"end_game_id,omitempty"`
	Status      JobStatus `json:"status"`
	Message     string    `json:"message,omitempty"`

	ProgressCurrent int     `json:"progress_current"`
	ProgressTotal   int     `json:"progress_total"`
	FailedGames     []int64 `json:"failed_games,omitempty"`
	LastError       string  `json:"last_error,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Copy returns a copy to prevent external mutation of store state.
func (j *Job) Copy() *Job {
	if j == nil {
		return nil
	}
	cpy := *j
	cpy.GameIDs = append([]int64(nil), j.GameIDs...)
	cpy.FailedGames = append([]int64(nil), j.FailedGames...)
	return &cpy
}

// gameList expands the job into the concrete ids to process.
func (j *Job) gameList() []int64 {
	if j.Type == JobTypeGames {
		return append([]int64(nil), j.GameIDs...)
	}
	ids := make([]int64, 0, j.EndGameID-j.StartGameID+1)
	for id := j.StartGameID; id <= j.EndGameID; id++ {
		ids = append(ids, id)
	}
	return ids
}

// Progress is one progress notification emitted while a job runs.
type Progress struct {
	JobID   string    `json:"job_id"`
	Status  JobStatus `json:"status"`
	GameID  int64     `json:"game_id,omitempty"`
	Message string    `json:"message"`
	Current int       `json:"current"`
	Total   int       `json:"total"`
	Error   string    `json:"error,omitempty"`
}

// Reporter receives progress notifications from running jobs.
type Reporter interface {
	Report(p Progress)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(p Progress)

// Report calls the wrapped function.
func (f ReporterFunc) Report(p Progress) { f(p) }

// StatusSummary is returned to API callers.
type StatusSummary struct {
	ActiveJob *Job   `json:"active_job,omitempty"`
	History   []*Job `json:"recent_jobs,omitempty"`
}
