package backfill

import (
	"testing"
	"time"
)

func newQueuedJob(id string) *Job {
	return &Job{
		ID:        id,
		Type:      JobTypeGames,
		GameIDs:   []int64{1, 2},
		Status:    JobStatusQueued,
		CreatedAt: time.Now(),
	}
}

func TestStoreClaimOrder(t *testing.T) {
	s := NewStore()
	s.Create(newQueuedJob("a"))
	s.Create(newQueuedJob("b"))

	first := s.ClaimNext()
	if first == nil || first.ID != "a" {
		t.Fatalf("first claim = %+v, want job a", first)
	}
	if first.Status != JobStatusRunning || first.StartedAt == nil {
		t.Errorf("claimed job not marked running: %+v", first)
	}

	second := s.ClaimNext()
	if second == nil || second.ID != "b" {
		t.Fatalf("second claim = %+v, want job b", second)
	}
	if s.ClaimNext() != nil {
		t.Error("claim with empty queue must return nil")
	}
}

func TestStoreCopiesAreIsolated(t *testing.T) {
	s := NewStore()
	s.Create(newQueuedJob("a"))

	got := s.Get("a")
	got.GameIDs[0] = 999
	got.Status = JobStatusFailed

	again := s.Get("a")
	if again.GameIDs[0] != 1 || again.Status != JobStatusQueued {
		t.Errorf("store state mutated through a returned copy: %+v", again)
	}
}

func TestStoreRecentNewestFirst(t *testing.T) {
	s := NewStore()
	for _, id := range []string{"a", "b", "c"} {
		s.Create(newQueuedJob(id))
	}

	recent := s.Recent(2)
	if len(recent) != 2 || recent[0].ID != "c" || recent[1].ID != "b" {
		t.Errorf("recent = %v", recent)
	}
}

func TestDeriveType(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want JobType
		ok   bool
	}{
		{"explicit list", Request{GameIDs: []int64{1}}, JobTypeGames, true},
		{"range", Request{StartGameID: 10, EndGameID: 20}, JobTypeRange, true},
		{"single-id range", Request{StartGameID: 10, EndGameID: 10}, JobTypeRange, true},
		{"list wins over range", Request{GameIDs: []int64{1}, StartGameID: 10, EndGameID: 20}, JobTypeGames, true},
		{"inverted range", Request{StartGameID: 20, EndGameID: 10}, "", false},
		{"empty", Request{}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.req.DeriveType()
			if got != tt.want || ok != tt.ok {
				t.Errorf("DeriveType() = %q, %v, want %q, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestGameListRange(t *testing.T) {
	job := &Job{Type: JobTypeRange, StartGameID: 2023020001, EndGameID: 2023020003}
	ids := job.gameList()
	if len(ids) != 3 || ids[0] != 2023020001 || ids[2] != 2023020003 {
		t.Errorf("gameList = %v", ids)
	}
}
