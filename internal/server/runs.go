package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/copyleftdev/zerofun/internal/dispatch"
)

// Run is the record of one solve.
type Run struct {
	ID          string          `json:"id"`
	Method      string          `json:"method"`
	Expression  string          `json:"expression"`
	Derivative  string          `json:"derivative,omitempty"`
	Parameters  dispatch.Params `json:"parameters"`
	Root        *float64        `json:"root"`
	Error       string          `json:"error,omitempty"`
	Kind        string          `json:"kind"`
	Iterations  int             `json:"iterations"`
	Evaluations int             `json:"evaluations"`
	Duration    time.Duration   `json:"duration_ns"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Succeeded reports whether the run found a zero.
func (r *Run) Succeeded() bool {
	return r.Root != nil
}

// runStore keeps the most recent runs, evicting the oldest beyond max.
type runStore struct {
	mu    sync.RWMutex
	max   int
	runs  map[string]*Run
	order []string
}

func newRunStore(limit int) *runStore {
	if limit <= 0 {
		limit = 1
	}
	return &runStore{max: limit, runs: make(map[string]*Run)}
}

func newRunID() string {
	return uuid.NewString()
}

func (s *runStore) put(run *Run) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[run.ID] = run
	s.order = append(s.order, run.ID)
	for len(s.order) > s.max {
		delete(s.runs, s.order[0])
		s.order = s.order[1:]
	}
}

func (s *runStore) get(id string) (*Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	return run, ok
}

func (s *runStore) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}

func (s *runStore) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = make(map[string]*Run)
	s.order = nil
}
