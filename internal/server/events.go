package server

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
)

// Lifecycle phases emitted while a run progresses.
const (
	PhaseFetching  = "fetching"
	PhaseAnalyzing = "analyzing"
	PhaseComplete  = "complete"
	PhaseError     = "error"
)

// Event is one progress message for a watched run.
type Event struct {
	Phase   string  `json:"phase"`
	Message string  `json:"message,omitempty"`
	Report  *Report `json:"report,omitempty"`
}

// runStore tracks the event channel of each in-flight run.
type runStore struct {
	mu   sync.RWMutex
	runs map[string]chan Event
}

func newRunStore() *runStore {
	return &runStore{runs: make(map[string]chan Event)}
}

// create registers a new run and returns its id and event channel. The
// channel is buffered so the producer never blocks on a slow watcher.
func (s *runStore) create() (string, chan Event) {
	id := newRunID()
	ch := make(chan Event, 16)
	s.mu.Lock()
	s.runs[id] = ch
	s.mu.Unlock()
	return id, ch
}

func (s *runStore) get(id string) (chan Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ch, ok := s.runs[id]
	return ch, ok
}

// finish closes the channel and forgets the run.
func (s *runStore) finish(id string) {
	s.mu.Lock()
	ch, ok := s.runs[id]
	if ok {
		delete(s.runs, id)
	}
	s.mu.Unlock()
	if ok {
		close(ch)
	}
}

func newRunID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return "run-" + hex.EncodeToString(b)
}
