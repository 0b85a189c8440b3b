package data

import (
	"context"
	"sync"
	"time"

	"pv-yield/internal/yield"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// StoredRun is a finished aggregation kept for later retrieval and export.
type StoredRun struct {
	ID        string
	CreatedAt time.Time
	ExpiresAt time.Time
	Result    *yield.Result
	Export    yield.ExportOptions
}

// RunStore keeps results in memory for a fixed TTL.
type RunStore struct {
	mu    sync.RWMutex
	store map[string]*StoredRun
	ttl   time.Duration
	now   func() time.Time
	log   logrus.FieldLogger
}

func NewRunStore(ttl time.Duration, log logrus.FieldLogger) *RunStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RunStore{
		store: make(map[string]*StoredRun),
		ttl:   ttl,
		now:   time.Now,
		log:   log,
	}
}

// Put stores a result and returns its entry with a fresh ID.
func (s *RunStore) Put(res *yield.Result, export yield.ExportOptions) *StoredRun {
	now := s.now()
	run := &StoredRun{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
		Result:    res,
		Export:    export,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store[run.ID] = run
	return run
}

// Get retrieves a run if present and not expired.
func (s *RunStore) Get(id string) (*StoredRun, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.store[id]
	if !ok {
		return nil, false
	}
	if s.now().After(run.ExpiresAt) {
		return nil, false
	}
	return run, true
}

func (s *RunStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.store)
}

// Purge removes expired entries and returns how many were dropped.
func (s *RunStore) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for id, run := range s.store {
		if now.After(run.ExpiresAt) {
			delete(s.store, id)
			n++
		}
	}
	return n
}

// Cleanup purges expired runs every interval until ctx is done.
func (s *RunStore) Cleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Purge(); n > 0 {
				s.log.WithField("expired", n).Debug("purged stored runs")
			}
		}
	}
}
