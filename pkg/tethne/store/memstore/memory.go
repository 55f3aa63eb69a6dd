package memstore

import (
	"context"
	"crypto/rand"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/digitalhps/tethne/pkg/tethne/model"
	"github.com/digitalhps/tethne/pkg/tethne/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu      sync.RWMutex
	entropy *ulid.MonotonicEntropy
	models  map[string]*model.Model
	infos   map[string]store.RunInfo
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		entropy: ulid.Monotonic(rand.Reader, 0),
		models:  make(map[string]*model.Model),
		infos:   make(map[string]store.RunInfo),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveModel stores the model under a fresh ULID. Models are immutable, so
// the pointer is kept as-is.
func (s *Store) SaveModel(ctx context.Context, m *model.Model) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runID := ulid.MustNew(ulid.Now(), s.entropy).String()
	s.models[runID] = m
	s.infos[runID] = store.RunInfo{
		ID:        runID,
		Topics:    m.Topics(),
		Documents: m.Documents(),
		Words:     m.Words(),
		CreatedAt: time.Now().UTC(),
	}
	return runID, nil
}

// GetModel implements store.Store.
func (s *Store) GetModel(ctx context.Context, runID string) (*model.Model, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.models[runID]
	return m, ok, nil
}

// ListRuns returns stored runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]store.RunInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]store.RunInfo, 0, len(s.infos))
	for _, info := range s.infos {
		runs = append(runs, info)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].ID > runs[j].ID
		}
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	return runs, nil
}

// DeleteRun implements store.Store.
func (s *Store) DeleteRun(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.models, runID)
	delete(s.infos, runID)
	return nil
}
