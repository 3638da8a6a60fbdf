package storage

import (
	"context"
	"sort"
	"sync"

	"location-stories/types"
)

const maxMemoryVisits = 500

// VisitMemoryRepository keeps the most recent visits in memory
type VisitMemoryRepository struct {
	mu     sync.RWMutex
	visits []types.Visit
}

// NewVisitMemoryRepository creates an empty in-memory visit log
func NewVisitMemoryRepository() *VisitMemoryRepository {
	return &VisitMemoryRepository{visits: make([]types.Visit, 0, 64)}
}

// Save appends a visit, dropping the oldest once the log is full
func (r *VisitMemoryRepository) Save(_ context.Context, visit types.Visit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.visits = append(r.visits, visit)
	if len(r.visits) > maxMemoryVisits {
		r.visits = r.visits[len(r.visits)-maxMemoryVisits:]
	}
	return nil
}

// GetRecent returns up to limit visits, newest first
func (r *VisitMemoryRepository) GetRecent(_ context.Context, limit int) ([]types.Visit, error) {
	r.mu.RLock()
	// reverse insertion order so equal timestamps still list the newest first
	visits := make([]types.Visit, 0, len(r.visits))
	for i := len(r.visits) - 1; i >= 0; i-- {
		visits = append(visits, r.visits[i])
	}
	r.mu.RUnlock()

	sort.SliceStable(visits, func(i, j int) bool {
		return visits[i].Timestamp.After(visits[j].Timestamp)
	})
	if limit > 0 && len(visits) > limit {
		visits = visits[:limit]
	}
	return visits, nil
}
