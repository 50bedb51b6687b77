package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore implements Store using in-memory slices.
// Intended for demos and testing, no database required.
type MemoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	records []FormRecord
}

// NewMemoryStore creates a new empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) Add(_ context.Context, record FormRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.ID = s.nextID
	s.nextID++
	if record.Status == "" {
		record.Status = StatusActive
	}
	if record.Created.IsZero() {
		record.Created = time.Now().UTC()
	}
	s.records = append(s.records, record)
	return record.ID, nil
}

func (s *MemoryStore) GetByID(_ context.Context, id int64) (FormRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, record := range s.records {
		if record.ID == id {
			return record, nil
		}
	}
	return FormRecord{}, ErrNotFound
}

func (s *MemoryStore) Query(_ context.Context, filter Filter) ([]FormRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := filter.Status
	if status == "" {
		status = StatusActive
	}

	var matched []FormRecord
	for _, record := range s.records {
		if record.Status != status {
			continue
		}
		matched = append(matched, record)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		left := strings.ToLower(matched[i].Title)
		right := strings.ToLower(matched[j].Title)
		if left != right {
			return left < right
		}
		return matched[i].ID < matched[j].ID
	})

	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}
