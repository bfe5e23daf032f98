package repository

import (
	"context"
	"sync"
	"time"

	"exam-tutor/internal/domain"
)

// MemoryStore keeps exchanges in process memory. Contents are lost on exit.
type MemoryStore struct {
	mu        sync.RWMutex
	exchanges map[int64]domain.Exchange
	nextID    int64
	now       func() time.Time
}

// NewMemoryStore creates an empty in-process transcript. Contents are lost on restart.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		exchanges: make(map[int64]domain.Exchange),
		nextID:    1,
		now:       time.Now,
	}
}

// Save assigns the next id and the insert timestamp, then appends ex.
func (s *MemoryStore) Save(_ context.Context, ex domain.Exchange) (domain.Exchange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ex.ID = s.nextID
	ex.Timestamp = s.now().UTC()
	s.nextID++
	s.exchanges[ex.ID] = ex
	return ex, nil
}

// ListAll returns copies of every exchange in id order.
func (s *MemoryStore) ListAll(_ context.Context) ([]domain.Exchange, error) {
	return s.filter(func(domain.Exchange) bool { return true }), nil
}

func (s *MemoryStore) ListBySubject(_ context.Context, subject string) ([]domain.Exchange, error) {
	return s.filter(func(ex domain.Exchange) bool { return ex.Subject == subject }), nil
}

func (s *MemoryStore) ListByExamType(_ context.Context, examType string) ([]domain.Exchange, error) {
	return s.filter(func(ex domain.Exchange) bool { return ex.ExamType == examType }), nil
}

func (s *MemoryStore) filter(keep func(domain.Exchange) bool) []domain.Exchange {
	s.mu.RLock()
	out := make([]domain.Exchange, 0, len(s.exchanges))
	for _, ex := range s.exchanges {
		if keep(ex) {
			out = append(out, ex)
		}
	}
	s.mu.RUnlock()
	sortByID(out)
	return out
}
