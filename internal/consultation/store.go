package consultation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSubmissionNotFound is returned when a submission is not found.
var ErrSubmissionNotFound = errors.New("submission not found")

// Submission is an accepted consultation request. Nothing is persisted beyond
// process memory; the dispatched emails are the durable record.
type Submission struct {
	ID         string              `json:"id"`
	Request    ConsultationRequest `json:"request"`
	ReceivedAt time.Time           `json:"received_at"`
}

// Store records accepted submissions for the lifetime of the process.
type Store interface {
	Save(ctx context.Context, req *ConsultationRequest) (*Submission, error)
	GetByID(ctx context.Context, id string) (*Submission, error)
}

// InMemoryStore is the in-memory Store implementation.
type InMemoryStore struct {
	mu          sync.RWMutex
	submissions map[string]*Submission
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		submissions: make(map[string]*Submission),
	}
}

// Save records an accepted submission.
func (s *InMemoryStore) Save(ctx context.Context, req *ConsultationRequest) (*Submission, error) {
	sub := &Submission{
		ID:         uuid.New().String(),
		Request:    copyRequest(*req),
		ReceivedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.submissions[sub.ID] = sub
	s.mu.Unlock()

	return sub, nil
}

// GetByID retrieves a submission by ID.
func (s *InMemoryStore) GetByID(ctx context.Context, id string) (*Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.submissions[id]
	if !ok {
		return nil, ErrSubmissionNotFound
	}
	return sub, nil
}
