package jobpostings

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound indicates the job posting does not exist.
var ErrNotFound = errors.New("job posting not found")

// ErrInvalidInput indicates a bad job posting request.
var ErrInvalidInput = errors.New("invalid input")

// Repo stores job postings for the session.
type Repo interface {
	Create(ctx context.Context, job JobPosting) error
	GetByID(ctx context.Context, id string) (JobPosting, error)
	Current(ctx context.Context) (JobPosting, error)
}

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data []JobPosting
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Create stores a job posting. The most recently created one becomes current.
func (r *MemoryRepo) Create(ctx context.Context, job JobPosting) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, job)
	return nil
}

// GetByID returns a job posting by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (JobPosting, error) {
	if err := ctx.Err(); err != nil {
		return JobPosting{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.data {
		if r.data[i].ID == id {
			return r.data[i], nil
		}
	}
	return JobPosting{}, ErrNotFound
}

// Current returns the most recently created job posting.
func (r *MemoryRepo) Current(ctx context.Context) (JobPosting, error) {
	if err := ctx.Err(); err != nil {
		return JobPosting{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.data) == 0 {
		return JobPosting{}, ErrNotFound
	}
	return r.data[len(r.data)-1], nil
}
