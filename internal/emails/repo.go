package emails

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound indicates the email does not exist.
var ErrNotFound = errors.New("email not found")

// ErrInvalidInput indicates a bad compose or dispatch request.
var ErrInvalidInput = errors.New("invalid input")

// Repo stores composed emails for the session.
type Repo interface {
	Create(ctx context.Context, email Email) error
	GetByID(ctx context.Context, id string) (Email, error)
	MarkDispatched(ctx context.Context, id, mode, providerID string) error
}

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Email
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Email)}
}

// Create stores a composed email.
func (r *MemoryRepo) Create(ctx context.Context, email Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[email.ID] = email
	return nil
}

// GetByID returns an email by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Email, error) {
	if err := ctx.Err(); err != nil {
		return Email{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	email, ok := r.data[id]
	if !ok {
		return Email{}, ErrNotFound
	}
	return email, nil
}

// MarkDispatched records a successful dispatch.
func (r *MemoryRepo) MarkDispatched(ctx context.Context, id, mode, providerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	email, ok := r.data[id]
	if !ok {
		return ErrNotFound
	}
	email.Status = StatusDispatched
	email.Mode = mode
	email.ProviderID = providerID
	r.data[id] = email
	return nil
}
