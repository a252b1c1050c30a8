package resumes

import (
	"context"
	"errors"
)

// ErrNotFound indicates the resume does not exist.
var ErrNotFound = errors.New("resume not found")

// ErrInvalidInput indicates a bad upload request.
var ErrInvalidInput = errors.New("invalid input")

// Repo stores resumes for the session.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	GetByID(ctx context.Context, id string) (Resume, error)
	Current(ctx context.Context) (Resume, error)
}
