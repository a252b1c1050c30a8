package resumes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"applymail-backend/internal/extract"
	"applymail-backend/internal/shared/metrics"
	"applymail-backend/internal/shared/storage/object"
	"applymail-backend/internal/shared/telemetry"
)

// ErrExtraction indicates the uploaded document could not be read as text.
var ErrExtraction = errors.New("could not extract text from document")

// Service contains business logic for resumes.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
}

// Upload saves the file to the object store, extracts its text and records the resume.
// An upload whose text cannot be extracted is rejected; it would be useless downstream.
func (s *Service) Upload(ctx context.Context, fileName string, r io.Reader) (Resume, error) {
	if fileName == "" {
		return Resume{}, ErrInvalidInput
	}

	metrics.IncStarted(metrics.StageExtract)

	storageKey, size, mimeType, err := s.Store.Save(ctx, fileName, r)
	if err != nil {
		metrics.IncFailed(metrics.StageExtract)
		return Resume{}, fmt.Errorf("store resume: %w", err)
	}

	body, err := s.Store.Open(ctx, storageKey)
	if err != nil {
		metrics.IncFailed(metrics.StageExtract)
		return Resume{}, fmt.Errorf("reopen stored resume: %w", err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		metrics.IncFailed(metrics.StageExtract)
		return Resume{}, fmt.Errorf("read stored resume: %w", err)
	}

	text, err := extract.Text(ctx, raw, mimeType, fileName)
	if err != nil {
		metrics.IncFailed(metrics.StageExtract)
		return Resume{}, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	resume := Resume{
		ID:         uuid.NewString(),
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  size,
		StorageKey: storageKey,
		Text:       text,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, resume); err != nil {
		metrics.IncFailed(metrics.StageExtract)
		return Resume{}, err
	}

	metrics.IncCompleted(metrics.StageExtract)
	telemetry.Info("resume.uploaded", map[string]any{
		"resume_id":  resume.ID,
		"file_name":  resume.FileName,
		"mime_type":  resume.MimeType,
		"size_bytes": resume.SizeBytes,
		"char_count": len(resume.Text),
	})

	return resume, nil
}

// Get returns a resume by ID.
func (s *Service) Get(ctx context.Context, id string) (Resume, error) {
	if id == "" {
		return Resume{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, id)
}

// Current returns the most recently uploaded resume.
func (s *Service) Current(ctx context.Context) (Resume, error) {
	return s.Repo.Current(ctx)
}

// OpenFile opens the original uploaded bytes, for attaching to outgoing mail.
func (s *Service) OpenFile(ctx context.Context, resume Resume) (io.ReadCloser, error) {
	return s.Store.Open(ctx, resume.StorageKey)
}
