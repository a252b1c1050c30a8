package jobpostings

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"applymail-backend/internal/shared/metrics"
	"applymail-backend/internal/shared/telemetry"
)

// Service contains business logic for job postings.
type Service struct {
	Repo    Repo
	Fetcher *Fetcher
}

// SetText records a pasted job description.
func (s *Service) SetText(ctx context.Context, text string) (JobPosting, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return JobPosting{}, ErrInvalidInput
	}

	job := JobPosting{
		ID:        uuid.NewString(),
		Source:    SourcePasted,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, job); err != nil {
		return JobPosting{}, err
	}

	telemetry.Info("jobposting.set", map[string]any{
		"job_id":     job.ID,
		"source":     job.Source,
		"char_count": len(job.Text),
	})
	return job, nil
}

// FetchURL scrapes a job description from the given URL and records it.
func (s *Service) FetchURL(ctx context.Context, rawURL string) (JobPosting, error) {
	metrics.IncStarted(metrics.StageFetch)

	text, err := s.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		metrics.IncFailed(metrics.StageFetch)
		return JobPosting{}, err
	}

	job := JobPosting{
		ID:        uuid.NewString(),
		Source:    SourceURL,
		URL:       strings.TrimSpace(rawURL),
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, job); err != nil {
		metrics.IncFailed(metrics.StageFetch)
		return JobPosting{}, err
	}

	metrics.IncCompleted(metrics.StageFetch)
	telemetry.Info("jobposting.fetched", map[string]any{
		"job_id":     job.ID,
		"source":     job.Source,
		"url":        job.URL,
		"char_count": len(job.Text),
	})
	return job, nil
}

// Get returns a job posting by ID.
func (s *Service) Get(ctx context.Context, id string) (JobPosting, error) {
	if id == "" {
		return JobPosting{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, id)
}

// Current returns the most recent job posting.
func (s *Service) Current(ctx context.Context) (JobPosting, error) {
	return s.Repo.Current(ctx)
}
