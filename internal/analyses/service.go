package analyses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"applymail-backend/internal/jobpostings"
	"applymail-backend/internal/llm"
	"applymail-backend/internal/resumes"
	"applymail-backend/internal/shared/metrics"
	"applymail-backend/internal/shared/telemetry"
)

// ErrLLM indicates the provider call failed.
var ErrLLM = errors.New("llm request failed")

// Service contains business logic for match analyses.
type Service struct {
	Repo     Repo
	Resumes  *resumes.Service
	Jobs     *jobpostings.Service
	LLM      llm.Client
	Provider string
	Model    string
}

// Analyze runs a synchronous compatibility assessment for a (resume, job) pair.
// Results are never cached; the same pair may score differently across calls.
func (s *Service) Analyze(ctx context.Context, resumeID, jobID string) (Analysis, error) {
	resume, err := s.Resumes.Get(ctx, resumeID)
	if err != nil {
		return Analysis{}, err
	}
	job, err := s.Jobs.Get(ctx, jobID)
	if err != nil {
		return Analysis{}, err
	}

	metrics.IncStarted(metrics.StageAnalyze)
	started := time.Now()

	raw, err := s.LLM.Complete(ctx, llm.BuildAnalyzeRequest(resume.Text, job.Text))
	metrics.ObserveLLMDurationMs(float64(time.Since(started).Milliseconds()))
	if err != nil {
		metrics.IncFailed(metrics.StageAnalyze)
		return Analysis{}, fmt.Errorf("%w: %v", ErrLLM, err)
	}

	parsed := parseResult(raw)

	analysis := Analysis{
		ID:              uuid.NewString(),
		ResumeID:        resume.ID,
		JobID:           job.ID,
		MatchPercent:    parsed.MatchPercent,
		MissingKeywords: parsed.MissingKeywords,
		Suggestions:     parsed.Suggestions,
		Assessment:      parsed.Assessment,
		Raw:             raw,
		Provider:        s.Provider,
		Model:           s.Model,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, analysis); err != nil {
		metrics.IncFailed(metrics.StageAnalyze)
		return Analysis{}, err
	}

	metrics.IncCompleted(metrics.StageAnalyze)
	fields := map[string]any{
		"analysis_id": analysis.ID,
		"resume_id":   analysis.ResumeID,
		"job_id":      analysis.JobID,
		"provider":    analysis.Provider,
		"duration_ms": float64(time.Since(started).Milliseconds()),
	}
	if analysis.MatchPercent != nil {
		fields["match_percent"] = *analysis.MatchPercent
	}
	telemetry.Info("analysis.completed", fields)

	return analysis, nil
}

// Get returns an analysis by ID.
func (s *Service) Get(ctx context.Context, id string) (Analysis, error) {
	if id == "" {
		return Analysis{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}
