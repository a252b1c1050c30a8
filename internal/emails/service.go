package emails

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"applymail-backend/internal/analyses"
	"applymail-backend/internal/gmail"
	"applymail-backend/internal/jobpostings"
	"applymail-backend/internal/llm"
	"applymail-backend/internal/resumes"
	"applymail-backend/internal/shared/metrics"
	"applymail-backend/internal/shared/telemetry"
	"applymail-backend/internal/shared/util"
)

// ErrLLM indicates the provider call failed during composition.
var ErrLLM = errors.New("llm request failed")

// ErrDispatch indicates the mail provider rejected the message.
var ErrDispatch = errors.New("email dispatch failed")

// Dispatcher sends or drafts messages through the mail provider.
type Dispatcher interface {
	CreateDraft(ctx context.Context, msg gmail.Message) (string, error)
	Send(ctx context.Context, msg gmail.Message) (string, error)
}

const historyBodyPreview = 200

// Service contains business logic for composing and dispatching emails.
type Service struct {
	Repo       Repo
	Resumes    *resumes.Service
	Jobs       *jobpostings.Service
	Analyses   *analyses.Service
	LLM        llm.Client
	Dispatcher Dispatcher
	History    *History
}

// Compose drafts an application email for a (resume, job) pair. An
// analysis, when given, feeds the prompt so the draft leans on its
// findings. Composition never fails on parse: unusable model output
// degrades to a stock letter.
func (s *Service) Compose(ctx context.Context, resumeID, jobID, analysisID, recipient string) (Email, error) {
	recipient = strings.TrimSpace(recipient)
	if _, err := mail.ParseAddress(recipient); err != nil {
		return Email{}, fmt.Errorf("%w: recipient address", ErrInvalidInput)
	}

	resume, err := s.Resumes.Get(ctx, resumeID)
	if err != nil {
		return Email{}, err
	}
	job, err := s.Jobs.Get(ctx, jobID)
	if err != nil {
		return Email{}, err
	}

	analysisSummary := ""
	if analysisID != "" {
		analysis, err := s.Analyses.Get(ctx, analysisID)
		if err != nil {
			return Email{}, err
		}
		analysisSummary = analysis.Summary()
	}

	metrics.IncStarted(metrics.StageCompose)
	started := time.Now()

	candidateName := resume.CandidateName()
	raw, err := s.LLM.Complete(ctx, llm.BuildComposeRequest(resume.Text, job.Text, candidateName, analysisSummary))
	metrics.ObserveLLMDurationMs(float64(time.Since(started).Milliseconds()))
	if err != nil {
		metrics.IncFailed(metrics.StageCompose)
		return Email{}, fmt.Errorf("%w: %v", ErrLLM, err)
	}

	subject, body := parseDraft(raw, candidateName)

	email := Email{
		ID:         uuid.NewString(),
		ResumeID:   resume.ID,
		JobID:      job.ID,
		AnalysisID: analysisID,
		Recipient:  recipient,
		Subject:    subject,
		Body:       body,
		Status:     StatusComposed,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, email); err != nil {
		metrics.IncFailed(metrics.StageCompose)
		return Email{}, err
	}

	metrics.IncCompleted(metrics.StageCompose)
	telemetry.Info("email.composed", map[string]any{
		"email_id":  email.ID,
		"resume_id": email.ResumeID,
		"job_id":    email.JobID,
		"recipient": email.Recipient,
		"subject":   email.Subject,
	})
	return email, nil
}

// Dispatch sends the composed email or saves it as a provider draft, with
// the original resume file attached.
func (s *Service) Dispatch(ctx context.Context, emailID, mode string) (Email, error) {
	if mode != ModeDraft && mode != ModeSend {
		return Email{}, fmt.Errorf("%w: mode must be %q or %q", ErrInvalidInput, ModeDraft, ModeSend)
	}

	email, err := s.Repo.GetByID(ctx, emailID)
	if err != nil {
		return Email{}, err
	}

	resume, err := s.Resumes.Get(ctx, email.ResumeID)
	if err != nil {
		return Email{}, err
	}

	metrics.IncStarted(metrics.StageDispatch)

	file, err := s.Resumes.OpenFile(ctx, resume)
	if err != nil {
		metrics.IncFailed(metrics.StageDispatch)
		return Email{}, fmt.Errorf("open resume attachment: %w", err)
	}
	attachment, err := io.ReadAll(file)
	file.Close()
	if err != nil {
		metrics.IncFailed(metrics.StageDispatch)
		return Email{}, fmt.Errorf("read resume attachment: %w", err)
	}

	msg := gmail.Message{
		To:             email.Recipient,
		Subject:        email.Subject,
		Body:           email.Body,
		AttachmentName: resume.FileName,
		AttachmentMime: resume.MimeType,
		Attachment:     attachment,
	}

	var providerID string
	if mode == ModeDraft {
		providerID, err = s.Dispatcher.CreateDraft(ctx, msg)
	} else {
		providerID, err = s.Dispatcher.Send(ctx, msg)
	}
	if err != nil {
		metrics.IncFailed(metrics.StageDispatch)
		if errors.Is(err, gmail.ErrAuth) {
			return Email{}, err
		}
		return Email{}, fmt.Errorf("%w: %v", ErrDispatch, err)
	}

	if err := s.Repo.MarkDispatched(ctx, email.ID, mode, providerID); err != nil {
		metrics.IncFailed(metrics.StageDispatch)
		return Email{}, err
	}
	email.Status = StatusDispatched
	email.Mode = mode
	email.ProviderID = providerID

	if s.History != nil {
		preview := email.Body
		if len(preview) > historyBodyPreview {
			preview = util.Truncate(preview, historyBodyPreview) + "..."
		}
		if err := s.History.Append(HistoryEntry{
			Recipient: email.Recipient,
			Subject:   email.Subject,
			Body:      preview,
			Mode:      mode,
			Timestamp: time.Now().UTC(),
		}); err != nil {
			telemetry.Error("email.history_save_failed", map[string]any{
				"email_id": email.ID,
				"error":    err.Error(),
			})
		}
	}

	metrics.IncCompleted(metrics.StageDispatch)
	telemetry.Info("email.dispatched", map[string]any{
		"email_id":    email.ID,
		"mode":        mode,
		"provider_id": providerID,
		"recipient":   email.Recipient,
	})
	return email, nil
}

// Get returns an email by ID.
func (s *Service) Get(ctx context.Context, id string) (Email, error) {
	if id == "" {
		return Email{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}

// RecentHistory returns the dispatch history, newest last.
func (s *Service) RecentHistory() []HistoryEntry {
	if s.History == nil {
		return nil
	}
	return s.History.Load()
}
