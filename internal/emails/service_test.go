package emails_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"applymail-backend/internal/analyses"
	"applymail-backend/internal/emails"
	"applymail-backend/internal/gmail"
	"applymail-backend/internal/jobpostings"
	"applymail-backend/internal/llm"
	"applymail-backend/internal/resumes"
	"applymail-backend/internal/shared/storage/object/local"
)

const resumeText = "Jane Doe\nBackend Engineer\n5 years of Go, Postgres and Kubernetes."

type stubLLM struct {
	response string
	err      error
}

func (s stubLLM) Complete(ctx context.Context, req llm.Request) (string, error) {
	_ = ctx
	_ = req
	return s.response, s.err
}

type stubDispatcher struct {
	drafts []gmail.Message
	sent   []gmail.Message
	err    error
}

func (d *stubDispatcher) CreateDraft(ctx context.Context, msg gmail.Message) (string, error) {
	_ = ctx
	if d.err != nil {
		return "", d.err
	}
	d.drafts = append(d.drafts, msg)
	return fmt.Sprintf("draft-%d", len(d.drafts)), nil
}

func (d *stubDispatcher) Send(ctx context.Context, msg gmail.Message) (string, error) {
	_ = ctx
	if d.err != nil {
		return "", d.err
	}
	d.sent = append(d.sent, msg)
	return fmt.Sprintf("msg-%d", len(d.sent)), nil
}

func newEmailService(t *testing.T, client llm.Client, dispatcher emails.Dispatcher) (*emails.Service, resumes.Resume, jobpostings.JobPosting) {
	t.Helper()

	resumeSvc := &resumes.Service{
		Store: local.New(t.TempDir()),
		Repo:  resumes.NewMemoryRepo(),
	}
	resume, err := resumeSvc.Upload(context.Background(), "resume.txt", bytes.NewReader([]byte(resumeText)))
	if err != nil {
		t.Fatalf("upload resume: %v", err)
	}

	jobSvc := &jobpostings.Service{
		Repo:    jobpostings.NewMemoryRepo(),
		Fetcher: jobpostings.NewFetcher(),
	}
	job, err := jobSvc.SetText(context.Background(), "Backend Engineer. 3+ years of Go.")
	if err != nil {
		t.Fatalf("set job text: %v", err)
	}

	svc := &emails.Service{
		Repo:       emails.NewMemoryRepo(),
		Resumes:    resumeSvc,
		Jobs:       jobSvc,
		Analyses:   &analyses.Service{Repo: analyses.NewMemoryRepo(), Resumes: resumeSvc, Jobs: jobSvc, LLM: client},
		LLM:        client,
		Dispatcher: dispatcher,
		History:    emails.NewHistory(filepath.Join(t.TempDir(), "email_history.json")),
	}
	return svc, resume, job
}

func TestCompose_HappyPath(t *testing.T) {
	client := stubLLM{response: "Subject: Application for Backend Engineer\n\nDear Hiring Team,\nI would love to join.\n\nSincerely,\nJane Doe"}
	svc, resume, job := newEmailService(t, client, &stubDispatcher{})

	email, err := svc.Compose(context.Background(), resume.ID, job.ID, "", "hiring@example.com")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if email.Subject != "Application for Backend Engineer" {
		t.Fatalf("unexpected subject: %q", email.Subject)
	}
	if email.Status != emails.StatusComposed {
		t.Fatalf("unexpected status: %q", email.Status)
	}
	if email.Recipient != "hiring@example.com" {
		t.Fatalf("unexpected recipient: %q", email.Recipient)
	}

	stored, err := svc.Get(context.Background(), email.ID)
	if err != nil {
		t.Fatalf("get composed email: %v", err)
	}
	if stored.Body == "" {
		t.Fatal("expected a body")
	}
}

func TestCompose_InvalidRecipient(t *testing.T) {
	svc, resume, job := newEmailService(t, stubLLM{response: "x"}, &stubDispatcher{})

	for _, addr := range []string{"", "not-an-address", "missing@"} {
		_, err := svc.Compose(context.Background(), resume.ID, job.ID, "", addr)
		if !errors.Is(err, emails.ErrInvalidInput) {
			t.Fatalf("Compose(recipient=%q): expected ErrInvalidInput, got %v", addr, err)
		}
	}
}

func TestCompose_LLMFailure(t *testing.T) {
	svc, resume, job := newEmailService(t, stubLLM{err: errors.New("provider down")}, &stubDispatcher{})

	_, err := svc.Compose(context.Background(), resume.ID, job.ID, "", "hiring@example.com")
	if !errors.Is(err, emails.ErrLLM) {
		t.Fatalf("expected ErrLLM, got %v", err)
	}
}

func TestCompose_UnknownResume(t *testing.T) {
	svc, _, job := newEmailService(t, stubLLM{response: "x"}, &stubDispatcher{})

	_, err := svc.Compose(context.Background(), "nope", job.ID, "", "hiring@example.com")
	if !errors.Is(err, resumes.ErrNotFound) {
		t.Fatalf("expected resumes.ErrNotFound, got %v", err)
	}
}

func TestDispatch_DraftAttachesResume(t *testing.T) {
	client := stubLLM{response: "Subject: Application\n\nDear Team,\nHello.\n\nSincerely,\nJane Doe"}
	dispatcher := &stubDispatcher{}
	svc, resume, job := newEmailService(t, client, dispatcher)

	email, err := svc.Compose(context.Background(), resume.ID, job.ID, "", "hiring@example.com")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	dispatched, err := svc.Dispatch(context.Background(), email.ID, emails.ModeDraft)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if dispatched.Status != emails.StatusDispatched {
		t.Fatalf("unexpected status: %q", dispatched.Status)
	}
	if dispatched.Mode != emails.ModeDraft {
		t.Fatalf("unexpected mode: %q", dispatched.Mode)
	}
	if dispatched.ProviderID != "draft-1" {
		t.Fatalf("unexpected provider id: %q", dispatched.ProviderID)
	}

	if len(dispatcher.drafts) != 1 || len(dispatcher.sent) != 0 {
		t.Fatalf("expected exactly one draft, got %d drafts %d sent", len(dispatcher.drafts), len(dispatcher.sent))
	}
	msg := dispatcher.drafts[0]
	if msg.AttachmentName != "resume.txt" {
		t.Fatalf("unexpected attachment name: %q", msg.AttachmentName)
	}
	if string(msg.Attachment) != resumeText {
		t.Fatalf("attachment bytes differ from the uploaded resume")
	}

	history := svc.RecentHistory()
	if len(history) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(history))
	}
	if history[0].Mode != emails.ModeDraft {
		t.Fatalf("unexpected history mode: %q", history[0].Mode)
	}
}

func TestDispatch_SendMode(t *testing.T) {
	client := stubLLM{response: "Subject: Application\n\nDear Team,\nHello.\n"}
	dispatcher := &stubDispatcher{}
	svc, resume, job := newEmailService(t, client, dispatcher)

	email, err := svc.Compose(context.Background(), resume.ID, job.ID, "", "hiring@example.com")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	dispatched, err := svc.Dispatch(context.Background(), email.ID, emails.ModeSend)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if dispatched.ProviderID != "msg-1" {
		t.Fatalf("unexpected provider id: %q", dispatched.ProviderID)
	}
	if len(dispatcher.sent) != 1 {
		t.Fatalf("expected one sent message, got %d", len(dispatcher.sent))
	}
}

func TestDispatch_InvalidMode(t *testing.T) {
	svc, resume, job := newEmailService(t, stubLLM{response: "Subject: A\n\nbody"}, &stubDispatcher{})

	email, err := svc.Compose(context.Background(), resume.ID, job.ID, "", "hiring@example.com")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	_, err = svc.Dispatch(context.Background(), email.ID, "forward")
	if !errors.Is(err, emails.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDispatch_AuthErrorPassesThrough(t *testing.T) {
	dispatcher := &stubDispatcher{err: fmt.Errorf("%w: token expired", gmail.ErrAuth)}
	svc, resume, job := newEmailService(t, stubLLM{response: "Subject: A\n\nbody"}, dispatcher)

	email, err := svc.Compose(context.Background(), resume.ID, job.ID, "", "hiring@example.com")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	_, err = svc.Dispatch(context.Background(), email.ID, emails.ModeDraft)
	if !errors.Is(err, gmail.ErrAuth) {
		t.Fatalf("expected gmail.ErrAuth, got %v", err)
	}
}

func TestDispatch_ProviderFailure(t *testing.T) {
	dispatcher := &stubDispatcher{err: errors.New("gmail api error: quota")}
	svc, resume, job := newEmailService(t, stubLLM{response: "Subject: A\n\nbody"}, dispatcher)

	email, err := svc.Compose(context.Background(), resume.ID, job.ID, "", "hiring@example.com")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	_, err = svc.Dispatch(context.Background(), email.ID, emails.ModeSend)
	if !errors.Is(err, emails.ErrDispatch) {
		t.Fatalf("expected ErrDispatch, got %v", err)
	}
	if len(svc.RecentHistory()) != 0 {
		t.Fatal("failed dispatch must not be recorded in history")
	}
}

func TestDispatch_LongBodyTruncatedInHistory(t *testing.T) {
	body := strings.Repeat("All work and no play makes a dull draft. ", 20)
	client := stubLLM{response: "Subject: Application\n\n" + body}
	svc, resume, job := newEmailService(t, client, &stubDispatcher{})

	email, err := svc.Compose(context.Background(), resume.ID, job.ID, "", "hiring@example.com")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if _, err := svc.Dispatch(context.Background(), email.ID, emails.ModeDraft); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	history := svc.RecentHistory()
	if len(history) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(history))
	}
	if len(history[0].Body) > 210 {
		t.Fatalf("expected truncated body preview, got %d chars", len(history[0].Body))
	}
	if !strings.HasSuffix(history[0].Body, "...") {
		t.Fatalf("expected ellipsis on truncated preview, got %q", history[0].Body)
	}
}
