package emails

import (
	"strings"
	"testing"
)

func TestParseDraft_SubjectLine(t *testing.T) {
	raw := `Subject: Application for Backend Engineer

Dear Hiring Team,
I am excited to apply for the Backend Engineer role.
My experience with Go services maps directly to your needs.

Sincerely,
Jane Doe`

	subject, body := parseDraft(raw, "Jane Doe")
	if subject != "Application for Backend Engineer" {
		t.Fatalf("unexpected subject: %q", subject)
	}
	if !strings.HasPrefix(body, "Dear Hiring Team,\n\n") {
		t.Fatalf("expected greeting on its own block, got:\n%s", body)
	}
	if !strings.HasSuffix(body, "Sincerely,\nJane Doe") {
		t.Fatalf("expected closing pinned with the name on its own line, got:\n%s", body)
	}
	if strings.Contains(body, "Subject:") {
		t.Fatalf("subject leaked into body:\n%s", body)
	}
}

func TestParseDraft_QuotedSubject(t *testing.T) {
	raw := "Subject: \"Application for Platform Engineer\"\n\nDear Team,\nShort note.\n"

	subject, _ := parseDraft(raw, "Jane Doe")
	if subject != "Application for Platform Engineer" {
		t.Fatalf("unexpected subject: %q", subject)
	}
}

func TestParseDraft_KeywordFallback(t *testing.T) {
	raw := `Application for the Senior Go Developer position

Dear Hiring Manager,
Please find my resume attached.`

	subject, body := parseDraft(raw, "Jane Doe")
	if subject != "Application for the Senior Go Developer position" {
		t.Fatalf("unexpected subject: %q", subject)
	}
	if body == "" {
		t.Fatal("expected a body")
	}
}

func TestParseDraft_DefaultSubject(t *testing.T) {
	raw := "Dear Team,\nA short note without any subject hints.\n"

	subject, _ := parseDraft(raw, "Jane Doe")
	if subject != "Job Application - Jane Doe" {
		t.Fatalf("unexpected subject: %q", subject)
	}
}

func TestParseDraft_EmptyOutput(t *testing.T) {
	subject, body := parseDraft("", "Jane Doe")
	if subject != "Job Application - Jane Doe" {
		t.Fatalf("unexpected subject: %q", subject)
	}
	if !strings.Contains(body, "Jane Doe") {
		t.Fatalf("expected fallback body signed with the candidate name, got:\n%s", body)
	}
	if !strings.Contains(body, "attached resume") {
		t.Fatalf("expected fallback body to mention the attachment, got:\n%s", body)
	}
}

func TestFormatBusinessLetter_ReflowsParagraphs(t *testing.T) {
	in := "Dear Team,\nFirst sentence.\nSecond sentence continues the paragraph.\n\nNew paragraph here.\n\nBest regards,\nJane Doe"

	out := formatBusinessLetter(in)
	if !strings.Contains(out, "First sentence. Second sentence continues the paragraph.") {
		t.Fatalf("expected paragraph reflow, got:\n%s", out)
	}
	if !strings.Contains(out, "\n\nNew paragraph here.\n\n") {
		t.Fatalf("expected blank lines between paragraphs, got:\n%s", out)
	}
	if !strings.HasSuffix(out, "Best regards,\nJane Doe") {
		t.Fatalf("expected closing block, got:\n%s", out)
	}
}

func TestFormatBusinessLetter_WindowsLineEndings(t *testing.T) {
	in := "Dear Team,\r\nHello there.\r\n\r\nSincerely,\r\nJane Doe"
	out := formatBusinessLetter(in)
	if strings.Contains(out, "\r") {
		t.Fatalf("expected normalized line endings, got %q", out)
	}
}
